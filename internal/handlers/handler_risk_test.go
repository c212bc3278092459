package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Carl2170/sw-conta-bi/internal/apperrors"
	"github.com/Carl2170/sw-conta-bi/internal/core/domain"
	portssvc "github.com/Carl2170/sw-conta-bi/internal/core/ports/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock risk service ---
type MockRiskService struct {
	mock.Mock
}

func (m *MockRiskService) TopRisks(ctx context.Context) ([]domain.RiskScore, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RiskScore), args.Error(1)
}

var _ portssvc.RiskSvcFacade = (*MockRiskService)(nil)

// --- Test Suite ---
type RiskHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockRiskService
}

func (suite *RiskHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockService = new(MockRiskService)
	suite.router = gin.New()
	registerRiskRoutes(suite.router.Group("/api/v1"), suite.mockService)
}

func (suite *RiskHandlerTestSuite) serve() *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/risk/top", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *RiskHandlerTestSuite) TestGetTopRisks_Success() {
	suite.mockService.On("TopRisks", mock.Anything).Return([]domain.RiskScore{
		{CustomerID: "c2", Name: "Beta", Probability: 0.91},
		{CustomerID: "c1", Name: "Alpha", Probability: 0.42},
	}, nil).Once()

	w := suite.serve()

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`[
		{"id": "c2", "name": "Beta", "riesgo": 0.91},
		{"id": "c1", "name": "Alpha", "riesgo": 0.42}
	]`, w.Body.String())
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *RiskHandlerTestSuite) TestGetTopRisks_EmptyRankingIsEmptyArray() {
	suite.mockService.On("TopRisks", mock.Anything).Return([]domain.RiskScore{}, nil).Once()

	w := suite.serve()

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`[]`, w.Body.String())
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *RiskHandlerTestSuite) TestGetTopRisks_ModelUnavailable() {
	suite.mockService.On("TopRisks", mock.Anything).Return(nil, apperrors.ErrModelUnavailable).Once()

	w := suite.serve()

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.Contains(w.Body.String(), "Risk model unavailable")
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *RiskHandlerTestSuite) TestGetTopRisks_SourceUnavailable() {
	suite.mockService.On("TopRisks", mock.Anything).Return(nil, apperrors.ErrSourceUnavailable).Once()

	w := suite.serve()

	suite.Equal(http.StatusBadGateway, w.Code)
	suite.Contains(w.Body.String(), "Record source unavailable")
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *RiskHandlerTestSuite) TestGetTopRisks_SourceDataError() {
	suite.mockService.On("TopRisks", mock.Anything).Return(nil, apperrors.ErrSourceData).Once()

	w := suite.serve()

	suite.Equal(http.StatusBadGateway, w.Code)
	suite.Contains(w.Body.String(), "invalid data")
	suite.mockService.AssertExpectations(suite.T())
}

func TestRiskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(RiskHandlerTestSuite))
}

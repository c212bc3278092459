package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Carl2170/sw-conta-bi/internal/apperrors"
	portssvc "github.com/Carl2170/sw-conta-bi/internal/core/ports/services"
	"github.com/Carl2170/sw-conta-bi/internal/dto"
	"github.com/Carl2170/sw-conta-bi/internal/middleware"
	"github.com/gin-gonic/gin"
)

// riskHandler handles HTTP requests for customer default-risk scoring
type riskHandler struct {
	riskService portssvc.RiskSvcFacade
}

// newRiskHandler creates a new riskHandler
func newRiskHandler(rs portssvc.RiskSvcFacade) *riskHandler {
	return &riskHandler{
		riskService: rs,
	}
}

// registerRiskRoutes registers routes related to risk scoring
func registerRiskRoutes(rg *gin.RouterGroup, riskService portssvc.RiskSvcFacade) {
	h := newRiskHandler(riskService)

	riskGroup := rg.Group("/risk")
	{
		riskGroup.GET("/top", h.getTopRisks)
	}
}

// getTopRisks returns the ranked list of customers most at risk of default.
func (h *riskHandler) getTopRisks(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request for risk ranking")

	scores, err := h.riskService.TopRisks(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrModelUnavailable):
			logger.Error("Risk model unavailable", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Risk model unavailable"})
		case errors.Is(err, apperrors.ErrSourceUnavailable):
			logger.Error("Record source unreachable", slog.String("error", err.Error()))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Record source unavailable"})
		case errors.Is(err, apperrors.ErrSourceData):
			logger.Error("Record source returned an application error", slog.String("error", err.Error()))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Record source returned invalid data"})
		default:
			logger.Error("Failed to compute risk ranking", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute risk ranking"})
		}
		return
	}

	logger.Info("Risk ranking served", slog.Int("entries", len(scores)))
	c.JSON(http.StatusOK, dto.ToRiskRankingResponse(scores))
}

package services_test

import (
	"context"
	"testing"

	"github.com/Carl2170/sw-conta-bi/internal/apperrors"
	"github.com/Carl2170/sw-conta-bi/internal/core/domain"
	portssvc "github.com/Carl2170/sw-conta-bi/internal/core/ports/services"
	"github.com/Carl2170/sw-conta-bi/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock RecordSource ---
type MockRecordSource struct {
	mock.Mock
}

func (m *MockRecordSource) ActiveCustomers(ctx context.Context) ([]domain.CustomerRef, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CustomerRef), args.Error(1)
}

func (m *MockRecordSource) CustomerInvoices(ctx context.Context) ([]domain.InvoiceRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvoiceRecord), args.Error(1)
}

func (m *MockRecordSource) CustomerPayments(ctx context.Context) ([]domain.PaymentRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentRecord), args.Error(1)
}

func (m *MockRecordSource) OverdueInvoices(ctx context.Context) ([]domain.OverdueInvoice, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OverdueInvoice), args.Error(1)
}

func (m *MockRecordSource) AccountingAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockRecordSource) AccountBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockRecordSource) CustomersWithHistory(ctx context.Context) ([]domain.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}

// --- Mock BalanceFetcher ---
type MockBalanceFetcher struct {
	mock.Mock
}

func (m *MockBalanceFetcher) FetchBalances(ctx context.Context, accounts []domain.Account) []domain.AccountBalance {
	args := m.Called(ctx, accounts)
	return args.Get(0).([]domain.AccountBalance)
}

// --- Test Suite ---
type KPIServiceTestSuite struct {
	suite.Suite
	mockSource  *MockRecordSource
	mockFetcher *MockBalanceFetcher
	service     portssvc.KPISvcFacade
}

func (suite *KPIServiceTestSuite) SetupTest() {
	suite.mockSource = new(MockRecordSource)
	suite.mockFetcher = new(MockBalanceFetcher)
	suite.service = services.NewKPIService(suite.mockSource, suite.mockFetcher,
		services.WithAccountCap(5),
		services.WithTopBalanceN(5),
	)
}

// --- Test Cases ---

func (suite *KPIServiceTestSuite) TestTotalClients_Success() {
	ctx := context.Background()
	suite.mockSource.On("ActiveCustomers", ctx).Return([]domain.CustomerRef{{ID: "c1"}, {ID: "c2"}, {ID: "c3"}}, nil).Once()

	total, err := suite.service.TotalClients(ctx)

	suite.Require().NoError(err)
	suite.Equal(3, total)
	suite.mockSource.AssertExpectations(suite.T())
}

func (suite *KPIServiceTestSuite) TestTotalClients_SourceUnavailable() {
	ctx := context.Background()
	suite.mockSource.On("ActiveCustomers", ctx).Return(nil, apperrors.ErrSourceUnavailable).Once()

	_, err := suite.service.TotalClients(ctx)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrSourceUnavailable)
	suite.mockSource.AssertExpectations(suite.T())
}

func (suite *KPIServiceTestSuite) TestInvoiceStatusCount_UnknownStatus() {
	ctx := context.Background()
	suite.mockSource.On("CustomerInvoices", ctx).Return([]domain.InvoiceRecord{
		{Status: domain.StatusPaid, TotalAmount: decimal.NewFromInt(10), PeriodID: "p1"},
		{Status: domain.InvoiceStatus("VOID"), TotalAmount: decimal.NewFromInt(20), PeriodID: "p1"},
	}, nil).Once()

	_, err := suite.service.InvoiceStatusCount(ctx)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnknownStatus)
	suite.mockSource.AssertExpectations(suite.T())
}

func (suite *KPIServiceTestSuite) TestTopAccountBalances_CapsAccounts() {
	ctx := context.Background()
	accounts := make([]domain.Account, 8)
	for i := range accounts {
		accounts[i] = domain.Account{AccountID: string(rune('a' + i)), Name: string(rune('A' + i))}
	}
	suite.mockSource.On("AccountingAccounts", ctx).Return(accounts, nil).Once()

	// Only the first 5 accounts may reach the fetcher.
	suite.mockFetcher.On("FetchBalances", ctx, mock.MatchedBy(func(capped []domain.Account) bool {
		return len(capped) == 5 && capped[0].AccountID == "a" && capped[4].AccountID == "e"
	})).Return([]domain.AccountBalance{
		{AccountID: "a", Name: "A", Balance: decimal.NewFromInt(10)},
		{AccountID: "b", Name: "B", Balance: decimal.NewFromInt(-90)},
		{AccountID: "c", Name: "C", Balance: decimal.NewFromInt(40)},
		{AccountID: "d", Name: "D", Balance: decimal.Zero},
		{AccountID: "e", Name: "E", Balance: decimal.NewFromInt(40)},
	}).Once()

	balances, err := suite.service.TopAccountBalances(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(balances, 5)
	suite.Equal("B", balances[0].Name) // largest magnitude, negative sign irrelevant
	suite.Equal("C", balances[1].Name) // tie with E, first seen wins
	suite.Equal("E", balances[2].Name)
	suite.mockSource.AssertExpectations(suite.T())
	suite.mockFetcher.AssertExpectations(suite.T())
}

func (suite *KPIServiceTestSuite) TestSummary_Success() {
	ctx := context.Background()
	suite.mockSource.On("ActiveCustomers", ctx).Return([]domain.CustomerRef{{ID: "c1"}, {ID: "c2"}}, nil).Once()
	suite.mockSource.On("CustomerInvoices", ctx).Return([]domain.InvoiceRecord{
		{Status: domain.StatusPending, TotalAmount: decimal.NewFromInt(100), PeriodID: "2025-07"},
		{Status: domain.StatusPaid, TotalAmount: decimal.NewFromInt(50), PeriodID: "2025-07"},
		{Status: domain.StatusOverdue, TotalAmount: decimal.NewFromInt(75), PeriodID: "2025-08"},
	}, nil).Twice() // histogram and per-period grouping each fetch a fresh snapshot
	suite.mockSource.On("CustomerPayments", ctx).Return([]domain.PaymentRecord{
		{Amount: decimal.NewFromInt(30), Method: "CASH"},
		{Amount: decimal.NewFromInt(20), Method: "TRANSFER"},
		{Amount: decimal.NewFromInt(10), Method: "CASH"},
	}, nil).Once()
	suite.mockSource.On("OverdueInvoices", ctx).Return([]domain.OverdueInvoice{
		{Customer: domain.CustomerSummary{ID: "c1", Name: "Alpha"}},
		{Customer: domain.CustomerSummary{ID: "c1", Name: "Alpha"}},
		{Customer: domain.CustomerSummary{ID: "c2", Name: "Beta"}},
	}, nil).Once()
	suite.mockSource.On("AccountingAccounts", ctx).Return([]domain.Account{
		{AccountID: "acc1", Name: "Caja"},
	}, nil).Once()
	suite.mockFetcher.On("FetchBalances", ctx, mock.Anything).Return([]domain.AccountBalance{
		{AccountID: "acc1", Name: "Caja", Balance: decimal.NewFromFloat(1234.5)},
	}).Once()

	summary, err := suite.service.Summary(ctx)

	suite.Require().NoError(err)
	suite.Require().NotNil(summary)
	suite.Equal(2, summary.TotalClients)
	suite.Equal(1, summary.InvoiceStatus[domain.StatusPending])
	suite.Equal(1, summary.InvoiceStatus[domain.StatusPaid])
	suite.Equal(0, summary.InvoiceStatus[domain.StatusCancelled])
	suite.Equal(1, summary.InvoiceStatus[domain.StatusOverdue])

	suite.Require().Len(summary.InvoicingByPeriod, 2)
	suite.Equal("2025-07", summary.InvoicingByPeriod[0].Key)
	suite.True(summary.InvoicingByPeriod[0].Total.Equal(decimal.NewFromInt(150)))

	suite.Require().Len(summary.PaymentsByMethod, 2)
	suite.Equal("CASH", summary.PaymentsByMethod[0].Key)
	suite.True(summary.PaymentsByMethod[0].Total.Equal(decimal.NewFromInt(40)))

	suite.Equal(2, summary.Overdue.Count)
	suite.Equal([]string{"Alpha", "Beta"}, summary.Overdue.Names)

	suite.Require().Len(summary.TopBalances, 1)
	suite.Equal("Caja", summary.TopBalances[0].Name)

	suite.mockSource.AssertExpectations(suite.T())
	suite.mockFetcher.AssertExpectations(suite.T())
}

func (suite *KPIServiceTestSuite) TestSummary_AbortsOnSourceError() {
	ctx := context.Background()
	suite.mockSource.On("ActiveCustomers", ctx).Return(nil, apperrors.ErrSourceData).Once()

	summary, err := suite.service.Summary(ctx)

	suite.Require().Error(err)
	suite.Nil(summary)
	suite.ErrorIs(err, apperrors.ErrSourceData)
	// No partial summary: nothing beyond the failing query may be fetched.
	suite.mockSource.AssertNotCalled(suite.T(), "CustomerInvoices", mock.Anything)
	suite.mockSource.AssertExpectations(suite.T())
}

func TestKPIServiceTestSuite(t *testing.T) {
	suite.Run(t, new(KPIServiceTestSuite))
}

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

// kpiHandler handles HTTP requests for the aggregated business KPIs
type kpiHandler struct {
	kpiService portssvc.KPISvcFacade
}

// newKPIHandler creates a new kpiHandler
func newKPIHandler(ks portssvc.KPISvcFacade) *kpiHandler {
	return &kpiHandler{
		kpiService: ks,
	}
}

// registerKPIRoutes registers routes related to business KPIs
func registerKPIRoutes(rg *gin.RouterGroup, kpiService portssvc.KPISvcFacade) {
	h := newKPIHandler(kpiService)

	kpiGroup := rg.Group("/kpi")
	{
		kpiGroup.GET("/summary", h.getSummary)
		kpiGroup.GET("/total-clients", h.getTotalClients)
		kpiGroup.GET("/invoice-status", h.getInvoiceStatus)
		kpiGroup.GET("/invoicing-by-period", h.getInvoicingByPeriod)
		kpiGroup.GET("/payments-by-method", h.getPaymentsByMethod)
		kpiGroup.GET("/overdue-customers", h.getOverdueCustomers)
		kpiGroup.GET("/top-balances", h.getTopBalances)
	}
}

// respondAggregationError maps pipeline failures onto HTTP responses. The
// record source being down or corrupt is the upstream's fault (502);
// anything else is ours (500).
func respondAggregationError(c *gin.Context, err error, operation string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, apperrors.ErrSourceUnavailable):
		logger.Error("Record source unreachable", slog.String("operation", operation), slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Record source unavailable"})
	case errors.Is(err, apperrors.ErrSourceData):
		logger.Error("Record source returned an application error", slog.String("operation", operation), slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Record source returned invalid data"})
	case errors.Is(err, apperrors.ErrUnknownStatus):
		logger.Error("Aggregation hit an unknown invoice status", slog.String("operation", operation), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unknown invoice status in source data"})
	default:
		logger.Error("KPI aggregation failed", slog.String("operation", operation), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute KPI"})
	}
}

// getSummary returns the combined KPI snapshot.
func (h *kpiHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request for KPI summary")

	summary, err := h.kpiService.Summary(c.Request.Context())
	if err != nil {
		respondAggregationError(c, err, "summary")
		return
	}

	c.JSON(http.StatusOK, dto.ToKPISummaryResponse(summary))
}

// getTotalClients returns the active customer count.
func (h *kpiHandler) getTotalClients(c *gin.Context) {
	total, err := h.kpiService.TotalClients(c.Request.Context())
	if err != nil {
		respondAggregationError(c, err, "total_clients")
		return
	}

	c.JSON(http.StatusOK, gin.H{"total_clients": total})
}

// getInvoiceStatus returns the invoice status histogram.
func (h *kpiHandler) getInvoiceStatus(c *gin.Context) {
	histogram, err := h.kpiService.InvoiceStatusCount(c.Request.Context())
	if err != nil {
		respondAggregationError(c, err, "invoice_status")
		return
	}

	c.JSON(http.StatusOK, dto.ToStatusCountResponse(histogram))
}

// getInvoicingByPeriod returns invoice totals grouped by accounting period.
func (h *kpiHandler) getInvoicingByPeriod(c *gin.Context) {
	totals, err := h.kpiService.InvoicingByPeriod(c.Request.Context())
	if err != nil {
		respondAggregationError(c, err, "invoicing_by_period")
		return
	}

	c.JSON(http.StatusOK, dto.ToGroupedTotalsResponse(totals))
}

// getPaymentsByMethod returns payment totals grouped by payment method.
func (h *kpiHandler) getPaymentsByMethod(c *gin.Context) {
	totals, err := h.kpiService.PaymentsByMethod(c.Request.Context())
	if err != nil {
		respondAggregationError(c, err, "payments_by_method")
		return
	}

	c.JSON(http.StatusOK, dto.ToGroupedTotalsResponse(totals))
}

// getOverdueCustomers returns the distinct customers with overdue invoices.
func (h *kpiHandler) getOverdueCustomers(c *gin.Context) {
	overdue, err := h.kpiService.OverdueCustomers(c.Request.Context())
	if err != nil {
		respondAggregationError(c, err, "overdue_customers")
		return
	}

	c.JSON(http.StatusOK, dto.ToOverdueCustomersResponse(overdue))
}

// getTopBalances returns the ranked account balances. Per-account fetch
// failures are already folded to zero upstream and never fail the request.
func (h *kpiHandler) getTopBalances(c *gin.Context) {
	balances, err := h.kpiService.TopAccountBalances(c.Request.Context())
	if err != nil {
		respondAggregationError(c, err, "top_balances")
		return
	}

	c.JSON(http.StatusOK, dto.ToBalancesResponse(balances))
}

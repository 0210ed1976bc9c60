package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/SscSPs/ledger_engine_app/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for financial reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// registerReportingRoutes registers routes related to reports.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := &reportingHandler{reportingService: reportingService}

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.trialBalance)
		reports.GET("/profit-and-loss", h.profitAndLoss)
		reports.GET("/balance-sheet", h.balanceSheet)
	}
}

const reportDateLayout = "2006-01-02"

func parseReportDate(c *gin.Context, key string, fallback time.Time) (time.Time, bool) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, true
	}
	t, err := time.Parse(reportDateLayout, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + key + " date, expected YYYY-MM-DD"})
		return time.Time{}, false
	}
	return t, true
}

// trialBalance godoc
// @Summary Trial balance report
// @Tags reports
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param asOf query string false "Report date (YYYY-MM-DD), defaults to today"
// @Success 200 {array} domain.TrialBalanceRow
// @Security BearerAuth
// @Router /tenants/{tenantID}/reports/trial-balance [get]
func (h *reportingHandler) trialBalance(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	asOf, ok := parseReportDate(c, "asOf", time.Now())
	if !ok {
		return
	}

	rows, err := h.reportingService.TrialBalance(c.Request.Context(), c.Param("tenantID"), asOf, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to build trial balance")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// profitAndLoss godoc
// @Summary Profit and loss report
// @Tags reports
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} domain.PAndLReport
// @Security BearerAuth
// @Router /tenants/{tenantID}/reports/profit-and-loss [get]
func (h *reportingHandler) profitAndLoss(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	from, ok := parseReportDate(c, "from", time.Time{})
	if !ok {
		return
	}
	to, ok := parseReportDate(c, "to", time.Now())
	if !ok {
		return
	}

	report, err := h.reportingService.ProfitAndLoss(c.Request.Context(), c.Param("tenantID"), from, to, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to build profit and loss report")
		return
	}
	c.JSON(http.StatusOK, report)
}

// balanceSheet godoc
// @Summary Balance sheet report
// @Tags reports
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param asOf query string false "Report date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} domain.BalanceSheetReport
// @Security BearerAuth
// @Router /tenants/{tenantID}/reports/balance-sheet [get]
func (h *reportingHandler) balanceSheet(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	asOf, ok := parseReportDate(c, "asOf", time.Now())
	if !ok {
		return
	}

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), c.Param("tenantID"), asOf, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to build balance sheet")
		return
	}
	c.JSON(http.StatusOK, report)
}

package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/ledger_engine_app/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reconciliationHandler handles HTTP requests for ledger repair runs.
type reconciliationHandler struct {
	reconciliationService portssvc.ReconciliationSvcFacade
}

// registerReconciliationRoutes registers routes related to reconciliation.
func registerReconciliationRoutes(rg *gin.RouterGroup, reconciliationService portssvc.ReconciliationSvcFacade) {
	h := &reconciliationHandler{reconciliationService: reconciliationService}
	rg.POST("/reconciliation/purchases", h.syncPurchases)
}

// syncPurchases godoc
// @Summary Backfill missing purchase journal entries
// @Description Scans every purchase invoice and posts entries for those without one; safe to re-run
// @Tags reconciliation
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Success 200 {object} dto.SyncResult
// @Failure 403 {object} map[string]string "Admin role required"
// @Security BearerAuth
// @Router /tenants/{tenantID}/reconciliation/purchases [post]
func (h *reconciliationHandler) syncPurchases(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.reconciliationService.SyncPurchasesToLedger(c.Request.Context(), c.Param("tenantID"), userID)
	if err != nil {
		logger.Error("Reconciliation run failed", slog.String("error", err.Error()))
		respondServiceError(c, err, "Reconciliation run failed")
		return
	}
	c.JSON(http.StatusOK, result)
}

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/SscSPs/ledger_engine_app/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine_app/internal/core/services"
	"github.com/SscSPs/ledger_engine_app/internal/dto"
	"github.com/SscSPs/ledger_engine_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// purchaseHandler handles HTTP requests related to purchase invoices.
type purchaseHandler struct {
	purchaseService portssvc.PurchaseSvcFacade
}

// registerPurchaseRoutes registers routes related to purchase invoices.
func registerPurchaseRoutes(rg *gin.RouterGroup, purchaseService portssvc.PurchaseSvcFacade) {
	h := &purchaseHandler{purchaseService: purchaseService}

	purchases := rg.Group("/purchases")
	{
		purchases.POST("", h.createPurchase)
		purchases.GET("", h.listPurchases)
		purchases.GET("/:purchaseID", h.getPurchase)
	}
}

// createPurchase godoc
// @Summary Record a purchase invoice
// @Description Saves the invoice and posts its journal entry in one transaction
// @Tags purchases
// @Accept json
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param purchase body dto.CreatePurchaseInvoiceRequest true "Invoice details"
// @Success 201 {object} dto.PurchaseInvoiceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Duplicate invoice number"
// @Security BearerAuth
// @Router /tenants/{tenantID}/purchases [post]
func (h *purchaseHandler) createPurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePurchaseInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	invoice, err := h.purchaseService.CreatePurchaseInvoice(c.Request.Context(), c.Param("tenantID"), req, userID)
	if err != nil {
		if errors.Is(err, services.ErrInvoiceNumberRequired) ||
			errors.Is(err, services.ErrInvoiceTotalInvalid) ||
			errors.Is(err, services.ErrOverpaidInvoice) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create purchase invoice", slog.String("error", err.Error()))
		respondServiceError(c, err, "Failed to create purchase invoice")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPurchaseInvoiceResponse(invoice))
}

// getPurchase godoc
// @Summary Get a purchase invoice by ID
// @Tags purchases
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param purchaseID path string true "Purchase invoice ID"
// @Success 200 {object} dto.PurchaseInvoiceResponse
// @Failure 404 {object} map[string]string "Invoice not found"
// @Security BearerAuth
// @Router /tenants/{tenantID}/purchases/{purchaseID} [get]
func (h *purchaseHandler) getPurchase(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	invoice, err := h.purchaseService.GetPurchaseInvoiceByID(c.Request.Context(), c.Param("tenantID"), c.Param("purchaseID"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve purchase invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ToPurchaseInvoiceResponse(invoice))
}

// listPurchases godoc
// @Summary List purchase invoices in a tenant
// @Tags purchases
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} dto.PurchaseInvoiceResponse
// @Security BearerAuth
// @Router /tenants/{tenantID}/purchases [get]
func (h *purchaseHandler) listPurchases(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	invoices, err := h.purchaseService.ListPurchaseInvoices(c.Request.Context(), c.Param("tenantID"), limit, offset, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list purchase invoices")
		return
	}
	c.JSON(http.StatusOK, dto.ToPurchaseInvoiceResponses(invoices))
}

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/SscSPs/ledger_engine_app/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine_app/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine_app/internal/core/services"
	"github.com/SscSPs/ledger_engine_app/internal/dto"
	"github.com/SscSPs/ledger_engine_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// partyHandler handles HTTP requests related to customers and suppliers.
type partyHandler struct {
	partyService     portssvc.PartySvcFacade
	statementService portssvc.StatementSvcFacade
}

// registerPartyRoutes registers routes related to parties, including the
// party statement which resolves through the party's linked account.
func registerPartyRoutes(rg *gin.RouterGroup, partyService portssvc.PartySvcFacade, statementService portssvc.StatementSvcFacade) {
	h := &partyHandler{partyService: partyService, statementService: statementService}

	parties := rg.Group("/parties")
	{
		parties.POST("", h.createParty)
		parties.GET("", h.listParties)
		parties.GET("/:partyID", h.getParty)
		parties.GET("/:partyID/statement", h.getPartyStatement)
	}
}

// createParty godoc
// @Summary Create a customer or supplier
// @Description Creates the party and links or auto-creates its ledger account
// @Tags parties
// @Accept json
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param party body dto.CreatePartyRequest true "Party details"
// @Success 201 {object} dto.PartyResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /tenants/{tenantID}/parties [post]
func (h *partyHandler) createParty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	party, err := h.partyService.CreateParty(c.Request.Context(), c.Param("tenantID"), req, userID)
	if err != nil {
		if errors.Is(err, services.ErrPartyNameRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create party", slog.String("error", err.Error()))
		respondServiceError(c, err, "Failed to create party")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPartyResponse(party))
}

// getParty godoc
// @Summary Get a party by ID
// @Tags parties
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param partyID path string true "Party ID"
// @Success 200 {object} dto.PartyResponse
// @Failure 404 {object} map[string]string "Party not found"
// @Security BearerAuth
// @Router /tenants/{tenantID}/parties/{partyID} [get]
func (h *partyHandler) getParty(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	party, err := h.partyService.GetPartyByID(c.Request.Context(), c.Param("tenantID"), c.Param("partyID"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve party")
		return
	}
	c.JSON(http.StatusOK, dto.ToPartyResponse(party))
}

// listParties godoc
// @Summary List parties of one type in a tenant
// @Tags parties
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param type query string true "Party type (CUSTOMER or SUPPLIER)"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} dto.PartyResponse
// @Security BearerAuth
// @Router /tenants/{tenantID}/parties [get]
func (h *partyHandler) listParties(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	partyType := domain.PartyType(strings.ToUpper(c.Query("type")))
	if partyType != domain.Customer && partyType != domain.Supplier {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be CUSTOMER or SUPPLIER"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	parties, err := h.partyService.ListParties(c.Request.Context(), c.Param("tenantID"), partyType, limit, offset, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list parties")
		return
	}
	c.JSON(http.StatusOK, dto.ToPartyResponses(parties))
}

// getPartyStatement godoc
// @Summary Get a party statement
// @Description Resolves the party's linked account and builds its statement; an unresolvable link yields an empty statement with an explanatory error field
// @Tags parties
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param partyID path string true "Party ID"
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} dto.StatementResponse
// @Failure 400 {object} map[string]string "Invalid range"
// @Failure 404 {object} map[string]string "Party not found"
// @Security BearerAuth
// @Router /tenants/{tenantID}/parties/{partyID}/statement [get]
func (h *partyHandler) getPartyStatement(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.StatementParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	statement, err := h.statementService.GetPartyStatement(c.Request.Context(), c.Param("tenantID"), c.Param("partyID"), params.From, params.To, userID)
	if err != nil {
		if errors.Is(err, services.ErrInvalidDateRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		respondServiceError(c, err, "Failed to build statement")
		return
	}
	c.JSON(http.StatusOK, dto.ToStatementResponse(statement))
}

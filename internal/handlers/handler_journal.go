package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/ledger_engine_app/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine_app/internal/core/services"
	"github.com/SscSPs/ledger_engine_app/internal/dto"
	"github.com/SscSPs/ledger_engine_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests related to journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

// RegisterJournalRoutes registers routes related to journal entries.
func RegisterJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := &journalHandler{journalService: journalService}

	entries := rg.Group("/entries")
	{
		entries.POST("", h.postEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:entryID", h.getEntry)
		entries.PATCH("/:entryID", h.updateEntry)
		entries.POST("/:entryID/reverse", h.reverseEntry)
	}
}

// isEntryValidationError matches the journal writer's input failures.
func isEntryValidationError(err error) bool {
	return errors.Is(err, services.ErrUnbalancedEntry) ||
		errors.Is(err, services.ErrEntryMinLines) ||
		errors.Is(err, services.ErrEntryMinAccounts) ||
		errors.Is(err, services.ErrCurrencyMismatch) ||
		errors.Is(err, services.ErrInactiveAccount)
}

// postEntry godoc
// @Summary Post a balanced journal entry
// @Description Validates and persists a journal entry with at least two balanced lines, atomically
// @Tags entries
// @Accept json
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param entry body dto.CreateJournalEntryRequest true "Entry with lines"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Unbalanced or invalid entry"
// @Failure 409 {object} map[string]string "Duplicate reference"
// @Security BearerAuth
// @Router /tenants/{tenantID}/entries [post]
func (h *journalHandler) postEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PostEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.journalService.PostEntry(c.Request.Context(), c.Param("tenantID"), req, userID)
	if err != nil {
		if isEntryValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to post entry", slog.String("error", err.Error()))
		respondServiceError(c, err, "Failed to post entry")
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// getEntry godoc
// @Summary Get a journal entry by ID
// @Tags entries
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param entryID path string true "Entry ID"
// @Param withLines query bool false "Include lines"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Security BearerAuth
// @Router /tenants/{tenantID}/entries/{entryID} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	withLines := c.DefaultQuery("withLines", "true") == "true"
	entry, err := h.journalService.GetEntryByID(c.Request.Context(), c.Param("tenantID"), c.Param("entryID"), userID, withLines)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Token-paginated entry listing, newest first
// @Tags entries
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param limit query int false "Page size"
// @Param nextToken query string false "Cursor from the previous page"
// @Param includeReversals query bool false "Include reversing entries"
// @Param includeLines query bool false "Include lines per entry"
// @Success 200 {object} dto.ListEntriesResponse
// @Security BearerAuth
// @Router /tenants/{tenantID}/entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.journalService.ListEntries(c.Request.Context(), c.Param("tenantID"), params, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list entries")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// updateEntry godoc
// @Summary Update a journal entry's header
// @Description Only date and description can change; lines and amounts are immutable
// @Tags entries
// @Accept json
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param entryID path string true "Entry ID"
// @Param entry body dto.UpdateJournalEntryRequest true "Header fields"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Security BearerAuth
// @Router /tenants/{tenantID}/entries/{entryID} [patch]
func (h *journalHandler) updateEntry(c *gin.Context) {
	var req dto.UpdateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.journalService.UpdateEntry(c.Request.Context(), c.Param("tenantID"), c.Param("entryID"), req, userID)
	if err != nil {
		if errors.Is(err, services.ErrAlreadyReversed) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		respondServiceError(c, err, "Failed to update entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// reverseEntry godoc
// @Summary Reverse a posted journal entry
// @Description Posts a mirror-image entry and links the pair; the original is never edited
// @Tags entries
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param entryID path string true "Entry ID"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Already reversed"
// @Security BearerAuth
// @Router /tenants/{tenantID}/entries/{entryID}/reverse [post]
func (h *journalHandler) reverseEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reversal, err := h.journalService.ReverseEntry(c.Request.Context(), c.Param("tenantID"), c.Param("entryID"), userID)
	if err != nil {
		if errors.Is(err, services.ErrAlreadyReversed) || errors.Is(err, services.ErrReversalOfReversal) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to reverse entry", slog.String("error", err.Error()))
		respondServiceError(c, err, "Failed to reverse entry")
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(reversal))
}

package api

import (
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	reqdto "happyhour-console/internal/handler/dto/request"
	resdto "happyhour-console/internal/handler/dto/response"
	"happyhour-console/internal/handler/httperr"
	"happyhour-console/internal/handler/middleware"
	"happyhour-console/internal/usecase/commands"
	"happyhour-console/internal/usecase/queries"
)

const menuURLExpiry = time.Hour

type BarHandler struct {
	cmds commands.BarCommands
	q    queries.BarQueries
}

func NewBarHandler(cmds commands.BarCommands, q queries.BarQueries) *BarHandler {
	return &BarHandler{cmds: cmds, q: q}
}

// @Summary List bars
// @Description List all bars with their happy hour counts
// @Tags bars
// @Produce json
// @Security BearerAuth
// @Success 200 {array} queries.BarListItem
// @Failure 401 {object} map[string]string
// @Router /bars [get]
func (h *BarHandler) List(c *gin.Context) {
	items, err := h.q.List(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list bars", nil)
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary Get bar
// @Description Get a bar's committed record by ID
// @Tags bars
// @Produce json
// @Security BearerAuth
// @Param id path string true "Bar ID"
// @Success 200 {object} bar.Bar
// @Failure 404 {object} map[string]string
// @Router /bars/{id} [get]
func (h *BarHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	b, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, queries.ErrBarNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Bar not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load bar", nil)
		return
	}
	c.JSON(http.StatusOK, b)
}

// @Summary Get edit state
// @Description Get the caller's edit state for a bar: the committed
// @Description record plus the working draft when one is open
// @Tags bars
// @Produce json
// @Security BearerAuth
// @Param id path string true "Bar ID"
// @Success 200 {object} queries.EditStateView
// @Failure 404 {object} map[string]string
// @Router /bars/{id}/edit [get]
func (h *BarHandler) GetEditState(c *gin.Context) {
	userID, barID, ok := h.identify(c)
	if !ok {
		return
	}
	view, err := h.q.GetEditState(c.Request.Context(), userID, barID)
	if err != nil {
		if errors.Is(err, queries.ErrBarNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Bar not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load edit state", nil)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Begin editing
// @Description Open an edit session on a bar, forking a draft from the
// @Description committed record. Re-entering keeps the existing draft.
// @Tags bars
// @Produce json
// @Security BearerAuth
// @Param id path string true "Bar ID"
// @Success 200 {object} bar.Bar
// @Failure 404 {object} map[string]string
// @Router /bars/{id}/edit [post]
func (h *BarHandler) BeginEdit(c *gin.Context) {
	userID, barID, ok := h.identify(c)
	if !ok {
		return
	}
	draft, err := h.cmds.BeginEdit(c.Request.Context(), userID, barID)
	if err != nil {
		h.renderEditError(c, err, "Failed to begin editing")
		return
	}
	c.JSON(http.StatusOK, draft)
}

// @Summary Update draft
// @Description Patch the working draft. Absent fields are untouched; a
// @Description present happyHours list replaces the draft's entries.
// @Tags bars
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Bar ID"
// @Param request body reqdto.UpdateBarDraftRequest true "Draft patch"
// @Success 200 {object} bar.Bar
// @Failure 409 {object} map[string]string
// @Router /bars/{id}/draft [patch]
func (h *BarHandler) UpdateDraft(c *gin.Context) {
	userID, barID, ok := h.identify(c)
	if !ok {
		return
	}
	var req reqdto.UpdateBarDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	draft, err := h.cmds.UpdateDraft(c.Request.Context(), userID, barID, req)
	if err != nil {
		h.renderEditError(c, err, "Failed to update draft")
		return
	}
	c.JSON(http.StatusOK, draft)
}

// @Summary Add happy hour entry
// @Description Append a blank happy hour entry to the working draft
// @Tags bars
// @Produce json
// @Security BearerAuth
// @Param id path string true "Bar ID"
// @Success 200 {object} bar.Bar
// @Failure 409 {object} map[string]string
// @Router /bars/{id}/draft/entries [post]
func (h *BarHandler) AddEntry(c *gin.Context) {
	userID, barID, ok := h.identify(c)
	if !ok {
		return
	}
	draft, err := h.cmds.AddEntry(c.Request.Context(), userID, barID)
	if err != nil {
		h.renderEditError(c, err, "Failed to add entry")
		return
	}
	c.JSON(http.StatusOK, draft)
}

// @Summary Save draft
// @Description Persist the working draft as the committed record. Any
// @Description staged menu PDF is uploaded for each entry first.
// @Tags bars
// @Produce json
// @Security BearerAuth
// @Param id path string true "Bar ID"
// @Success 200 {object} bar.Bar
// @Failure 409 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /bars/{id}/save [post]
func (h *BarHandler) Save(c *gin.Context) {
	userID, barID, ok := h.identify(c)
	if !ok {
		return
	}
	committed, err := h.cmds.Save(c.Request.Context(), userID, barID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrNoActiveEdit):
			httperr.AbortWithError(c, http.StatusConflict, err, "No edit in progress", nil)
		case errors.Is(err, commands.ErrMenuUpload):
			httperr.AbortWithError(c, http.StatusBadGateway, err, "Menu upload failed, draft preserved", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to save, draft preserved", nil)
		}
		return
	}
	c.JSON(http.StatusOK, committed)
}

// @Summary Cancel editing
// @Description Discard the working draft and any staged upload
// @Tags bars
// @Security BearerAuth
// @Param id path string true "Bar ID"
// @Success 204 "No Content"
// @Router /bars/{id}/cancel [post]
func (h *BarHandler) Cancel(c *gin.Context) {
	userID, barID, ok := h.identify(c)
	if !ok {
		return
	}
	if err := h.cmds.Cancel(c.Request.Context(), userID, barID); err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to cancel", nil)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Get menu download URL
// @Description Get a time-limited download URL for an entry's menu PDF
// @Tags bars
// @Produce json
// @Security BearerAuth
// @Param id path string true "Bar ID"
// @Param entryId path string true "Happy hour entry ID"
// @Success 200 {object} resdto.MenuURLResponse
// @Failure 404 {object} map[string]string
// @Router /bars/{id}/entries/{entryId}/menu-url [get]
func (h *BarHandler) MenuURL(c *gin.Context) {
	entryID, err := uuid.Parse(c.Param("entryId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid entry id", nil)
		return
	}
	url, err := h.q.MenuDownloadURL(c.Request.Context(), entryID, menuURLExpiry)
	if err != nil {
		if errors.Is(err, queries.ErrMenuNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Menu not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to resolve menu", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.MenuURLResponse{URL: url})
}

func (h *BarHandler) identify(c *gin.Context) (userID, barID uuid.UUID, ok bool) {
	userID, found := middleware.GetUserID(c)
	if !found {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "Unauthorized", nil)
		return uuid.Nil, uuid.Nil, false
	}
	barID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return uuid.Nil, uuid.Nil, false
	}
	return userID, barID, true
}

func (h *BarHandler) renderEditError(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, commands.ErrBarNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Bar not found", nil)
	case errors.Is(err, commands.ErrNoActiveEdit):
		httperr.AbortWithError(c, http.StatusConflict, err, "No edit in progress", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, msg, nil)
	}
}

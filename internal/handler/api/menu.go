package api

import (
	"io"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	resdto "happyhour-console/internal/handler/dto/response"
	"happyhour-console/internal/handler/httperr"
	"happyhour-console/internal/handler/middleware"
	"happyhour-console/internal/usecase/commands"
)

// 20MB ought to be enough for a scanned menu.
const maxMenuUploadBytes = 20 << 20

type MenuHandler struct {
	cmds commands.MenuCommands
}

func NewMenuHandler(cmds commands.MenuCommands) *MenuHandler {
	return &MenuHandler{cmds: cmds}
}

// @Summary Analyze menu PDF
// @Description Upload a menu PDF, run it through the analysis service
// @Description and merge every extracted happy hour into the bar's draft
// @Tags bars
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Bar ID"
// @Param file formData file true "Menu PDF"
// @Success 200 {object} resdto.AnalyzeResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /bars/{id}/menu [post]
func (h *MenuHandler) Analyze(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "Unauthorized", nil)
		return
	}
	barID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Menu file required", nil)
		return
	}
	if fileHeader.Size > maxMenuUploadBytes {
		httperr.AbortWithError(c, http.StatusRequestEntityTooLarge, errors.New("file too large"), "Menu file too large", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Failed to read menu file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxMenuUploadBytes))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Failed to read menu file", nil)
		return
	}

	outcome, err := h.cmds.Analyze(c.Request.Context(), userID, barID, fileHeader.Filename, data)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrBarNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Bar not found", nil)
		case errors.Is(err, commands.ErrAnalysisFailed):
			httperr.AbortWithError(c, http.StatusBadGateway, err, "Menu analysis failed", nil)
		case errors.Is(err, commands.ErrMenuUpload):
			httperr.AbortWithError(c, http.StatusBadGateway, err, "Menu upload failed", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to analyze menu", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.AnalyzeResponse{
		EntriesAdded: outcome.EntriesAdded,
		State:        string(outcome.State),
		Draft:        outcome.Draft,
	})
}

package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"happyhour-console/internal/usecase/queries"
)

type PDFHandler struct {
	q queries.MenuQueries
}

func NewPDFHandler(q queries.MenuQueries) *PDFHandler {
	return &PDFHandler{q: q}
}

// @Summary Serve menu PDF
// @Description Stream a happy hour entry's menu PDF by entry ID
// @Tags pdf
// @Produce application/pdf
// @Param id path string true "Happy hour entry ID"
// @Success 200 {file} binary
// @Failure 404 {string} string "PDF not found"
// @Router /pdf/{id} [get]
func (h *PDFHandler) Get(c *gin.Context) {
	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.String(http.StatusNotFound, "PDF not found")
		return
	}

	// Any failure to resolve or fetch looks the same to the caller.
	data, err := h.q.OpenByEntryID(c.Request.Context(), entryID)
	if err != nil {
		c.String(http.StatusNotFound, "PDF not found")
		return
	}

	c.Header("Cache-Control", "public, max-age=3600")
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", entryID.String()+".pdf"))
	c.Data(http.StatusOK, "application/pdf", data)
}

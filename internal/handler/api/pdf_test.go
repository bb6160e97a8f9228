//go:build unit

package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"happyhour-console/internal/handler/api"
	"happyhour-console/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type stubMenuQueries struct {
	pdfs map[uuid.UUID][]byte
	err  error
}

func (q *stubMenuQueries) OpenByEntryID(_ context.Context, entryID uuid.UUID) ([]byte, error) {
	if q.err != nil {
		return nil, q.err
	}
	data, ok := q.pdfs[entryID]
	if !ok {
		return nil, queries.ErrMenuNotFound
	}
	return data, nil
}

type PDFHandlerSuite struct {
	suite.Suite
	router  *gin.Engine
	queries *stubMenuQueries
	entryID uuid.UUID
}

func TestPDFHandlerSuite(t *testing.T) {
	suite.Run(t, new(PDFHandlerSuite))
}

func (s *PDFHandlerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	s.entryID = uuid.New()
	s.queries = &stubMenuQueries{
		pdfs: map[uuid.UUID][]byte{s.entryID: []byte("%PDF-1.4 menu bytes")},
	}

	handler := api.NewPDFHandler(s.queries)
	s.router = gin.New()
	s.router.GET("/pdf/:id", handler.Get)
}

func (s *PDFHandlerSuite) get(path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	s.router.ServeHTTP(w, req)
	return w
}

func (s *PDFHandlerSuite) TestServesStoredPDF() {
	w := s.get("/pdf/" + s.entryID.String())

	s.Equal(http.StatusOK, w.Code)
	s.Equal("application/pdf", w.Header().Get("Content-Type"))
	s.Equal("public, max-age=3600", w.Header().Get("Cache-Control"))
	s.Contains(w.Header().Get("Content-Disposition"), s.entryID.String()+".pdf")
	s.Equal("%PDF-1.4 menu bytes", w.Body.String())
}

func (s *PDFHandlerSuite) TestUnknownEntryIs404Text() {
	w := s.get("/pdf/" + uuid.NewString())

	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("PDF not found", w.Body.String())
}

func (s *PDFHandlerSuite) TestMalformedIDIs404Text() {
	w := s.get("/pdf/not-a-uuid")

	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("PDF not found", w.Body.String())
}

func (s *PDFHandlerSuite) TestStoreFailureIs404Text() {
	s.queries.err = context.DeadlineExceeded

	w := s.get("/pdf/" + s.entryID.String())

	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("PDF not found", w.Body.String())
}

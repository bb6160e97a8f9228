package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"happyhour-console/internal/domain/user"
	"happyhour-console/internal/handler/api"
	"happyhour-console/internal/handler/middleware"
	"happyhour-console/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	barHandler *api.BarHandler,
	menuHandler *api.MenuHandler,
	pdfHandler *api.PDFHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, authHandler, barHandler, menuHandler, pdfHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	authHandler *api.AuthHandler,
	barHandler *api.BarHandler,
	menuHandler *api.MenuHandler,
	pdfHandler *api.PDFHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	// Menu PDFs are public and link-shared; the download route lives
	// outside /api on purpose.
	engine.GET("/pdf/:id", pdfHandler.Get)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
				{Method: http.MethodPost, Path: "/verify", Handler: authHandler.Verify},
				{Method: http.MethodPost, Path: "/refresh", Handler: authHandler.Refresh},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: authHandler.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: authHandler.Me},
			})
		}

		bars := apiGroup.Group("/bars")
		bars.Use(authMiddleware.RequireAuth())
		{
			addRoutes(bars, []route{
				{Method: http.MethodGet, Path: "", Handler: barHandler.List},
				{Method: http.MethodGet, Path: "/:id", Handler: barHandler.Get},
				{Method: http.MethodGet, Path: "/:id/edit", Handler: barHandler.GetEditState},
				{Method: http.MethodGet, Path: "/:id/entries/:entryId/menu-url", Handler: barHandler.MenuURL},
			})

			editors := bars.Group("")
			editors.Use(authMiddleware.RequireRoleAtLeast(user.RoleEditor))
			addRoutes(editors, []route{
				{Method: http.MethodPost, Path: "/:id/edit", Handler: barHandler.BeginEdit},
				{Method: http.MethodPatch, Path: "/:id/draft", Handler: barHandler.UpdateDraft},
				{Method: http.MethodPost, Path: "/:id/draft/entries", Handler: barHandler.AddEntry},
				{Method: http.MethodPost, Path: "/:id/menu", Handler: menuHandler.Analyze},
				{Method: http.MethodPost, Path: "/:id/save", Handler: barHandler.Save},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: barHandler.Cancel},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}

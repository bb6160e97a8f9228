package api

import (
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	reqdto "happyhour-console/internal/handler/dto/request"
	resdto "happyhour-console/internal/handler/dto/response"
	"happyhour-console/internal/handler/middleware"
	"happyhour-console/internal/pkg/config"
	"happyhour-console/internal/pkg/cookie"
	"happyhour-console/internal/usecase/commands"
	"happyhour-console/internal/usecase/queries"
)

type AuthHandler struct {
	auth       commands.AuthCommands
	users      queries.UserQueries
	cookieCfg  config.CookieConfig
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewAuthHandler(auth commands.AuthCommands, users queries.UserQueries, cfg config.Config) *AuthHandler {
	accessTTL, err := time.ParseDuration(cfg.JWT.AccessTokenDuration)
	if err != nil {
		accessTTL = 15 * time.Minute
	}
	refreshTTL, err := time.ParseDuration(cfg.JWT.RefreshTokenDuration)
	if err != nil {
		refreshTTL = 168 * time.Hour
	}

	return &AuthHandler{
		auth:       auth,
		users:      users,
		cookieCfg:  cfg.Cookie,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// @Summary User login
// @Description Login with email and password. Accounts with a verified
// @Description phone get a pending token and must call /auth/verify.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		h.renderLoginError(c, err)
		return
	}

	if result.MFARequired {
		c.JSON(http.StatusOK, resdto.LoginResponse{
			MFARequired:  true,
			PendingToken: result.PendingToken,
		})
		return
	}

	h.completeLogin(c, result)
}

// @Summary Verify login code
// @Description Complete a login challenge with the emailed 6-digit code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.VerifyCodeRequest true "Verification request"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/verify [post]
func (h *AuthHandler) Verify(c *gin.Context) {
	var req reqdto.VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.auth.VerifyCode(c.Request.Context(), req.PendingToken, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrCodeRejected):
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired verification code",
			})
		case errors.Is(err, commands.ErrTokenValidation):
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired login session",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	h.completeLogin(c, result)
}

// @Summary Refresh tokens
// @Description Exchange a refresh token for a new token pair
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} resdto.LoginResponse
// @Failure 401 {object} map[string]string
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken := cookie.GetRefreshToken(c)
	if refreshToken == "" {
		var req reqdto.RefreshRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			refreshToken = req.RefreshToken
		}
	}
	if refreshToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Refresh token required",
		})
		return
	}

	pair, err := h.auth.RefreshToken(c.Request.Context(), refreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Invalid or expired refresh token",
		})
		return
	}

	cookie.SetTokenCookies(c, h.cookieCfg, pair.AccessToken, pair.RefreshToken, h.accessTTL, h.refreshTTL)
	c.JSON(http.StatusOK, resdto.LoginResponse{AccessToken: pair.AccessToken})
}

// @Summary User logout
// @Description Logout current user session
// @Tags auth
// @Security BearerAuth
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	cookie.ClearTokenCookies(c, h.cookieCfg)
	c.Status(http.StatusNoContent)
}

// @Summary Get current user
// @Description Get current authenticated user information
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} queries.AuthorizedUserView
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	view, err := h.users.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "User not found",
			})
		case errors.Is(err, queries.ErrUserInactive):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Account is inactive",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *AuthHandler) completeLogin(c *gin.Context, result *commands.LoginResult) {
	view, err := h.users.GetCurrentUser(c.Request.Context(), result.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	cookie.SetTokenCookies(c, h.cookieCfg, result.TokenPair.AccessToken, result.TokenPair.RefreshToken, h.accessTTL, h.refreshTTL)

	c.JSON(http.StatusOK, resdto.LoginResponse{
		AccessToken: result.TokenPair.AccessToken,
		User:        view,
	})
}

func (h *AuthHandler) renderLoginError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrInvalidCredentials), errors.Is(err, commands.ErrUserNotFound):
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Invalid email or password",
		})
	case errors.Is(err, commands.ErrUserInactive):
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Account is inactive",
		})
	case errors.Is(err, commands.ErrChallengeDelivery):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Could not deliver verification code",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/emra/admin-console/internal/app/model"
	"github.com/emra/admin-console/internal/app/service"
	apperrors "github.com/emra/admin-console/internal/errors"
	"github.com/emra/admin-console/internal/middleware"
	"github.com/gin-gonic/gin"
)

// SessionManager creates and ends console sessions
type SessionManager interface {
	Create(ctx context.Context, token string) (string, time.Duration, error)
	Destroy(ctx context.Context, id string) error
}

// CookieConfig describes the session cookie
type CookieConfig struct {
	Name   string
	Secure bool
}

type AuthController struct {
	authService service.AuthService
	sessions    SessionManager
	cookie      CookieConfig
}

func NewAuthController(authService service.AuthService, sessions SessionManager, cookie CookieConfig) *AuthController {
	return &AuthController{
		authService: authService,
		sessions:    sessions,
		cookie:      cookie,
	}
}

// LoginPage tells the front end to render the login form
// GET /login
func (ctrl *AuthController) LoginPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"authenticated": false,
	})
}

// Login exchanges credentials for a console session cookie
// POST /login
func (ctrl *AuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var creds model.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		log.Warn("Invalid login request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.RespondWithAPIError(c, service.ErrInvalidCredentials, apperrors.ActionLoad)
		return
	}

	result, err := ctrl.authService.Login(c.Request.Context(), creds)
	if err != nil {
		apperrors.RespondWithAPIError(c, err, apperrors.ActionLoad)
		return
	}

	sessionID, ttl, err := ctrl.sessions.Create(c.Request.Context(), result.Token)
	if err != nil {
		log.Warn("Failed to open session", map[string]interface{}{
			"username": creds.Username,
			"error":    err.Error(),
		})
		apperrors.RespondWithAPIError(c, service.ErrInvalidCredentials, apperrors.ActionLoad)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(ctrl.cookie.Name, sessionID, int(ttl.Seconds()), "/", "", ctrl.cookie.Secure, true)

	log.Info("Operator logged in", map[string]interface{}{
		"session_id": sessionID,
		"ttl":        ttl.String(),
	})

	c.JSON(http.StatusOK, gin.H{
		"message":  "Вход выполнен",
		"admin":    result.Admin,
		"redirect": "/",
	})
}

// Logout ends the session and returns to the login page
// POST /logout
func (ctrl *AuthController) Logout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	if sessionID, err := c.Cookie(ctrl.cookie.Name); err == nil && sessionID != "" {
		if err := ctrl.sessions.Destroy(c.Request.Context(), sessionID); err != nil {
			log.Error("Failed to destroy session", err, map[string]interface{}{
				"session_id": sessionID,
			})
		} else {
			log.Info("Operator logged out", map[string]interface{}{
				"session_id": sessionID,
			})
		}
	}

	c.Set(apperrors.SessionCookieKey, ctrl.cookie.Name)
	apperrors.RedirectToLogin(c)
}

// Me returns the logged in operator
// GET /me
func (ctrl *AuthController) Me(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	admin, err := ctrl.authService.Me(c.Request.Context(), currentSession(c))
	if err != nil {
		respondError(c, log, err, apperrors.ActionLoad, "Failed to fetch operator", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"admin": admin,
	})
}

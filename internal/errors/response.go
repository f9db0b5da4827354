package errors

import (
	"errors"
	"net/http"

	"github.com/emra/admin-console/pkg/adminapi"
	"github.com/gin-gonic/gin"
)

const (
	// LoginPath is where an unauthenticated operator is sent
	LoginPath = "/login"

	// SessionCookieKey is the gin context key holding the session cookie name
	SessionCookieKey = "session_cookie_name"

	defaultSessionCookie = "admin_session"
)

// ErrorResponse is the standard error body
type ErrorResponse struct {
	Error   string `json:"error"`           // error code (codes.go)
	Message string `json:"message"`         // operator facing message, Russian
	Field   string `json:"field,omitempty"` // offending form field, if any
}

// RespondWithError writes an error body
func RespondWithError(c *gin.Context, statusCode int, errorCode string, message string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   errorCode,
		Message: message,
	})
}

// RespondWithAPIError renders err for action. A 401 from the admin API ends the
// console session: the cookie is cleared and the operator is redirected to login.
func RespondWithAPIError(c *gin.Context, err error, action Action) {
	if errors.Is(err, adminapi.ErrUnauthorized) {
		RedirectToLogin(c)
		return
	}

	info := ParseError(err, action)
	if info.Status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(info.Status, ErrorResponse{
		Error:   info.Code,
		Message: info.Message,
		Field:   info.Field,
	})
}

// RedirectToLogin clears the session cookie and sends a 303 to the login page
func RedirectToLogin(c *gin.Context) {
	ClearSessionCookie(c)
	c.Redirect(http.StatusSeeOther, LoginPath)
	c.Abort()
}

// ClearSessionCookie expires the console session cookie
func ClearSessionCookie(c *gin.Context) {
	name := c.GetString(SessionCookieKey)
	if name == "" {
		name = defaultSessionCookie
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, "", -1, "/", "", false, true)
}

// Frequently used shortcuts

func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Требуется вход"
	}
	RespondWithError(c, http.StatusUnauthorized, AuthUnauthorized, message)
}

func BadRequest(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusBadRequest, errorCode, message)
}

func NotFound(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusNotFound, errorCode, message)
}

func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Ошибка"
	}
	RespondWithError(c, http.StatusInternalServerError, InternalServerError, message)
}

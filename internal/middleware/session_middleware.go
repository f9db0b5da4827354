package middleware

import (
	"context"
	"errors"
	"net/http"

	apperrors "github.com/emra/admin-console/internal/errors"
	"github.com/emra/admin-console/internal/session"
	"github.com/emra/admin-console/pkg/adminapi"
	"github.com/gin-gonic/gin"
)

const SessionKey = "admin_session"

// SessionResolver turns a cookie value into an API session
type SessionResolver interface {
	Resolve(ctx context.Context, id string) (*adminapi.Session, error)
}

type SessionMiddleware struct {
	sessions   SessionResolver
	cookieName string
}

func NewSessionMiddleware(sessions SessionResolver, cookieName string) *SessionMiddleware {
	return &SessionMiddleware{
		sessions:   sessions,
		cookieName: cookieName,
	}
}

// CookieName is the name of the session cookie
func (m *SessionMiddleware) CookieName() string {
	return m.cookieName
}

func (m *SessionMiddleware) resolve(c *gin.Context) (*adminapi.Session, error) {
	c.Set(apperrors.SessionCookieKey, m.cookieName)

	id, err := c.Cookie(m.cookieName)
	if err != nil || id == "" {
		return nil, session.ErrNotFound
	}
	return m.sessions.Resolve(c.Request.Context(), id)
}

// RequireSession lets the request through only with a live session; otherwise
// the operator is redirected to the login page.
func (m *SessionMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		sess, err := m.resolve(c)
		if err != nil {
			if !errors.Is(err, session.ErrNotFound) {
				log.Error("Failed to resolve session", err)
			} else {
				log.Debug("No live session, redirecting to login", map[string]interface{}{
					"path": c.Request.URL.Path,
				})
			}
			apperrors.RedirectToLogin(c)
			return
		}

		c.Set(SessionKey, sess)
		c.Next()
	}
}

// RedirectIfAuthenticated sends an operator who is already logged in away from
// the login page.
func (m *SessionMiddleware) RedirectIfAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if sess, err := m.resolve(c); err == nil && sess.Authenticated() {
			c.Redirect(http.StatusSeeOther, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetSession extracts the API session placed by RequireSession
func GetSession(c *gin.Context) (*adminapi.Session, bool) {
	v, exists := c.Get(SessionKey)
	if !exists {
		return nil, false
	}
	sess, ok := v.(*adminapi.Session)
	return sess, ok
}

package controller

import (
	"strconv"

	apperrors "github.com/emra/admin-console/internal/errors"
	"github.com/emra/admin-console/internal/middleware"
	"github.com/emra/admin-console/pkg/adminapi"
	"github.com/emra/admin-console/pkg/logger"
	"github.com/gin-gonic/gin"
)

// currentSession returns the session placed by the session gate. Routes outside
// the gate get an anonymous session, which the API client sends without a token.
func currentSession(c *gin.Context) *adminapi.Session {
	if sess, ok := middleware.GetSession(c); ok {
		return sess
	}
	return adminapi.Anonymous()
}

// isConfirmed reports whether the operator confirmed a destructive action (?confirm=true)
func isConfirmed(c *gin.Context) bool {
	v, err := strconv.ParseBool(c.Query("confirm"))
	return err == nil && v
}

// respondError logs err at a level matching how it is rendered and writes the response
func respondError(c *gin.Context, log *logger.Logger, err error, action apperrors.Action, msg string, fields map[string]interface{}) {
	info := apperrors.ParseError(err, action)
	if info.Status >= 500 {
		log.Error(msg, err, fields)
	} else {
		if fields == nil {
			fields = map[string]interface{}{}
		}
		fields["error"] = err.Error()
		log.Warn(msg, fields)
	}
	apperrors.RespondWithAPIError(c, err, action)
}

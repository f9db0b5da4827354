package controller

import (
	"net/http"

	"github.com/emra/admin-console/internal/app/model"
	"github.com/emra/admin-console/internal/app/service"
	apperrors "github.com/emra/admin-console/internal/errors"
	"github.com/emra/admin-console/internal/middleware"
	"github.com/gin-gonic/gin"
)

type SettingsController struct {
	settingsService service.SettingsService
}

func NewSettingsController(settingsService service.SettingsService) *SettingsController {
	return &SettingsController{
		settingsService: settingsService,
	}
}

// GetSettings returns the shop settings document
// GET /settings
func (ctrl *SettingsController) GetSettings(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	settings, err := ctrl.settingsService.Get(c.Request.Context(), currentSession(c))
	if err != nil {
		respondError(c, log, err, apperrors.ActionLoad, "Failed to fetch settings", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"settings": settings,
	})
}

// UpdateSettings stores the shop settings document
// PUT /settings
func (ctrl *SettingsController) UpdateSettings(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var settings model.Settings
	if err := c.ShouldBindJSON(&settings); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Некорректные данные формы")
		return
	}

	saved, err := ctrl.settingsService.Update(c.Request.Context(), currentSession(c), settings)
	if err != nil {
		respondError(c, log, err, apperrors.ActionSave, "Failed to update settings", nil)
		return
	}

	log.Info("Settings updated", map[string]interface{}{
		"keys": len(saved),
	})
	c.JSON(http.StatusOK, gin.H{
		"message":  "Настройки сохранены",
		"settings": saved,
	})
}

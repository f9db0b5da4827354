package controller

import (
	"net/http"

	"github.com/emra/admin-console/internal/app/model"
	"github.com/emra/admin-console/internal/app/service"
	apperrors "github.com/emra/admin-console/internal/errors"
	"github.com/emra/admin-console/internal/middleware"
	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	dashboardService service.DashboardService
}

func NewDashboardController(dashboardService service.DashboardService) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
	}
}

// GetStats returns the dashboard figures
// GET /
func (ctrl *DashboardController) GetStats(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	stats, err := ctrl.dashboardService.Stats(c.Request.Context(), currentSession(c))
	if err != nil {
		respondError(c, log, err, apperrors.ActionLoad, "Failed to fetch dashboard stats", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":        stats,
		"revenueLabel": model.FormatMoney(stats.TotalRevenue),
	})
}

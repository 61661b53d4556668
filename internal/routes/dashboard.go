package routes

import (
	"chainsaw-registry/internal/controllers"
	"chainsaw-registry/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runDashboardRouter(secureGroup *echo.Group, dashboardService services.DashboardServiceInterface, logger *zap.Logger) {
	dashboardCtrl := controllers.NewDashboardController(dashboardService, logger)

	secureGroup.GET("/dashboard/stats", dashboardCtrl.GetDashboardStats)
}

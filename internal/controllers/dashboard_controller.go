package controllers

import (
	"net/http"

	"chainsaw-registry/internal/services"
	apperrors "chainsaw-registry/pkg/errors"
	"chainsaw-registry/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type DashboardController struct {
	dashboardService services.DashboardServiceInterface
	logger           *zap.Logger
}

func NewDashboardController(ds services.DashboardServiceInterface, logger *zap.Logger) *DashboardController {
	return &DashboardController{
		dashboardService: ds,
		logger:           logger,
	}
}

func (ctrl *DashboardController) GetDashboardStats(c echo.Context) error {
	stats, err := ctrl.dashboardService.GetStats(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c,
			apperrors.NewHttpError(http.StatusInternalServerError, "Failed to fetch dashboard statistics", err, nil),
			ctrl.logger,
		)
	}
	return utils.SuccessResponse(c, stats, "Dashboard statistics retrieved successfully", http.StatusOK)
}

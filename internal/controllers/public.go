package controllers

import (
	"net/http"

	"chainsaw-registry/internal/dto"
	"chainsaw-registry/internal/services"
	"chainsaw-registry/pkg/api"
	apperrors "chainsaw-registry/pkg/errors"
	"chainsaw-registry/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// PublicController serves the unauthenticated registration form and the QR
// landing page.
type PublicController struct {
	equipmentService services.EquipmentServiceInterface
	logger           *zap.Logger
}

func NewPublicController(equipmentService services.EquipmentServiceInterface, logger *zap.Logger) *PublicController {
	return &PublicController{equipmentService: equipmentService, logger: logger}
}

func (c *PublicController) Register(ctx echo.Context) error {
	var payload dto.CreateEquipmentDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Warn("Register: failed to bind payload", zap.Error(err))
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError(msgBadPayload), c.logger)
	}

	res := c.equipmentService.Register(ctx.Request().Context(), payload)
	if res.OK() {
		c.logger.Info("Register: public registration stored", zap.String("id", res.Equipment.ID), zap.String("ip", ctx.RealIP()))
	}
	return actionResponse(ctx, res, http.StatusCreated, c.logger)
}

func (c *PublicController) FindEquipment(ctx echo.Context) error {
	id := ctx.Param("id")

	res, err := c.equipmentService.FindEquipment(ctx.Request().Context(), id)
	if err != nil {
		return findErrorResponse(ctx, id, err, c.logger)
	}

	return api.SuccessOne(ctx, http.StatusOK, msgFound, dto.NewPublicEquipmentDTO(*res))
}

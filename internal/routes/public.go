package routes

import (
	"context"

	"chainsaw-registry/internal/controllers"
	"chainsaw-registry/internal/services"
	"chainsaw-registry/pkg/config"
	"chainsaw-registry/pkg/filestorage"
	"chainsaw-registry/pkg/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Public uploads get a larger burst since one registration carries several
// documents.
const (
	publicUploadRPS   = 1
	publicUploadBurst = 20
)

func runPublicRouter(
	ctx context.Context,
	api *echo.Group,
	equipmentService services.EquipmentServiceInterface,
	fileStorage filestorage.FileStorageInterface,
	logger *zap.Logger,
	cfg *config.Config,
) {
	registrationLimiter := middleware.NewRateLimiter(cfg.Registration.RateLimitRPS, cfg.Registration.RateLimitBurst)
	uploadLimiter := middleware.NewRateLimiter(publicUploadRPS, publicUploadBurst)
	go registrationLimiter.Cleanup(ctx, limiterCleanupEvery)
	go uploadLimiter.Cleanup(ctx, limiterCleanupEvery)

	publicCtrl := controllers.NewPublicController(equipmentService, logger)
	uploadCtrl := controllers.NewUploadController(fileStorage, logger)

	public := api.Group("/public")
	{
		public.POST("/registrations", publicCtrl.Register, middleware.RateLimit(registrationLimiter, logger))
		public.POST("/uploads/:context", uploadCtrl.Upload, middleware.RateLimit(uploadLimiter, logger))
		public.GET("/equipments/:id", publicCtrl.FindEquipment)
	}
}

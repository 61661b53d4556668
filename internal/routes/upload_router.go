package routes

import (
	"chainsaw-registry/internal/controllers"
	"chainsaw-registry/pkg/filestorage"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runUploadRouter(
	group *echo.Group,
	fileStorage filestorage.FileStorageInterface,
	logger *zap.Logger,
) {
	uploadController := controllers.NewUploadController(fileStorage, logger)

	group.POST("/uploads/:context", uploadController.Upload)
}

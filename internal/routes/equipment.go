package routes

import (
	"chainsaw-registry/internal/controllers"
	"chainsaw-registry/internal/repositories"
	"chainsaw-registry/internal/services"
	"chainsaw-registry/pkg/config"
	"chainsaw-registry/pkg/qrcode"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runEquipmentRouter(
	secureGroup *echo.Group,
	equipmentService services.EquipmentServiceInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	logger *zap.Logger,
	cfg *config.Config,
) {
	generator, err := qrcode.NewGenerator(qrcode.Options{
		DefaultSize: cfg.QR.DefaultSize,
		Foreground:  cfg.QR.ForegroundColor,
		Background:  cfg.QR.BackgroundColor,
		LogoPath:    cfg.QR.LogoPath,
	})
	if err != nil {
		logger.Fatal("failed to create QR generator", zap.Error(err))
	}

	importService := services.NewEquipImportService(equipmentService, logger)
	exportService := services.NewEquipmentExportService(equipmentRepo, logger)
	qrService := services.NewQRService(equipmentRepo, generator, cfg.Server.PublicBaseURL, logger)
	equipmentCtrl := controllers.NewEquipmentController(equipmentService, importService, exportService, qrService, logger)

	equipments := secureGroup.Group("/equipments")
	{
		equipments.GET("", equipmentCtrl.GetEquipments)
		equipments.POST("", equipmentCtrl.CreateEquipment)
		equipments.GET("/export", equipmentCtrl.Export)
		equipments.POST("/bulk-import", equipmentCtrl.BulkImport)
		equipments.POST("/import", equipmentCtrl.ImportWorkbook)
		equipments.POST("/bulk-delete", equipmentCtrl.BulkDelete)
		equipments.POST("/qr/print", equipmentCtrl.PrintQRCodes)
		equipments.GET("/:id", equipmentCtrl.FindEquipment)
		equipments.PUT("/:id", equipmentCtrl.UpdateEquipment)
		equipments.DELETE("/:id", equipmentCtrl.DeleteEquipment)
		equipments.GET("/:id/qr", equipmentCtrl.QRCode)
	}
}

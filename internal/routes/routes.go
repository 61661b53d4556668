package routes

import (
	"context"
	"time"

	"chainsaw-registry/internal/repositories"
	"chainsaw-registry/internal/services"
	"chainsaw-registry/pkg/config"
	"chainsaw-registry/pkg/filestorage"
	"chainsaw-registry/pkg/middleware"
	"chainsaw-registry/pkg/service"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const limiterCleanupEvery = time.Minute

type Loggers struct {
	Main      *zap.Logger
	Auth      *zap.Logger
	Equipment *zap.Logger
}

// InitRouter wires repositories, services and controllers and mounts every
// route under /api. Background work started here stops when ctx ends.
func InitRouter(
	ctx context.Context,
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	redisClient *redis.Client,
	jwtSvc service.JWTService,
	loggers *Loggers,
	cfg *config.Config,
) {
	loggers.Main.Info("InitRouter: building routes")

	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, loggers.Auth)
	fileStorage, err := filestorage.NewLocalFileStorage(cfg.Upload.BasePath)
	if err != nil {
		loggers.Main.Fatal("failed to create file storage", zap.Error(err))
	}
	txManager := repositories.NewTxManager(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	equipmentRepo := repositories.NewEquipmentRepository(dbConn, txManager)
	dashboardRepo := repositories.NewDashboardRepository(dbConn, loggers.Main)

	equipmentCache := services.NewEquipmentCache(cacheRepo, cfg.Redis.CacheTTL, loggers.Equipment)
	equipmentService := services.NewEquipmentService(
		equipmentRepo,
		equipmentCache,
		e.Validator,
		cfg.Registration.RequireConsent,
		loggers.Equipment,
	)
	dashboardService := services.NewDashboardService(dashboardRepo, equipmentRepo, loggers.Main)

	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, dbConn, cacheRepo, jwtSvc, loggers.Auth, authMW, cfg)
	runPublicRouter(ctx, api, equipmentService, fileStorage, loggers.Main, cfg)
	runEquipmentRouter(secureGroup, equipmentService, equipmentRepo, loggers.Equipment, cfg)
	runDashboardRouter(secureGroup, dashboardService, loggers.Main)
	runUploadRouter(secureGroup, fileStorage, loggers.Main)

	loggers.Main.Info("InitRouter: routes ready")
}

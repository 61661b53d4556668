package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"chainsaw-registry/internal/routes"
	"chainsaw-registry/pkg/config"
	"chainsaw-registry/pkg/database/postgresql"
	apperrors "chainsaw-registry/pkg/errors"
	applogger "chainsaw-registry/pkg/logger"
	appmiddleware "chainsaw-registry/pkg/middleware"
	"chainsaw-registry/pkg/service"
	"chainsaw-registry/pkg/utils"
	"chainsaw-registry/pkg/validation"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg := config.New()
	logger := applogger.NewLogger(cfg.Log.Level, cfg.Log.File)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e := echo.New()
	e.HideBanner = true
	e.Validator = validation.New()

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("panic recovered",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Something went wrong!", err, nil)
				_ = utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, echo.HeaderXRequestID},
		AllowCredentials: true,
		ExposeHeaders:    []string{echo.HeaderContentDisposition, echo.HeaderXRequestID},
	}))
	e.Use(appmiddleware.InjectLogger(logger))
	e.Use(appmiddleware.RequestLogger(logger))

	absPath, err := filepath.Abs(cfg.Upload.BasePath)
	if err != nil {
		logger.Fatal("failed to resolve upload directory", zap.Error(err))
	}
	e.Static("/uploads", absPath)

	dbConn, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN, logger)
	if err != nil {
		logger.Fatal("failed to connect to PostgreSQL", zap.Error(err))
	}
	defer dbConn.Close()

	if cfg.Postgres.RunMigrations {
		if err := postgresql.Migrate(ctx, dbConn); err != nil {
			logger.Fatal("failed to apply migrations", zap.Error(err))
		}
		logger.Info("migrations applied")
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	if _, err := redisClient.Ping(ctx).Result(); err != nil {
		logger.Fatal("failed to connect to Redis", zap.Error(err), zap.String("address", cfg.Redis.Address))
	}

	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL, logger)

	loggers := &routes.Loggers{
		Main:      logger,
		Auth:      logger.Named("auth"),
		Equipment: logger.Named("equipment"),
	}
	routes.InitRouter(ctx, e, dbConn, redisClient, jwtSvc, loggers, cfg)

	go func() {
		logger.Info("server started", zap.String("port", cfg.Server.Port))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

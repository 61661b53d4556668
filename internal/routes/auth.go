package routes

import (
	"chainsaw-registry/internal/controllers"
	"chainsaw-registry/internal/repositories"
	"chainsaw-registry/internal/services"
	"chainsaw-registry/pkg/config"
	"chainsaw-registry/pkg/middleware"
	"chainsaw-registry/pkg/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runAuthRouter(
	api *echo.Group,
	dbConn *pgxpool.Pool,
	cacheRepo repositories.CacheRepositoryInterface,
	jwtSvc service.JWTService,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
	cfg *config.Config,
) {
	adminRepository := repositories.NewAdminRepository(dbConn, logger)
	authService := services.NewAuthService(adminRepository, cacheRepo, logger, &cfg.Auth)
	authCtrl := controllers.NewAuthController(authService, jwtSvc, cfg.Server.SecureCookies, logger)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", authCtrl.Login)
		authGroup.POST("/refresh", authCtrl.RefreshToken)
		authGroup.POST("/logout", authCtrl.Logout)
		authGroup.GET("/me", authCtrl.Me, authMW.Auth)
	}
}

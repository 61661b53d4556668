package controllers

import (
	"net/http"
	"time"

	"chainsaw-registry/internal/dto"
	"chainsaw-registry/internal/entities"
	"chainsaw-registry/internal/services"
	apperrors "chainsaw-registry/pkg/errors"
	"chainsaw-registry/pkg/service"
	"chainsaw-registry/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	refreshCookieName   = "refreshToken"
	shortRefreshSession = 8 * time.Hour
)

type AuthController struct {
	authService  services.AuthServiceInterface
	jwtSvc       service.JWTService
	secureCookie bool
	logger       *zap.Logger
}

func NewAuthController(
	authService services.AuthServiceInterface,
	jwtSvc service.JWTService,
	secureCookie bool,
	logger *zap.Logger,
) *AuthController {
	return &AuthController{
		authService:  authService,
		jwtSvc:       jwtSvc,
		secureCookie: secureCookie,
		logger:       logger,
	}
}

func (ctrl *AuthController) errorResponse(c echo.Context, err error) error {
	return utils.ErrorResponse(c, err, ctrl.logger)
}

func (ctrl *AuthController) Login(c echo.Context) error {
	var payload dto.LoginDTO

	if err := c.Bind(&payload); err != nil {
		ctrl.logger.Warn("Login: failed to bind payload", zap.Error(err))
		return ctrl.errorResponse(c, apperrors.NewBadRequestError("Invalid login payload"))
	}

	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	admin, err := ctrl.authService.Login(c.Request().Context(), payload)
	if err != nil {
		ctrl.logger.Warn("Login: rejected", zap.String("email", payload.Email), zap.Error(err))
		return ctrl.errorResponse(c, err)
	}

	return ctrl.generateTokensAndRespond(c, admin, "Logged in successfully", payload.RememberMe)
}

func (ctrl *AuthController) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   ctrl.secureCookie,
		SameSite: ctrl.sameSite(),
	})

	return utils.SuccessResponse(c, nil, "Logged out successfully", http.StatusOK)
}

func (ctrl *AuthController) RefreshToken(c echo.Context) error {
	cookie, err := c.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		return ctrl.errorResponse(c, apperrors.ErrUnauthorized)
	}

	claims, err := ctrl.jwtSvc.ValidateToken(cookie.Value)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	if !claims.IsRefreshToken {
		return ctrl.errorResponse(c, apperrors.ErrTokenIsNotRefresh)
	}

	admin, err := ctrl.authService.GetAdminByID(c.Request().Context(), claims.AdminID)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	return ctrl.generateTokensAndRespond(c, admin, "Tokens refreshed successfully", true)
}

func (ctrl *AuthController) Me(c echo.Context) error {
	adminID, err := utils.GetAdminIDFromCtx(c.Request().Context())
	if err != nil {
		ctrl.logger.Error("Me: admin id missing from a protected route")
		return ctrl.errorResponse(c, apperrors.ErrUnauthorized)
	}

	admin, err := ctrl.authService.GetAdminByID(c.Request().Context(), adminID)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	return utils.SuccessResponse(c, publicAdmin(admin), "Profile retrieved successfully", http.StatusOK)
}

func (ctrl *AuthController) generateTokensAndRespond(c echo.Context, admin *entities.Admin, message string, rememberMe bool) error {
	accessToken, refreshToken, err := ctrl.jwtSvc.GenerateTokens(admin.ID)
	if err != nil {
		ctrl.logger.Error("failed to generate tokens", zap.String("adminID", admin.ID), zap.Error(err))
		return ctrl.errorResponse(c, err)
	}

	cookie := &http.Cookie{
		Name:     refreshCookieName,
		Value:    refreshToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   ctrl.secureCookie,
		SameSite: ctrl.sameSite(),
	}
	if rememberMe {
		cookie.Expires = time.Now().Add(ctrl.jwtSvc.GetRefreshTokenTTL())
	} else {
		cookie.MaxAge = int(shortRefreshSession.Seconds())
	}
	c.SetCookie(cookie)

	return utils.SuccessResponse(c, dto.AuthResponseDTO{
		AccessToken: accessToken,
		Admin:       publicAdmin(admin),
	}, message, http.StatusOK)
}

// sameSite is None for cross-site cookies, which browsers only accept with
// Secure set.
func (ctrl *AuthController) sameSite() http.SameSite {
	if ctrl.secureCookie {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}

func publicAdmin(a *entities.Admin) dto.AdminPublicDTO {
	return dto.AdminPublicDTO{ID: a.ID, Email: a.Email, FullName: a.FullName}
}

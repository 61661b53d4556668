package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"chainsaw-registry/internal/dto"
	"chainsaw-registry/internal/entities"
	"chainsaw-registry/internal/repositories"
	"chainsaw-registry/pkg/config"
	apperrors "chainsaw-registry/pkg/errors"
	"chainsaw-registry/pkg/utils"

	"go.uber.org/zap"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*entities.Admin, error)
	GetAdminByID(ctx context.Context, adminID string) (*entities.Admin, error)
}

type AuthService struct {
	adminRepo repositories.AdminRepositoryInterface
	cacheRepo repositories.CacheRepositoryInterface
	logger    *zap.Logger
	cfg       *config.AuthConfig
}

func NewAuthService(
	adminRepo repositories.AdminRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	logger *zap.Logger,
	cfg *config.AuthConfig,
) AuthServiceInterface {
	return &AuthService{
		adminRepo: adminRepo,
		cacheRepo: cacheRepo,
		logger:    logger,
		cfg:       cfg,
	}
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*entities.Admin, error) {
	email := strings.ToLower(strings.TrimSpace(payload.Email))

	admin, err := s.adminRepo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Error("Login: failed to load admin", zap.String("email", email), zap.Error(err))
		}
		return nil, apperrors.ErrInvalidCredentials
	}
	if err := s.checkLockout(ctx, admin.ID); err != nil {
		return nil, err
	}
	if err := utils.ComparePasswords(admin.PasswordHash, payload.Password); err != nil {
		s.handleFailedLoginAttempt(ctx, admin.ID)
		return nil, apperrors.ErrInvalidCredentials
	}
	s.resetLoginAttempts(ctx, admin.ID)
	s.logger.Info("admin logged in", zap.String("adminID", admin.ID))
	return admin, nil
}

func (s *AuthService) GetAdminByID(ctx context.Context, adminID string) (*entities.Admin, error) {
	admin, err := s.adminRepo.FindByID(ctx, adminID)
	if err != nil {
		s.logger.Warn("GetAdminByID: admin not found", zap.String("adminID", adminID), zap.Error(err))
		return nil, apperrors.ErrUnauthorized
	}
	return admin, nil
}

func (s *AuthService) checkLockout(ctx context.Context, adminID string) error {
	if _, err := s.cacheRepo.Get(ctx, lockoutKey(adminID)); err == nil {
		return apperrors.ErrAccountLocked
	}
	return nil
}

func (s *AuthService) handleFailedLoginAttempt(ctx context.Context, adminID string) {
	attemptsKey := loginAttemptsKey(adminID)
	attempts, err := s.cacheRepo.Incr(ctx, attemptsKey)
	if err != nil {
		s.logger.Warn("failed to count login attempt", zap.String("adminID", adminID), zap.Error(err))
		return
	}
	if attempts >= int64(s.cfg.MaxLoginAttempts) {
		s.logger.Warn("admin locked out", zap.String("adminID", adminID), zap.Int64("attempts", attempts))
		_ = s.cacheRepo.Set(ctx, lockoutKey(adminID), "locked", s.cfg.LockoutDuration)
		_ = s.cacheRepo.Del(ctx, attemptsKey)
	}
}

func (s *AuthService) resetLoginAttempts(ctx context.Context, adminID string) {
	_ = s.cacheRepo.Del(ctx, loginAttemptsKey(adminID), lockoutKey(adminID))
}

func loginAttemptsKey(adminID string) string { return fmt.Sprintf("login_attempts:%s", adminID) }

func lockoutKey(adminID string) string { return fmt.Sprintf("lockout:%s", adminID) }

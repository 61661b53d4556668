package utils

import (
	"context"
	"time"

	"chainsaw-registry/pkg/contextkeys"
	apperrors "chainsaw-registry/pkg/errors"

	"github.com/labstack/echo/v4"
)

func ContextWithTimeout(ctx echo.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx.Request().Context(), timeout)
}

func WithAdminID(ctx context.Context, adminID string) context.Context {
	return context.WithValue(ctx, contextkeys.AdminIDKey, adminID)
}

func GetAdminIDFromCtx(ctx context.Context) (string, error) {
	adminID, ok := ctx.Value(contextkeys.AdminIDKey).(string)
	if !ok || adminID == "" {
		return "", apperrors.ErrUserIDNotFoundInContext
	}
	return adminID, nil
}

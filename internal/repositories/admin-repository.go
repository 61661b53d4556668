package repositories

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"chainsaw-registry/internal/entities"
	apperrors "chainsaw-registry/pkg/errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const adminTable = "admins"

var adminColumns = []string{"id", "email", "full_name", "password_hash", "created_at", "updated_at"}

type AdminRepositoryInterface interface {
	FindByEmail(ctx context.Context, email string) (*entities.Admin, error)
	FindByID(ctx context.Context, id string) (*entities.Admin, error)
	Create(ctx context.Context, admin *entities.Admin) (*entities.Admin, error)
}

type AdminRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewAdminRepository(storage *pgxpool.Pool, logger *zap.Logger) AdminRepositoryInterface {
	return &AdminRepository{storage: storage, logger: logger}
}

func scanAdmin(row pgx.Row) (*entities.Admin, error) {
	var a entities.Admin
	err := row.Scan(&a.ID, &a.Email, &a.FullName, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*entities.Admin, error) {
	query, args, err := psql.Select(adminColumns...).
		From(adminTable).
		Where(sq.Eq{"lower(email)": strings.ToLower(strings.TrimSpace(email))}).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanAdmin(r.storage.QueryRow(ctx, query, args...))
}

func (r *AdminRepository) FindByID(ctx context.Context, id string) (*entities.Admin, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.ErrNotFound
	}
	query, args, err := psql.Select(adminColumns...).
		From(adminTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanAdmin(r.storage.QueryRow(ctx, query, args...))
}

func (r *AdminRepository) Create(ctx context.Context, admin *entities.Admin) (*entities.Admin, error) {
	now := time.Now().UTC()
	query, args, err := psql.Insert(adminTable).
		Columns(adminColumns...).
		Values(uuid.NewString(), strings.ToLower(strings.TrimSpace(admin.Email)), admin.FullName, admin.PasswordHash, now, now).
		Suffix("RETURNING " + strings.Join(adminColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, err
	}

	created, err := scanAdmin(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.NewHttpError(http.StatusBadRequest, "Email is already in use.", err, nil)
		}
		r.logger.Error("failed to create admin", zap.String("email", admin.Email), zap.Error(err))
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}
	return created, nil
}

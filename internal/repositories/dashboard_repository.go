package repositories

import (
	"context"
	"fmt"
	"time"

	"chainsaw-registry/pkg/types"
	"chainsaw-registry/pkg/validity"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type DashboardRepositoryInterface interface {
	GetCounters(ctx context.Context, now time.Time) (*types.DashboardCounters, error)
	GetCountByIntendedUse(ctx context.Context) ([]types.DashboardCountByGroup, error)
	GetCountByFuelType(ctx context.Context) ([]types.DashboardCountByGroup, error)
	GetMonthlyRegistrations(ctx context.Context, from time.Time) ([]types.DashboardChartData, error)
}

type DashboardRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewDashboardRepository(storage *pgxpool.Pool, logger *zap.Logger) DashboardRepositoryInterface {
	return &DashboardRepository{storage: storage, logger: logger}
}

// MonthStart returns midnight of the first day of t's month in t's location.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// countersQuery counts everything in one pass with FILTER clauses. The
// expiry windows come from the same cutoffs the listing status filter uses.
func countersQuery(now time.Time) sq.SelectBuilder {
	thisMonth := MonthStart(now)
	lastMonth := thisMonth.AddDate(0, -1, 0)
	expiringBound := validity.ExpiringBound(now)

	return psql.Select().
		Column("COUNT(*)").
		Column(sq.Expr("COUNT(*) FILTER (WHERE created_at >= ?)", thisMonth)).
		Column(sq.Expr("COUNT(*) FILTER (WHERE created_at >= ? AND created_at < ?)", lastMonth, thisMonth)).
		Column(sq.Expr("COUNT(*) FILTER (WHERE "+validUntilExpr+" < ?)", now)).
		Column(sq.Expr("COUNT(*) FILTER (WHERE "+validUntilExpr+" >= ? AND "+validUntilExpr+" <= ?)", now, expiringBound)).
		Column("COUNT(*) FILTER (WHERE data_privacy_consent)").
		Column("COUNT(*) FILTER (WHERE is_new)").
		From(equipmentTable)
}

func (r *DashboardRepository) GetCounters(ctx context.Context, now time.Time) (*types.DashboardCounters, error) {
	query, args, err := countersQuery(now).ToSql()
	if err != nil {
		return nil, err
	}

	c := &types.DashboardCounters{}
	err = r.storage.QueryRow(ctx, query, args...).Scan(
		&c.Total,
		&c.ThisMonth,
		&c.LastMonth,
		&c.Expired,
		&c.ExpiringSoon,
		&c.WithConsent,
		&c.NewEquipments,
	)
	if err != nil {
		r.logger.Error("failed to load dashboard counters", zap.Error(err))
		return nil, fmt.Errorf("failed to load dashboard counters: %w", err)
	}
	return c, nil
}

func (r *DashboardRepository) GetCountByIntendedUse(ctx context.Context) ([]types.DashboardCountByGroup, error) {
	return r.countBy(ctx, "intended_use")
}

func (r *DashboardRepository) GetCountByFuelType(ctx context.Context) ([]types.DashboardCountByGroup, error) {
	return r.countBy(ctx, "fuel_type")
}

func (r *DashboardRepository) countBy(ctx context.Context, column string) ([]types.DashboardCountByGroup, error) {
	query, args, err := psql.Select(column+" AS group_name", "COUNT(*) AS count").
		From(equipmentTable).
		GroupBy(column).
		OrderBy("count DESC", "group_name").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to group equipments by %s: %w", column, err)
	}
	defer rows.Close()

	result := make([]types.DashboardCountByGroup, 0)
	for rows.Next() {
		var item types.DashboardCountByGroup
		if err := rows.Scan(&item.GroupName, &item.Count); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

// GetMonthlyRegistrations returns per-month creation counts since from, keyed
// "YYYY-MM". Months without registrations are absent.
func (r *DashboardRepository) GetMonthlyRegistrations(ctx context.Context, from time.Time) ([]types.DashboardChartData, error) {
	query, args, err := psql.Select("to_char(date_trunc('month', created_at), 'YYYY-MM') AS label", "COUNT(*) AS value").
		From(equipmentTable).
		Where(sq.GtOrEq{"created_at": from}).
		GroupBy("label").
		OrderBy("label").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load monthly registrations: %w", err)
	}
	defer rows.Close()

	result := make([]types.DashboardChartData, 0)
	for rows.Next() {
		var item types.DashboardChartData
		if err := rows.Scan(&item.Label, &item.Value); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

package repositories

import (
	"strings"
	"time"

	"chainsaw-registry/internal/entities"
	"chainsaw-registry/pkg/validity"

	sq "github.com/Masterminds/squirrel"
)

const (
	equipmentTable = "equipments"
	documentsTable = "equipment_documents"
)

var equipmentColumns = []string{
	"id",
	"owner_first_name", "owner_middle_name", "owner_last_name", "owner_address",
	"owner_contact_number", "owner_email", "owner_preferred_contact_method", "owner_id_url",
	"brand", "model", "serial_number", "guide_bar_length", "horse_power", "fuel_type",
	"date_acquired", "stencil_of_serial_no", "other_info", "intended_use", "is_new",
	"data_privacy_consent", "created_at", "updated_at",
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// likePattern wraps s for a substring ILIKE, escaping LIKE metacharacters.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

// validUntilExpr is validity.ValidUntil in SQL. The pool pins the session
// time zone to UTC so the month-end clamping matches.
const validUntilExpr = "date_acquired + interval '2 years'"

// equalFold matches a column against v exactly, ignoring case.
func equalFold(column, v string) sq.Sqlizer {
	return sq.Expr("lower("+column+") = lower(?)", v)
}

// applyEquipmentFilter adds the listing WHERE clauses. Per-column filters are
// exact case-insensitive matches and take precedence: when any is set the
// free-text search is dropped.
func applyEquipmentFilter(b sq.SelectBuilder, f entities.EquipmentFilter, now time.Time) sq.SelectBuilder {
	if f.HasColumnFilter() {
		if f.Brand != "" {
			b = b.Where(equalFold("brand", f.Brand))
		}
		if f.Model != "" {
			b = b.Where(equalFold("model", f.Model))
		}
		if f.SerialNumber != "" {
			b = b.Where(equalFold("serial_number", f.SerialNumber))
		}
	} else if search := strings.TrimSpace(f.Search); search != "" {
		p := likePattern(search)
		b = b.Where(sq.Or{
			sq.ILike{"brand": p},
			sq.ILike{"model": p},
			sq.ILike{"serial_number": p},
		})
	}

	if len(f.FuelTypes) > 0 {
		b = b.Where(sq.Eq{"fuel_type": f.FuelTypes})
	}
	if len(f.IntendedUses) > 0 {
		b = b.Where(sq.Eq{"intended_use": f.IntendedUses})
	}
	if cond := statusCondition(f.Statuses, now); cond != nil {
		b = b.Where(cond)
	}
	return b
}

func expiredCondition(now time.Time) sq.Sqlizer {
	return sq.Expr(validUntilExpr+" < ?", now)
}

func expiringCondition(now time.Time) sq.Sqlizer {
	return sq.Expr("("+validUntilExpr+" >= ? AND "+validUntilExpr+" <= ?)", now, validity.ExpiringBound(now))
}

func activeCondition(now time.Time) sq.Sqlizer {
	return sq.Expr(validUntilExpr+" > ?", validity.ExpiringBound(now))
}

// statusCondition translates derived statuses into valid-until ranges with the
// same boundaries as validity.Compute.
func statusCondition(statuses []string, now time.Time) sq.Sqlizer {
	if len(statuses) == 0 {
		return nil
	}

	var or sq.Or
	for _, s := range statuses {
		switch validity.Status(s) {
		case validity.StatusExpired:
			or = append(or, expiredCondition(now))
		case validity.StatusExpiring:
			or = append(or, expiringCondition(now))
		case validity.StatusActive:
			or = append(or, activeCondition(now))
		}
	}
	if len(or) == 0 {
		return nil
	}
	return or
}

// equipmentListQueries returns the COUNT query and the page query for f.
func equipmentListQueries(f entities.EquipmentFilter, now time.Time) (countQuery sq.SelectBuilder, pageQuery sq.SelectBuilder) {
	base := applyEquipmentFilter(psql.Select().From(equipmentTable), f, now)

	countQuery = base.Columns("COUNT(*)")
	pageQuery = base.Columns(equipmentColumns...).OrderBy("created_at DESC", "id DESC")
	if f.Limit > 0 {
		pageQuery = pageQuery.Limit(uint64(f.Limit)).Offset(uint64(f.Offset()))
	}
	return countQuery, pageQuery
}

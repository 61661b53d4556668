package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"chainsaw-registry/internal/dto"
	"chainsaw-registry/internal/entities"
	apperrors "chainsaw-registry/pkg/errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EquipmentRepositoryInterface interface {
	Create(ctx context.Context, payload dto.CreateEquipmentDTO) (*entities.Equipment, error)
	FindByID(ctx context.Context, id string) (*entities.Equipment, error)
	Update(ctx context.Context, id string, patch dto.UpdateEquipmentDTO) (*entities.Equipment, error)
	Delete(ctx context.Context, id string) (*entities.Equipment, error)
	List(ctx context.Context, filter entities.EquipmentFilter) ([]entities.Equipment, uint64, error)
	ListByIDs(ctx context.Context, ids []string) ([]entities.Equipment, error)
	ListAll(ctx context.Context, filter entities.EquipmentFilter) ([]entities.Equipment, error)
}

type EquipmentRepository struct {
	storage *pgxpool.Pool
	tx      TxManagerInterface
	now     func() time.Time
}

func NewEquipmentRepository(storage *pgxpool.Pool, tx TxManagerInterface) EquipmentRepositoryInterface {
	return &EquipmentRepository{
		storage: storage,
		tx:      tx,
		now:     time.Now,
	}
}

func (r *EquipmentRepository) Create(ctx context.Context, payload dto.CreateEquipmentDTO) (*entities.Equipment, error) {
	payload.Normalize()
	if payload.Brand == "" || payload.Model == "" || payload.SerialNumber == "" {
		return nil, apperrors.ErrMissingRequiredFields
	}

	e := payload.ToEntity()
	e.ID = uuid.NewString()
	ts := r.now().UTC().Truncate(time.Microsecond)
	e.CreatedAt, e.UpdatedAt = ts, ts

	query, args, err := psql.Insert(equipmentTable).
		Columns(equipmentColumns...).
		Values(
			e.ID,
			e.OwnerFirstName, e.OwnerMiddleName, e.OwnerLastName, e.OwnerAddress,
			e.OwnerContactNumber, e.OwnerEmail, e.OwnerPreferContactMethod, e.OwnerIDURL,
			e.Brand, e.Model, e.SerialNumber, e.GuideBarLength, e.HorsePower, e.FuelType,
			e.DateAcquired, e.StencilOfSerialNo, e.OtherInfo, e.IntendedUse, e.IsNew,
			e.DataPrivacyConsent, e.CreatedAt, e.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	err = r.tx.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to insert equipment: %w", err)
		}
		return upsertDocuments(ctx, tx, e.ID, e.Documents, ts)
	})
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EquipmentRepository) FindByID(ctx context.Context, id string) (*entities.Equipment, error) {
	return findEquipment(ctx, r.storage, id)
}

// Update writes the present fields of patch. A missing row is reported as
// ErrNotFound from the UPDATE itself.
func (r *EquipmentRepository) Update(ctx context.Context, id string, patch dto.UpdateEquipmentDTO) (*entities.Equipment, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.ErrNotFound
	}
	patch.Normalize()

	changes := patch.Changes()
	changes["updated_at"] = sq.Expr("GREATEST(clock_timestamp(), updated_at + interval '1 microsecond')")

	query, args, err := psql.Update(equipmentTable).
		SetMap(changes).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update query: %w", err)
	}

	var updated *entities.Equipment
	err = r.tx.RunInTransaction(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to update equipment: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrNotFound
		}
		if err := upsertDocuments(ctx, tx, id, patch.Documents, r.now().UTC()); err != nil {
			return err
		}
		updated, err = findEquipment(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *EquipmentRepository) Delete(ctx context.Context, id string) (*entities.Equipment, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.ErrNotFound
	}

	query, args, err := psql.Delete(equipmentTable).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(equipmentColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build delete query: %w", err)
	}

	e, err := scanEquipment(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to delete equipment: %w", err)
	}
	return e, nil
}

func (r *EquipmentRepository) List(ctx context.Context, filter entities.EquipmentFilter) ([]entities.Equipment, uint64, error) {
	countQuery, pageQuery := equipmentListQueries(filter, r.now())

	query, args, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count equipments: %w", err)
	}
	if total == 0 {
		return []entities.Equipment{}, 0, nil
	}

	list, err := r.query(ctx, pageQuery)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *EquipmentRepository) ListAll(ctx context.Context, filter entities.EquipmentFilter) ([]entities.Equipment, error) {
	filter.Limit, filter.Page = 0, 0
	_, pageQuery := equipmentListQueries(filter, r.now())
	return r.query(ctx, pageQuery)
}

func (r *EquipmentRepository) ListByIDs(ctx context.Context, ids []string) ([]entities.Equipment, error) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, err := uuid.Parse(id); err == nil {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return []entities.Equipment{}, nil
	}

	return r.query(ctx, psql.Select(equipmentColumns...).
		From(equipmentTable).
		Where(sq.Eq{"id": valid}).
		OrderBy("created_at DESC", "id DESC"))
}

func (r *EquipmentRepository) query(ctx context.Context, b sq.SelectBuilder) ([]entities.Equipment, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query equipments: %w", err)
	}
	defer rows.Close()

	list := make([]entities.Equipment, 0)
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan equipment: %w", err)
		}
		list = append(list, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate equipments: %w", err)
	}

	if err := attachDocuments(ctx, r.storage, list); err != nil {
		return nil, err
	}
	return list, nil
}

func findEquipment(ctx context.Context, q querier, id string) (*entities.Equipment, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.ErrNotFound
	}

	query, args, err := psql.Select(equipmentColumns...).
		From(equipmentTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	e, err := scanEquipment(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find equipment: %w", err)
	}

	list := []entities.Equipment{*e}
	if err := attachDocuments(ctx, q, list); err != nil {
		return nil, err
	}
	return &list[0], nil
}

func scanEquipment(row pgx.Row) (*entities.Equipment, error) {
	var e entities.Equipment
	err := row.Scan(
		&e.ID,
		&e.OwnerFirstName, &e.OwnerMiddleName, &e.OwnerLastName, &e.OwnerAddress,
		&e.OwnerContactNumber, &e.OwnerEmail, &e.OwnerPreferContactMethod, &e.OwnerIDURL,
		&e.Brand, &e.Model, &e.SerialNumber, &e.GuideBarLength, &e.HorsePower, &e.FuelType,
		&e.DateAcquired, &e.StencilOfSerialNo, &e.OtherInfo, &e.IntendedUse, &e.IsNew,
		&e.DataPrivacyConsent, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func upsertDocuments(ctx context.Context, q querier, equipmentID string, docs map[string]string, at time.Time) error {
	if len(docs) == 0 {
		return nil
	}

	b := psql.Insert(documentsTable).Columns("equipment_id", "doc_type", "file_url", "uploaded_at")
	for docType, url := range docs {
		b = b.Values(equipmentID, docType, url, at)
	}
	query, args, err := b.
		Suffix("ON CONFLICT (equipment_id, doc_type) DO UPDATE SET file_url = EXCLUDED.file_url, uploaded_at = EXCLUDED.uploaded_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build documents query: %w", err)
	}

	if _, err := q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save equipment documents: %w", err)
	}
	return nil
}

// attachDocuments loads document URLs for every record in list in one query.
func attachDocuments(ctx context.Context, q querier, list []entities.Equipment) error {
	if len(list) == 0 {
		return nil
	}

	index := make(map[string]int, len(list))
	ids := make([]string, 0, len(list))
	for i := range list {
		index[list[i].ID] = i
		ids = append(ids, list[i].ID)
	}

	query, args, err := psql.Select("equipment_id", "doc_type", "file_url").
		From(documentsTable).
		Where(sq.Eq{"equipment_id": ids}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build documents query: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to query equipment documents: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var doc entities.EquipmentDocument
		if err := rows.Scan(&doc.EquipmentID, &doc.DocType, &doc.FileURL); err != nil {
			return fmt.Errorf("failed to scan equipment document: %w", err)
		}
		i, ok := index[doc.EquipmentID]
		if !ok {
			continue
		}
		if list[i].Documents == nil {
			list[i].Documents = make(map[string]string)
		}
		list[i].Documents[doc.DocType] = doc.FileURL
	}
	return rows.Err()
}

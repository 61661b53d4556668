package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"runtime/debug"
	"sort"
	"strings"
	"time"

	"chainsaw-registry/internal/dto"
	"chainsaw-registry/internal/entities"
	"chainsaw-registry/internal/repositories"
	apperrors "chainsaw-registry/pkg/errors"
	"chainsaw-registry/pkg/validation"

	"go.uber.org/zap"
)

const (
	MsgInvalidFields      = "Invalid fields!"
	MsgEquipmentNotFound  = "Equipment not found!"
	MsgSomethingWentWrong = "Something went wrong!"

	msgCreated      = "Equipment created successfully"
	msgUpdated      = "Equipment updated successfully"
	msgCreateFailed = "Failed to create equipment. Please try again."
	msgUpdateFailed = "Failed to update equipment. Please try again."
	msgDeleteFailed = "Failed to delete equipment. Please try again."

	DefaultListLimit = 10
	MaxListLimit     = 100
)

// StructValidator is satisfied by validation.CustomValidator and echo.Validator.
type StructValidator interface {
	Validate(i interface{}) error
}

type EquipmentServiceInterface interface {
	GetEquipments(ctx context.Context, filter entities.EquipmentFilter) (*dto.EquipmentListDTO, error)
	FindEquipment(ctx context.Context, id string) (*dto.EquipmentDTO, error)
	CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) dto.ActionResult
	UpdateEquipment(ctx context.Context, id string, patch dto.UpdateEquipmentDTO) dto.ActionResult
	DeleteEquipment(ctx context.Context, id string) dto.ActionResult
	Register(ctx context.Context, payload dto.CreateEquipmentDTO) dto.ActionResult
	BulkImport(ctx context.Context, rows []json.RawMessage) dto.BatchResult
	BulkDelete(ctx context.Context, ids []string) dto.BatchResult
}

type EquipmentService struct {
	equipmentRepository repositories.EquipmentRepositoryInterface
	cache               EquipmentCacheInterface
	validator           StructValidator
	requireConsent      bool
	logger              *zap.Logger
	now                 func() time.Time
}

func NewEquipmentService(
	equipmentRepository repositories.EquipmentRepositoryInterface,
	cache EquipmentCacheInterface,
	validator StructValidator,
	requireConsent bool,
	logger *zap.Logger,
) *EquipmentService {
	if cache == nil {
		cache = NewNoopEquipmentCache()
	}
	return &EquipmentService{
		equipmentRepository: equipmentRepository,
		cache:               cache,
		validator:           validator,
		requireConsent:      requireConsent,
		logger:              logger,
		now:                 time.Now,
	}
}

// NormalizeListFilter applies the default page size and clamps page and limit.
func NormalizeListFilter(f entities.EquipmentFilter) entities.EquipmentFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = DefaultListLimit
	}
	if f.Limit > MaxListLimit {
		f.Limit = MaxListLimit
	}
	f.Search = strings.TrimSpace(f.Search)
	f.Brand = strings.TrimSpace(f.Brand)
	f.Model = strings.TrimSpace(f.Model)
	f.SerialNumber = strings.TrimSpace(f.SerialNumber)
	return f
}

func (s *EquipmentService) GetEquipments(ctx context.Context, filter entities.EquipmentFilter) (*dto.EquipmentListDTO, error) {
	filter = NormalizeListFilter(filter)

	cached, key, ok := s.cache.GetList(ctx, filter)
	if !ok {
		list, total, err := s.equipmentRepository.List(ctx, filter)
		if err != nil {
			s.logger.Error("failed to list equipments", zap.Any("filter", filter), zap.Error(err))
			return nil, err
		}
		cached = &CachedEquipmentList{Equipments: list, Total: total}
		s.cache.SetList(ctx, key, cached)
	}

	return &dto.EquipmentListDTO{
		Equipments: dto.NewEquipmentDTOs(cached.Equipments, s.now()),
		Total:      cached.Total,
		Offset:     filter.Offset(),
		Limit:      filter.Limit,
		Page:       filter.Page,
	}, nil
}

func (s *EquipmentService) FindEquipment(ctx context.Context, id string) (*dto.EquipmentDTO, error) {
	e, ok := s.cache.GetOne(ctx, id)
	if !ok {
		var err error
		e, err = s.equipmentRepository.FindByID(ctx, id)
		if err != nil {
			if !errors.Is(err, apperrors.ErrNotFound) {
				s.logger.Error("failed to find equipment", zap.String("id", id), zap.Error(err))
			}
			return nil, err
		}
		s.cache.SetOne(ctx, e)
	}

	d := dto.NewEquipmentDTO(*e, s.now())
	return &d, nil
}

func (s *EquipmentService) CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (res dto.ActionResult) {
	defer s.recoverAction("CreateEquipment", &res)

	payload.Normalize()
	if err := s.validator.Validate(payload); err != nil {
		return invalidResult(err)
	}
	return s.create(ctx, payload)
}

// Register is the public registration form: a create that also demands
// owner identity and, when configured, data privacy consent.
func (s *EquipmentService) Register(ctx context.Context, payload dto.CreateEquipmentDTO) (res dto.ActionResult) {
	defer s.recoverAction("Register", &res)

	payload.Normalize()
	fields := validation.FieldMessages(s.validator.Validate(payload))
	if fields == nil {
		fields = map[string]string{}
	}
	if payload.OwnerFirstName == "" {
		fields["OwnerFirstName"] = "is required"
	}
	if payload.OwnerLastName == "" {
		fields["OwnerLastName"] = "is required"
	}
	if payload.OwnerAddress == "" {
		fields["OwnerAddress"] = "is required"
	}
	if s.requireConsent && !payload.DataPrivacyConsent {
		fields["DataPrivacyConsent"] = "must be accepted"
	}
	if len(fields) > 0 {
		return dto.ActionResult{Error: MsgInvalidFields, Outcome: dto.OutcomeInvalid, Fields: fields}
	}
	return s.create(ctx, payload)
}

func (s *EquipmentService) create(ctx context.Context, payload dto.CreateEquipmentDTO) dto.ActionResult {
	e, err := s.equipmentRepository.Create(ctx, payload)
	if err != nil {
		s.logger.Error("failed to create equipment", zap.Any("payload", payload), zap.Error(err))
		return failedResult(err, msgCreateFailed)
	}

	s.cache.InvalidateList(ctx)
	s.logger.Info("equipment created", zap.String("id", e.ID), zap.String("serial_number", e.SerialNumber))

	d := dto.NewEquipmentDTO(*e, s.now())
	return dto.ActionResult{Success: msgCreated, Equipment: &d}
}

func (s *EquipmentService) UpdateEquipment(ctx context.Context, id string, patch dto.UpdateEquipmentDTO) (res dto.ActionResult) {
	defer s.recoverAction("UpdateEquipment", &res)

	patch.Normalize()
	if err := s.validator.Validate(patch); err != nil {
		return invalidResult(err)
	}

	if _, err := s.equipmentRepository.FindByID(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return notFoundResult()
		}
		s.logger.Error("failed to load equipment for update", zap.String("id", id), zap.Error(err))
		return failedResult(err, msgUpdateFailed)
	}

	e, err := s.equipmentRepository.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return notFoundResult()
		}
		s.logger.Error("failed to update equipment", zap.String("id", id), zap.Error(err))
		return failedResult(err, msgUpdateFailed)
	}

	s.cache.InvalidateList(ctx)
	s.cache.InvalidateOne(ctx, id)

	d := dto.NewEquipmentDTO(*e, s.now())
	return dto.ActionResult{Success: msgUpdated, Equipment: &d}
}

func (s *EquipmentService) DeleteEquipment(ctx context.Context, id string) (res dto.ActionResult) {
	defer s.recoverAction("DeleteEquipment", &res)

	if strings.TrimSpace(id) == "" {
		return dto.ActionResult{Error: MsgInvalidFields, Outcome: dto.OutcomeInvalid}
	}

	e, err := s.delete(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return notFoundResult()
		}
		s.logger.Error("failed to delete equipment", zap.String("id", id), zap.Error(err))
		return failedResult(err, msgDeleteFailed)
	}

	s.cache.InvalidateList(ctx)
	s.cache.InvalidateOne(ctx, id)
	return dto.ActionResult{Success: deletedMessage(e)}
}

func (s *EquipmentService) delete(ctx context.Context, id string) (*entities.Equipment, error) {
	if _, err := s.equipmentRepository.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return s.equipmentRepository.Delete(ctx, id)
}

// BulkImport creates one record per row in input order. Rows fail
// independently and nothing is rolled back.
func (s *EquipmentService) BulkImport(ctx context.Context, rows []json.RawMessage) (res dto.BatchResult) {
	details := dto.BatchDetails{Errors: []string{}}
	defer func() {
		if p := recover(); p != nil {
			s.logger.Error("BulkImport: panic recovered", zap.Any("panic", p), zap.ByteString("stack", debug.Stack()))
			if details.Success > 0 {
				s.cache.InvalidateList(ctx)
			}
			res = dto.BatchResult{
				Success: details.Success > 0,
				Message: "Something went wrong during bulk import!",
				Details: dto.BatchDetails{
					Success: details.Success,
					Failed:  len(rows) - details.Success,
					Errors:  []string{MsgSomethingWentWrong},
				},
			}
		}
	}()

	for i, raw := range rows {
		row := i + 1

		var payload dto.CreateEquipmentDTO
		if err := json.Unmarshal(raw, &payload); err != nil {
			details.Failed++
			details.Errors = append(details.Errors, fmt.Sprintf("Row %d: Invalid fields - %s", row, err.Error()))
			continue
		}

		payload.Normalize()
		if err := s.validator.Validate(payload); err != nil {
			details.Failed++
			details.Errors = append(details.Errors, fmt.Sprintf("Row %d: Invalid fields - %s", row, describeFields(err)))
			continue
		}

		if _, err := s.equipmentRepository.Create(ctx, payload); err != nil {
			s.logger.Warn("BulkImport: row failed", zap.Int("row", row), zap.Error(err))
			details.Failed++
			details.Errors = append(details.Errors, fmt.Sprintf("Row %d: %s", row, failedResult(err, msgCreateFailed).Error))
			continue
		}
		details.Success++
	}

	if details.Success > 0 {
		s.cache.InvalidateList(ctx)
	}

	return dto.BatchResult{
		Success: details.Success > 0,
		Message: fmt.Sprintf("Successfully imported %d equipment records. %d records failed.", details.Success, details.Failed),
		Details: details,
	}
}

// BulkDelete removes each id independently.
func (s *EquipmentService) BulkDelete(ctx context.Context, ids []string) (res dto.BatchResult) {
	details := dto.BatchDetails{Errors: []string{}}
	defer func() {
		if p := recover(); p != nil {
			s.logger.Error("BulkDelete: panic recovered", zap.Any("panic", p), zap.ByteString("stack", debug.Stack()))
			if details.Success > 0 {
				s.cache.InvalidateList(ctx)
			}
			res = dto.BatchResult{
				Success: details.Success > 0,
				Message: "Something went wrong during bulk delete!",
				Details: dto.BatchDetails{
					Success: details.Success,
					Failed:  len(ids) - details.Success,
					Errors:  []string{MsgSomethingWentWrong},
				},
			}
		}
	}()

	for _, id := range ids {
		if _, err := s.delete(ctx, id); err != nil {
			details.Failed++
			if errors.Is(err, apperrors.ErrNotFound) {
				details.Errors = append(details.Errors, fmt.Sprintf("Equipment ID %s: Equipment not found", id))
			} else {
				s.logger.Warn("BulkDelete: id failed", zap.String("id", id), zap.Error(err))
				details.Errors = append(details.Errors, fmt.Sprintf("Equipment ID %s: %s", id, msgDeleteFailed))
			}
			continue
		}
		s.cache.InvalidateOne(ctx, id)
		details.Success++
	}

	if details.Success > 0 {
		s.cache.InvalidateList(ctx)
	}

	return dto.BatchResult{
		Success: details.Success > 0,
		Message: fmt.Sprintf("Successfully deleted %d equipment records. %d records failed to delete.", details.Success, details.Failed),
		Details: details,
	}
}

func (s *EquipmentService) recoverAction(op string, res *dto.ActionResult) {
	if p := recover(); p != nil {
		s.logger.Error(op+": panic recovered", zap.Any("panic", p), zap.ByteString("stack", debug.Stack()))
		*res = dto.ActionResult{Error: MsgSomethingWentWrong, Outcome: dto.OutcomeUnexpected}
	}
}

func invalidResult(err error) dto.ActionResult {
	return dto.ActionResult{
		Error:   MsgInvalidFields,
		Outcome: dto.OutcomeInvalid,
		Fields:  validation.FieldMessages(err),
	}
}

func notFoundResult() dto.ActionResult {
	return dto.ActionResult{Error: MsgEquipmentNotFound, Outcome: dto.OutcomeNotFound}
}

// failedResult exposes input errors verbatim and hides persistence details
// behind fallback.
func failedResult(err error, fallback string) dto.ActionResult {
	var inputErr *apperrors.InvalidInputError
	if errors.As(err, &inputErr) {
		return dto.ActionResult{Error: inputErr.Message, Outcome: dto.OutcomeInvalid}
	}
	return dto.ActionResult{Error: fallback, Outcome: dto.OutcomeFailed}
}

func deletedMessage(e *entities.Equipment) string {
	return fmt.Sprintf("Equipment with model %q deleted successfully", e.Model)
}

// describeFields renders validation failures as "Field: message" pairs in a
// stable order.
func describeFields(err error) string {
	fields := validation.FieldMessages(err)
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+fields[name])
	}
	return strings.Join(parts, "; ")
}

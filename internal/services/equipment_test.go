package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"chainsaw-registry/internal/dto"
	"chainsaw-registry/internal/entities"
	apperrors "chainsaw-registry/pkg/errors"
	"chainsaw-registry/pkg/types"
	"chainsaw-registry/pkg/validation"
	"chainsaw-registry/pkg/validity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testID = "6d2f8a8e-1c4b-4f7e-9f4a-3c2b1a0d9e8f"

var fixedNow = time.Date(2022, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestEquipmentService(repo *MockEquipmentRepository, cache EquipmentCacheInterface) *EquipmentService {
	s := NewEquipmentService(repo, cache, validation.New(), true, zap.NewNop())
	s.now = func() time.Time { return fixedNow }
	return s
}

func validPayload() dto.CreateEquipmentDTO {
	isNew := true
	return dto.CreateEquipmentDTO{
		OwnerFirstName:    "Juan",
		OwnerLastName:     "Dela Cruz",
		OwnerAddress:      "Purok 3, Brgy. San Isidro",
		Brand:             "Stihl",
		Model:             "MS 250",
		SerialNumber:      "SN-0001",
		GuideBarLength:    18,
		HorsePower:        3.1,
		FuelType:          "GAS",
		DateAcquired:      types.NewDate(time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)),
		StencilOfSerialNo: "stencil",
		OtherInfo:         "none",
		IntendedUse:       "WOOD_PROCESSING",
		IsNew:             &isNew,
	}
}

func storedEquipment(id, model string) *entities.Equipment {
	return &entities.Equipment{
		ID:           id,
		Brand:        "Stihl",
		Model:        model,
		SerialNumber: "SN-0001",
		DateAcquired: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
		IntendedUse:  entities.UseWoodProcessing,
	}
}

func TestEquipmentService_CreateEquipment(t *testing.T) {
	repo := new(MockEquipmentRepository)
	cache := &spyCache{}
	s := newTestEquipmentService(repo, cache)

	payload := validPayload()
	payload.Brand = "  Stihl  "
	payload.IntendedUse = "LEGAL_PURPOSES"

	repo.On("Create", mock.Anything, mock.MatchedBy(func(p dto.CreateEquipmentDTO) bool {
		return p.Brand == "Stihl" && p.IntendedUse == entities.UseGovernmentLegal
	})).Return(storedEquipment(testID, "MS 250"), nil).Once()

	res := s.CreateEquipment(context.Background(), payload)

	assert.True(t, res.OK())
	assert.Equal(t, "Equipment created successfully", res.Success)
	require.NotNil(t, res.Equipment)
	assert.Equal(t, validity.StatusActive, res.Equipment.Status)
	assert.Equal(t, 1, cache.listInvalidations)
	repo.AssertExpectations(t)
}

func TestEquipmentService_CreateEquipment_Invalid(t *testing.T) {
	repo := new(MockEquipmentRepository)
	cache := &spyCache{}
	s := newTestEquipmentService(repo, cache)

	payload := validPayload()
	payload.GuideBarLength = -3

	res := s.CreateEquipment(context.Background(), payload)

	assert.Equal(t, "Invalid fields!", res.Error)
	assert.Empty(t, res.Success)
	assert.Equal(t, dto.OutcomeInvalid, res.Outcome)
	assert.Contains(t, res.Fields, "GuideBarLength")
	assert.Zero(t, cache.listInvalidations)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestEquipmentService_CreateEquipment_RepositoryFailure(t *testing.T) {
	repo := new(MockEquipmentRepository)
	s := newTestEquipmentService(repo, &spyCache{})

	repo.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused")).Once()

	res := s.CreateEquipment(context.Background(), validPayload())
	assert.Equal(t, "Failed to create equipment. Please try again.", res.Error)
	assert.Equal(t, dto.OutcomeFailed, res.Outcome)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil, apperrors.ErrMissingRequiredFields).Once()
	res = s.CreateEquipment(context.Background(), validPayload())
	assert.Equal(t, "Missing required fields: brand, model, and serialNumber are required", res.Error)
}

func TestEquipmentService_RecoversPanics(t *testing.T) {
	repo := new(MockEquipmentRepository)
	s := newTestEquipmentService(repo, &spyCache{})

	repo.On("Create", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		panic("driver exploded")
	}).Return(nil, nil)

	var res dto.ActionResult
	require.NotPanics(t, func() {
		res = s.CreateEquipment(context.Background(), validPayload())
	})
	assert.Equal(t, "Something went wrong!", res.Error)
	assert.Equal(t, dto.OutcomeUnexpected, res.Outcome)
}

func TestEquipmentService_UpdateEquipment_NotFound(t *testing.T) {
	repo := new(MockEquipmentRepository)
	cache := &spyCache{}
	s := newTestEquipmentService(repo, cache)

	repo.On("FindByID", mock.Anything, testID).Return(nil, apperrors.ErrNotFound).Once()

	brand := "Husqvarna"
	res := s.UpdateEquipment(context.Background(), testID, dto.UpdateEquipmentDTO{Brand: &brand})

	assert.Equal(t, "Equipment not found!", res.Error)
	assert.Equal(t, dto.OutcomeNotFound, res.Outcome)
	assert.Zero(t, cache.listInvalidations)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestEquipmentService_UpdateEquipment(t *testing.T) {
	repo := new(MockEquipmentRepository)
	cache := &spyCache{}
	s := newTestEquipmentService(repo, cache)

	repo.On("FindByID", mock.Anything, testID).Return(storedEquipment(testID, "MS 250"), nil).Once()
	repo.On("Update", mock.Anything, testID, mock.Anything).Return(storedEquipment(testID, "MS 261"), nil).Once()

	model := " MS 261 "
	res := s.UpdateEquipment(context.Background(), testID, dto.UpdateEquipmentDTO{Model: &model})

	assert.Equal(t, "Equipment updated successfully", res.Success)
	assert.Equal(t, "MS 261", res.Equipment.Model)
	assert.Equal(t, 1, cache.listInvalidations)
	assert.Equal(t, []string{testID}, cache.itemInvalidations)
	repo.AssertExpectations(t)
}

func TestEquipmentService_UpdateEquipment_BlankRequiredField(t *testing.T) {
	repo := new(MockEquipmentRepository)
	s := newTestEquipmentService(repo, &spyCache{})

	blank := "   "
	res := s.UpdateEquipment(context.Background(), testID, dto.UpdateEquipmentDTO{SerialNumber: &blank})

	assert.Equal(t, "Invalid fields!", res.Error)
	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestEquipmentService_DeleteEquipment(t *testing.T) {
	repo := new(MockEquipmentRepository)
	cache := &spyCache{}
	s := newTestEquipmentService(repo, cache)

	repo.On("FindByID", mock.Anything, testID).Return(storedEquipment(testID, "MS 250"), nil).Once()
	repo.On("Delete", mock.Anything, testID).Return(storedEquipment(testID, "MS 250"), nil).Once()

	res := s.DeleteEquipment(context.Background(), testID)

	assert.Equal(t, `Equipment with model "MS 250" deleted successfully`, res.Success)
	assert.Equal(t, 1, cache.listInvalidations)
	assert.Equal(t, []string{testID}, cache.itemInvalidations)
}

func TestEquipmentService_DeleteEquipment_NotFound(t *testing.T) {
	repo := new(MockEquipmentRepository)
	s := newTestEquipmentService(repo, &spyCache{})

	repo.On("FindByID", mock.Anything, "missing").Return(nil, apperrors.ErrNotFound).Once()

	res := s.DeleteEquipment(context.Background(), "missing")
	assert.Equal(t, "Equipment not found!", res.Error)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestEquipmentService_Register(t *testing.T) {
	repo := new(MockEquipmentRepository)
	s := newTestEquipmentService(repo, &spyCache{})

	payload := validPayload()
	payload.OwnerAddress = ""

	res := s.Register(context.Background(), payload)
	assert.Equal(t, "Invalid fields!", res.Error)
	assert.Contains(t, res.Fields, "OwnerAddress")
	assert.Contains(t, res.Fields, "DataPrivacyConsent")

	payload = validPayload()
	payload.DataPrivacyConsent = true
	repo.On("Create", mock.Anything, mock.Anything).Return(storedEquipment(testID, "MS 250"), nil).Once()

	res = s.Register(context.Background(), payload)
	assert.True(t, res.OK())
}

func TestEquipmentService_Register_ConsentOptional(t *testing.T) {
	repo := new(MockEquipmentRepository)
	s := NewEquipmentService(repo, nil, validation.New(), false, zap.NewNop())

	repo.On("Create", mock.Anything, mock.Anything).Return(storedEquipment(testID, "MS 250"), nil).Once()

	res := s.Register(context.Background(), validPayload())
	assert.True(t, res.OK())
}

func rowsJSON(t *testing.T, payloads ...dto.CreateEquipmentDTO) []json.RawMessage {
	t.Helper()
	out := make([]json.RawMessage, 0, len(payloads))
	for _, p := range payloads {
		raw, err := json.Marshal(p)
		require.NoError(t, err)
		out = append(out, raw)
	}
	return out
}

func TestEquipmentService_BulkImport_PartialFailure(t *testing.T) {
	repo := new(MockEquipmentRepository)
	cache := &spyCache{}
	s := newTestEquipmentService(repo, cache)

	payloads := make([]dto.CreateEquipmentDTO, 5)
	for i := range payloads {
		payloads[i] = validPayload()
		payloads[i].SerialNumber = fmt.Sprintf("SN-%d", i+1)
	}
	payloads[2].Brand = ""

	repo.On("Create", mock.Anything, mock.Anything).Return(storedEquipment(testID, "MS 250"), nil).Times(4)

	res := s.BulkImport(context.Background(), rowsJSON(t, payloads...))

	assert.True(t, res.Success)
	assert.Equal(t, 4, res.Details.Success)
	assert.Equal(t, 1, res.Details.Failed)
	require.Len(t, res.Details.Errors, 1)
	assert.Contains(t, res.Details.Errors[0], "Row 3: Invalid fields - Brand")
	assert.Equal(t, "Successfully imported 4 equipment records. 1 records failed.", res.Message)
	assert.Equal(t, 1, cache.listInvalidations)
	repo.AssertNumberOfCalls(t, "Create", 4)
}

func TestEquipmentService_BulkImport_AllFail(t *testing.T) {
	repo := new(MockEquipmentRepository)
	cache := &spyCache{}
	s := newTestEquipmentService(repo, cache)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	rows := append(rowsJSON(t, validPayload()), json.RawMessage(`{"brand": 5}`))
	res := s.BulkImport(context.Background(), rows)

	assert.False(t, res.Success)
	assert.Equal(t, 2, res.Details.Failed)
	assert.Equal(t, "Row 1: Failed to create equipment. Please try again.", res.Details.Errors[0])
	assert.Contains(t, res.Details.Errors[1], "Row 2: Invalid fields - ")
	assert.Zero(t, cache.listInvalidations)
}

func TestEquipmentService_BulkDelete(t *testing.T) {
	repo := new(MockEquipmentRepository)
	cache := &spyCache{}
	s := newTestEquipmentService(repo, cache)

	repo.On("FindByID", mock.Anything, "a").Return(storedEquipment("a", "MS 170"), nil)
	repo.On("Delete", mock.Anything, "a").Return(storedEquipment("a", "MS 170"), nil)
	repo.On("FindByID", mock.Anything, "b").Return(nil, apperrors.ErrNotFound)
	repo.On("FindByID", mock.Anything, "c").Return(storedEquipment("c", "MS 180"), nil)
	repo.On("Delete", mock.Anything, "c").Return(nil, errors.New("lock timeout"))

	res := s.BulkDelete(context.Background(), []string{"a", "b", "c"})

	assert.True(t, res.Success)
	assert.Equal(t, 1, res.Details.Success)
	assert.Equal(t, 2, res.Details.Failed)
	assert.Equal(t, []string{
		"Equipment ID b: Equipment not found",
		"Equipment ID c: Failed to delete equipment. Please try again.",
	}, res.Details.Errors)
	assert.Equal(t, "Successfully deleted 1 equipment records. 2 records failed to delete.", res.Message)
	assert.Equal(t, 1, cache.listInvalidations)
	assert.Equal(t, []string{"a"}, cache.itemInvalidations)
}

func TestEquipmentService_GetEquipments_UsesCache(t *testing.T) {
	repo := new(MockEquipmentRepository)
	cache := NewEquipmentCache(newMemoryCache(), time.Minute, zap.NewNop())
	s := newTestEquipmentService(repo, cache)

	list := []entities.Equipment{*storedEquipment(testID, "MS 250")}
	repo.On("List", mock.Anything, entities.EquipmentFilter{Page: 1, Limit: 10}).Return(list, uint64(1), nil).Once()

	first, err := s.GetEquipments(context.Background(), entities.EquipmentFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, first.Total)
	assert.Equal(t, 10, first.Limit)
	assert.Equal(t, validity.StatusActive, first.Equipments[0].Status)

	s.now = func() time.Time { return time.Date(2023, 12, 20, 0, 0, 0, 0, time.UTC) }
	second, err := s.GetEquipments(context.Background(), entities.EquipmentFilter{Page: 1})
	require.NoError(t, err)
	assert.Equal(t, validity.StatusExpiring, second.Equipments[0].Status)
	repo.AssertNumberOfCalls(t, "List", 1)

	cache.InvalidateList(context.Background())
	repo.On("List", mock.Anything, mock.Anything).Return([]entities.Equipment{}, uint64(0), nil).Once()
	third, err := s.GetEquipments(context.Background(), entities.EquipmentFilter{})
	require.NoError(t, err)
	assert.Empty(t, third.Equipments)
	repo.AssertNumberOfCalls(t, "List", 2)
}

func TestEquipmentService_GetEquipments_InvalidatedDuringRead(t *testing.T) {
	repo := new(MockEquipmentRepository)
	cache := NewEquipmentCache(newMemoryCache(), time.Minute, zap.NewNop())
	s := newTestEquipmentService(repo, cache)
	ctx := context.Background()

	stale := []entities.Equipment{*storedEquipment(testID, "MS 250")}
	fresh := append(stale, *storedEquipment("b", "MS 170"))

	// A write commits and invalidates while the first read is in flight.
	repo.On("List", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		cache.InvalidateList(ctx)
	}).Return(stale, uint64(1), nil).Once()
	repo.On("List", mock.Anything, mock.Anything).Return(fresh, uint64(2), nil).Once()

	first, err := s.GetEquipments(ctx, entities.EquipmentFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, first.Total)

	second, err := s.GetEquipments(ctx, entities.EquipmentFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, second.Total)
	repo.AssertNumberOfCalls(t, "List", 2)
}

func TestEquipmentService_BulkPanicsHideDetails(t *testing.T) {
	repo := new(MockEquipmentRepository)
	cache := &spyCache{}
	s := newTestEquipmentService(repo, cache)

	repo.On("FindByID", mock.Anything, "a").Return(storedEquipment("a", "MS 170"), nil)
	repo.On("Delete", mock.Anything, "a").Return(storedEquipment("a", "MS 170"), nil)
	repo.On("FindByID", mock.Anything, "b").Run(func(mock.Arguments) {
		panic("pq: relation equipments_secret does not exist")
	}).Return(nil, nil)

	var res dto.BatchResult
	require.NotPanics(t, func() {
		res = s.BulkDelete(context.Background(), []string{"a", "b", "c"})
	})
	assert.Equal(t, "Something went wrong during bulk delete!", res.Message)
	assert.Equal(t, 1, res.Details.Success)
	assert.Equal(t, 2, res.Details.Failed)
	assert.Equal(t, []string{MsgSomethingWentWrong}, res.Details.Errors)
	for _, e := range res.Details.Errors {
		assert.NotContains(t, e, "equipments_secret")
	}
	assert.Equal(t, 1, cache.listInvalidations)

	repo.On("Create", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		panic("pq: connection reset by 10.0.0.5")
	}).Return(nil, nil)

	res = s.BulkImport(context.Background(), rowsJSON(t, validPayload()))
	assert.False(t, res.Success)
	assert.Equal(t, 1, res.Details.Failed)
	assert.Equal(t, []string{MsgSomethingWentWrong}, res.Details.Errors)
	assert.NotContains(t, res.Details.Errors[0], "10.0.0.5")
}

func TestEquipmentService_FindEquipment(t *testing.T) {
	repo := new(MockEquipmentRepository)
	s := newTestEquipmentService(repo, NewEquipmentCache(newMemoryCache(), time.Minute, zap.NewNop()))

	repo.On("FindByID", mock.Anything, testID).Return(storedEquipment(testID, "MS 250"), nil).Once()
	repo.On("FindByID", mock.Anything, "missing").Return(nil, apperrors.ErrNotFound).Once()

	d, err := s.FindEquipment(context.Background(), testID)
	require.NoError(t, err)
	assert.Equal(t, "Wood Processing", d.IntendedUseLabel)

	_, err = s.FindEquipment(context.Background(), testID)
	require.NoError(t, err)
	repo.AssertNumberOfCalls(t, "FindByID", 1)

	_, err = s.FindEquipment(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestNormalizeListFilter(t *testing.T) {
	f := NormalizeListFilter(entities.EquipmentFilter{Page: -1, Limit: 1000, Brand: " stihl "})
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, MaxListLimit, f.Limit)
	assert.Equal(t, "stihl", f.Brand)
}

package controllers

import (
	"context"
	"encoding/json"
	"io"

	"chainsaw-registry/internal/dto"
	"chainsaw-registry/internal/entities"
	"chainsaw-registry/pkg/validation"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
)

type MockEquipmentService struct {
	mock.Mock
}

func (m *MockEquipmentService) GetEquipments(ctx context.Context, filter entities.EquipmentFilter) (*dto.EquipmentListDTO, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.EquipmentListDTO), args.Error(1)
}

func (m *MockEquipmentService) FindEquipment(ctx context.Context, id string) (*dto.EquipmentDTO, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.EquipmentDTO), args.Error(1)
}

func (m *MockEquipmentService) CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) dto.ActionResult {
	return m.Called(ctx, payload).Get(0).(dto.ActionResult)
}

func (m *MockEquipmentService) UpdateEquipment(ctx context.Context, id string, patch dto.UpdateEquipmentDTO) dto.ActionResult {
	return m.Called(ctx, id, patch).Get(0).(dto.ActionResult)
}

func (m *MockEquipmentService) DeleteEquipment(ctx context.Context, id string) dto.ActionResult {
	return m.Called(ctx, id).Get(0).(dto.ActionResult)
}

func (m *MockEquipmentService) Register(ctx context.Context, payload dto.CreateEquipmentDTO) dto.ActionResult {
	return m.Called(ctx, payload).Get(0).(dto.ActionResult)
}

func (m *MockEquipmentService) BulkImport(ctx context.Context, rows []json.RawMessage) dto.BatchResult {
	return m.Called(ctx, rows).Get(0).(dto.BatchResult)
}

func (m *MockEquipmentService) BulkDelete(ctx context.Context, ids []string) dto.BatchResult {
	return m.Called(ctx, ids).Get(0).(dto.BatchResult)
}

type MockImporter struct {
	mock.Mock
}

func (m *MockImporter) ImportWorkbook(ctx context.Context, r io.Reader) (dto.BatchResult, error) {
	args := m.Called(ctx, r)
	return args.Get(0).(dto.BatchResult), args.Error(1)
}

type MockExporter struct {
	mock.Mock
}

func (m *MockExporter) ExportFileName() string {
	return m.Called().String(0)
}

func (m *MockExporter) Export(ctx context.Context, w io.Writer, ids []string, filter entities.EquipmentFilter) error {
	args := m.Called(ctx, w, ids, filter)
	if err := args.Error(0); err != nil {
		return err
	}
	_, err := io.WriteString(w, "xlsx-bytes")
	return err
}

type MockQR struct {
	mock.Mock
}

func (m *MockQR) EquipmentQR(ctx context.Context, id string, size int) ([]byte, error) {
	args := m.Called(ctx, id, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockQR) PrintSheet(ctx context.Context, w io.Writer, ids []string, size int) error {
	args := m.Called(ctx, w, ids, size)
	if err := args.Error(0); err != nil {
		return err
	}
	_, err := io.WriteString(w, "<html>sheet</html>")
	return err
}

type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) GetStats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DashboardStatsDTO), args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, payload dto.LoginDTO) (*entities.Admin, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Admin), args.Error(1)
}

func (m *MockAuthService) GetAdminByID(ctx context.Context, adminID string) (*entities.Admin, error) {
	args := m.Called(ctx, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Admin), args.Error(1)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validation.New()
	return e
}

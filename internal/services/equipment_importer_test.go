package services

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"chainsaw-registry/internal/dto"
	"chainsaw-registry/internal/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

var importNow = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func workbook(t *testing.T, rows ...[]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func newTestImporter(equipments EquipmentServiceInterface) *EquipImportService {
	s := NewEquipImportService(equipments, zap.NewNop())
	s.now = func() time.Time { return importNow }
	return s
}

func decodeRows(t *testing.T, raw []json.RawMessage) []dto.CreateEquipmentDTO {
	t.Helper()
	out := make([]dto.CreateEquipmentDTO, 0, len(raw))
	for _, r := range raw {
		var p dto.CreateEquipmentDTO
		require.NoError(t, json.Unmarshal(r, &p))
		out = append(out, p)
	}
	return out
}

func TestParseWorkbook_BrandAliases(t *testing.T) {
	buf := workbook(t,
		[]interface{}{"Chainsaw Brand", "Model", "Serial No."},
		[]interface{}{"Husqvarna", "455 Rancher", "H-1"},
	)
	raw, err := newTestImporter(nil).ParseWorkbook(buf)
	require.NoError(t, err)
	rows := decodeRows(t, raw)
	require.Len(t, rows, 1)
	assert.Equal(t, "Husqvarna", rows[0].Brand)
	assert.Equal(t, "H-1", rows[0].SerialNumber)

	buf = workbook(t,
		[]interface{}{"Brand", "Chainsaw Brand"},
		[]interface{}{"Stihl", "Ignored"},
		[]interface{}{"", "Echo"},
	)
	raw, err = newTestImporter(nil).ParseWorkbook(buf)
	require.NoError(t, err)
	rows = decodeRows(t, raw)
	require.Len(t, rows, 2)
	assert.Equal(t, "Stihl", rows[0].Brand)
	assert.Equal(t, "Echo", rows[1].Brand)
}

func TestParseWorkbook_Fallbacks(t *testing.T) {
	buf := workbook(t,
		[]interface{}{"Model", "Notes"},
		[]interface{}{"MS 250", "x"},
	)
	raw, err := newTestImporter(nil).ParseWorkbook(buf)
	require.NoError(t, err)
	p := decodeRows(t, raw)[0]

	assert.Equal(t, "", p.Brand)
	assert.Equal(t, entities.FuelGas, p.FuelType)
	assert.Equal(t, entities.UseOther, p.IntendedUse)
	assert.Zero(t, p.GuideBarLength)
	require.NotNil(t, p.IsNew)
	assert.False(t, *p.IsNew)
	assert.True(t, p.DateAcquired.Equal(importNow))
}

func TestParseWorkbook_Coercions(t *testing.T) {
	buf := workbook(t,
		nil,
		[]interface{}{"Brand", "Horsepower", "Length of Guide Bar", "Date of Acquisition", "Intended Use of Chainsaw", "Registration Type", "Fuel Type"},
		[]interface{}{"Stihl", "3.5", "abc", 45292, "Wood Processing", "New Registration", "diesel"},
		[]interface{}{"", "", "", "", "", "", ""},
		[]interface{}{"Echo", "2", "16", "2023-03-15", "tree-cutting", "Renewal", ""},
	)
	raw, err := newTestImporter(nil).ParseWorkbook(buf)
	require.NoError(t, err)
	rows := decodeRows(t, raw)
	require.Len(t, rows, 2)

	assert.Equal(t, 3.5, rows[0].HorsePower)
	assert.Zero(t, rows[0].GuideBarLength)
	assert.Equal(t, "2024-01-01", rows[0].DateAcquired.Format("2006-01-02"))
	assert.Equal(t, entities.UseWoodProcessing, rows[0].IntendedUse)
	assert.True(t, *rows[0].IsNew)
	assert.Equal(t, entities.FuelDiesel, rows[0].FuelType)

	assert.Equal(t, 16.0, rows[1].GuideBarLength)
	assert.Equal(t, "2023-03-15", rows[1].DateAcquired.Format("2006-01-02"))
	assert.Equal(t, entities.UsePrivatePlantationCutting, rows[1].IntendedUse)
	assert.False(t, *rows[1].IsNew)
}

func TestParseImportBool(t *testing.T) {
	for _, v := range []string{"Yes", "true", "Y", "1", "New", "brand new unit"} {
		assert.True(t, parseImportBool(v), v)
	}
	for _, v := range []string{"No", "", "Renewal", "renew", "0"} {
		assert.False(t, parseImportBool(v), v)
	}
}

func TestParseWorkbook_Empty(t *testing.T) {
	_, err := newTestImporter(nil).ParseWorkbook(workbook(t, []interface{}{"Brand", "Model"}))
	assert.ErrorIs(t, err, ErrEmptyWorkbook)

	_, err = newTestImporter(nil).ParseWorkbook(bytes.NewBufferString("not a workbook"))
	assert.Error(t, err)
}

func TestImportWorkbook_MissingBrandFailsCleanly(t *testing.T) {
	repo := new(MockEquipmentRepository)
	equipments := newTestEquipmentService(repo, &spyCache{})

	buf := workbook(t,
		[]interface{}{"Model", "Serial Number", "Guide Bar Length", "Horse Power", "Stencil of Serial No.", "Other Info", "Is New Equipment"},
		[]interface{}{"MS 250", "SN-1", 18, 3.1, "stencil", "none", "Yes"},
	)
	res, err := newTestImporter(equipments).ImportWorkbook(context.Background(), buf)
	require.NoError(t, err)

	assert.False(t, res.Success)
	assert.Equal(t, 1, res.Details.Failed)
	assert.Contains(t, res.Details.Errors[0], "Row 1: Invalid fields - Brand")
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestExportImport_RoundTrip(t *testing.T) {
	exporter := NewEquipmentExportService(nil, zap.NewNop())
	exporter.now = func() time.Time { return importNow }

	e := *storedEquipment(testID, "MS 250")
	e.GuideBarLength = 18
	e.HorsePower = 3.1
	e.FuelType = entities.FuelElectric
	e.StencilOfSerialNo = "stencil"
	e.OtherInfo = "none"
	e.IsNew = true

	var buf bytes.Buffer
	require.NoError(t, exporter.WriteWorkbook(&buf, dto.NewEquipmentDTOs([]entities.Equipment{e}, importNow)))

	raw, err := newTestImporter(nil).ParseWorkbook(&buf)
	require.NoError(t, err)
	rows := decodeRows(t, raw)
	require.Len(t, rows, 1)

	p := rows[0]
	assert.Equal(t, "Stihl", p.Brand)
	assert.Equal(t, "MS 250", p.Model)
	assert.Equal(t, 18.0, p.GuideBarLength)
	assert.Equal(t, 3.1, p.HorsePower)
	assert.Equal(t, entities.FuelElectric, p.FuelType)
	assert.Equal(t, entities.UseWoodProcessing, p.IntendedUse)
	assert.Equal(t, "2022-01-01", p.DateAcquired.Format("2006-01-02"))
	assert.True(t, *p.IsNew)
	assert.Equal(t, "equipment-data-2024-06-01.xlsx", exporter.ExportFileName())
}

func TestExport_SelectionAndFilter(t *testing.T) {
	repo := new(MockEquipmentRepository)
	exporter := NewEquipmentExportService(repo, zap.NewNop())

	repo.On("ListByIDs", mock.Anything, []string{testID}).Return([]entities.Equipment{*storedEquipment(testID, "MS 250")}, nil).Once()
	repo.On("ListAll", mock.Anything, entities.EquipmentFilter{Brand: "stihl"}).Return([]entities.Equipment{}, nil).Once()

	var buf bytes.Buffer
	require.NoError(t, exporter.Export(context.Background(), &buf, []string{testID}, entities.EquipmentFilter{}))
	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	rows, err := f.GetRows(ExportSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Equipment ID", rows[0][0])
	assert.Equal(t, testID, rows[1][0])

	buf.Reset()
	require.NoError(t, exporter.Export(context.Background(), &buf, nil, entities.EquipmentFilter{Brand: "stihl"}))
	repo.AssertExpectations(t)
}

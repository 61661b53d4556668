package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"chainsaw-registry/internal/dto"
	"chainsaw-registry/internal/entities"
	"chainsaw-registry/internal/repositories"
	"chainsaw-registry/pkg/types"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const ExportSheetName = "Equipment Data"

var exportHeaders = []interface{}{
	"Equipment ID", "Owner First Name", "Owner Last Name", "Owner Middle Name", "Owner Address",
	"Owner Contact Number", "Owner Email", "Owner Preferred Contact Method",
	"Brand", "Model", "Serial Number", "Guide Bar Length (inches)", "Horse Power", "Fuel Type",
	"Date Acquired", "Stencil of Serial Number", "Other Information", "Intended Use",
	"Is New Equipment", "Data Privacy Consent", "Status", "Valid Until", "Days Remaining",
	"Created At", "Updated At",
}

var exportColumnWidths = []float64{
	38, 20, 20, 20, 40, 20, 30, 25, 15, 20, 20, 25, 15, 15, 15, 25, 40, 28, 18, 20, 12, 15, 15, 20, 20,
}

type EquipmentExportService struct {
	equipmentRepository repositories.EquipmentRepositoryInterface
	logger              *zap.Logger
	now                 func() time.Time
}

func NewEquipmentExportService(equipmentRepository repositories.EquipmentRepositoryInterface, logger *zap.Logger) *EquipmentExportService {
	return &EquipmentExportService{equipmentRepository: equipmentRepository, logger: logger, now: time.Now}
}

// ExportFileName is equipment-data-YYYY-MM-DD.xlsx for the current day.
func (s *EquipmentExportService) ExportFileName() string {
	return fmt.Sprintf("equipment-data-%s.xlsx", s.now().Format(types.DateLayout))
}

// Export writes the selected records, or every record matching filter when
// ids is empty.
func (s *EquipmentExportService) Export(ctx context.Context, w io.Writer, ids []string, filter entities.EquipmentFilter) error {
	var (
		list []entities.Equipment
		err  error
	)
	if len(ids) > 0 {
		list, err = s.equipmentRepository.ListByIDs(ctx, ids)
	} else {
		list, err = s.equipmentRepository.ListAll(ctx, filter)
	}
	if err != nil {
		s.logger.Error("Export: failed to load equipments", zap.Error(err))
		return err
	}
	return s.WriteWorkbook(w, dto.NewEquipmentDTOs(list, s.now()))
}

func (s *EquipmentExportService) WriteWorkbook(w io.Writer, items []dto.EquipmentDTO) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ExportSheetName); err != nil {
		return err
	}
	if err := f.SetSheetRow(ExportSheetName, "A1", &exportHeaders); err != nil {
		return err
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"08933D"}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	lastCol, _ := excelize.ColumnNumberToName(len(exportHeaders))
	if err := f.SetCellStyle(ExportSheetName, "A1", lastCol+"1", style); err != nil {
		return err
	}

	for i, item := range items {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := exportRow(item)
		if err := f.SetSheetRow(ExportSheetName, cell, &row); err != nil {
			return err
		}
	}

	for i, width := range exportColumnWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(ExportSheetName, col, col, width); err != nil {
			return err
		}
	}

	return f.Write(w)
}

func exportRow(e dto.EquipmentDTO) []interface{} {
	const stamp = "2006-01-02 15:04:05"
	return []interface{}{
		e.ID,
		e.OwnerFirstName.String, e.OwnerLastName.String, e.OwnerMiddleName.String, e.OwnerAddress.String,
		e.OwnerContactNumber.String, e.OwnerEmail.String, e.OwnerPreferContactMethod.String,
		e.Brand, e.Model, e.SerialNumber, e.GuideBarLength, e.HorsePower, e.FuelType,
		e.DateAcquired.Format(types.DateLayout), e.StencilOfSerialNo, e.OtherInfo, e.IntendedUse,
		yesNo(e.IsNew), yesNo(e.DataPrivacyConsent), string(e.Status),
		e.ValidUntil.Format(types.DateLayout), e.DaysRemaining,
		e.CreatedAt.Format(stamp), e.UpdatedAt.Format(stamp),
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

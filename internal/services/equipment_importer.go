package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"chainsaw-registry/internal/dto"
	"chainsaw-registry/internal/entities"
	"chainsaw-registry/pkg/types"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

var ErrEmptyWorkbook = errors.New("workbook must have a header row and at least one data row")

// Column aliases per field, in precedence order. The first alias with a
// non-empty cell wins.
var (
	aliasOwnerFirstName  = []string{"Owner First Name", "First Name"}
	aliasOwnerMiddleName = []string{"Owner Middle Name", "Middle Name"}
	aliasOwnerLastName   = []string{"Owner Last Name", "Last Name"}
	aliasOwnerAddress    = []string{"Owner Address", "Address"}
	aliasOwnerContact    = []string{"Owner Contact Number", "Contact Number"}
	aliasOwnerEmail      = []string{"Owner Email", "Email"}
	aliasOwnerPreferred  = []string{"Owner Preferred Contact Method", "Preferred Contact Method"}
	aliasBrand           = []string{"Brand", "Chainsaw Brand"}
	aliasModel           = []string{"Model", "Chainsaw Model"}
	aliasSerialNumber    = []string{"Serial Number", "Chainsaw Serial Number", "Serial No."}
	aliasGuideBarLength  = []string{"Guide Bar Length (inches)", "Guide Bar Length", "Length of Guide Bar"}
	aliasHorsePower      = []string{"Horse Power", "Horsepower"}
	aliasFuelType        = []string{"Fuel Type"}
	aliasDateAcquired    = []string{"Date Acquired", "Date of Acquisition"}
	aliasStencil         = []string{"Stencil of Serial Number", "Stencil of Serial No."}
	aliasOtherInfo       = []string{"Other Information", "Other Info"}
	aliasIntendedUse     = []string{"Intended Use", "Intended Use of Chainsaw"}
	aliasIsNew           = []string{"Is New Equipment", "New/Renewal", "Registration Type"}
	aliasConsent         = []string{"Data Privacy Consent"}
)

var importDateLayouts = []string{
	time.RFC3339,
	types.DateLayout,
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
}

type EquipImportService struct {
	equipments EquipmentServiceInterface
	logger     *zap.Logger
	now        func() time.Time
}

func NewEquipImportService(equipments EquipmentServiceInterface, logger *zap.Logger) *EquipImportService {
	return &EquipImportService{equipments: equipments, logger: logger, now: time.Now}
}

// ImportWorkbook parses r and hands the rows to BulkImport.
func (s *EquipImportService) ImportWorkbook(ctx context.Context, r io.Reader) (dto.BatchResult, error) {
	rows, err := s.ParseWorkbook(r)
	if err != nil {
		s.logger.Warn("ImportWorkbook: failed to parse workbook", zap.Error(err))
		return dto.BatchResult{}, err
	}
	s.logger.Info("ImportWorkbook: parsed rows", zap.Int("rows", len(rows)))
	return s.equipments.BulkImport(ctx, rows), nil
}

// ParseWorkbook reads the first sheet of an xlsx workbook. The first
// non-empty row is the header; entirely empty rows below it are skipped.
func (s *EquipImportService) ParseWorkbook(r io.Reader) ([]json.RawMessage, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyWorkbook
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	headerAt := -1
	for i, row := range rows {
		if !isBlankRow(row) {
			headerAt = i
			break
		}
	}
	if headerAt < 0 {
		return nil, ErrEmptyWorkbook
	}

	index := make(map[string]int, len(rows[headerAt]))
	for col, name := range rows[headerAt] {
		key := headerKey(name)
		if _, seen := index[key]; key != "" && !seen {
			index[key] = col
		}
	}

	now := s.now()
	out := make([]json.RawMessage, 0, len(rows)-headerAt-1)
	for _, row := range rows[headerAt+1:] {
		if isBlankRow(row) {
			continue
		}
		payload := mapImportRow(sheetRow{index: index, cells: row}, now)
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode row: %w", err)
		}
		out = append(out, raw)
	}
	if len(out) == 0 {
		return nil, ErrEmptyWorkbook
	}
	return out, nil
}

type sheetRow struct {
	index map[string]int
	cells []string
}

// text returns the first non-empty cell among aliases.
func (r sheetRow) text(aliases []string) string {
	for _, alias := range aliases {
		col, ok := r.index[headerKey(alias)]
		if !ok || col >= len(r.cells) {
			continue
		}
		if v := strings.TrimSpace(r.cells[col]); v != "" {
			return v
		}
	}
	return ""
}

func mapImportRow(r sheetRow, now time.Time) dto.CreateEquipmentDTO {
	isNew := parseImportBool(r.text(aliasIsNew))

	return dto.CreateEquipmentDTO{
		OwnerFirstName:           r.text(aliasOwnerFirstName),
		OwnerMiddleName:          r.text(aliasOwnerMiddleName),
		OwnerLastName:            r.text(aliasOwnerLastName),
		OwnerAddress:             r.text(aliasOwnerAddress),
		OwnerContactNumber:       r.text(aliasOwnerContact),
		OwnerEmail:               r.text(aliasOwnerEmail),
		OwnerPreferContactMethod: r.text(aliasOwnerPreferred),

		Brand:             r.text(aliasBrand),
		Model:             r.text(aliasModel),
		SerialNumber:      r.text(aliasSerialNumber),
		GuideBarLength:    parseImportNumber(r.text(aliasGuideBarLength)),
		HorsePower:        parseImportNumber(r.text(aliasHorsePower)),
		FuelType:          enumOr(r.text(aliasFuelType), entities.FuelGas),
		DateAcquired:      types.NewDate(parseImportDate(r.text(aliasDateAcquired), now)),
		StencilOfSerialNo: r.text(aliasStencil),
		OtherInfo:         r.text(aliasOtherInfo),
		IntendedUse:       entities.NormalizeUseType(enumOr(r.text(aliasIntendedUse), entities.UseOther)),
		IsNew:             &isNew,

		DataPrivacyConsent: parseImportBool(r.text(aliasConsent)),
	}
}

func headerKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func parseImportNumber(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// parseImportBool accepts yes/true/y/1, and registration-type wording that
// says "new" without being a renewal.
func parseImportBool(s string) bool {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "yes", "true", "y", "1":
		return true
	}
	return strings.Contains(v, "new") && !strings.Contains(v, "renew")
}

// parseImportDate accepts Excel serial numbers and a set of text layouts.
// Anything else falls back to now.
func parseImportDate(s string, now time.Time) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return now
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if serial > 0 {
			if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
				return t
			}
		}
		return now
	}
	for _, layout := range importDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return now
}

// enumOr upper-cases s and turns spaces and hyphens into underscores, so
// "Wood Processing" becomes WOOD_PROCESSING.
func enumOr(s, fallback string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(strings.ToUpper(s))
	return s
}

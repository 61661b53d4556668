package entities

import (
	"time"

	"chainsaw-registry/pkg/types"

	"github.com/aarondl/null/v8"
)

const (
	FuelGas      = "GAS"
	FuelDiesel   = "DIESEL"
	FuelElectric = "ELECTRIC"
	FuelOther    = "OTHER"
)

var FuelTypes = []string{FuelGas, FuelDiesel, FuelElectric, FuelOther}

const (
	UseWoodProcessing           = "WOOD_PROCESSING"
	UsePrivatePlantationCutting = "PRIVATE_PLANTATION_CUTTING"
	UseGovernmentLegal          = "GOVERNMENT_LEGAL"
	UseBarangayOfficialCutting  = "BARANGAY_OFFICIAL_CUTTING"
	UseOther                    = "OTHER"
)

var UseTypes = []string{
	UseWoodProcessing,
	UsePrivatePlantationCutting,
	UseGovernmentLegal,
	UseBarangayOfficialCutting,
	UseOther,
}

// LegacyUseTypes maps first-revision values to their current counterparts.
var LegacyUseTypes = map[string]string{
	"TREE_CUTTING":          UsePrivatePlantationCutting,
	"LEGAL_PURPOSES":        UseGovernmentLegal,
	"OFFICIAL_TREE_CUTTING": UseBarangayOfficialCutting,
}

var UseTypeLabels = map[string]string{
	UseWoodProcessing:           "Wood Processing",
	UsePrivatePlantationCutting: "Private Plantation Cutting",
	UseGovernmentLegal:          "Government / Legal Purposes",
	UseBarangayOfficialCutting:  "Barangay Official Cutting",
	UseOther:                    "Other",
}

// NormalizeUseType returns the current-revision value for s, or s unchanged.
func NormalizeUseType(s string) string {
	if mapped, ok := LegacyUseTypes[s]; ok {
		return mapped
	}
	return s
}

type Equipment struct {
	ID string `json:"id" db:"id"`

	OwnerFirstName           null.String `json:"owner_first_name" db:"owner_first_name"`
	OwnerMiddleName          null.String `json:"owner_middle_name" db:"owner_middle_name"`
	OwnerLastName            null.String `json:"owner_last_name" db:"owner_last_name"`
	OwnerAddress             null.String `json:"owner_address" db:"owner_address"`
	OwnerContactNumber       null.String `json:"owner_contact_number" db:"owner_contact_number"`
	OwnerEmail               null.String `json:"owner_email" db:"owner_email"`
	OwnerPreferContactMethod null.String `json:"owner_preferred_contact_method" db:"owner_preferred_contact_method"`
	OwnerIDURL               null.String `json:"owner_id_url" db:"owner_id_url"`

	Brand              string    `json:"brand" db:"brand"`
	Model              string    `json:"model" db:"model"`
	SerialNumber       string    `json:"serial_number" db:"serial_number"`
	GuideBarLength     float64   `json:"guide_bar_length" db:"guide_bar_length"`
	HorsePower         float64   `json:"horse_power" db:"horse_power"`
	FuelType           string    `json:"fuel_type" db:"fuel_type"`
	DateAcquired       time.Time `json:"date_acquired" db:"date_acquired"`
	StencilOfSerialNo  string    `json:"stencil_of_serial_no" db:"stencil_of_serial_no"`
	OtherInfo          string    `json:"other_info" db:"other_info"`
	IntendedUse        string    `json:"intended_use" db:"intended_use"`
	IsNew              bool      `json:"is_new" db:"is_new"`
	DataPrivacyConsent bool      `json:"data_privacy_consent" db:"data_privacy_consent"`

	Documents map[string]string `json:"documents,omitempty" db:"-"`

	types.BaseEntity
}

// EquipmentFilter is the parsed listing query.
type EquipmentFilter struct {
	Search       string
	Brand        string
	Model        string
	SerialNumber string
	FuelTypes    []string
	IntendedUses []string
	Statuses     []string
	Page         int
	Limit        int
}

// Offset is the zero-based row offset of the requested page.
func (f EquipmentFilter) Offset() int {
	if f.Page < 1 || f.Limit < 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit
}

// HasColumnFilter reports whether any per-column text filter is set.
// When true the free-text search is ignored.
func (f EquipmentFilter) HasColumnFilter() bool {
	return f.Brand != "" || f.Model != "" || f.SerialNumber != ""
}

package dto

import (
	"encoding/json"
	"strings"
	"time"

	"chainsaw-registry/internal/entities"
	"chainsaw-registry/pkg/types"
	"chainsaw-registry/pkg/validity"

	"github.com/aarondl/null/v8"
)

type CreateEquipmentDTO struct {
	OwnerFirstName           string `json:"owner_first_name"               validate:"omitempty,min=2,max=50"`
	OwnerMiddleName          string `json:"owner_middle_name"              validate:"omitempty,min=2,max=50"`
	OwnerLastName            string `json:"owner_last_name"                validate:"omitempty,min=2,max=50"`
	OwnerAddress             string `json:"owner_address"                  validate:"omitempty,min=10,max=200"`
	OwnerContactNumber       string `json:"owner_contact_number"           validate:"omitempty,max=50"`
	OwnerEmail               string `json:"owner_email"                    validate:"omitempty,email"`
	OwnerPreferContactMethod string `json:"owner_preferred_contact_method" validate:"omitempty,max=50"`
	OwnerIDURL               string `json:"owner_id_url"                   validate:"omitempty,max=2048"`

	Brand             string     `json:"brand"                validate:"required,min=2,max=100"`
	Model             string     `json:"model"                validate:"required,min=2,max=100"`
	SerialNumber      string     `json:"serial_number"        validate:"required"`
	GuideBarLength    float64    `json:"guide_bar_length"     validate:"required,gt=0"`
	HorsePower        float64    `json:"horse_power"          validate:"required,gt=0"`
	FuelType          string     `json:"fuel_type"            validate:"required,fuel_type"`
	DateAcquired      types.Date `json:"date_acquired"        validate:"required"`
	StencilOfSerialNo string     `json:"stencil_of_serial_no" validate:"required"`
	OtherInfo         string     `json:"other_info"           validate:"required"`
	IntendedUse       string     `json:"intended_use"         validate:"required,use_type"`
	IsNew             *bool      `json:"is_new"               validate:"required"`

	DataPrivacyConsent bool `json:"data_privacy_consent"`

	Documents map[string]string `json:"documents,omitempty" validate:"omitempty,dive,keys,doc_type,endkeys,max=2048"`
}

// Normalize trims every text field and maps legacy intended-use values.
func (d *CreateEquipmentDTO) Normalize() {
	for _, s := range []*string{
		&d.OwnerFirstName, &d.OwnerMiddleName, &d.OwnerLastName, &d.OwnerAddress,
		&d.OwnerContactNumber, &d.OwnerEmail, &d.OwnerPreferContactMethod, &d.OwnerIDURL,
		&d.Brand, &d.Model, &d.SerialNumber, &d.FuelType, &d.StencilOfSerialNo,
		&d.OtherInfo, &d.IntendedUse,
	} {
		*s = strings.TrimSpace(*s)
	}
	d.IntendedUse = entities.NormalizeUseType(d.IntendedUse)
	d.Documents = trimDocuments(d.Documents)
}

// ToEntity builds the record to insert. ID and timestamps are set by the
// repository.
func (d CreateEquipmentDTO) ToEntity() entities.Equipment {
	isNew := false
	if d.IsNew != nil {
		isNew = *d.IsNew
	}
	return entities.Equipment{
		OwnerFirstName:           optional(d.OwnerFirstName),
		OwnerMiddleName:          optional(d.OwnerMiddleName),
		OwnerLastName:            optional(d.OwnerLastName),
		OwnerAddress:             optional(d.OwnerAddress),
		OwnerContactNumber:       optional(d.OwnerContactNumber),
		OwnerEmail:               optional(d.OwnerEmail),
		OwnerPreferContactMethod: optional(d.OwnerPreferContactMethod),
		OwnerIDURL:               optional(d.OwnerIDURL),
		Brand:                    d.Brand,
		Model:                    d.Model,
		SerialNumber:             d.SerialNumber,
		GuideBarLength:           d.GuideBarLength,
		HorsePower:               d.HorsePower,
		FuelType:                 d.FuelType,
		DateAcquired:             d.DateAcquired.Time,
		StencilOfSerialNo:        d.StencilOfSerialNo,
		OtherInfo:                d.OtherInfo,
		IntendedUse:              d.IntendedUse,
		IsNew:                    isNew,
		DataPrivacyConsent:       d.DataPrivacyConsent,
		Documents:                d.Documents,
	}
}

// UpdateEquipmentDTO is a partial payload: only present fields are written.
// Owner fields use null types so that an empty string clears the value.
type UpdateEquipmentDTO struct {
	OwnerFirstName           null.String `json:"owner_first_name"               validate:"omitempty,min=2,max=50"`
	OwnerMiddleName          null.String `json:"owner_middle_name"              validate:"omitempty,min=2,max=50"`
	OwnerLastName            null.String `json:"owner_last_name"                validate:"omitempty,min=2,max=50"`
	OwnerAddress             null.String `json:"owner_address"                  validate:"omitempty,min=10,max=200"`
	OwnerContactNumber       null.String `json:"owner_contact_number"           validate:"omitempty,max=50"`
	OwnerEmail               null.String `json:"owner_email"                    validate:"omitempty,email"`
	OwnerPreferContactMethod null.String `json:"owner_preferred_contact_method" validate:"omitempty,max=50"`
	OwnerIDURL               null.String `json:"owner_id_url"                   validate:"omitempty,max=2048"`

	Brand             *string     `json:"brand,omitempty"                validate:"omitnil,min=2,max=100"`
	Model             *string     `json:"model,omitempty"                validate:"omitnil,min=2,max=100"`
	SerialNumber      *string     `json:"serial_number,omitempty"        validate:"omitnil,min=1"`
	GuideBarLength    *float64    `json:"guide_bar_length,omitempty"     validate:"omitnil,gt=0"`
	HorsePower        *float64    `json:"horse_power,omitempty"          validate:"omitnil,gt=0"`
	FuelType          *string     `json:"fuel_type,omitempty"            validate:"omitnil,fuel_type"`
	DateAcquired      *types.Date `json:"date_acquired,omitempty"        validate:"omitnil,required"`
	StencilOfSerialNo *string     `json:"stencil_of_serial_no,omitempty" validate:"omitnil,min=1"`
	OtherInfo         *string     `json:"other_info,omitempty"           validate:"omitnil,min=1"`
	IntendedUse       *string     `json:"intended_use,omitempty"         validate:"omitnil,use_type"`
	IsNew             *bool       `json:"is_new,omitempty"`

	DataPrivacyConsent *bool `json:"data_privacy_consent,omitempty"`

	Documents map[string]string `json:"documents,omitempty" validate:"omitempty,dive,keys,doc_type,endkeys,max=2048"`
}

func (d *UpdateEquipmentDTO) Normalize() {
	for _, s := range []*null.String{
		&d.OwnerFirstName, &d.OwnerMiddleName, &d.OwnerLastName, &d.OwnerAddress,
		&d.OwnerContactNumber, &d.OwnerEmail, &d.OwnerPreferContactMethod, &d.OwnerIDURL,
	} {
		if s.Valid {
			s.String = strings.TrimSpace(s.String)
		}
	}
	for _, s := range []*string{
		d.Brand, d.Model, d.SerialNumber, d.FuelType, d.StencilOfSerialNo, d.OtherInfo, d.IntendedUse,
	} {
		if s != nil {
			*s = strings.TrimSpace(*s)
		}
	}
	if d.IntendedUse != nil {
		mapped := entities.NormalizeUseType(*d.IntendedUse)
		d.IntendedUse = &mapped
	}
	d.Documents = trimDocuments(d.Documents)
}

// Changes returns the column/value pairs present in the payload. Owner fields
// sent as empty strings become NULL.
func (d UpdateEquipmentDTO) Changes() map[string]interface{} {
	changes := make(map[string]interface{})

	nullable := map[string]null.String{
		"owner_first_name":               d.OwnerFirstName,
		"owner_middle_name":              d.OwnerMiddleName,
		"owner_last_name":                d.OwnerLastName,
		"owner_address":                  d.OwnerAddress,
		"owner_contact_number":           d.OwnerContactNumber,
		"owner_email":                    d.OwnerEmail,
		"owner_preferred_contact_method": d.OwnerPreferContactMethod,
		"owner_id_url":                   d.OwnerIDURL,
	}
	for col, v := range nullable {
		if v.Valid {
			changes[col] = optional(v.String)
		}
	}

	texts := map[string]*string{
		"brand":                d.Brand,
		"model":                d.Model,
		"serial_number":        d.SerialNumber,
		"fuel_type":            d.FuelType,
		"stencil_of_serial_no": d.StencilOfSerialNo,
		"other_info":           d.OtherInfo,
		"intended_use":         d.IntendedUse,
	}
	for col, v := range texts {
		if v != nil {
			changes[col] = *v
		}
	}

	if d.GuideBarLength != nil {
		changes["guide_bar_length"] = *d.GuideBarLength
	}
	if d.HorsePower != nil {
		changes["horse_power"] = *d.HorsePower
	}
	if d.DateAcquired != nil {
		changes["date_acquired"] = d.DateAcquired.Time
	}
	if d.IsNew != nil {
		changes["is_new"] = *d.IsNew
	}
	if d.DataPrivacyConsent != nil {
		changes["data_privacy_consent"] = *d.DataPrivacyConsent
	}

	return changes
}

// EquipmentDTO is a record as shown to clients, with the derived validity.
type EquipmentDTO struct {
	entities.Equipment
	validity.Validity
	IntendedUseLabel string `json:"intended_use_label"`
}

func NewEquipmentDTO(e entities.Equipment, now time.Time) EquipmentDTO {
	label, ok := entities.UseTypeLabels[e.IntendedUse]
	if !ok {
		label = e.IntendedUse
	}
	return EquipmentDTO{
		Equipment:        e,
		Validity:         validity.Compute(e.DateAcquired, now),
		IntendedUseLabel: label,
	}
}

func NewEquipmentDTOs(list []entities.Equipment, now time.Time) []EquipmentDTO {
	out := make([]EquipmentDTO, 0, len(list))
	for _, e := range list {
		out = append(out, NewEquipmentDTO(e, now))
	}
	return out
}

// EquipmentListDTO is what the listing endpoint and the listing cache hold.
type EquipmentListDTO struct {
	Equipments []EquipmentDTO `json:"equipments"`
	Total      uint64         `json:"total_equipments"`
	Offset     int            `json:"offset"`
	Limit      int            `json:"limit"`
	Page       int            `json:"page"`
}

// BulkImportDTO carries raw rows so that each row is decoded and validated on
// its own.
type BulkImportDTO struct {
	Equipments []json.RawMessage `json:"equipments" validate:"required,min=1"`
}

type BulkDeleteDTO struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,required"`
}

type QRPrintDTO struct {
	IDs  []string `json:"ids" validate:"required,min=1,max=200,dive,required"`
	Size int      `json:"size" validate:"omitempty,min=64,max=1024"`
}

func optional(s string) null.String {
	return null.NewString(s, s != "")
}

func trimDocuments(docs map[string]string) map[string]string {
	if len(docs) == 0 {
		return nil
	}
	out := make(map[string]string, len(docs))
	for k, v := range docs {
		k = strings.ToUpper(strings.TrimSpace(k))
		v = strings.TrimSpace(v)
		if k == "" || v == "" {
			continue
		}
		out[k] = v
	}
	return out
}

// PublicEquipmentDTO is what the QR landing page shows. Owner contact
// details stay private.
type PublicEquipmentDTO struct {
	ID               string          `json:"id"`
	OwnerName        string          `json:"owner_name"`
	Brand            string          `json:"brand"`
	Model            string          `json:"model"`
	SerialNumber     string          `json:"serial_number"`
	FuelType         string          `json:"fuel_type"`
	IntendedUse      string          `json:"intended_use"`
	IntendedUseLabel string          `json:"intended_use_label"`
	DateAcquired     time.Time       `json:"date_acquired"`
	Status           validity.Status `json:"status"`
	ValidUntil       time.Time       `json:"valid_until"`
	DaysRemaining    int             `json:"days_remaining"`
}

func NewPublicEquipmentDTO(d EquipmentDTO) PublicEquipmentDTO {
	var parts []string
	for _, s := range []null.String{d.OwnerFirstName, d.OwnerMiddleName, d.OwnerLastName} {
		if s.Valid && s.String != "" {
			parts = append(parts, s.String)
		}
	}
	return PublicEquipmentDTO{
		ID:               d.ID,
		OwnerName:        strings.Join(parts, " "),
		Brand:            d.Brand,
		Model:            d.Model,
		SerialNumber:     d.SerialNumber,
		FuelType:         d.FuelType,
		IntendedUse:      d.IntendedUse,
		IntendedUseLabel: d.IntendedUseLabel,
		DateAcquired:     d.DateAcquired,
		Status:           d.Status,
		ValidUntil:       d.ValidUntil,
		DaysRemaining:    d.DaysRemaining,
	}
}

package entities

import "time"

const (
	DocRegistrationApplication   = "REGISTRATION_APPLICATION"
	DocOfficialReceipt           = "OFFICIAL_RECEIPT"
	DocSPA                       = "SPA"
	DocStencilSerialPicture      = "STENCIL_SERIAL_PICTURE"
	DocChainsawPicture           = "CHAINSAW_PICTURE"
	DocForestTenureAgreement     = "FOREST_TENURE_AGREEMENT"
	DocBusinessPermit            = "BUSINESS_PERMIT"
	DocCertificateOfRegistration = "CERTIFICATE_OF_REGISTRATION"
	DocLGUBusinessPermit         = "LGU_BUSINESS_PERMIT"
	DocWoodProcessingPermit      = "WOOD_PROCESSING_PERMIT"
	DocGovernmentCertification   = "GOVERNMENT_CERTIFICATION"
)

var DocumentTypes = []string{
	DocRegistrationApplication,
	DocOfficialReceipt,
	DocSPA,
	DocStencilSerialPicture,
	DocChainsawPicture,
	DocForestTenureAgreement,
	DocBusinessPermit,
	DocCertificateOfRegistration,
	DocLGUBusinessPermit,
	DocWoodProcessingPermit,
	DocGovernmentCertification,
}

type EquipmentDocument struct {
	EquipmentID string    `json:"equipment_id" db:"equipment_id"`
	DocType     string    `json:"doc_type" db:"doc_type"`
	FileURL     string    `json:"file_url" db:"file_url"`
	UploadedAt  time.Time `json:"uploaded_at" db:"uploaded_at"`
}

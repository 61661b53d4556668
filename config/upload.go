package config

type UploadConfig struct {
	AllowedMimeTypes []string
	MaxSizeMB        int64
	PathPrefix       string
	Public           bool
}

var UploadContexts = map[string]UploadConfig{
	"owner_id": {
		AllowedMimeTypes: []string{"image/jpeg", "image/png", "image/webp", "application/pdf"},
		MaxSizeMB:        4,
		PathPrefix:       "owners",
		Public:           true,
	},
	"equipment_document": {
		AllowedMimeTypes: []string{"image/jpeg", "image/png", "image/webp", "application/pdf"},
		MaxSizeMB:        4,
		PathPrefix:       "documents",
		Public:           true,
	},
	"equipment_photo": {
		AllowedMimeTypes: []string{"image/jpeg", "image/png", "image/webp"},
		MaxSizeMB:        4,
		PathPrefix:       "photos",
		Public:           true,
	},
	"import_workbook": {
		AllowedMimeTypes: []string{"application/zip", "application/octet-stream"},
		MaxSizeMB:        10,
		PathPrefix:       "imports",
	},
}

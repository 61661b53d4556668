package validation

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"slices"

	"chainsaw-registry/config"
)

// ValidateFile checks size and sniffed MIME type against the rules of
// contextName (a key of config.UploadContexts). The reader is rewound.
func ValidateFile(fileHeader *multipart.FileHeader, file io.ReadSeeker, contextName string) error {
	rules, ok := config.UploadContexts[contextName]
	if !ok {
		return fmt.Errorf("unknown upload context '%s'", contextName)
	}

	if rules.MaxSizeMB > 0 {
		maxSizeBytes := rules.MaxSizeMB * 1024 * 1024
		if fileHeader.Size > maxSizeBytes {
			return fmt.Errorf("file size (%.2f MB) exceeds the %d MB limit", float64(fileHeader.Size)/1024/1024, rules.MaxSizeMB)
		}
	}

	buffer := make([]byte, 512)
	if _, err := file.Read(buffer); err != nil && err != io.EOF {
		return fmt.Errorf("failed to read file")
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to process file")
	}

	mimeType := http.DetectContentType(buffer)
	if !slices.Contains(rules.AllowedMimeTypes, mimeType) {
		return fmt.Errorf("file type %s is not allowed", mimeType)
	}

	return nil
}

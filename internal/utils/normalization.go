package utils

import (
	"strings"

	"legaldraft/drafter/internal/models"
)

// DocumentTypeLabel turns "rental_agreement" into "rental agreement"
func DocumentTypeLabel(documentType string) string {
	return strings.ReplaceAll(documentType, "_", " ")
}

// FileNameFromPath returns the last segment of a server file path, split on
// either slash style, or the default name when that segment is empty.
func FileNameFromPath(filePath string) string {
	name := filePath
	if i := strings.LastIndexAny(filePath, `/\`); i >= 0 {
		name = filePath[i+1:]
	}

	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." {
		return models.DefaultFileName
	}
	return name
}

func NormalizeDocumentType(documentType string) string {
	return strings.ToLower(strings.TrimSpace(documentType))
}

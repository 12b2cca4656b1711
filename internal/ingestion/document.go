package ingestion

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spigell/skillscribe/internal/ai"
)

const (
	MIMEPDF  = "application/pdf"
	MIMEDOC  = "application/msword"
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMETXT  = "text/plain"
)

var ErrUnsupportedType = errors.New("unsupported file type")

// DetectMIMEType maps a CV file extension to the MIME type sent to the model.
func DetectMIMEType(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".pdf":
		return MIMEPDF, nil
	case ".doc":
		return MIMEDOC, nil
	case ".docx":
		return MIMEDOCX, nil
	case ".txt":
		return MIMETXT, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, ext)
	}
}

// ReadDocument loads a CV file fully into memory.
func ReadDocument(path string) (ai.Document, error) {
	mimeType, err := DetectMIMEType(path)
	if err != nil {
		return ai.Document{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return ai.Document{}, fmt.Errorf("read %s: %w", path, err)
	}

	return ai.Document{
		Name:     filepath.Base(path),
		MIMEType: mimeType,
		Data:     data,
	}, nil
}

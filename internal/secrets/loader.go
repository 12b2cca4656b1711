package secrets

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

var (
	// ErrNotConfigured is returned when neither a value nor a file is set.
	ErrNotConfigured = errors.New("not configured")
	ErrEmptyFile     = errors.New("file is empty")
)

// Source names a credential and where it can be read from. A non-blank File
// always wins over Value.
type Source struct {
	Name  string
	Value string
	File  string
}

func (s Source) label() string {
	if name := strings.TrimSpace(s.Name); name != "" {
		return name
	}
	return "secret"
}

// Load resolves the credential and trims surrounding whitespace.
func Load(src Source) (string, error) {
	path := strings.TrimSpace(src.File)
	if path == "" {
		if secret := strings.TrimSpace(src.Value); secret != "" {
			return secret, nil
		}
		return "", fmt.Errorf("%s is %w", src.label(), ErrNotConfigured)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s from %q: %w", src.label(), path, err)
	}

	secret := strings.TrimSpace(string(data))
	if secret == "" {
		return "", fmt.Errorf("%s %q: %w", src.label(), path, ErrEmptyFile)
	}
	return secret, nil
}

package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/Swochhanda14/frontbooth/validation"
	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

// FileRef describes the file at path the way a browser fills in a selected
// file: base name, size and a detected MIME type. Parameters such as
// "; charset=utf-8" are dropped from the type.
func FileRef(path string) (validation.FileRef, error) {
	info, err := os.Stat(path)
	if err != nil {
		return validation.FileRef{}, fmt.Errorf("reading %s: %w", path, err)
	}
	if info.IsDir() {
		return validation.FileRef{}, fmt.Errorf("%s is a directory", path)
	}

	detected, err := mimetype.DetectFile(path)
	if err != nil {
		return validation.FileRef{}, fmt.Errorf("detecting type of %s: %w", path, err)
	}

	zap.L().Debug("Detected file type", zap.String("path", path), zap.String("type", detected.String()))
	return validation.FileRef{
		Name: info.Name(),
		Size: info.Size(),
		Type: baseType(detected),
	}, nil
}

func baseType(m *mimetype.MIME) string {
	mime, _, _ := strings.Cut(m.String(), ";")
	return mime
}

// Package input resolves the text to summarize from an uploaded file or a pasted value.
package input

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"smartsummary/internal/failure"
)

// Mode is the input channel selected by the user.
type Mode string

const (
	ModeUpload Mode = "upload"
	ModePaste  Mode = "paste"
)

// AllowedExtension is the only accepted upload type.
const AllowedExtension = ".txt"

var (
	ErrInvalidUTF8 = errors.New("content is not valid UTF-8")
	ErrUnsupported = errors.New("unsupported file type")
	ErrUnknownMode = errors.New("input mode must be upload or paste")
)

// File is an uploaded file. A nil *File means nothing was uploaded.
type File struct {
	Name   string
	Reader io.Reader
}

// ParseMode maps a form value to a Mode. An empty value defaults to paste.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeUpload:
		return ModeUpload, nil
	case ModePaste, "":
		return ModePaste, nil
	default:
		return "", failure.InvalidSettings(ErrUnknownMode)
	}
}

// Collect returns the input text for the given mode. The text is returned
// verbatim; emptiness is checked by the summarization step.
func Collect(mode Mode, file *File, pasted string) (string, error) {
	switch mode {
	case ModePaste:
		return pasted, nil
	case ModeUpload:
		if file == nil || file.Reader == nil {
			return "", nil
		}
		return decode(file)
	default:
		return "", failure.InvalidSettings(ErrUnknownMode)
	}
}

func decode(file *File) (string, error) {
	if ext := strings.ToLower(filepath.Ext(file.Name)); ext != AllowedExtension {
		return "", failure.Decode(fmt.Errorf("%w: %q", ErrUnsupported, ext))
	}
	b, err := io.ReadAll(file.Reader)
	if err != nil {
		return "", failure.Decode(fmt.Errorf("read upload: %w", err))
	}
	if !utf8.Valid(b) {
		return "", failure.Decode(ErrInvalidUTF8)
	}
	return string(b), nil
}

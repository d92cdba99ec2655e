// Package export renders a summary into downloadable documents.
package export

import (
	"errors"
	"fmt"

	"smartsummary/internal/model"
)

var (
	ErrEmptySummary      = errors.New("nothing to export: summary is empty")
	ErrUnsupportedFormat = errors.New("unsupported export format")
	// ErrUnsupportedText means the summary holds characters no embedded font can draw.
	ErrUnsupportedText = errors.New("summary contains characters the pdf fonts cannot draw")
)

// Exporter renders summary text into one document format.
type Exporter interface {
	Format() model.Format
	// Filename is the name offered to the browser for download.
	Filename() string
	ContentType() string
	Render(summary string) ([]byte, error)
}

// Registry looks exporters up by format.
type Registry struct {
	exporters map[model.Format]Exporter
}

func NewRegistry(exporters ...Exporter) *Registry {
	r := &Registry{exporters: make(map[model.Format]Exporter, len(exporters))}
	for _, e := range exporters {
		r.exporters[e.Format()] = e
	}
	return r
}

// Get returns the exporter for f or ErrUnsupportedFormat.
func (r *Registry) Get(f model.Format) (Exporter, error) {
	e, ok := r.exporters[f]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
	return e, nil
}

// Package ui renders the single-page summarizer front end.
package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"smartsummary/internal/failure"
	"smartsummary/internal/input"
	"smartsummary/internal/model"
)

//go:embed templates/*.html
var templates embed.FS

// StatusClasses names the CSS classes of the status box, one per state.
type StatusClasses struct {
	Idle       model.Status
	InProgress model.Status
	Success    model.Status
	Error      model.Status
}

// PageData is everything the page needs to draw the input area, the
// settings sidebar and the status messages.
type PageData struct {
	Title             string
	Options           model.SettingsOptions
	Formats           []model.Format
	AcceptExtension   string
	Status            StatusClasses
	MessageInProgress string
	MessageSuccess    string
	MessageEmptyInput string
}

// NewPageData fills PageData from the fixed settings options.
func NewPageData() PageData {
	return PageData{
		Title:           "Smart Article Summarizer",
		Options:         model.Options(),
		Formats:         model.Formats,
		AcceptExtension: input.AllowedExtension,
		Status: StatusClasses{
			Idle:       model.StatusIdle,
			InProgress: model.StatusInProgress,
			Success:    model.StatusSuccess,
			Error:      model.StatusError,
		},
		MessageInProgress: model.MessageInProgress,
		MessageSuccess:    model.MessageSuccess,
		MessageEmptyInput: failure.MessageEmptyInput,
	}
}

// Page is the parsed index template.
type Page struct {
	tmpl *template.Template
}

func NewPage() (*Page, error) {
	tmpl, err := template.ParseFS(templates, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("parse ui template: %w", err)
	}
	return &Page{tmpl: tmpl}, nil
}

func (p *Page) Render(w io.Writer, data PageData) error {
	return p.tmpl.ExecuteTemplate(w, "index.html", data)
}

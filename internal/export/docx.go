package export

import (
	"fmt"
	"os"

	"github.com/gomutex/godocx"

	"smartsummary/internal/model"
)

// DOCX writes a Word document with a "Summary" title followed by one paragraph.
type DOCX struct {
	tempDir string
}

// NewDOCX renders through transient files created in tempDir ("" = os.TempDir()).
func NewDOCX(tempDir string) *DOCX {
	return &DOCX{tempDir: tempDir}
}

func (d *DOCX) Format() model.Format { return model.FormatDOCX }
func (d *DOCX) Filename() string     { return "summary.docx" }
func (d *DOCX) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
}

func (d *DOCX) Render(summary string) ([]byte, error) {
	if summary == "" {
		return nil, ErrEmptySummary
	}

	doc, err := godocx.NewDocument()
	if err != nil {
		return nil, fmt.Errorf("new document: %w", err)
	}
	if _, err := doc.AddHeading("Summary", 0); err != nil {
		return nil, fmt.Errorf("add heading: %w", err)
	}
	doc.AddParagraph(summary)

	// Each render gets its own file so concurrent exports never collide.
	f, err := os.CreateTemp(d.tempDir, "summary-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create transient file: %w", err)
	}
	path := f.Name()
	_ = f.Close()
	defer os.Remove(path)

	if err := doc.SaveTo(path); err != nil {
		return nil, fmt.Errorf("save docx: %w", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read transient file: %w", err)
	}
	return b, nil
}

package export

import (
	"bytes"
	_ "embed"
	"fmt"
	"unicode"

	"github.com/go-pdf/fpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"golang.org/x/text/encoding/charmap"

	"smartsummary/internal/model"
)

const (
	pdfFontFamily        = "Arial"
	pdfUnicodeFontFamily = "Unifont"
	pdfFontSize          = 12
	pdfLineHeight        = 10
)

// unicodeFont is GNU Unifont cut down to Latin, general punctuation and
// Devanagari. See fonts/README.md.
//
//go:embed fonts/unifont-latin-devanagari.ttf
var unicodeFont []byte

// unicodeFontCoverage lists the code points unicodeFont has glyphs for.
var unicodeFontCoverage = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0020, Hi: 0x007e, Stride: 1},
		{Lo: 0x00a0, Hi: 0x017f, Stride: 1},
		{Lo: 0x0900, Hi: 0x097f, Stride: 1},
		{Lo: 0x2000, Hi: 0x206f, Stride: 1},
		{Lo: 0x20a0, Hi: 0x20bf, Stride: 1},
		{Lo: 0x2122, Hi: 0x2122, Stride: 1},
		{Lo: 0x25cc, Hi: 0x25cc, Stride: 1},
		{Lo: 0xa8e0, Hi: 0xa8ff, Stride: 1},
		{Lo: 0xfffd, Hi: 0xfffd, Stride: 1},
	},
	LatinOffset: 1,
}

func init() {
	// pdfcpu must not create a config dir in the user's home.
	api.DisableConfigDir()
}

// PDF lays the summary out in a single A4 column with automatic line wrapping.
type PDF struct {
	compress bool
}

func NewPDF(compress bool) *PDF {
	return &PDF{compress: compress}
}

func (p *PDF) Format() model.Format { return model.FormatPDF }
func (p *PDF) Filename() string     { return "summary.pdf" }
func (p *PDF) ContentType() string  { return "application/pdf" }

// Render writes the document and verifies it with pdfcpu before returning it.
func (p *PDF) Render(summary string) ([]byte, error) {
	if summary == "" {
		return nil, ErrEmptySummary
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(p.compress)
	pdf.SetTitle("Summary", true)
	pdf.SetCreator("smartsummary", true)
	pdf.AddPage()

	if fitsCP1252(summary) {
		pdf.SetFont(pdfFontFamily, "", pdfFontSize)
		tr := pdf.UnicodeTranslatorFromDescriptor("")
		pdf.MultiCell(0, pdfLineHeight, tr(summary), "", "", false)
	} else {
		if r, ok := firstUncovered(summary); ok {
			return nil, fmt.Errorf("%w: %q (U+%04X)", ErrUnsupportedText, r, r)
		}
		pdf.AddUTF8FontFromBytes(pdfUnicodeFontFamily, "", unicodeFont)
		pdf.SetFont(pdfUnicodeFontFamily, "", pdfFontSize)
		// fpdf's justified mode for UTF-8 fonts breaks on one-word lines.
		pdf.MultiCell(0, pdfLineHeight, summary, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}

	if _, err := PageCount(buf.Bytes()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// fitsCP1252 reports whether the core fonts can draw s without substitution.
func fitsCP1252(s string) bool {
	for _, r := range s {
		if _, ok := charmap.Windows1252.EncodeRune(r); !ok {
			return false
		}
	}
	return true
}

func firstUncovered(s string) (rune, bool) {
	for _, r := range s {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
		case !unicode.Is(unicodeFontCoverage, r):
			return r, true
		}
	}
	return 0, false
}

// PageCount validates a PDF and returns its number of pages.
func PageCount(b []byte) (int, error) {
	conf := pdfmodel.NewDefaultConfiguration()
	conf.ValidationMode = pdfmodel.ValidationRelaxed

	if err := api.Validate(bytes.NewReader(b), conf); err != nil {
		return 0, fmt.Errorf("validate pdf: %w", err)
	}
	n, err := api.PageCount(bytes.NewReader(b), conf)
	if err != nil {
		return 0, fmt.Errorf("count pdf pages: %w", err)
	}
	return n, nil
}

package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf/v2"

	"github.com/legalease/legalease/backend/go-services/pkg/logger"
)

// A4 portrait layout constants, in millimetres.
const (
	pageWidth  = 210.0
	pageHeight = 297.0
	margin     = 15.0
	lineHeight = 7.0

	headerFontSize = 16.0
	bodyFontSize   = 12.0
	footerFontSize = 10.0

	// headerSpace reserves room below the centred title before body lines start.
	headerSpace = 10.0
)

// DefaultLineWidth approximates the character count that fits the printable
// width at the body font size.
const DefaultLineWidth = 90

// DefaultLinesPerPage is the body capacity of one page after the header and
// footer bands are reserved: (297 - 2*15 - 10 - 7) / 7 rounded down.
const DefaultLinesPerPage = 35

// ExportError is a non-font export failure (rendering, output encoding).
// Font problems never produce it: a missing font degrades to the default
// silently.
type ExportError struct {
	Err error
}

func (e *ExportError) Error() string { return fmt.Sprintf("export failed: %v", e.Err) }
func (e *ExportError) Unwrap() error { return e.Err }

// Pipeline renders document text into a paginated PDF. The zero value is
// not usable; construct with NewPipeline.
type Pipeline struct {
	fontDir      string
	lineWidth    int
	linesPerPage int
	compress     bool
}

// NewPipeline creates a pipeline loading language fonts from fontDir.
// An empty fontDir disables font substitution entirely (every language
// falls back to the default font).
func NewPipeline(fontDir string) *Pipeline {
	return &Pipeline{
		fontDir:      fontDir,
		lineWidth:    DefaultLineWidth,
		linesPerPage: DefaultLinesPerPage,
		compress:     true,
	}
}

// EnsurePDFExt appends the canonical extension when the user-chosen
// filename lacks it.
func EnsurePDFExt(name string) string {
	if strings.HasSuffix(strings.ToLower(name), ".pdf") {
		return name
	}
	return name + ".pdf"
}

// Render lays out text into pages and renders them with a repeated title
// header and a "Page i of N" footer on every page. Layout runs first so
// the total page count is known before any footer is stamped.
func (p *Pipeline) Render(text, title, language string) ([]byte, error) {
	pages := Paginate(WrapText(text, p.lineWidth), p.linesPerPage)

	out, err := p.render(pages, title, language)
	if err == nil {
		return out, nil
	}
	// A bad font file can poison the whole gofpdf document. Retry once with
	// the default font before giving up; font failure must not block export.
	if language != "" {
		logger.Warnf("pdf render with %q font failed (%v), retrying with default font", language, err)
		if out, retryErr := p.render(pages, title, ""); retryErr == nil {
			return out, nil
		}
	}
	return nil, &ExportError{Err: err}
}

func (p *Pipeline) render(pages []Page, title, language string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", p.fontDir)
	pdf.SetCompression(p.compress)
	pdf.SetTitle(title, true)
	pdf.SetAuthor("LegalEase AI", false)
	pdf.SetAutoPageBreak(false, 0)

	family := p.selectFont(pdf, language)
	total := len(pages)

	for i, page := range pages {
		pdf.AddPage()

		// repeated title header, centred
		pdf.SetFont(family, "B", headerFontSize)
		pdf.SetTextColor(40, 40, 40)
		pdf.SetXY(margin, margin)
		pdf.CellFormat(pageWidth-2*margin, lineHeight, title, "", 0, "C", false, 0, "")

		pdf.SetFont(family, "", bodyFontSize)
		pdf.SetTextColor(0, 0, 0)
		y := margin + headerSpace + lineHeight
		for _, line := range page.Lines {
			pdf.Text(margin, y, line)
			y += lineHeight
		}

		// running footer, bottom-right; total known because layout finished
		pdf.SetFont(defaultFontFamily, "", footerFontSize)
		pdf.SetTextColor(100, 100, 100)
		pdf.SetXY(pageWidth-margin-40, pageHeight-10)
		pdf.CellFormat(40, 5, fmt.Sprintf("Page %d of %d", i+1, total), "", 0, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// selectFont registers the language's font with the document and returns
// its family name, or the default family when the language has no mapped
// font or the font file is missing. Fallback is logged but never surfaced
// as an error.
func (p *Pipeline) selectFont(pdf *gofpdf.Fpdf, language string) string {
	if language == "" || p.fontDir == "" {
		return defaultFontFamily
	}
	spec, ok := fontFor(language)
	if !ok {
		return defaultFontFamily
	}
	if _, err := os.Stat(filepath.Join(p.fontDir, spec.File)); err != nil {
		logger.Warnf("font %s for language %q unavailable, using default: %v", spec.File, language, err)
		return defaultFontFamily
	}
	pdf.AddUTF8Font(spec.Family, "", spec.File)
	pdf.AddUTF8Font(spec.Family, "B", spec.File)
	if pdf.Err() {
		logger.Warnf("loading font %s failed, using default: %v", spec.File, pdf.Error())
		return defaultFontFamily
	}
	return spec.Family
}

package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
	"github.com/sirupsen/logrus"
	"github.com/ytcomments/comment-sentiment-bot/internal/models"
)

const (
	unicodeFamily   = "DejaVuSans"
	unicodeRegular  = "DejaVuSans.ttf"
	unicodeBold     = "DejaVuSans-Bold.ttf"
	coreFamily      = "Helvetica"
	lineHeight      = 8.0
	headingHeight   = 10.0
	titleFontSize   = 16.0
	headingFontSize = 13.0
	bodyFontSize    = 11.0
	footerFontSize  = 8.0
)

// Renderer produces the report artifact at path
type Renderer interface {
	Render(report *models.Report, path string) error
}

// PDFRenderer lays the report out as a paginated PDF document
type PDFRenderer struct {
	fontDir string
}

// Ensure PDFRenderer implements Renderer
var _ Renderer = (*PDFRenderer)(nil)

// NewPDFRenderer creates a renderer. When fontDir is set, DejaVuSans and
// DejaVuSans-Bold are loaded from it; otherwise the core Helvetica font is used.
func NewPDFRenderer(fontDir string) *PDFRenderer {
	return &PDFRenderer{fontDir: fontDir}
}

// Render writes the report to path. The document is built in a temporary file
// next to path and renamed into place only when complete.
func (r *PDFRenderer) Render(report *models.Report, path string) error {
	pdf, family, err := r.newDocument()
	if err != nil {
		return &RenderError{Path: path, Err: err}
	}

	encode := r.encoder()

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(family, "", footerFontSize)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	pdf.SetFont(family, "B", titleFontSize)
	pdf.MultiCell(0, headingHeight, encode(fmt.Sprintf("YouTube Comments Analysis for Video: %s", report.VideoID)), "", "C", false)

	pdf.SetFont(family, "", bodyFontSize)
	if report.VideoTitle != "" {
		pdf.MultiCell(0, lineHeight, encode(fmt.Sprintf("Title: %s", report.VideoTitle)), "", "C", false)
	}
	if report.VideoURL != "" {
		pdf.CellFormat(0, lineHeight, encode(report.VideoURL), "", 1, "C", false, 0, report.VideoURL)
	}
	pdf.Ln(4)

	sections := []struct {
		title    string
		comments []models.Comment
	}{
		{fmt.Sprintf("Filtered Comments for Keyword: %s", report.Keyword), report.Filtered},
		{"Positive Comments:", report.Positive},
		{"Negative Comments:", report.Negative},
	}

	for _, section := range sections {
		pdf.SetFont(family, "B", headingFontSize)
		pdf.CellFormat(0, headingHeight, encode(fmt.Sprintf("%s (%d)", section.title, len(section.comments))), "", 1, "L", false, 0, "")

		pdf.SetFont(family, "", bodyFontSize)
		for _, comment := range section.comments {
			pdf.MultiCell(0, lineHeight, encode(FormatCommentLine(comment)), "", "L", false)
		}
		pdf.Ln(lineHeight)
	}

	if err := pdf.Error(); err != nil {
		return &RenderError{Path: path, Err: fmt.Errorf("failed to lay out document: %w", err)}
	}

	return writeAtomically(pdf, path)
}

// FormatCommentLine renders one comment as "author: text" with sanitized text
func FormatCommentLine(comment models.Comment) string {
	return fmt.Sprintf("%s: %s", comment.Author, SanitizeText(comment.Text))
}

func (r *PDFRenderer) newDocument() (*fpdf.Fpdf, string, error) {
	if r.fontDir == "" {
		pdf := fpdf.New("P", "mm", "Letter", "")
		pdf.SetTitle("YouTube Comments Analysis", false)
		return pdf, coreFamily, nil
	}

	for _, name := range []string{unicodeRegular, unicodeBold} {
		if _, err := os.Stat(filepath.Join(r.fontDir, name)); err != nil {
			return nil, "", fmt.Errorf("missing font resource: %w", err)
		}
	}

	pdf := fpdf.New("P", "mm", "Letter", r.fontDir)
	pdf.AddUTF8Font(unicodeFamily, "", unicodeRegular)
	pdf.AddUTF8Font(unicodeFamily, "B", unicodeBold)
	if err := pdf.Error(); err != nil {
		return nil, "", fmt.Errorf("failed to load fonts from %s: %w", r.fontDir, err)
	}
	pdf.SetTitle("YouTube Comments Analysis", true)

	return pdf, unicodeFamily, nil
}

// encoder returns the text transform matching the active font
func (r *PDFRenderer) encoder() func(string) string {
	if r.fontDir == "" {
		return toCP1252
	}
	return SanitizeText
}

func writeAtomically(pdf *fpdf.Fpdf, path string) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, ".report-*.pdf")
	if err != nil {
		return &RenderError{Path: path, Err: fmt.Errorf("failed to create output file: %w", err)}
	}
	tmpPath := tmp.Name()

	if err := pdf.Output(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return &RenderError{Path: path, Err: fmt.Errorf("failed to write document: %w", err)}
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return &RenderError{Path: path, Err: fmt.Errorf("failed to close output file: %w", err)}
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return &RenderError{Path: path, Err: fmt.Errorf("failed to move report into place: %w", err)}
	}

	logrus.Infof("Report written to %s", path)
	return nil
}

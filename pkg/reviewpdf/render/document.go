package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/ukaji3/reviewpdf-go/pkg/reviewpdf/models"
	"github.com/ukaji3/reviewpdf-go/pkg/reviewpdf/parser"
)

// documentDate is stamped into every PDF so repeated runs produce identical files.
var documentDate = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

const (
	bulletMarker       = "•"
	emptyCommentText   = "No comment provided."
	responseLabel      = "Response:"
	captionSeparator   = " | "
	listIndent         = 4.0
	paragraphSpacing   = 2.0
	entrySpacing       = 5.0
	headerBottomMargin = 8.0
)

// Layout controls page geometry and type sizes.
type Layout struct {
	// PageSize is an fpdf page size name such as "A4" or "Letter".
	PageSize string
	// Margin is the page margin in millimetres.
	Margin float64
	// TitleSize, BodySize and CaptionSize are font sizes in points.
	TitleSize   float64
	BodySize    float64
	CaptionSize float64
	// LineHeight is the body line height in millimetres.
	LineHeight float64
	// Compress enables page stream compression.
	Compress bool
}

// DefaultLayout returns the standard A4 layout.
func DefaultLayout() Layout {
	return Layout{
		PageSize:    "A4",
		Margin:      15,
		TitleSize:   16,
		BodySize:    10,
		CaptionSize: 8,
		LineHeight:  6,
		Compress:    true,
	}
}

// Document writes one group as a PDF to w.
func Document(w io.Writer, doc models.GroupDocument, fonts *FontSet, layout Layout) error {
	pdf := fpdf.New("P", "mm", layout.PageSize, "")
	pdf.SetCompression(layout.Compress)
	pdf.SetCreationDate(documentDate)
	pdf.SetModificationDate(documentDate)
	pdf.SetCatalogSort(true)
	pdf.SetCreator("reviewpdf", true)
	pdf.SetTitle(bmpOnly(title(doc.Key)), true)
	pdf.SetMargins(layout.Margin, layout.Margin, layout.Margin)
	pdf.SetAutoPageBreak(true, layout.Margin)

	p := &page{pdf: pdf, fonts: fonts, layout: layout}
	tr := fonts.register(pdf)
	p.tr = func(s string) string { return tr(bmpOnly(s)) }

	pdf.AddPage()
	p.header(doc.Key)
	for i, entry := range doc.Entries {
		p.entry(i+1, len(doc.Entries), entry)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("layout failed: %w", err)
	}
	return pdf.Output(w)
}

// WriteFile renders the group to path. The document is written to a
// temporary file in the same directory and renamed into place.
func WriteFile(path string, doc models.GroupDocument, fonts *FontSet, layout Layout) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".reviewpdf-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := Document(tmp, doc, fonts, layout); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// bmpOnly replaces characters the embedded fonts cannot address.
func bmpOnly(s string) string {
	out, _ := parser.ReplaceNonBMP(s)
	return out
}

func title(key models.GroupKey) string {
	return fmt.Sprintf("%s - %s", key.Reviewee, key.Cycle)
}

type page struct {
	pdf    *fpdf.Fpdf
	fonts  *FontSet
	layout Layout
	tr     func(string) string
}

func (p *page) setFont(bold, italic, underline bool, size float64) {
	style := VariantFor(bold, italic).style()
	if underline {
		style += "U"
	}
	p.pdf.SetFont(p.fonts.Family, style, size)
}

func (p *page) header(key models.GroupKey) {
	p.setFont(true, false, false, p.layout.TitleSize)
	p.pdf.CellFormat(0, 10, p.tr(title(key)), "", 1, "C", false, 0, "")

	for _, f := range key.Fields() {
		p.setFont(true, false, false, p.layout.BodySize)
		label := p.tr(f.Label + ": ")
		p.pdf.CellFormat(p.pdf.GetStringWidth(label)+1, 5, label, "", 0, "L", false, 0, "")
		p.setFont(false, false, false, p.layout.BodySize)
		p.pdf.CellFormat(0, 5, p.tr(f.Value), "", 1, "L", false, 0, "")
	}
	p.pdf.Ln(headerBottomMargin)
}

// entry renders one source row: separator, caption, question and comment.
func (p *page) entry(n, total int, e models.Entry) {
	p.rule()

	caption := []string{fmt.Sprintf("Response %d of %d", n, total)}
	if e.Section != "" {
		caption = append(caption, e.Section)
	}
	if e.Row.LaunchDate != "" {
		caption = append(caption, "Date: "+e.Row.LaunchDate)
	}
	p.setFont(false, false, false, p.layout.CaptionSize)
	p.pdf.CellFormat(0, 5, p.tr(strings.Join(caption, captionSeparator)), "", 1, "L", false, 0, "")

	if e.Row.Question != "" {
		p.setFont(true, false, false, p.layout.BodySize+2)
		p.pdf.MultiCell(0, 7, p.tr("Question: "+e.Row.Question), "", "L", false)
	}
	if e.Row.QuestionDescription != "" {
		p.setFont(false, true, false, p.layout.BodySize)
		p.pdf.MultiCell(0, p.layout.LineHeight, p.tr(e.Row.QuestionDescription), "", "L", false)
	}

	p.setFont(true, false, false, p.layout.BodySize)
	p.pdf.CellFormat(0, p.layout.LineHeight, p.tr(responseLabel), "", 1, "L", false, 0, "")

	if len(e.Blocks) == 0 {
		p.setFont(false, true, false, p.layout.BodySize)
		p.pdf.MultiCell(0, p.layout.LineHeight, p.tr(emptyCommentText), "", "L", false)
	}
	for _, b := range e.Blocks {
		p.block(b)
	}
	p.pdf.Ln(entrySpacing)
}

// rule draws a full-width separator line at the current position.
func (p *page) rule() {
	left, _, right, _ := p.pdf.GetMargins()
	width, _ := p.pdf.GetPageSize()
	y := p.pdf.GetY()
	p.pdf.SetDrawColor(170, 170, 170)
	p.pdf.SetLineWidth(0.2)
	p.pdf.Line(left, y, width-right, y)
	p.pdf.Ln(2)
}

func (p *page) block(b models.StyledBlock) {
	if b.Kind != models.BlockListItem {
		p.runs(b.Runs)
		p.pdf.Ln(p.layout.LineHeight + paragraphSpacing)
		return
	}

	marker := bulletMarker
	if b.Ordered {
		marker = fmt.Sprintf("%d.", b.Index)
	}
	marker = p.tr(marker + " ")

	left, _, _, _ := p.pdf.GetMargins()
	p.setFont(false, false, false, p.layout.BodySize)
	p.pdf.SetX(left + listIndent)
	p.pdf.Write(p.layout.LineHeight, marker)

	// Wrapped lines hang under the item text, not under the marker.
	p.pdf.SetLeftMargin(left + listIndent + p.pdf.GetStringWidth(marker))
	p.runs(b.Runs)
	p.pdf.SetLeftMargin(left)
	p.pdf.Ln(p.layout.LineHeight)
}

func (p *page) runs(runs []models.Run) {
	for _, r := range runs {
		p.setFont(r.Bold, r.Italic, r.Underline, p.layout.BodySize)
		p.pdf.Write(p.layout.LineHeight, p.tr(r.Text))
	}
}

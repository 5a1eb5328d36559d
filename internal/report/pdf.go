package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"homesight/server/internal/models"
)

const (
	pdfPageHeight   = 297.0 // A4 portrait, mm
	pdfBottomMargin = 15.0
	pdfLeftMargin   = 15.0
	pdfLineHeight   = 6.0
)

// RenderPDF produces the PDF artifact for a property. Pagination is a
// greedy fill: before each block the remaining vertical space is
// checked and a fresh page is started when the block will not fit.
func RenderPDF(data models.PropertyData) ([]byte, error) {
	r, err := Build(data)
	if err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfLeftMargin, 15, 15)
	pdf.SetAutoPageBreak(false, pdfBottomMargin)
	pdf.AddPage()

	w := &pdfWriter{pdf: pdf}
	w.title(r.Title)
	if r.Subtitle != "" {
		w.subtitle(r.Subtitle)
	}

	for _, section := range r.Sections {
		w.section(section)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF output: %w", err)
	}
	return buf.Bytes(), nil
}

type pdfWriter struct {
	pdf *fpdf.Fpdf
}

// ensureSpace starts a new page when fewer than h millimeters remain
// below the cursor.
func (w *pdfWriter) ensureSpace(h float64) {
	if w.pdf.GetY()+h > pdfPageHeight-pdfBottomMargin {
		w.pdf.AddPage()
	}
}

func (w *pdfWriter) title(text string) {
	w.pdf.SetFont("Arial", "B", 18)
	w.pdf.CellFormat(0, 10, text, "", 1, "C", false, 0, "")
}

func (w *pdfWriter) subtitle(text string) {
	w.pdf.SetFont("Arial", "", 11)
	w.pdf.SetTextColor(90, 90, 90)
	w.pdf.CellFormat(0, 7, text, "", 1, "C", false, 0, "")
	w.pdf.SetTextColor(0, 0, 0)
	w.pdf.Ln(3)
}

func (w *pdfWriter) section(s Section) {
	if s.Kind == KindFooter {
		w.footer(s)
		return
	}

	if s.Title != "" {
		w.ensureSpace(12)
		w.pdf.SetFont("Arial", "B", 13)
		w.pdf.CellFormat(0, 8, s.Title, "", 1, "L", false, 0, "")
		w.pdf.SetDrawColor(180, 180, 180)
		y := w.pdf.GetY()
		w.pdf.Line(pdfLeftMargin, y, 195, y)
		w.pdf.Ln(2)
	}

	w.pdf.SetFont("Arial", "", 10)
	for _, p := range s.Paragraphs {
		w.ensureSpace(pdfLineHeight * 2)
		w.pdf.MultiCell(0, pdfLineHeight-1, p, "", "L", false)
		w.pdf.Ln(1)
	}

	for _, f := range s.Fields {
		w.ensureSpace(pdfLineHeight)
		w.pdf.SetFont("Arial", "B", 10)
		w.pdf.CellFormat(45, pdfLineHeight, f.Label, "", 0, "L", false, 0, "")
		w.pdf.SetFont("Arial", "", 10)
		w.pdf.MultiCell(0, pdfLineHeight, f.Value, "", "L", false)
	}

	for _, list := range s.Lists {
		w.ensureSpace(pdfLineHeight * 2)
		w.pdf.SetFont("Arial", "B", 11)
		w.pdf.CellFormat(0, 7, list.Title, "", 1, "L", false, 0, "")
		w.pdf.SetFont("Arial", "", 10)
		for _, item := range list.Items {
			w.ensureSpace(pdfLineHeight)
			w.pdf.CellFormat(5, pdfLineHeight, "", "", 0, "L", false, 0, "")
			w.pdf.MultiCell(0, pdfLineHeight, "- "+item, "", "L", false)
		}
		w.pdf.Ln(1)
	}

	if s.Table != nil {
		w.table(s.Table)
	}

	w.pdf.Ln(4)
}

func (w *pdfWriter) table(t *Table) {
	widths := tableWidths(len(t.Columns))

	w.ensureSpace(pdfLineHeight * 2)
	w.pdf.SetFont("Arial", "B", 9)
	w.pdf.SetFillColor(235, 235, 235)
	for i, col := range t.Columns {
		w.pdf.CellFormat(widths[i], pdfLineHeight, col, "1", 0, "L", true, 0, "")
	}
	w.pdf.Ln(-1)

	w.pdf.SetFont("Arial", "", 9)
	for _, row := range t.Rows {
		w.ensureSpace(pdfLineHeight)
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			w.pdf.CellFormat(widths[i], pdfLineHeight, cell, "1", 0, "L", false, 0, "")
		}
		w.pdf.Ln(-1)
	}
}

// tableWidths gives the first column the slack after the numeric
// columns get a fixed width.
func tableWidths(cols int) []float64 {
	const usable = 180.0
	const numeric = 24.0
	widths := make([]float64, cols)
	if cols == 0 {
		return widths
	}
	widths[0] = usable - numeric*float64(cols-1)
	for i := 1; i < cols; i++ {
		widths[i] = numeric
	}
	return widths
}

func (w *pdfWriter) footer(s Section) {
	w.pdf.SetY(-30)
	w.pdf.SetFont("Arial", "I", 8)
	w.pdf.SetTextColor(120, 120, 120)
	for _, p := range s.Paragraphs {
		w.pdf.CellFormat(0, 5, p, "", 1, "C", false, 0, "")
	}
	w.pdf.SetTextColor(0, 0, 0)
}

package render

import (
	"fmt"

	"github.com/go-pdf/fpdf"
)

const (
	pdfMargin     = 12.0
	pdfPageWidth  = 148.0 // A5
	pdfLineHeight = 5.5
)

func writePDF(doc document, path string) error {
	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetTitle(doc.Title, true)
	pdf.SetAuthor(doc.Author, true)
	pdf.SetCreator("twindle", true)
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)

	// core fonts are cp1252, text goes through the translator
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(0, 8, tr(doc.Title), "", "L", false)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.MultiCell(0, 5, tr(doc.Meta), "", "L", false)
	pdf.Ln(4)

	for _, tweet := range doc.Tweets {
		pdf.SetFont("Helvetica", "", 11)
		pdf.SetTextColor(0, 0, 0)
		for _, p := range paragraphs(tweet.Text) {
			pdf.MultiCell(0, pdfLineHeight, tr(p), "", "L", false)
		}

		if len(tweet.Links) > 0 {
			pdf.SetFont("Helvetica", "", 9)
			pdf.SetTextColor(30, 80, 200)
			for _, l := range tweet.Links {
				pdf.MultiCell(0, 4.5, tr(fmt.Sprintf("%s: %s", linkLabel(l), linkTarget(l))), "", "L", false)
			}
		}

		if tweet.CreatedAt != "" {
			pdf.SetFont("Helvetica", "I", 8)
			pdf.SetTextColor(120, 120, 120)
			pdf.MultiCell(0, 4, tr(tweet.CreatedAt), "", "L", false)
		}

		pdf.Ln(2)
		pdf.SetDrawColor(200, 200, 200)
		y := pdf.GetY()
		pdf.Line(pdfMargin, y, pdfPageWidth-pdfMargin, y)
		pdf.Ln(3)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}

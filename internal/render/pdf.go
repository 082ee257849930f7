package render

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// creationDate is pinned so two renders of the same input produce identical
// bytes.
var creationDate = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

func (r *PDFRenderer) Render(ctx context.Context, in Input) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(creationDate)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, in.Title, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	if in.Description != "" {
		pdf.MultiCell(0, 6, in.Description, "", "L", false)
		pdf.Ln(2)
	}
	if in.RecipientName != "" {
		pdf.CellFormat(0, 6, "Prepared for: "+in.RecipientName, "", 1, "L", false, 0, "")
	}
	if in.RecipientEmail != "" {
		pdf.CellFormat(0, 6, in.RecipientEmail, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	if in.Terms != "" {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, "Terms", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, in.Terms, "", "L", false)
		pdf.Ln(2)
	}
	if in.CommissionPercentage != nil {
		pdf.CellFormat(0, 6, fmt.Sprintf("Commission: %.2f%%", *in.CommissionPercentage), "", 1, "L", false, 0, "")
		pdf.Ln(2)
	}

	if len(in.Fields) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, "Fields", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		for _, f := range in.Fields {
			label := f.Label
			if f.Required {
				label += " *"
			}
			value := ""
			if f.DefaultValue != nil {
				value = *f.DefaultValue
			}
			pdf.CellFormat(60, 7, label, "1", 0, "L", false, 0, "")
			pdf.CellFormat(0, 7, value, "1", 1, "L", false, 0, "")
		}
	}

	if in.Signed {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "I", 11)
		pdf.CellFormat(0, 6, "Signed by "+in.RecipientName, "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// Package pdf renders a human-readable Form 2307 certificate. One page is
// produced per certificate instance: return period, payor and payee
// identity blocks, the ATC detail table with its quarter-slot columns, the
// period totals, and the signor lines.
package pdf

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/go-pdf/fpdf"

	"github.com/csg33k/bir2307-generator/internal/domain"
)

// Writer implements ports.CertificateWriter by rendering to a PDF file.
type Writer struct{}

func NewWriter() *Writer { return &Writer{} }

// Ext is the file extension this writer produces.
func (w *Writer) Ext() string { return ".pdf" }

func (w *Writer) Write(_ context.Context, cert *domain.Certificate, sequence int, payor *domain.EntityRecord, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create certificate %q: %w", path, err)
	}
	defer out.Close()
	if err := Generate(cert, sequence, payor, out); err != nil {
		return fmt.Errorf("render certificate %q: %w", path, err)
	}
	return nil
}

// Generate writes one certificate page to w.
func Generate(cert *domain.Certificate, sequence int, payor *domain.EntityRecord, w io.Writer) error {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(18, 18, 18)
	pdf.SetAutoPageBreak(true, 18)

	pdf.AddPage()
	drawCertificatePage(pdf, cert, sequence, payor)

	return pdf.Output(w)
}

func drawCertificatePage(pdf *fpdf.Fpdf, cert *domain.Certificate, sequence int, payor *domain.EntityRecord) {
	pageW, pageH := pdf.GetPageSize()
	marginL, marginT, marginR, marginB := pdf.GetMargins()
	contentW := pageW - marginL - marginR

	// ── Header bar ───────────────────────────────────────────────────────────
	pdf.SetFillColor(30, 30, 30)
	pdf.Rect(marginL, marginT, contentW, 10, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(marginL+2, marginT+1.5)
	pdf.CellFormat(contentW-4, 7, "FORM 2307  CERTIFICATE OF CREDITABLE TAX WITHHELD AT SOURCE", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 7, fmt.Sprintf("Copy %d", sequence), "", 1, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	y := marginT + 13

	// ── Return period ────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(marginL, y)
	period := fmt.Sprintf("Return period:  %02d/01/%d  to  %02d/%02d/%d",
		cert.Month, cert.Year, cert.Month, cert.LastDay(), cert.Year)
	pdf.CellFormat(contentW, 6, period, "", 1, "L", false, 0, "")
	y += 9

	y = drawEntitySection(pdf, "PAYOR INFORMATION", payor, marginL, y, contentW)
	y += 4
	y = drawEntitySection(pdf, "PAYEE INFORMATION", cert.Payee, marginL, y, contentW)
	y += 5

	// ── ATC detail table ─────────────────────────────────────────────────────
	codeW := contentW * 0.12
	descW := contentW * 0.36
	monthW := contentW * 0.10
	baseW := contentW * 0.11
	taxW := contentW - codeW - descW - 3*monthW - baseW

	pdf.SetFillColor(30, 30, 30)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetXY(marginL, y)
	pdf.CellFormat(descW, 7, "Income Payment Subject to Withholding", "1", 0, "L", true, 0, "")
	pdf.CellFormat(codeW, 7, "ATC", "1", 0, "C", true, 0, "")
	pdf.CellFormat(monthW, 7, "1st Month", "1", 0, "C", true, 0, "")
	pdf.CellFormat(monthW, 7, "2nd Month", "1", 0, "C", true, 0, "")
	pdf.CellFormat(monthW, 7, "3rd Month", "1", 0, "C", true, 0, "")
	pdf.CellFormat(baseW, 7, "Total", "1", 0, "C", true, 0, "")
	pdf.CellFormat(taxW, 7, "Tax Withheld", "1", 1, "C", true, 0, "")
	y += 7
	pdf.SetTextColor(0, 0, 0)

	rowH := 6.5
	for i, agg := range cert.Lines.Aggregates() {
		if i%2 == 0 {
			pdf.SetFillColor(250, 250, 250)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		pdf.SetFont("Helvetica", "", 8.5)
		pdf.SetXY(marginL, y)
		pdf.CellFormat(descW, rowH, agg.ATCDescription, "1", 0, "L", true, 0, "")
		pdf.CellFormat(codeW, rowH, agg.ATCCode, "1", 0, "C", true, 0, "")
		base := domain.FormatAmount(agg.Base)
		for slot := 1; slot <= 3; slot++ {
			v := ""
			if slot == agg.QuarterMonth {
				v = base
			}
			pdf.CellFormat(monthW, rowH, v, "1", 0, "R", true, 0, "")
		}
		pdf.CellFormat(baseW, rowH, base, "1", 0, "R", true, 0, "")
		pdf.CellFormat(taxW, rowH, domain.FormatAmount(agg.Tax), "1", 1, "R", true, 0, "")
		y += rowH
	}

	// ── Totals row ───────────────────────────────────────────────────────────
	totalBase := domain.FormatAmount(cert.Lines.TotalBase())
	pdf.SetFont("Helvetica", "B", 8.5)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetXY(marginL, y)
	pdf.CellFormat(descW+codeW, rowH, "TOTAL", "1", 0, "R", true, 0, "")
	slot := domain.QuarterMonth(cert.Month)
	for s := 1; s <= 3; s++ {
		v := ""
		if s == slot {
			v = totalBase
		}
		pdf.CellFormat(monthW, rowH, v, "1", 0, "R", true, 0, "")
	}
	pdf.CellFormat(baseW, rowH, totalBase, "1", 0, "R", true, 0, "")
	pdf.CellFormat(taxW, rowH, domain.FormatAmount(cert.Lines.TotalTax()), "1", 1, "R", true, 0, "")
	y += rowH + 6

	// ── Signors ──────────────────────────────────────────────────────────────
	y = drawSignorLine(pdf, "Payor / Authorized Representative", payor, marginL, y, contentW)
	y += 3
	drawSignorLine(pdf, "Payee / Authorized Representative", cert.Payee, marginL, y, contentW)

	// ── Footer ───────────────────────────────────────────────────────────────
	pdf.SetXY(marginL, pageH-marginB-6)
	pdf.SetFont("Helvetica", "I", 7.5)
	pdf.SetTextColor(130, 130, 130)
	pdf.CellFormat(contentW/2, 5, "Generated by 2307 Generator", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 5, fmt.Sprintf("%s | %d-%d | copy %d",
		cert.Payee.TIN, cert.Month, cert.Year, sequence), "", 0, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func drawEntitySection(pdf *fpdf.Fpdf, title string, e *domain.EntityRecord, marginL, y, contentW float64) float64 {
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetXY(marginL, y)
	pdf.CellFormat(contentW, 5.5, title, "LRT", 1, "L", true, 0, "")
	y += 5.5

	colHalf := contentW / 2
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetXY(marginL, y)
	pdf.CellFormat(colHalf, 6.5, e.DisplayName(), "L", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(colHalf, 6.5, "TIN: "+e.TIN.String(), "R", 1, "R", false, 0, "")
	y += 6.5

	line := e.Address
	if e.ZipCode != "" {
		line += "  " + e.ZipCode
	}
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(marginL, y)
	pdf.CellFormat(contentW, 5.5, line, "LB", 1, "L", false, 0, "")
	return y + 5.5
}

func drawSignorLine(pdf *fpdf.Fpdf, label string, e *domain.EntityRecord, marginL, y, contentW float64) float64 {
	pdf.SetFont("Helvetica", "", 8.5)
	pdf.SetXY(marginL, y)
	line := e.SignorInfo
	if e.SignorTIN != "" {
		line += "   TIN " + e.SignorTIN
	}
	pdf.CellFormat(contentW*0.6, 5.5, line, "B", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.4, 5.5, "", "", 1, "L", false, 0, "")
	y += 5.5
	pdf.SetFont("Helvetica", "I", 7.5)
	pdf.SetTextColor(130, 130, 130)
	pdf.SetXY(marginL, y)
	pdf.CellFormat(contentW, 4.5, label, "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	return y + 4.5
}

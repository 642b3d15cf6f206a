package xlsx

import (
	"context"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/csg33k/bir2307-generator/internal/domain"
)

// Writer fills the Form 2307 template, one workbook per certificate
// instance. The template is reopened for every write so instances never
// bleed into each other.
type Writer struct {
	templatePath string
}

func NewWriter(templatePath string) *Writer {
	return &Writer{templatePath: templatePath}
}

// Ext is the file extension this writer produces.
func (w *Writer) Ext() string { return ".xlsx" }

// Write renders one certificate to path. Any unresolved template name or
// save failure is fatal to the batch; the caller stops on first error.
func (w *Writer) Write(_ context.Context, cert *domain.Certificate, _ int, payor *domain.EntityRecord, path string) error {
	f, err := excelize.OpenFile(w.templatePath)
	if err != nil {
		return fmt.Errorf("open form template %q: %w", w.templatePath, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return fmt.Errorf("form template %q has no sheets", w.templatePath)
	}
	tf := &templateFill{f: f, sheet: sheet}

	month := strconv.Itoa(cert.Month)
	year := strconv.Itoa(cert.Year)
	tf.setNamed("Return_Period_From_mmdd", periodMMDD(month, 1))
	tf.setNamed("Return_Period_From_yyyy", periodYYYY(year))
	tf.setNamed("Return_Period_To_mmdd", periodMMDD(month, cert.LastDay()))
	tf.setNamed("Return_Period_To_yyyy", periodYYYY(year))

	tf.setEntity(cert.Payee, payeeRefs)
	tf.setEntity(payor, payorRefs)
	tf.setAggregates(cert)

	if tf.err != nil {
		return tf.err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save certificate %q: %w", path, err)
	}
	return nil
}

// templateFill accumulates the first write error so the fill sequence reads
// straight through, the way the record builders do.
type templateFill struct {
	f     *excelize.File
	sheet string
	err   error
}

func (t *templateFill) setNamed(name, value string) {
	if t.err != nil {
		return
	}
	sheet, cell, err := resolveDefinedName(t.f, name)
	if err != nil {
		t.err = err
		return
	}
	if err := t.f.SetCellStr(sheet, cell, value); err != nil {
		t.err = fmt.Errorf("write defined name %q: %w", name, err)
	}
}

func (t *templateFill) setCell(ref, value string) {
	if t.err != nil {
		return
	}
	if err := t.f.SetCellStr(t.sheet, ref, value); err != nil {
		t.err = fmt.Errorf("write cell %s: %w", ref, err)
	}
}

func (t *templateFill) setEntity(e *domain.EntityRecord, refs entityRefs) {
	segments := e.TIN.Segments()
	for i, ref := range refs.tinSegments {
		t.setNamed(ref, tinUnitBox(segments[i]))
	}
	t.setNamed(refs.branch, branchBox(e.TIN.Branch()))
	t.setNamed(refs.name, e.DisplayName())
	t.setNamed(refs.address, e.Address)
	t.setNamed(refs.zipCode, zipBox(e.ZipCode))
	t.setNamed(refs.signorInfo, e.SignorInfo)
	t.setNamed(refs.signorTIN, e.SignorTIN)
}

func (t *templateFill) setAggregates(cert *domain.Certificate) {
	for i, agg := range cert.Lines.Aggregates() {
		n := i + 1
		base := domain.FormatAmount(agg.Base)
		t.setCell(descriptionCell(n), agg.ATCDescription)
		t.setCell(codeCell(n), agg.ATCCode)
		t.setCell(monthPeriodCell(agg.QuarterMonth, n), base)
		t.setCell(totalBaseCell(n), base)
		t.setCell(totalTaxCell(n), domain.FormatAmount(agg.Tax))
	}

	totalBase := domain.FormatAmount(cert.Lines.TotalBase())
	t.setNamed(quarterTotalRef(domain.QuarterMonth(cert.Month)), totalBase)
	t.setNamed("Total_Base", totalBase)
	t.setNamed("Total_Tax", domain.FormatAmount(cert.Lines.TotalTax()))
}

package xlsx

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/csg33k/bir2307-generator/internal/domain"
)

// templateNames is every defined name Write resolves on the form template.
var templateNames = []string{
	"Return_Period_From_mmdd", "Return_Period_From_yyyy",
	"Return_Period_To_mmdd", "Return_Period_To_yyyy",
	"Payee_Tin_1", "Payee_Tin_2", "Payee_Tin_3", "Payee_Branch",
	"Payee_Name", "Payee_Address", "Payee_Zip_Code",
	"Signor_Payee_Info", "Signor_Payee_Tin",
	"Payor_Tin_1", "Payor_Tin_2", "Payor_Tin_3", "Payor_Branch",
	"Payor_Name", "Payor_Address", "Payor_Zip_Code",
	"Signor_Payor_Info", "Signor_Payor_Tin",
	"Total_1M", "Total_2M", "Total_3M", "Total_Base", "Total_Tax",
}

// writeTemplate builds a bare form template: every defined name mapped to
// its own cell in column AZ, clear of the detail grid.
func writeTemplate(t *testing.T, dir string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	for i, name := range templateNames {
		err := f.SetDefinedName(&excelize.DefinedName{
			Name:     name,
			RefersTo: fmt.Sprintf("%s!$AZ$%d", sheet, i+1),
		})
		if err != nil {
			t.Fatalf("define %s: %v", name, err)
		}
	}

	path := filepath.Join(dir, "2307.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save template: %v", err)
	}
	return path
}

func testEntity(t *testing.T, raw domain.RawEntity, signorName, signorPosition, signorTIN string) *domain.EntityRecord {
	t.Helper()
	e, err := domain.NewEntity(raw)
	if err != nil {
		t.Fatalf("NewEntity: %v", err)
	}
	e, err = e.WithSignor(signorName, signorPosition, signorTIN)
	if err != nil {
		t.Fatalf("WithSignor: %v", err)
	}
	return e
}

func testCertificate(t *testing.T) (*domain.Certificate, *domain.EntityRecord) {
	t.Helper()
	payee := testEntity(t, domain.RawEntity{
		TIN:     "123-456-789-00001",
		OrgName: "Acme Corp",
		Address: "1 Main St",
		ZipCode: "1605",
	}, "Jane Roe", "Treasurer", "111-222-333")
	payor := testEntity(t, domain.RawEntity{
		TIN:     "001-002-003-00000",
		OrgName: "Payor Corp",
		Address: "9 Tax Rd",
		ZipCode: "1605",
	}, "Ana Cruz", "President", "")

	lines := domain.NewCollection()
	for _, args := range [][]string{
		{"WC010", "Rentals", "2024-02-10", "1000", "50"},
		{"WC140", "Professional fees", "2024-02-12", "2,500.50", "125.03"},
	} {
		li, err := domain.NewLineItem(args[0], args[1], args[2], args[3], args[4])
		if err != nil {
			t.Fatalf("NewLineItem: %v", err)
		}
		lines.Add(li)
	}

	return &domain.Certificate{Payee: payee, Month: 2, Year: 2024, Lines: lines}, payor
}

func TestWriter_Write(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(writeTemplate(t, dir))
	cert, payor := testCertificate(t)

	out := filepath.Join(dir, "2024_2_out.xlsx")
	if err := w.Write(context.Background(), cert, 1, payor, out); err != nil {
		t.Fatalf("Write: %v", err)
	}

	f, err := excelize.OpenFile(out)
	if err != nil {
		t.Fatalf("reopen output: %v", err)
	}
	defer f.Close()

	named := func(name string) string {
		t.Helper()
		sheet, cell, err := resolveDefinedName(f, name)
		if err != nil {
			t.Fatalf("resolve %s: %v", name, err)
		}
		v, err := f.GetCellValue(sheet, cell)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		return v
	}

	// Period boxes: February 2024 runs 02-01 through 02-29.
	if got := named("Return_Period_From_mmdd"); got != periodMMDD("2", 1) {
		t.Errorf("Return_Period_From_mmdd = %q", got)
	}
	if got := named("Return_Period_To_mmdd"); got != periodMMDD("2", 29) {
		t.Errorf("Return_Period_To_mmdd = %q", got)
	}
	if got := named("Return_Period_To_yyyy"); got != periodYYYY("2024") {
		t.Errorf("Return_Period_To_yyyy = %q", got)
	}

	// Identity blocks.
	if got := named("Payee_Name"); got != "ACME CORP" {
		t.Errorf("Payee_Name = %q", got)
	}
	if got := named("Payee_Tin_1"); got != tinUnitBox("123") {
		t.Errorf("Payee_Tin_1 = %q", got)
	}
	if got := named("Payee_Branch"); got != branchBox("00001") {
		t.Errorf("Payee_Branch = %q", got)
	}
	if got := named("Payee_Zip_Code"); got != zipBox("1605") {
		t.Errorf("Payee_Zip_Code = %q", got)
	}
	if got := named("Signor_Payee_Info"); got != "JANE ROE - TREASURER" {
		t.Errorf("Signor_Payee_Info = %q", got)
	}
	if got := named("Payor_Name"); got != "PAYOR CORP" {
		t.Errorf("Payor_Name = %q", got)
	}
	if got := named("Signor_Payor_Tin"); got != "" {
		t.Errorf("Signor_Payor_Tin = %q, want empty", got)
	}

	// Detail grid: two aggregates on rows 38 and 39, base under the 2nd
	// month column of the quarter.
	sheet := f.GetSheetName(0)
	cellValue := func(ref string) string {
		t.Helper()
		v, err := f.GetCellValue(sheet, ref)
		if err != nil {
			t.Fatalf("read %s: %v", ref, err)
		}
		return v
	}
	if got := cellValue(codeCell(1)); got != "WC010" {
		t.Errorf("first detail code = %q", got)
	}
	if got := cellValue(descriptionCell(2)); got != "Professional fees" {
		t.Errorf("second detail description = %q", got)
	}
	if got := cellValue(monthPeriodCell(2, 2)); got != "2500.50" {
		t.Errorf("second detail month amount = %q", got)
	}
	if got := cellValue(totalTaxCell(2)); got != "125.03" {
		t.Errorf("second detail tax = %q", got)
	}

	// Totals: quarter column total plus the grand total boxes.
	if got := named("Total_2M"); got != "3500.50" {
		t.Errorf("Total_2M = %q", got)
	}
	if got := named("Total_Base"); got != "3500.50" {
		t.Errorf("Total_Base = %q", got)
	}
	if got := named("Total_Tax"); got != "175.03" {
		t.Errorf("Total_Tax = %q", got)
	}
}

func TestWriter_MissingTemplateName(t *testing.T) {
	dir := t.TempDir()

	f := excelize.NewFile()
	path := filepath.Join(dir, "bare.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save template: %v", err)
	}
	f.Close()

	cert, payor := testCertificate(t)
	err := NewWriter(path).Write(context.Background(), cert, 1, payor, filepath.Join(dir, "out.xlsx"))
	if err == nil {
		t.Fatal("a template without the form's defined names must fail the write")
	}
}

func TestWriter_Ext(t *testing.T) {
	if got := NewWriter("x").Ext(); got != ".xlsx" {
		t.Errorf("Ext = %q", got)
	}
}

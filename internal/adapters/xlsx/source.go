package xlsx

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/csg33k/bir2307-generator/internal/domain"
)

// Ledger reads payee rows, the payor record, and the drop path from the
// source workbook's first sheet.
type Ledger struct {
	f     *excelize.File
	sheet string
}

func OpenLedger(path string) (*Ledger, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open ledger %q: %w", path, err)
	}
	sheet := f.GetSheetName(0)
	if sheet == "" {
		f.Close()
		return nil, fmt.Errorf("ledger %q has no sheets", path)
	}
	return &Ledger{f: f, sheet: sheet}, nil
}

func (l *Ledger) Close() error { return l.f.Close() }

// Row reads columns A-O of the 1-based row n. Cells past the data come back
// empty, which the scanner reads as the end-of-ledger sentinel.
func (l *Ledger) Row(_ context.Context, n int) (domain.RawRow, error) {
	cells := make([]string, 15)
	for i := range cells {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell, err := l.cell(col, n)
		if err != nil {
			return domain.RawRow{}, err
		}
		cells[i] = cell
	}

	return domain.RawRow{
		RawEntity: domain.RawEntity{
			TIN:            cells[0],
			OrgName:        cells[1],
			LastName:       cells[2],
			FirstName:      cells[3],
			MidName:        cells[4],
			Address:        cells[5],
			ZipCode:        cells[6],
			SignorName:     cells[12],
			SignorPosition: cells[13],
			SignorTIN:      cells[14],
		},
		Date:           cells[7],
		ATCCode:        cells[8],
		ATCDescription: cells[9],
		Base:           cells[10],
		Tax:            cells[11],
	}, nil
}

// Payor reads the run's payor identity from the ledger's defined names.
func (l *Ledger) Payor(_ context.Context) (domain.RawEntity, error) {
	var values [10]string
	for i, name := range payorNames {
		v, err := l.namedValue(name)
		if err != nil {
			return domain.RawEntity{}, err
		}
		values[i] = v
	}
	return domain.RawEntity{
		TIN:            values[0],
		OrgName:        values[1],
		LastName:       values[2],
		FirstName:      values[3],
		MidName:        values[4],
		Address:        values[5],
		ZipCode:        values[6],
		SignorName:     values[7],
		SignorPosition: values[8],
		SignorTIN:      values[9],
	}, nil
}

// DropPath reads the output directory recorded on the ledger sheet.
func (l *Ledger) DropPath() (string, error) {
	v, err := l.namedValue(dropPathName)
	if err != nil {
		return "", err
	}
	return domain.Trim(v), nil
}

func (l *Ledger) cell(col string, row int) (string, error) {
	ref, err := excelize.JoinCellName(col, row)
	if err != nil {
		return "", err
	}
	v, err := l.f.GetCellValue(l.sheet, ref)
	if err != nil {
		return "", fmt.Errorf("read %s!%s: %w", l.sheet, ref, err)
	}
	return v, nil
}

func (l *Ledger) namedValue(name string) (string, error) {
	sheet, ref, err := resolveDefinedName(l.f, name)
	if err != nil {
		return "", err
	}
	v, err := l.f.GetCellValue(sheet, ref)
	if err != nil {
		return "", fmt.Errorf("read defined name %q (%s!%s): %w", name, sheet, ref, err)
	}
	return v, nil
}

// resolveDefinedName maps a workbook defined name to its sheet and first
// cell. RefersTo looks like "Sheet1!$A$1" or "'My Sheet'!$B$2:$B$2".
func resolveDefinedName(f *excelize.File, name string) (sheet, cell string, err error) {
	for _, dn := range f.GetDefinedName() {
		if dn.Name != name {
			continue
		}
		ref := dn.RefersTo
		bang := strings.LastIndex(ref, "!")
		if bang < 0 {
			return "", "", fmt.Errorf("defined name %q has no sheet reference: %q", name, ref)
		}
		sheet = strings.Trim(ref[:bang], "='")
		cell = strings.ReplaceAll(ref[bang+1:], "$", "")
		if i := strings.Index(cell, ":"); i >= 0 {
			cell = cell[:i]
		}
		return sheet, cell, nil
	}
	return "", "", fmt.Errorf("defined name %q not found in workbook", name)
}

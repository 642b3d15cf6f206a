// Package sqlite reads a withholding ledger exported to SQLite. The export
// mirrors the workbook: ledger_rows keeps the sheet's 1-based row numbers,
// payor holds the single identity record.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/csg33k/bir2307-generator/internal/domain"
)

type Ledger struct {
	db *sql.DB
}

func Open(dsn string) (*Ledger, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open ledger db %q: %w", dsn, err)
	}
	return &Ledger{db: db}, nil
}

func (l *Ledger) Close() error { return l.db.Close() }

// Row fetches one ledger row by its sheet row number. A missing row yields
// a zero RawRow, whose blank TIN is the scanner's end-of-ledger sentinel.
func (l *Ledger) Row(ctx context.Context, n int) (domain.RawRow, error) {
	var r domain.RawRow
	err := l.db.QueryRowContext(ctx, `
		SELECT COALESCE(tin,''), COALESCE(org_name,''), COALESCE(last_name,''),
		       COALESCE(first_name,''), COALESCE(mid_name,''),
		       COALESCE(address,''), COALESCE(zip_code,''),
		       COALESCE(date,''), COALESCE(atc_code,''), COALESCE(atc_description,''),
		       COALESCE(base,''), COALESCE(tax,''),
		       COALESCE(signor_name,''), COALESCE(signor_position,''), COALESCE(signor_tin,'')
		FROM ledger_rows WHERE row_num=?`, n).Scan(
		&r.TIN, &r.OrgName, &r.LastName,
		&r.FirstName, &r.MidName,
		&r.Address, &r.ZipCode,
		&r.Date, &r.ATCCode, &r.ATCDescription,
		&r.Base, &r.Tax,
		&r.SignorName, &r.SignorPosition, &r.SignorTIN,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.RawRow{}, nil
	}
	if err != nil {
		return domain.RawRow{}, fmt.Errorf("read ledger row %d: %w", n, err)
	}
	return r, nil
}

// Payor fetches the run's payor identity record.
func (l *Ledger) Payor(ctx context.Context) (domain.RawEntity, error) {
	var e domain.RawEntity
	err := l.db.QueryRowContext(ctx, `
		SELECT COALESCE(tin,''), COALESCE(org_name,''), COALESCE(last_name,''),
		       COALESCE(first_name,''), COALESCE(mid_name,''),
		       COALESCE(address,''), COALESCE(zip_code,''),
		       COALESCE(signor_name,''), COALESCE(signor_position,''), COALESCE(signor_tin,'')
		FROM payor LIMIT 1`).Scan(
		&e.TIN, &e.OrgName, &e.LastName,
		&e.FirstName, &e.MidName,
		&e.Address, &e.ZipCode,
		&e.SignorName, &e.SignorPosition, &e.SignorTIN,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.RawEntity{}, errors.New("ledger db has no payor record")
	}
	if err != nil {
		return domain.RawEntity{}, fmt.Errorf("read payor record: %w", err)
	}
	return e, nil
}

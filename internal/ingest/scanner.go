// Package ingest runs the single-pass ledger scan: each row becomes a
// validated payee record and tax line, routed into the certificate set,
// until the blank row after the data ends the scan.
package ingest

import (
	"context"
	"errors"
	"fmt"

	"github.com/csg33k/bir2307-generator/internal/domain"
	"github.com/csg33k/bir2307-generator/internal/ports"
)

// FirstDataRow is where payee data starts on the ledger sheet; rows above
// it are the header block.
const FirstDataRow = 15

// Scanner consumes a RowSource sequentially. Grouping state must advance
// atomically between consecutive rows of one payee, so the scan is strictly
// one linear pass.
type Scanner struct {
	rows ports.RowSource
}

func New(rows ports.RowSource) *Scanner {
	return &Scanner{rows: rows}
}

// Run scans from FirstDataRow until the end-of-ledger sentinel and returns
// the fully grouped certificate set. Any malformed non-sentinel row is a
// data-integrity failure for the whole batch: the error carries the row
// number and nothing partial is returned.
func (s *Scanner) Run(ctx context.Context) (*domain.CertificateSet, error) {
	set := domain.NewCertificateSet()

	for row := FirstDataRow; ; row++ {
		raw, err := s.rows.Row(ctx, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}

		payee, err := domain.NewEntity(raw.RawEntity)
		if errors.Is(err, domain.ErrEndOfLedger) {
			return set, nil
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}

		li, err := domain.NewLineItem(raw.ATCCode, raw.ATCDescription, raw.Date, raw.Base, raw.Tax)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}

		payee, err = payee.WithSignor(raw.SignorName, raw.SignorPosition, raw.SignorTIN)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}

		set.Record(payee, li)
	}
}

// LoadPayor reads and validates the run's payor record, signor included.
func LoadPayor(ctx context.Context, src ports.PayorSource) (*domain.EntityRecord, error) {
	raw, err := src.Payor(ctx)
	if err != nil {
		return nil, err
	}
	payor, err := domain.NewEntity(raw)
	if errors.Is(err, domain.ErrEndOfLedger) {
		return nil, fmt.Errorf("payor record: TIN is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("payor record: %w", err)
	}
	payor, err = payor.WithSignor(raw.SignorName, raw.SignorPosition, raw.SignorTIN)
	if err != nil {
		return nil, fmt.Errorf("payor record: %w", err)
	}
	return payor, nil
}

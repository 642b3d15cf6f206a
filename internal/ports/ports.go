package ports

import (
	"context"

	"github.com/csg33k/bir2307-generator/internal/domain"
)

// RowSource yields the 15 positional fields of a 1-based ledger row. Rows
// past the data carry a blank TIN; the scanner treats that as end of ledger,
// so sources never need to signal exhaustion themselves.
type RowSource interface {
	Row(ctx context.Context, n int) (domain.RawRow, error)
}

// PayorSource yields the single payor identity record for the run.
type PayorSource interface {
	Payor(ctx context.Context) (domain.RawEntity, error)
}

// CertificateWriter renders one certificate instance to path. Field-to-cell
// mapping is the writer's concern; the domain supplies the derived values.
type CertificateWriter interface {
	Write(ctx context.Context, cert *domain.Certificate, sequence int, payor *domain.EntityRecord, path string) error
}

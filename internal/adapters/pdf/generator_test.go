package pdf

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/csg33k/bir2307-generator/internal/domain"
)

func testEntity(t *testing.T, raw domain.RawEntity, signorName, signorPosition string) *domain.EntityRecord {
	t.Helper()
	e, err := domain.NewEntity(raw)
	if err != nil {
		t.Fatalf("NewEntity: %v", err)
	}
	e, err = e.WithSignor(signorName, signorPosition, "")
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
	}, "Jane Roe", "Treasurer")
	payor := testEntity(t, domain.RawEntity{
		TIN:     "001-002-003-00000",
		OrgName: "Payor Corp",
		Address: "9 Tax Rd",
	}, "Ana Cruz", "President")

	lines := domain.NewCollection()
	li, err := domain.NewLineItem("WC010", "Rentals", "2024-01-10", "1000", "50")
	if err != nil {
		t.Fatalf("NewLineItem: %v", err)
	}
	lines.Add(li)

	return &domain.Certificate{Payee: payee, Month: 1, Year: 2024, Lines: lines}, payor
}

func TestGenerate(t *testing.T) {
	cert, payor := testCertificate(t)

	var buf bytes.Buffer
	if err := Generate(cert, 1, payor, &buf); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "%PDF-") {
		t.Errorf("output does not start with a PDF header: %q", buf.Bytes()[:8])
	}
	if buf.Len() < 1024 {
		t.Errorf("suspiciously small render: %d bytes", buf.Len())
	}
}

func TestWriter_Write(t *testing.T) {
	cert, payor := testCertificate(t)
	path := filepath.Join(t.TempDir(), cert.FileStem(1)+".pdf")

	if err := NewWriter().Write(context.Background(), cert, 1, payor, path); err != nil {
		t.Fatalf("Write: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if info.Size() == 0 {
		t.Error("wrote an empty certificate file")
	}
}

func TestWriter_Ext(t *testing.T) {
	if got := NewWriter().Ext(); got != ".pdf" {
		t.Errorf("Ext = %q", got)
	}
}

package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/csg33k/bir2307-generator/internal/adapters/pdf"
	sqliteadapter "github.com/csg33k/bir2307-generator/internal/adapters/sqlite"
	"github.com/csg33k/bir2307-generator/internal/adapters/xlsx"
	"github.com/csg33k/bir2307-generator/internal/ingest"
	"github.com/csg33k/bir2307-generator/internal/ports"
)

// ledgerSource is what both ledger adapters provide: payee rows plus the
// payor record.
type ledgerSource interface {
	ports.RowSource
	ports.PayorSource
	Close() error
}

// certWriter extends the writer port with the extension it produces.
type certWriter interface {
	ports.CertificateWriter
	Ext() string
}

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("error loading .env file", "err", err)
	}

	ledgerPath := flag.String("ledger", os.Getenv("LEDGER_PATH"), "source ledger: .xlsx workbook or .db SQLite export")
	outDir := flag.String("out", os.Getenv("DROP_PATH"), "drop directory for generated certificates (xlsx ledgers may record it as DROP_PATH)")
	templatePath := flag.String("template", envDefault("FORM_TEMPLATE", filepath.Join("format", "2307.xlsx")), "Form 2307 xlsx template")
	asPDF := flag.Bool("pdf", false, "render PDF certificates instead of filling the xlsx template")
	flag.Parse()

	if *ledgerPath == "" {
		log.Fatal("no ledger given: use -ledger or LEDGER_PATH")
	}

	ctx := context.Background()

	src, err := openLedger(*ledgerPath)
	if err != nil {
		log.Fatalf("failed to open ledger: %v", err)
	}
	defer src.Close()

	payor, err := ingest.LoadPayor(ctx, src)
	if err != nil {
		log.Fatalf("failed to load payor: %v", err)
	}

	set, err := ingest.New(src).Run(ctx)
	if err != nil {
		log.Fatalf("ingestion aborted: %v", err)
	}
	slog.Info("ledger scanned", "ledger", *ledgerPath, "certificates", set.Len())

	drop, err := resolveDropDir(*outDir, src)
	if err != nil {
		log.Fatalf("failed to prepare drop directory: %v", err)
	}

	var writer certWriter
	if *asPDF {
		writer = pdf.NewWriter()
	} else {
		writer = xlsx.NewWriter(*templatePath)
	}

	for _, sc := range set.All() {
		path := filepath.Join(drop, sc.Certificate.FileStem(sc.Sequence)+writer.Ext())
		if err := writer.Write(ctx, sc.Certificate, sc.Sequence, payor, path); err != nil {
			log.Fatalf("rendering aborted (drop directory %q is partial): %v", drop, err)
		}
		slog.Info("certificate written", "path", path)
	}

	slog.Info("run finished", "certificates", set.Len(), "drop", drop)
}

// openLedger picks the adapter by extension: SQLite exports end in
// .db/.sqlite/.sqlite3, everything else is treated as a workbook.
func openLedger(path string) (ledgerSource, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return sqliteadapter.Open(path)
	default:
		return xlsx.OpenLedger(path)
	}
}

// resolveDropDir falls back to the workbook's DROP_PATH cell when no -out is
// given. The directory must not pre-exist: a stale drop directory from an
// earlier run would mix old and new certificates.
func resolveDropDir(out string, src ledgerSource) (string, error) {
	if out == "" {
		wb, ok := src.(*xlsx.Ledger)
		if !ok {
			log.Fatal("no drop directory given: use -out or DROP_PATH")
		}
		var err error
		if out, err = wb.DropPath(); err != nil {
			return "", err
		}
		if out == "" {
			log.Fatal("the workbook's DROP_PATH cell is empty: use -out or DROP_PATH")
		}
	}
	if _, err := os.Stat(out); err == nil {
		log.Fatalf("drop directory %q already exists, delete it first if not needed", out)
	}
	return out, os.MkdirAll(out, 0o755)
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

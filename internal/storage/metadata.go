package storage

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/diogomix/bingopress/internal/bingo"
)

// Metadata is the human-readable summary persisted next to a generation.
type Metadata struct {
	GeneratedAt time.Time
	Config      bingo.GenerationConfig
	Files       []string
	AuditPassed bool
	AuditTotal  int
	AuditOK     int
}

// RenderMetadata produces the report text: seed, counts, numbering ranges,
// capacity usage and the files written.
func RenderMetadata(m Metadata) string {
	cfg := m.Config
	rows := cfg.Rows()
	rightStart := cfg.SheetCount/2 + 1

	auditState := "PASSED"
	if !m.AuditPassed {
		auditState = "FAILED"
	}

	var b strings.Builder
	line := strings.Repeat("=", 44)
	fmt.Fprintln(&b, line)
	fmt.Fprintln(&b, "          BINGO GENERATION METADATA")
	fmt.Fprintln(&b, line)
	fmt.Fprintf(&b, "Generated at:         %s\n", m.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Seed:                 %d\n", cfg.Seed)
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "Configuration:")
	fmt.Fprintf(&b, "  Physical sheets:    %d\n", cfg.SheetCount)
	fmt.Fprintf(&b, "  Cards per sheet:    %d\n", cfg.CardsPerSheet)
	fmt.Fprintf(&b, "  Combinations:       %d\n", cfg.Needed())
	fmt.Fprintf(&b, "  Numbers per card:   %d\n", cfg.NumbersPerCard)
	fmt.Fprintf(&b, "  Number range:       1 - %d\n", cfg.MaxNumber)
	fmt.Fprintf(&b, "  Space capacity:     %s\n", cfg.Capacity().String())
	fmt.Fprintf(&b, "  Space usage:        %s%%\n", cfg.UsagePercent().StringFixed(6))
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "Numbering:")
	fmt.Fprintf(&b, "  Left sheets:        %s - %s\n", bingo.FormatSheetID(1), bingo.FormatSheetID(rows))
	fmt.Fprintf(&b, "  Right sheets:       %s - %s\n", bingo.FormatSheetID(rightStart), bingo.FormatSheetID(cfg.SheetCount))
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "Audit:                %s (%d/%d checks)\n", auditState, m.AuditOK, m.AuditTotal)
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "Files:")
	for _, f := range m.Files {
		fmt.Fprintf(&b, "  - %s\n", f)
	}
	fmt.Fprintln(&b, line)
	return b.String()
}

// WriteMetadata persists the rendered report.
func WriteMetadata(path string, m Metadata) error {
	return os.WriteFile(path, []byte(RenderMetadata(m)), 0644)
}

package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/diogomix/bingopress/internal/bingo"
	"github.com/diogomix/bingopress/internal/storage"
	"github.com/diogomix/bingopress/pkg/logger"
)

var auditFlags struct {
	maxNumber int
}

var auditCmd = &cobra.Command{
	Use:   "audit <generation-dir>",
	Short: "Re-run integrity checks over a previously generated set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]

		simplePath, err := singleMatch(filepath.Join(dir, "*_simple.csv"))
		if err != nil {
			return err
		}
		pairedPath, err := singleMatch(filepath.Join(dir, "*_paired.csv"))
		if err != nil {
			return err
		}

		simple, err := storage.ReadSimple(simplePath)
		if err != nil {
			return err
		}
		paired, err := storage.ReadPaired(pairedPath)
		if err != nil {
			return err
		}

		// The seed is not needed to audit; geometry is recovered from the
		// files themselves.
		cfg := bingo.GenerationConfig{
			SheetCount:     len(paired.Rows) * 2,
			NumbersPerCard: simple.NumbersPerCard,
			MaxNumber:      auditFlags.maxNumber,
			CardsPerSheet:  paired.CardsPerSheet,
			SheetsPerRow:   2,
		}

		report := bingo.Audit(simple, paired, cfg)
		for _, check := range report.Checks {
			status := "ok"
			if !check.Passed {
				status = "FAILED"
			}
			logger.Info("Audit check", "name", check.Name, "status", status, "detail", check.Detail)
		}

		if !report.Passed {
			return fmt.Errorf("audit failed for %s", dir)
		}
		fmt.Printf("Audit passed: %d checks over %d cards\n", len(report.Checks), len(simple.Rows))
		return nil
	},
}

func singleMatch(pattern string) (string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return "", err
	}
	if len(matches) != 1 {
		return "", fmt.Errorf("expected exactly one file matching %s, found %d", pattern, len(matches))
	}
	return matches[0], nil
}

func init() {
	auditCmd.Flags().IntVar(&auditFlags.maxNumber, "max-number", 60, "highest ball number the set was generated for")
}

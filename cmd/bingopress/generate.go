package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/diogomix/bingopress/internal/bingo"
	"github.com/diogomix/bingopress/internal/service"
	"github.com/diogomix/bingopress/pkg/logger"
)

var generateFlags struct {
	seed           int64
	sheets         int
	numbersPerCard int
	maxNumber      int
	baseName       string
	out            string
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a unique printable bingo set with audit",
	RunE: func(cmd *cobra.Command, args []string) error {
		seed := generateFlags.seed
		if seed == 0 {
			// Same convention as the web form default: today's date as ddmmyyyy.
			seed, _ = strconv.ParseInt(time.Now().Format("02012006"), 10, 64)
		}

		cfg := bingo.GenerationConfig{
			Seed:           seed,
			SheetCount:     generateFlags.sheets,
			NumbersPerCard: generateFlags.numbersPerCard,
			MaxNumber:      generateFlags.maxNumber,
			CardsPerSheet:  3,
			SheetsPerRow:   2,
			BaseName:       generateFlags.baseName,
		}

		svc := &service.Generator{OutputRoot: generateFlags.out}
		result, err := svc.Generate(cfg, func(generated, needed int) {
			logger.Info("Generation progress", "generated", generated, "needed", needed)
		})
		if err != nil {
			return err
		}

		for _, check := range result.Audit.Checks {
			status := "ok"
			if !check.Passed {
				status = "FAILED"
			}
			logger.Info("Audit check", "name", check.Name, "status", status, "detail", check.Detail)
		}
		if !result.Audit.Passed {
			logger.Warn("Audit failed, output kept for inspection", "dir", result.Dir)
		}

		fmt.Printf("Generated %d combinations in %s\n", result.Combinations, result.Dir)
		return nil
	},
}

func init() {
	generateCmd.Flags().Int64Var(&generateFlags.seed, "seed", 0, "generation seed (0 = derived from today's date)")
	generateCmd.Flags().IntVar(&generateFlags.sheets, "sheets", 1000, "number of physical sheets to produce")
	generateCmd.Flags().IntVar(&generateFlags.numbersPerCard, "numbers-per-card", 10, "numbers on each card")
	generateCmd.Flags().IntVar(&generateFlags.maxNumber, "max-number", 60, "highest ball number")
	generateCmd.Flags().StringVar(&generateFlags.baseName, "base-name", "Bingos", "base name for output files")
	generateCmd.Flags().StringVar(&generateFlags.out, "out", "bingos", "output root directory")
}

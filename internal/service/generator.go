package service

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/diogomix/bingopress/internal/bingo"
	"github.com/diogomix/bingopress/internal/storage"
	"github.com/diogomix/bingopress/pkg/kvstore"
	"github.com/diogomix/bingopress/pkg/logger"
)

const generationKeyPrefix = "generation"

// Generator runs the full generation pipeline: validate, sample, encode,
// audit, persist, index.
type Generator struct {
	OutputRoot string
	Index      kvstore.KVStore // optional history index
}

// GenerateResult describes one finished generation. A failed audit does not
// fail the run; callers inspect Audit.Passed.
type GenerateResult struct {
	Name         string            `json:"name"`
	Dir          string            `json:"dir"`
	Combinations int               `json:"combinations"`
	SimpleFile   string            `json:"simple_file"`
	PairedFile   string            `json:"paired_file"`
	InfoFile     string            `json:"info_file"`
	Audit        bingo.AuditReport `json:"audit"`
	Elapsed      time.Duration     `json:"elapsed_ns"`
}

// GenerationRecord is the indexed history entry for one generation.
type GenerationRecord struct {
	Name           string    `json:"name"`
	Dir            string    `json:"dir"`
	PairedFile     string    `json:"paired_file"`
	Seed           int64     `json:"seed"`
	Sheets         int       `json:"sheets"`
	Combinations   int       `json:"combinations"`
	NumbersPerCard int       `json:"numbers_per_card"`
	MaxNumber      int       `json:"max_number"`
	AuditPassed    bool      `json:"audit_passed"`
	CreatedAt      time.Time `json:"created_at"`
}

func (g *Generator) Generate(cfg bingo.GenerationConfig, progress bingo.ProgressFunc) (*GenerateResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	logger.Info("Generating combinations",
		"needed", cfg.Needed(),
		"capacity", cfg.Capacity().String(),
		"usage_pct", cfg.UsagePercent().StringFixed(6),
		"seed", cfg.Seed)

	rng := rand.New(rand.NewSource(cfg.Seed))
	pool := bingo.Generate(cfg, rng, progress)

	simple := bingo.EncodeSimple(pool, cfg)
	paired, err := bingo.EncodePaired(pool, cfg)
	if err != nil {
		return nil, err
	}

	report := bingo.Audit(simple, paired, cfg)
	if !report.Passed {
		logger.Warn("Generation audit failed", "checks", report.Checks)
	}

	name := fmt.Sprintf("%s_%d_%s", cfg.BaseName, cfg.SheetCount, start.Format("20060102"))
	dir := filepath.Join(g.OutputRoot, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	result := &GenerateResult{
		Name:         name,
		Dir:          dir,
		Combinations: len(pool),
		SimpleFile:   filepath.Join(dir, name+"_simple.csv"),
		PairedFile:   filepath.Join(dir, name+"_paired.csv"),
		InfoFile:     filepath.Join(dir, name+"_info.txt"),
		Audit:        report,
	}

	if err := storage.WriteSimple(result.SimpleFile, simple); err != nil {
		return nil, fmt.Errorf("write simple layout: %w", err)
	}
	if err := storage.WritePaired(result.PairedFile, paired); err != nil {
		return nil, fmt.Errorf("write paired layout: %w", err)
	}

	auditOK := 0
	for _, check := range report.Checks {
		if check.Passed {
			auditOK++
		}
	}
	meta := storage.Metadata{
		GeneratedAt: start,
		Config:      cfg,
		Files:       []string{result.SimpleFile, result.PairedFile, result.InfoFile},
		AuditPassed: report.Passed,
		AuditTotal:  len(report.Checks),
		AuditOK:     auditOK,
	}
	if err := storage.WriteMetadata(result.InfoFile, meta); err != nil {
		return nil, fmt.Errorf("write metadata: %w", err)
	}

	result.Elapsed = time.Since(start)

	if g.Index != nil {
		record := GenerationRecord{
			Name:           name,
			Dir:            dir,
			PairedFile:     result.PairedFile,
			Seed:           cfg.Seed,
			Sheets:         cfg.SheetCount,
			Combinations:   len(pool),
			NumbersPerCard: cfg.NumbersPerCard,
			MaxNumber:      cfg.MaxNumber,
			AuditPassed:    report.Passed,
			CreatedAt:      start.UTC(),
		}
		if err := g.Index.SetAny(generationKeyPrefix+"/"+name, record); err != nil {
			logger.Warn("Indexing generation failed", "name", name, "err", err)
		}
	}

	logger.Info("Generation complete",
		"name", name,
		"combinations", len(pool),
		"audit_passed", report.Passed,
		"elapsed", result.Elapsed)
	return result, nil
}

// Generations lists indexed generation records.
func (g *Generator) Generations() ([]GenerationRecord, error) {
	if g.Index == nil {
		return nil, nil
	}
	pairs, err := g.Index.List(generationKeyPrefix + "/")
	if err != nil {
		return nil, err
	}

	records := make([]GenerationRecord, 0, len(pairs))
	for _, pair := range pairs {
		var record GenerationRecord
		if err := kvstore.JSON.Unmarshal(pair.Value, &record); err != nil {
			logger.Warn("Skipping unreadable generation record", "key", pair.Key, "err", err)
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

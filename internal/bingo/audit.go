package bingo

import (
	"fmt"
)

// Check is one integrity verification over encoded layouts.
type Check struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// AuditReport lists every check with an overall verdict. A failed audit is
// reported, never raised: generation output may still be worth inspecting.
type AuditReport struct {
	Checks []Check `json:"checks"`
	Passed bool    `json:"passed"`
}

// Audit re-verifies count, uniqueness, range and layout-row invariants after
// encoding. All six checks always run.
func Audit(simple SimpleLayout, paired PairedLayout, cfg GenerationConfig) AuditReport {
	report := AuditReport{Passed: true}

	add := func(name string, passed bool, detail string) {
		report.Checks = append(report.Checks, Check{Name: name, Passed: passed, Detail: detail})
		if !passed {
			report.Passed = false
		}
	}

	// 1. Simple row count matches the needed combination count.
	needed := cfg.Needed()
	add("simple_row_count", len(simple.Rows) == needed,
		fmt.Sprintf("got %d rows, want %d", len(simple.Rows), needed))

	// 2. Every row carries exactly NumbersPerCard columns.
	colsOK := true
	for _, row := range simple.Rows {
		if len(row) != cfg.NumbersPerCard {
			colsOK = false
			break
		}
	}
	add("simple_column_count", colsOK,
		fmt.Sprintf("want %d numbers per row", cfg.NumbersPerCard))

	// 3. No duplicate rows.
	seen := make(map[string]struct{}, len(simple.Rows))
	dupRows := 0
	for _, row := range simple.Rows {
		key := row.Key()
		if _, ok := seen[key]; ok {
			dupRows++
			continue
		}
		seen[key] = struct{}{}
	}
	add("unique_combinations", dupRows == 0,
		fmt.Sprintf("%d duplicate rows", dupRows))

	// 4. All values within [1, MaxNumber].
	outOfRange := 0
	for _, row := range simple.Rows {
		for _, n := range row {
			if n < 1 || n > cfg.MaxNumber {
				outOfRange++
			}
		}
	}
	add("values_in_range", outOfRange == 0,
		fmt.Sprintf("%d values outside [1, %d]", outOfRange, cfg.MaxNumber))

	// 5. No repeated value within a single row.
	repeated := 0
	for _, row := range simple.Rows {
		rowSeen := make(map[int]struct{}, len(row))
		for _, n := range row {
			if _, ok := rowSeen[n]; ok {
				repeated++
			}
			rowSeen[n] = struct{}{}
		}
	}
	add("no_repeats_within_card", repeated == 0,
		fmt.Sprintf("%d repeated values inside rows", repeated))

	// 6. Paired row count.
	add("paired_row_count", len(paired.Rows) == cfg.Rows(),
		fmt.Sprintf("got %d rows, want %d", len(paired.Rows), cfg.Rows()))

	return report
}

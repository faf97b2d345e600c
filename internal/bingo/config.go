package bingo

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// GenerationConfig describes one printable generation run.
type GenerationConfig struct {
	Seed           int64  `json:"seed"`
	SheetCount     int    `json:"sheet_count"`      // physical sheets to produce
	NumbersPerCard int    `json:"numbers_per_card"` // k
	MaxNumber      int    `json:"max_number"`       // universe is 1..MaxNumber
	CardsPerSheet  int    `json:"cards_per_sheet"`
	SheetsPerRow   int    `json:"sheets_per_row"`
	BaseName       string `json:"base_name"`
}

// DefaultConfig mirrors the domain's standard 10-of-60 game.
func DefaultConfig() GenerationConfig {
	return GenerationConfig{
		SheetCount:     1000,
		NumbersPerCard: 10,
		MaxNumber:      60,
		CardsPerSheet:  3,
		SheetsPerRow:   2,
		BaseName:       "Bingos",
	}
}

// Needed is the total number of unique combinations a run must produce.
func (c GenerationConfig) Needed() int {
	return c.SheetCount * c.CardsPerSheet
}

// Rows is the number of rows in the paired layout.
func (c GenerationConfig) Rows() int {
	return c.SheetCount / c.SheetsPerRow
}

// Capacity is the exact binomial coefficient C(MaxNumber, NumbersPerCard).
// Computed with big.Int so realistic universes never overflow or lose
// precision; C(60,10) alone is 75,394,027,566.
func (c GenerationConfig) Capacity() *big.Int {
	return new(big.Int).Binomial(int64(c.MaxNumber), int64(c.NumbersPerCard))
}

// UsagePercent is the share of the combination space a run consumes,
// needed/capacity as an exact decimal percentage.
func (c GenerationConfig) UsagePercent() decimal.Decimal {
	capacity := c.Capacity()
	if capacity.Sign() == 0 {
		return decimal.Zero
	}
	needed := decimal.NewFromInt(int64(c.Needed()))
	return needed.Div(decimal.NewFromBigInt(capacity, 0)).Mul(decimal.NewFromInt(100))
}

// ConfigError reports every violated constraint of a generation config, not
// just the first one found.
type ConfigError struct {
	Violations []string
}

func (e *ConfigError) Error() string {
	return "invalid generation config: " + strings.Join(e.Violations, "; ")
}

// Validate checks the config is mathematically achievable. It is a pure
// check; callers decide whether to proceed. Returns a *ConfigError listing
// all violations, or nil.
func (c GenerationConfig) Validate() error {
	var violations []string

	if c.SheetCount <= 0 {
		violations = append(violations, "sheet_count must be greater than 0")
	}
	if c.NumbersPerCard <= 0 {
		violations = append(violations, "numbers_per_card must be greater than 0")
	}
	if c.MaxNumber <= 0 {
		violations = append(violations, "max_number must be greater than 0")
	}
	if c.CardsPerSheet <= 0 {
		violations = append(violations, "cards_per_sheet must be greater than 0")
	} else if c.CardsPerSheet != len(LeftSlots) {
		// The slot alphabet A..F fixes three cards per sheet.
		violations = append(violations, fmt.Sprintf(
			"cards_per_sheet must be %d, got %d", len(LeftSlots), c.CardsPerSheet))
	}

	if c.NumbersPerCard > c.MaxNumber {
		violations = append(violations, fmt.Sprintf(
			"numbers_per_card (%d) cannot exceed max_number (%d)",
			c.NumbersPerCard, c.MaxNumber))
	}

	// The right-sheet numbering formula divides by 2, so any other row width
	// would number sheets inconsistently.
	if c.SheetsPerRow != 2 {
		violations = append(violations, fmt.Sprintf(
			"sheets_per_row must be 2, got %d", c.SheetsPerRow))
	} else if c.SheetCount > 0 && c.SheetCount%c.SheetsPerRow != 0 {
		violations = append(violations, fmt.Sprintf(
			"sheet_count (%d) must be divisible by sheets_per_row (%d)",
			c.SheetCount, c.SheetsPerRow))
	}

	if c.SheetCount > 0 && c.NumbersPerCard > 0 && c.MaxNumber > 0 &&
		c.NumbersPerCard <= c.MaxNumber {
		capacity := c.Capacity()
		needed := big.NewInt(int64(c.Needed()))
		if needed.Cmp(capacity) > 0 {
			violations = append(violations, fmt.Sprintf(
				"cannot generate %d combinations, C(%d,%d) only allows %s",
				c.Needed(), c.MaxNumber, c.NumbersPerCard, capacity.String()))
		}
	}

	if len(violations) > 0 {
		return &ConfigError{Violations: violations}
	}
	return nil
}

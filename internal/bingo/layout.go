package bingo

import (
	"fmt"
)

// SimpleLayout is the audit-friendly table: one row per card, columns
// Num_1..Num_k, 1-based row id.
type SimpleLayout struct {
	NumbersPerCard int
	Rows           []Card
}

// Columns returns the header names of the simple table.
func (l SimpleLayout) Columns() []string {
	cols := make([]string, l.NumbersPerCard)
	for i := range cols {
		cols[i] = fmt.Sprintf("Num_%d", i+1)
	}
	return cols
}

// EncodeSimple maps pool index i to table row i+1. Pure function of the pool.
func EncodeSimple(pool []Card, cfg GenerationConfig) SimpleLayout {
	rows := make([]Card, len(pool))
	copy(rows, pool)
	return SimpleLayout{
		NumbersPerCard: cfg.NumbersPerCard,
		Rows:           rows,
	}
}

// PairedRow holds one printed row: a left sheet with its cards (slots A..C)
// and a right sheet with its cards (slots D..F).
type PairedRow struct {
	LeftID  string
	Left    []Card
	RightID string
	Right   []Card
}

// PairedLayout is the print-ready arrangement, two sheets per row with
// sequential sheet numbering: left sheets count up from 0001, right sheets
// from SheetCount/2 + 1.
type PairedLayout struct {
	NumbersPerCard int
	CardsPerSheet  int
	Rows           []PairedRow
}

// EncodePaired consumes the pool contiguously in two halves: the first
// Rows()*CardsPerSheet cards fill all left sheets top to bottom, the rest
// fill all right sheets. The halves are not interleaved.
func EncodePaired(pool []Card, cfg GenerationConfig) (PairedLayout, error) {
	if len(pool) != cfg.Needed() {
		return PairedLayout{}, fmt.Errorf(
			"paired layout needs exactly %d cards, pool has %d", cfg.Needed(), len(pool))
	}

	rows := cfg.Rows()
	rightStart := cfg.SheetCount/2 + 1

	layout := PairedLayout{
		NumbersPerCard: cfg.NumbersPerCard,
		CardsPerSheet:  cfg.CardsPerSheet,
		Rows:           make([]PairedRow, 0, rows),
	}

	for r := 0; r < rows; r++ {
		leftBase := r * cfg.CardsPerSheet
		rightBase := (rows + r) * cfg.CardsPerSheet

		row := PairedRow{
			LeftID:  FormatSheetID(r + 1),
			Left:    pool[leftBase : leftBase+cfg.CardsPerSheet],
			RightID: FormatSheetID(rightStart + r),
			Right:   pool[rightBase : rightBase+cfg.CardsPerSheet],
		}
		layout.Rows = append(layout.Rows, row)
	}

	return layout, nil
}

// Cards flattens the layout back into identified cards, assigning left cards
// to slots A, B, C and right cards to D, E, F in order. This is the bridge
// from a loaded layout to the draw engine.
func (l PairedLayout) Cards() []PlayedCard {
	cards := make([]PlayedCard, 0, len(l.Rows)*2*l.CardsPerSheet)
	for _, row := range l.Rows {
		for i, card := range row.Left {
			cards = append(cards, PlayedCard{
				ID:      CardID{Sheet: row.LeftID, Slot: LeftSlots[i]},
				Numbers: card,
			})
		}
		for i, card := range row.Right {
			cards = append(cards, PlayedCard{
				ID:      CardID{Sheet: row.RightID, Slot: RightSlots[i]},
				Numbers: card,
			})
		}
	}
	return cards
}

package bingo

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Slot positions a card inside a printed sheet row. A, B, C belong to the
// left sheet of the row; D, E, F to the right sheet.
type Slot string

const (
	SlotA Slot = "A"
	SlotB Slot = "B"
	SlotC Slot = "C"
	SlotD Slot = "D"
	SlotE Slot = "E"
	SlotF Slot = "F"
)

var (
	LeftSlots  = []Slot{SlotA, SlotB, SlotC}
	RightSlots = []Slot{SlotD, SlotE, SlotF}
	AllSlots   = []Slot{SlotA, SlotB, SlotC, SlotD, SlotE, SlotF}
)

// CardID uniquely identifies a card within a paired layout.
type CardID struct {
	Sheet string `json:"sheet"` // zero-padded 4-digit sheet number
	Slot  Slot   `json:"slot"`
}

func (id CardID) String() string {
	return id.Sheet + "-" + string(id.Slot)
}

// FormatSheetID renders a sheet sequence number as a 4-digit id.
func FormatSheetID(n int) string {
	return fmt.Sprintf("%04d", n)
}

// Card is one playable surface: distinct numbers sorted ascending. A card is
// never mutated after creation; match state lives in the draw engine.
type Card []int

// NewCard copies nums into canonical (sorted) form.
func NewCard(nums []int) Card {
	c := make(Card, len(nums))
	copy(c, nums)
	sort.Ints(c)
	return c
}

// Key returns the canonical comparison key used by the uniqueness set.
func (c Card) Key() string {
	parts := make([]string, len(c))
	for i, n := range c {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

// PlayedCard ties a card's numbers to its identity in a layout. This is the
// unit the draw engine, simulator and live play operate on.
type PlayedCard struct {
	ID      CardID
	Numbers []int
}

package simulator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diogomix/bingopress/internal/bingo"
)

func fixtureTrials() []Trial {
	id := func(sheet string, slot bingo.Slot) bingo.CardID {
		return bingo.CardID{Sheet: sheet, Slot: slot}
	}
	return []Trial{
		{Trial: 1, BallsDrawn: 20, Winners: []bingo.CardID{id("0001", bingo.SlotA)}},
		{Trial: 2, BallsDrawn: 30, Winners: []bingo.CardID{id("0002", bingo.SlotD), id("0003", bingo.SlotA)}},
		{Trial: 3, BallsDrawn: 40, Winners: []bingo.CardID{id("0001", bingo.SlotB)}},
		{Trial: 4, BallsDrawn: 30, Winners: []bingo.CardID{id("0001", bingo.SlotA)}},
	}
}

func TestAggregateBallStats(t *testing.T) {
	stats := Aggregate(fixtureTrials())

	assert.Equal(t, 4, stats.Trials)
	assert.Equal(t, 20, stats.Balls.Min)
	assert.Equal(t, 40, stats.Balls.Max)
	assert.InDelta(t, 30.0, stats.Balls.Mean, 1e-9)
	assert.InDelta(t, 30.0, stats.Balls.Median, 1e-9)
	// Population std dev of {20, 30, 30, 40} is sqrt(50).
	assert.InDelta(t, 7.0710678, stats.Balls.StdDev, 1e-6)
}

func TestAggregateWinnerStats(t *testing.T) {
	stats := Aggregate(fixtureTrials())

	assert.InDelta(t, 1.25, stats.Simultaneous.Mean, 1e-9)
	assert.Equal(t, 2, stats.Simultaneous.Max)
	assert.Equal(t, map[int]int{1: 3, 2: 1}, stats.Simultaneous.Distribution)

	assert.Equal(t, map[string]int{"0001": 3, "0002": 1, "0003": 1}, stats.SheetWins)
	assert.Equal(t, map[string]int{"A": 3, "B": 1, "D": 1}, stats.SlotWins)

	assert.Equal(t, "0001", stats.TopSheet)
	assert.Equal(t, 3, stats.TopSheetWins)
	assert.Equal(t, "A", stats.TopSlot)
	assert.Equal(t, 3, stats.TopSlotWins)
}

func TestAggregateTieBreaksOnSmallestKey(t *testing.T) {
	trials := []Trial{
		{Trial: 1, BallsDrawn: 10, Winners: []bingo.CardID{{Sheet: "0005", Slot: bingo.SlotF}}},
		{Trial: 2, BallsDrawn: 10, Winners: []bingo.CardID{{Sheet: "0002", Slot: bingo.SlotB}}},
	}
	stats := Aggregate(trials)
	assert.Equal(t, "0002", stats.TopSheet)
	assert.Equal(t, "B", stats.TopSlot)
}

func TestAggregateEvenMedian(t *testing.T) {
	trials := []Trial{
		{Trial: 1, BallsDrawn: 10},
		{Trial: 2, BallsDrawn: 21},
	}
	stats := Aggregate(trials)
	assert.InDelta(t, 15.5, stats.Balls.Median, 1e-9)
}

func TestAggregateEmpty(t *testing.T) {
	stats := Aggregate(nil)
	require.Equal(t, 0, stats.Trials)
	assert.Equal(t, "", stats.TopSheet)
	assert.Empty(t, stats.SheetWins)
}

package simulator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diogomix/bingopress/internal/bingo"
)

func testCards() []bingo.PlayedCard {
	return []bingo.PlayedCard{
		{ID: bingo.CardID{Sheet: "0001", Slot: bingo.SlotA}, Numbers: []int{1, 2, 3}},
		{ID: bingo.CardID{Sheet: "0001", Slot: bingo.SlotB}, Numbers: []int{4, 5, 6}},
		{ID: bingo.CardID{Sheet: "0002", Slot: bingo.SlotD}, Numbers: []int{7, 8, 9}},
	}
}

func TestRunProducesCompleteTrials(t *testing.T) {
	trials := Run(testCards(), 10, 20, 99, nil)
	require.Len(t, trials, 20)

	for i, trial := range trials {
		assert.Equal(t, i+1, trial.Trial)
		assert.GreaterOrEqual(t, trial.BallsDrawn, 3, "a 3-number card needs at least 3 balls")
		assert.LessOrEqual(t, trial.BallsDrawn, 10)
		assert.NotEmpty(t, trial.Winners)

		// The order includes exactly the balls up to the winning draw, and
		// the last one completes a winner.
		assert.Len(t, trial.Order, trial.BallsDrawn)
	}
}

func TestRunIsReproducible(t *testing.T) {
	a := Run(testCards(), 10, 15, 42, nil)
	b := Run(testCards(), 10, 15, 42, nil)
	assert.Equal(t, a, b)

	c := Run(testCards(), 10, 15, 43, nil)
	assert.NotEqual(t, a, c)
}

func TestRunProgressCadence(t *testing.T) {
	var reports []int
	Run(testCards(), 10, 25, 1, func(done, total int) {
		assert.Equal(t, 25, total)
		reports = append(reports, done)
	})
	assert.Equal(t, []int{10, 20}, reports)
}

func TestRunSingleCardAlwaysWins(t *testing.T) {
	cards := []bingo.PlayedCard{
		{ID: bingo.CardID{Sheet: "0001", Slot: bingo.SlotA}, Numbers: []int{5}},
	}
	trials := Run(cards, 5, 10, 7, nil)
	for _, trial := range trials {
		require.Len(t, trial.Winners, 1)
		assert.Equal(t, "0001-A", trial.Winners[0].String())
		assert.Equal(t, 5, trial.Order[len(trial.Order)-1])
	}
}

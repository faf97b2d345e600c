package simulator

import (
	"math/rand"

	"github.com/diogomix/bingopress/internal/bingo"
	"github.com/diogomix/bingopress/internal/engine"
)

// ProgressFunc reports completed trials. Advisory only.
type ProgressFunc func(done, total int)

// progressInterval is how many finished trials pass between progress
// callbacks.
const progressInterval = 10

// Trial is one independent game: a fresh random permutation of 1..MaxNumber
// consumed until the first winner(s) appear. BallsDrawn counts the winning
// draw inclusive.
type Trial struct {
	Trial      int
	BallsDrawn int
	Winners    []bingo.CardID
	Order      []int // the draw sequence up to and including the winning ball
}

// Run plays trials independent games over the same card population. Each
// trial gets its own rand stream derived from seed+index, so results are
// reproducible for a given seed regardless of execution order.
func Run(cards []bingo.PlayedCard, maxNumber, trials int, seed int64, progress ProgressFunc) []Trial {
	results := make([]Trial, 0, trials)

	for i := 0; i < trials; i++ {
		rng := rand.New(rand.NewSource(seed + int64(i)))
		results = append(results, runOne(cards, maxNumber, i+1, rng))

		if progress != nil && (i+1)%progressInterval == 0 {
			progress(i+1, trials)
		}
	}

	return results
}

func runOne(cards []bingo.PlayedCard, maxNumber, trialNum int, rng *rand.Rand) Trial {
	order := make([]int, maxNumber)
	for i, v := range rng.Perm(maxNumber) {
		order[i] = v + 1
	}

	eng := engine.New(cards)
	for drawn, ball := range order {
		_, winners := eng.ApplyCall(ball)
		if len(winners) > 0 {
			return Trial{
				Trial:      trialNum,
				BallsDrawn: drawn + 1,
				Winners:    winners,
				Order:      order[:drawn+1],
			}
		}
	}

	// Every ball drawn without a winner: only possible when some card holds
	// a number outside [1, maxNumber].
	return Trial{
		Trial:      trialNum,
		BallsDrawn: maxNumber,
		Order:      order,
	}
}

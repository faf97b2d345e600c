package engine

import (
	"errors"
	"fmt"
	"sort"

	"github.com/diogomix/bingopress/internal/bingo"
)

// Soft outcomes of the live state machine. They are guard conditions the
// caller branches on, not failures that end a game.
var (
	ErrAlreadyFinished = errors.New("game already finished")
	ErrAlreadyCalled   = errors.New("ball already called")
	ErrNothingToUndo   = errors.New("no calls to undo")
)

// DefaultRankingSize is the ranking snapshot length attached to call and
// undo results.
const DefaultRankingSize = 20

// Game runs the draw/win engine incrementally, one externally driven call at
// a time. It has two states: in progress, and finished once any winner
// exists. Finished is absorbing for Call but can be left through Undo.
//
// Game itself is not safe for concurrent use; the hosting layer serializes
// access per game.
type Game struct {
	engine    *Engine
	maxNumber int
	called    []int
	remaining map[int]struct{}
	winners   []bingo.CardID
	finished  bool
}

func NewGame(cards []bingo.PlayedCard, maxNumber int) *Game {
	g := &Game{
		engine:    New(cards),
		maxNumber: maxNumber,
		remaining: make(map[int]struct{}, maxNumber),
	}
	for n := 1; n <= maxNumber; n++ {
		g.remaining[n] = struct{}{}
	}
	return g
}

// CallResult is the per-call delta plus a ranking snapshot.
type CallResult struct {
	Ball        int          `json:"ball"`
	TotalCalled int          `json:"total_called"`
	NewMatches  []MatchDelta `json:"new_matches"`
	NewWinners  []string     `json:"new_winners"`
	Winners     []string     `json:"winners"`
	Ranking     []RankEntry  `json:"ranking"`
	Finished    bool         `json:"finished"`
}

// Call marks one ball across the population. Repeated numbers and calls
// after a win are rejected with their soft errors and change no state.
func (g *Game) Call(number int) (*CallResult, error) {
	if g.finished {
		return nil, ErrAlreadyFinished
	}
	if number < 1 || number > g.maxNumber {
		return nil, fmt.Errorf("ball %d out of range [1, %d]", number, g.maxNumber)
	}
	if _, ok := g.remaining[number]; !ok {
		return nil, ErrAlreadyCalled
	}

	g.called = append(g.called, number)
	delete(g.remaining, number)

	deltas, newWinners := g.engine.ApplyCall(number)
	if len(newWinners) > 0 {
		g.winners = append(g.winners, newWinners...)
		g.finished = true
	}

	return &CallResult{
		Ball:        number,
		TotalCalled: len(g.called),
		NewMatches:  deltas,
		NewWinners:  cardIDStrings(newWinners),
		Winners:     cardIDStrings(g.winners),
		Ranking:     g.engine.Ranking(DefaultRankingSize),
		Finished:    g.finished,
	}, nil
}

// UndoResult is the state snapshot after rolling back one call.
type UndoResult struct {
	Ball        int         `json:"ball"`
	TotalCalled int         `json:"total_called"`
	Winners     []string    `json:"winners"`
	Ranking     []RankEntry `json:"ranking"`
	Finished    bool        `json:"finished"`
}

// Undo pops the last called ball and recomputes the winner set from scratch.
// Undoing the winning call always reopens the game; undoing an earlier call
// while finished keeps any winner whose coverage the removal did not touch.
func (g *Game) Undo() (*UndoResult, error) {
	if len(g.called) == 0 {
		return nil, ErrNothingToUndo
	}

	last := g.called[len(g.called)-1]
	g.called = g.called[:len(g.called)-1]
	g.remaining[last] = struct{}{}
	g.engine.Unmark(last)

	g.winners = g.engine.Winners()
	g.finished = len(g.winners) > 0

	return &UndoResult{
		Ball:        last,
		TotalCalled: len(g.called),
		Winners:     cardIDStrings(g.winners),
		Ranking:     g.engine.Ranking(DefaultRankingSize),
		Finished:    g.finished,
	}, nil
}

// Ranking is a pure read of the topN cards by match count.
func (g *Game) Ranking(topN int) []RankEntry {
	return g.engine.Ranking(topN)
}

// Reset clears history, remaining pool, matches and winners while keeping
// the loaded card population for a fresh game.
func (g *Game) Reset() {
	g.called = nil
	g.winners = nil
	g.finished = false
	g.remaining = make(map[int]struct{}, g.maxNumber)
	for n := 1; n <= g.maxNumber; n++ {
		g.remaining[n] = struct{}{}
	}
	g.engine.Reset()
}

// Snapshot is the full observable game state.
type Snapshot struct {
	TotalCards  int         `json:"total_cards"`
	Called      []int       `json:"called"`
	Remaining   []int       `json:"remaining"`
	TotalCalled int         `json:"total_called"`
	Winners     []string    `json:"winners"`
	Ranking     []RankEntry `json:"ranking"`
	Finished    bool        `json:"finished"`
}

func (g *Game) State() Snapshot {
	called := make([]int, len(g.called))
	copy(called, g.called)

	remaining := make([]int, 0, len(g.remaining))
	for n := range g.remaining {
		remaining = append(remaining, n)
	}
	sort.Ints(remaining)

	return Snapshot{
		TotalCards:  g.engine.Size(),
		Called:      called,
		Remaining:   remaining,
		TotalCalled: len(g.called),
		Winners:     cardIDStrings(g.winners),
		Ranking:     g.engine.Ranking(DefaultRankingSize),
		Finished:    g.finished,
	}
}

func cardIDStrings(ids []bingo.CardID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

package engine

import (
	"sort"

	"github.com/diogomix/bingopress/internal/bingo"
)

// cardState is one card's numbers plus the subset already drawn.
type cardState struct {
	id      bingo.CardID
	numbers map[int]struct{}
	matched map[int]struct{}
}

// winner reports full-card coverage. The threshold is the card's own size,
// never a fixed constant, so mixed-size populations behave correctly.
func (s *cardState) winner() bool {
	return len(s.matched) == len(s.numbers)
}

// MatchDelta reports a card's new match count after a call touched it.
type MatchDelta struct {
	Card    string `json:"card"`
	Matches int    `json:"matches"`
}

// RankEntry is one row of a ranking snapshot.
type RankEntry struct {
	Card    string `json:"card"`
	Sheet   string `json:"sheet"`
	Slot    string `json:"slot"`
	Matches int    `json:"matches"`
	Winner  bool   `json:"winner"`
}

// Engine is the shared draw/win primitive: it knows nothing about draw order
// or history, only which numbers each card holds and which have been marked.
// Both the batch simulator and live play drive it.
type Engine struct {
	cards []*cardState
}

func New(cards []bingo.PlayedCard) *Engine {
	e := &Engine{cards: make([]*cardState, 0, len(cards))}
	for _, pc := range cards {
		state := &cardState{
			id:      pc.ID,
			numbers: make(map[int]struct{}, len(pc.Numbers)),
			matched: make(map[int]struct{}, len(pc.Numbers)),
		}
		for _, n := range pc.Numbers {
			state.numbers[n] = struct{}{}
		}
		e.cards = append(e.cards, state)
	}
	return e
}

// Size returns the card population count.
func (e *Engine) Size() int {
	return len(e.cards)
}

// ApplyCall marks number on every card containing it. It returns the match
// deltas of touched cards and the cards that became winners on exactly this
// call; simultaneous winners are all reported together.
func (e *Engine) ApplyCall(number int) ([]MatchDelta, []bingo.CardID) {
	var deltas []MatchDelta
	var newWinners []bingo.CardID

	for _, card := range e.cards {
		if _, owns := card.numbers[number]; !owns {
			continue
		}
		if _, already := card.matched[number]; already {
			continue
		}
		wasWinner := card.winner()
		card.matched[number] = struct{}{}

		deltas = append(deltas, MatchDelta{
			Card:    card.id.String(),
			Matches: len(card.matched),
		})
		if !wasWinner && card.winner() {
			newWinners = append(newWinners, card.id)
		}
	}

	return deltas, newWinners
}

// Unmark removes number from every card's matched set.
func (e *Engine) Unmark(number int) {
	for _, card := range e.cards {
		delete(card.matched, number)
	}
}

// Winners recomputes the full winner set from scratch.
func (e *Engine) Winners() []bingo.CardID {
	var winners []bingo.CardID
	for _, card := range e.cards {
		if card.winner() {
			winners = append(winners, card.id)
		}
	}
	return winners
}

// Reset clears every matched set, keeping the card population.
func (e *Engine) Reset() {
	for _, card := range e.cards {
		card.matched = make(map[int]struct{}, len(card.numbers))
	}
}

// Ranking returns the topN cards by descending match count. The sort is
// stable over the engine's card order, so repeated calls without intervening
// state changes return identical results.
func (e *Engine) Ranking(topN int) []RankEntry {
	ordered := make([]*cardState, len(e.cards))
	copy(ordered, e.cards)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i].matched) > len(ordered[j].matched)
	})

	if topN > len(ordered) {
		topN = len(ordered)
	}
	if topN < 0 {
		topN = 0
	}

	entries := make([]RankEntry, 0, topN)
	for _, card := range ordered[:topN] {
		entries = append(entries, RankEntry{
			Card:    card.id.String(),
			Sheet:   card.id.Sheet,
			Slot:    string(card.id.Slot),
			Matches: len(card.matched),
			Winner:  card.winner(),
		})
	}
	return entries
}

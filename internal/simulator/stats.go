package simulator

import (
	"math"
	"sort"
)

// BallStats summarizes the balls-drawn-until-first-winner distribution.
type BallStats struct {
	Min    int     `json:"min"`
	Max    int     `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"` // population standard deviation
}

// WinnerStats summarizes simultaneous-winner counts per trial.
type WinnerStats struct {
	Mean         float64     `json:"mean"`
	Max          int         `json:"max"`
	Distribution map[int]int `json:"distribution"`
}

// Statistics aggregates a batch of trials. Read-only once computed.
type Statistics struct {
	Trials       int            `json:"trials"`
	Balls        BallStats      `json:"balls"`
	Simultaneous WinnerStats    `json:"simultaneous_winners"`
	SheetWins    map[string]int `json:"sheet_wins"`
	SlotWins     map[string]int `json:"slot_wins"`
	TopSheet     string         `json:"top_sheet"`
	TopSheetWins int            `json:"top_sheet_wins"`
	TopSlot      string         `json:"top_slot"`
	TopSlotWins  int            `json:"top_slot_wins"`
}

// Aggregate computes summary statistics across trials. Frequency maps are
// reduced to their most frequent entry by scanning keys in sorted order, so
// the reported top sheet/slot is deterministic (smallest key wins ties).
func Aggregate(trials []Trial) Statistics {
	stats := Statistics{
		Trials:    len(trials),
		SheetWins: make(map[string]int),
		SlotWins:  make(map[string]int),
		Simultaneous: WinnerStats{
			Distribution: make(map[int]int),
		},
	}
	if len(trials) == 0 {
		return stats
	}

	balls := make([]int, 0, len(trials))
	var winnerSum int
	for _, trial := range trials {
		balls = append(balls, trial.BallsDrawn)

		count := len(trial.Winners)
		stats.Simultaneous.Distribution[count]++
		winnerSum += count
		if count > stats.Simultaneous.Max {
			stats.Simultaneous.Max = count
		}

		for _, id := range trial.Winners {
			stats.SheetWins[id.Sheet]++
			stats.SlotWins[string(id.Slot)]++
		}
	}

	stats.Balls = summarizeBalls(balls)
	stats.Simultaneous.Mean = float64(winnerSum) / float64(len(trials))
	stats.TopSheet, stats.TopSheetWins = topEntry(stats.SheetWins)
	stats.TopSlot, stats.TopSlotWins = topEntry(stats.SlotWins)
	return stats
}

func summarizeBalls(balls []int) BallStats {
	sorted := append([]int(nil), balls...)
	sort.Ints(sorted)

	n := len(sorted)
	var sum float64
	for _, v := range sorted {
		sum += float64(v)
	}
	mean := sum / float64(n)

	var acc float64
	for _, v := range sorted {
		d := float64(v) - mean
		acc += d * d
	}

	var median float64
	if n%2 == 1 {
		median = float64(sorted[n/2])
	} else {
		median = (float64(sorted[n/2-1]) + float64(sorted[n/2])) / 2
	}

	return BallStats{
		Min:    sorted[0],
		Max:    sorted[n-1],
		Mean:   mean,
		Median: median,
		StdDev: math.Sqrt(acc / float64(n)),
	}
}

// topEntry picks the highest-frequency key, scanning keys in sorted order.
func topEntry(freq map[string]int) (string, int) {
	keys := make([]string, 0, len(freq))
	for k := range freq {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var top string
	var best int
	for _, k := range keys {
		if freq[k] > best {
			top = k
			best = freq[k]
		}
	}
	return top, best
}

package bingo

import (
	"math/rand"
)

// ProgressFunc reports accepted combinations against the target count. It is
// advisory only and never affects what gets generated.
type ProgressFunc func(generated, needed int)

// progressInterval is how many accepted combinations pass between progress
// callbacks.
const progressInterval = 500

// Generate produces cfg.Needed() pairwise-distinct sorted k-subsets of
// [1, cfg.MaxNumber] by rejection sampling: draw, sort, keep if unseen. The
// returned pool's order is the insertion order of the uniqueness set and
// carries no meaning beyond serving as the canonical index space for the
// layout encoder.
//
// Termination is probabilistic. As the accepted set approaches the binomial
// capacity the rejection rate grows without bound; Validate keeps runs far
// from saturation in practice, but worst-case runtime near capacity is a
// known performance cliff and is deliberately not bounded here.
func Generate(cfg GenerationConfig, rng *rand.Rand, progress ProgressFunc) []Card {
	needed := cfg.Needed()
	seen := make(map[string]struct{}, needed)
	pool := make([]Card, 0, needed)

	for len(pool) < needed {
		card := sampleCard(cfg, rng)
		key := card.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		pool = append(pool, card)

		if progress != nil && len(pool)%progressInterval == 0 {
			progress(len(pool), needed)
		}
	}

	return pool
}

// sampleCard draws an unordered uniform sample of NumbersPerCard distinct
// integers from [1, MaxNumber].
func sampleCard(cfg GenerationConfig, rng *rand.Rand) Card {
	perm := rng.Perm(cfg.MaxNumber)
	nums := make([]int, cfg.NumbersPerCard)
	for i := 0; i < cfg.NumbersPerCard; i++ {
		nums[i] = perm[i] + 1
	}
	return NewCard(nums)
}

// Package sample implements weighted sampling without replacement with
// temperature reshaping, used to pick vocabulary words for generated
// sentences.
package sample

import (
	"math"
	"math/rand"
	"sort"
)

// Config configures the sampling strategy.
type Config struct {
	// Temperature controls randomness. 0 = greedy, 1 = raw frequencies,
	// >1 flattens toward uniform, <1 sharpens toward the heaviest words.
	Temperature float64

	// Seed for reproducibility. -1 = random.
	Seed int64
}

// DefaultConfig returns sensible defaults for word sampling.
func DefaultConfig() Config {
	return Config{
		Temperature: 1.0,
		Seed:        -1,
	}
}

// Sampler draws vocabulary indices from weight arrays.
type Sampler struct {
	config Config
	rng    *rand.Rand
}

// NewSampler creates a new sampler with the given configuration.
func NewSampler(config Config) *Sampler {
	var rng *rand.Rand
	if config.Seed >= 0 {
		rng = rand.New(rand.NewSource(config.Seed)) //nolint:gosec // Intentional deterministic seed for reproducibility
	} else {
		rng = rand.New(rand.NewSource(rand.Int63())) //nolint:gosec // User requested random seed
	}

	return &Sampler{
		config: config,
		rng:    rng,
	}
}

// Reshape raises every weight to the power 1/temperature and returns the
// result as a new slice. Temperatures at or below zero leave the weights
// unchanged (greedy selection bypasses reshaping entirely).
func Reshape(weights []float64, temperature float64) []float64 {
	reshaped := make([]float64, len(weights))
	if temperature <= 0 || temperature == 1 {
		copy(reshaped, weights)
		return reshaped
	}

	exp := 1 / temperature
	for i, w := range weights {
		if w > 0 {
			reshaped[i] = math.Pow(w, exp)
		}
	}
	return reshaped
}

// WithoutReplacement draws up to k distinct indices from weights, each
// draw proportional to the remaining temperature-reshaped weights.
//
// The input slice is never modified. Per draw it builds the cumulative
// sum array, picks a uniform value in [0, total) and binary-searches for
// the first cumulative value strictly greater, then zeroes that index so
// it cannot be drawn again. The result may be shorter than k when the
// remaining total weight reaches zero; that is vocabulary exhaustion,
// not an error.
func (s *Sampler) WithoutReplacement(weights []float64, k int) []int {
	if k <= 0 || len(weights) == 0 {
		return nil
	}

	// Greedy decoding (temperature = 0): heaviest remaining index first.
	if s.config.Temperature == 0 {
		return greedyOrder(weights, k)
	}

	// Scale by the max before reshaping so extreme temperatures cannot
	// overflow; uniform scaling leaves the draw distribution unchanged.
	remaining := Reshape(scaleByMax(weights), s.config.Temperature)

	picks := make([]int, 0, min(k, len(weights)))
	cum := make([]float64, len(remaining))

	for len(picks) < k {
		total := 0.0
		for i, w := range remaining {
			total += w
			cum[i] = total
		}
		if total <= 0 {
			break // Exhausted: every remaining weight is zero.
		}

		r := s.rng.Float64() * total
		idx := sort.Search(len(cum), func(i int) bool { return cum[i] > r })
		if idx == len(cum) {
			idx = len(cum) - 1 // Rounding pushed r past the last bucket.
		}
		for idx < len(remaining) && remaining[idx] == 0 {
			idx++ // Never emit an index that was already drawn.
		}
		if idx == len(remaining) {
			break
		}

		picks = append(picks, idx)
		remaining[idx] = 0
	}

	return picks
}

// greedyOrder returns indices of the k largest weights, heaviest first,
// ignoring zero weights. Ties resolve to the lower index for determinism.
func greedyOrder(weights []float64, k int) []int {
	order := make([]int, 0, len(weights))
	for i, w := range weights {
		if w > 0 {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		return weights[order[a]] > weights[order[b]]
	})

	if k < len(order) {
		order = order[:k]
	}
	return order
}

// scaleByMax divides all weights by the largest one.
func scaleByMax(weights []float64) []float64 {
	maxW := 0.0
	for _, w := range weights {
		if w > maxW {
			maxW = w
		}
	}
	if maxW == 0 {
		return weights
	}

	scaled := make([]float64, len(weights))
	for i, w := range weights {
		scaled[i] = w / maxW
	}
	return scaled
}

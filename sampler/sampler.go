// Package sampler provides weighted sampling without replacement for
// Sibyl.
//
// This package wraps the internal sample implementation and provides a
// clean public API for temperature-controlled word selection.
//
// Example usage:
//
//	import "github.com/sibyl-nlp/sibyl/sampler"
//
//	s := sampler.New(sampler.Config{Temperature: 0.8, Seed: 42})
//	picks := s.WithoutReplacement(vocab.Weights(), 8)
package sampler

import (
	"github.com/sibyl-nlp/sibyl/internal/sample"
)

// Config configures the sampling strategy.
//
// Parameters:
//   - Temperature: 0 = greedy, 1 = raw frequencies, <1 sharpens, >1 flattens
//   - Seed: random seed for reproducibility (-1 = random)
type Config = sample.Config

// DefaultConfig returns sensible defaults for word sampling.
func DefaultConfig() Config {
	return sample.DefaultConfig()
}

// Sampler draws vocabulary indices from weight arrays.
type Sampler = sample.Sampler

// New creates a sampler with the given configuration.
func New(config Config) *Sampler {
	return sample.NewSampler(config)
}

// Reshape raises every weight to the power 1/temperature and returns
// the result as a new slice.
func Reshape(weights []float64, temperature float64) []float64 {
	return sample.Reshape(weights, temperature)
}

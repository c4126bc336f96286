// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package risk

import (
	"gonum.org/v1/gonum/floats"

	"github.com/luxfi/bayesaudit/prng"
)

// polyaDraw draws m exchangeable labels from a Polya urn over cats whose
// starting weights are base (Dirichlet pseudocount α plus whatever
// observed/pseudo counts the caller has already folded in), using src for
// randomness. Each draw increases the weight of the category it lands on
// before the next draw, which is what makes the sequence a proper
// Dirichlet-multinomial predictive draw without ever materializing the
// Dirichlet parameter itself.
func polyaDraw(src *prng.Source, cats []string, base map[string]float64, m int) map[string]int {
	drawn := make(map[string]int, len(cats))
	if m <= 0 {
		return drawn
	}
	state := make(map[string]float64, len(cats))
	weights := make([]float64, len(cats))
	for i, c := range cats {
		state[c] = base[c]
		weights[i] = base[c]
	}
	total := floats.Sum(weights)

	for i := 0; i < m; i++ {
		r := src.UniformFloat64() * total
		cum := 0.0
		chosen := cats[len(cats)-1]
		for _, c := range cats {
			cum += state[c]
			if r < cum {
				chosen = c
				break
			}
		}
		drawn[chosen]++
		state[chosen]++
		total++
	}
	return drawn
}

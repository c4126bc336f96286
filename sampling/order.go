// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package sampling derives the deterministic per-collection ballot
// sampling order (spec §4.4): a Fisher-Yates shuffle of the manifest
// fed by prng.Source in domain pbcid.
package sampling

import "github.com/luxfi/bayesaudit/prng"

// GenerateOrder returns a permutation order of [0, n) such that order[i] is the
// 0-based manifest index of the ballot drawn i-th. It depends only on
// (seed, pbcid, n); the manifest's own row order is implicit in indices
// 0..n-1, which the caller assigns before calling this function.
func GenerateOrder(seed, pbcid string, n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	if n < 2 {
		return order
	}
	src := prng.New(seed, pbcid)
	for i := n - 1; i >= 1; i-- {
		j := src.UniformInt(0, i)
		order[i], order[j] = order[j], order[i]
	}
	return order
}

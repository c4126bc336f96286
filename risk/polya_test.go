// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package risk

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/bayesaudit/prng"
)

func TestPolyaDrawCountsSumToM(t *testing.T) {
	require := require.New(t)
	src := prng.New("seed", "test:polya")
	cats := []string{"a", "b", "c"}
	base := map[string]float64{"a": 1, "b": 1, "c": 1}

	drawn := polyaDraw(src, cats, base, 1000)
	total := 0
	for _, n := range drawn {
		total += n
	}
	require.Equal(1000, total)
}

func TestPolyaDrawZeroDraws(t *testing.T) {
	src := prng.New("seed", "test:polya-zero")
	drawn := polyaDraw(src, []string{"a", "b"}, map[string]float64{"a": 1, "b": 1}, 0)
	require.Empty(t, drawn)
}

func TestPolyaDrawDeterministic(t *testing.T) {
	require := require.New(t)
	cats := []string{"a", "b", "c"}
	base := map[string]float64{"a": 2, "b": 5, "c": 1}

	src1 := prng.New("seed", "test:polya-det")
	src2 := prng.New("seed", "test:polya-det")
	d1 := polyaDraw(src1, cats, base, 500)
	d2 := polyaDraw(src2, cats, base, 500)
	require.Equal(d1, d2)
}

func TestPolyaDrawHeavierPriorWinsMore(t *testing.T) {
	require := require.New(t)
	src := prng.New("seed", "test:polya-skew")
	cats := []string{"a", "b"}
	base := map[string]float64{"a": 1, "b": 99}

	drawn := polyaDraw(src, cats, base, 2000)
	require.Greater(drawn["b"], drawn["a"])
}

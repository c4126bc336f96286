// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package risk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTopWinnersSingleWinner(t *testing.T) {
	require := require.New(t)
	full := map[string]int{"0": 10, "1": 40, "-Invalid": 5}
	winners := topWinners(full, 1, []string{"0", "1"})
	require.Equal([]string{"1"}, winners)
}

func TestTopWinnersTieBreaksLexicographically(t *testing.T) {
	require := require.New(t)
	full := map[string]int{"0": 20, "1": 20, "2": 5}
	winners := topWinners(full, 1, []string{"0", "1", "2"})
	require.Equal([]string{"0"}, winners)
}

func TestTopWinnersMultiWinnerSortedOutput(t *testing.T) {
	require := require.New(t)
	full := map[string]int{"0": 30, "1": 20, "2": 10}
	winners := topWinners(full, 2, []string{"0", "1", "2"})
	require.Equal([]string{"0", "1"}, winners)
}

func TestTopWinnersIgnoresNonSelectionCategories(t *testing.T) {
	require := require.New(t)
	full := map[string]int{"0": 5, "1": 5, "-Invalid": 1000}
	winners := topWinners(full, 1, []string{"0", "1"})
	require.NotEqual([]string{"-Invalid"}, winners)
}

func TestEqualStrings(t *testing.T) {
	require := require.New(t)
	require.True(equalStrings([]string{"a", "b"}, []string{"a", "b"}))
	require.False(equalStrings([]string{"a"}, []string{"a", "b"}))
	require.False(equalStrings([]string{"a", "b"}, []string{"a", "c"}))
}

func TestSumIntsAndAddInto(t *testing.T) {
	require := require.New(t)
	require.Equal(6, sumInts(map[string]int{"a": 1, "b": 2, "c": 3}))

	dst := map[string]int{"a": 1}
	addInto(dst, map[string]int{"a": 2, "b": 5})
	require.Equal(3, dst["a"])
	require.Equal(5, dst["b"])
}

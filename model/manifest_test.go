// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIncrementTrailingDigits(t *testing.T) {
	require := require.New(t)
	require.Equal("B-0002", incrementTrailingDigits("B-0001"))
	require.Equal("XY-10", incrementTrailingDigits("XY-9"))
	require.Equal("ABC1", incrementTrailingDigits("ABC"))
	require.Equal("1", incrementTrailingDigits(""))
}

func TestExpandManifestRow(t *testing.T) {
	require := require.New(t)

	rows, err := ExpandManifestRow("Box1", "1", "S-0001", "B-0001", 3)
	require.NoError(err)
	require.Len(rows, 3)
	require.Equal(BallotLocator{Box: "Box1", Position: 1, Stamp: "S-0001", BID: "B-0001"}, rows[0])
	require.Equal(BallotLocator{Box: "Box1", Position: 2, Stamp: "S-0002", BID: "B-0002"}, rows[1])
	require.Equal(BallotLocator{Box: "Box1", Position: 3, Stamp: "S-0003", BID: "B-0003"}, rows[2])
}

func TestExpandManifestRowUniqueBIDs(t *testing.T) {
	require := require.New(t)

	rows, err := ExpandManifestRow("Box1", "1", "S-1", "B-1", 50)
	require.NoError(err)

	seen := make(map[string]bool)
	for _, r := range rows {
		require.False(seen[r.BID], "duplicate bid %s", r.BID)
		seen[r.BID] = true
	}
	require.Len(seen, 50)
}

func TestExpandManifestRowRejectsZero(t *testing.T) {
	require := require.New(t)
	_, err := ExpandManifestRow("Box1", "1", "S-1", "B-1", 0)
	require.Error(err)
}

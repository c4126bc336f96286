// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLatestPicksLexicographicallyGreatestLabel(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	write := func(name string) {
		require.NoError(os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	write("audited-votes-J-2017-11-21.csv")
	write("audited-votes-J-2017-11-22.csv")
	write("audited-votes-J-2017-11-09.csv")

	got, err := Latest(dir, "audited-votes-J-", ".csv")
	require.NoError(err)
	require.Equal(filepath.Join(dir, "audited-votes-J-2017-11-22.csv"), got)
}

func TestLatestMissingReturnsMissingInputError(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()

	_, err := Latest(dir, "nope-", ".csv")
	require.Error(err)
	var missing *MissingInputError
	require.ErrorAs(err, &missing)
}

func TestLatestEmptyLabelSortsBelowOthers(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	write := func(name string) {
		require.NoError(os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	write("11-election.csv")
	write("11-election-2024.csv")

	got, err := Latest(dir, "11-election", ".csv")
	require.NoError(err)
	require.Equal(filepath.Join(dir, "11-election-2024.csv"), got)
}

// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/bayesaudit/model"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestReadElection(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	writeFile(t, dir, "11-election.csv", "key,value\nElection name,Test County\nElection dirname,testco\nElection date,2024-11-05\nElection URL,http://example.test\n")

	e, err := ReadElection(dir)
	require.NoError(err)
	require.Equal("Test County", e.Name)
	require.Equal("testco", e.Dirname)
}

func TestReadElectionMissingRequiredKey(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	writeFile(t, dir, "11-election.csv", "key,value\nElection name,Test County\n")

	_, err := ReadElection(dir)
	require.Error(err)
}

func TestReadContestsAndCollections(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	writeFile(t, dir, "12-contests.csv", "cid,type,winners,writeins,selection_1,selection_2\nC,Plurality,1,No,0,1\n")
	writeFile(t, dir, "13-collections.csv", "pbcid,manager,cvr_type,cid_1\nJ,Jane,CVR,C\n")

	e := model.New()
	require.NoError(ReadContests(dir, e))
	require.NoError(ReadCollections(dir, e))

	c, ok := e.Contests["C"]
	require.True(ok)
	require.Equal(1, c.Winners)
	require.Equal([]string{"0", "1"}, c.Selections)

	require.Contains(e.Rel["C"], "J")
}

func TestReadReportedOutcomesAndSeed(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	writeFile(t, dir, "23-reported-outcomes.csv", "cid,winner_1\nC,1\n")
	writeFile(t, dir, "311-audit-seed.csv", "seed\n13456201235197891138\n")

	e := model.New()
	require.NoError(ReadReportedOutcomes(dir, e))
	require.Equal([]string{"1"}, e.ReportedOutcome["C"])

	seed, err := ReadSeed(dir)
	require.NoError(err)
	require.Equal("13456201235197891138", seed)
}

// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/bayesaudit/stage"
)

func TestEstimatedTotalNeededFloorsWithoutHistory(t *testing.T) {
	require := require.New(t)
	got := EstimatedTotalNeeded(0, 0, 0.05, 40, 40, 10000)
	require.Equal(80, got)
}

func TestEstimatedTotalNeededExtrapolatesDecreasingRisk(t *testing.T) {
	require := require.New(t)
	got := EstimatedTotalNeeded(0.5, 0.1, 0.05, 40, 40, 10000)
	require.Greater(got, 40)
	require.LessOrEqual(got, 10000)
}

func TestEstimatedTotalNeededCapsAtManifestSize(t *testing.T) {
	require := require.New(t)
	got := EstimatedTotalNeeded(0.9, 0.89, 0.05, 9990, 40, 10000)
	require.LessOrEqual(got, 10000)
}

func TestEstimatedTotalNeededNoExtrapolationWhenAlreadyBelowLimit(t *testing.T) {
	require := require.New(t)
	got := EstimatedTotalNeeded(0.1, 0.01, 0.05, 40, 40, 10000)
	require.Equal(80, got)
}

func TestEmitWritesAllThreeArtifacts(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "12-contests.csv")
	require.NoError(os.WriteFile(inputPath, []byte("cid\nC\n"), 0o644))

	decisions := []stage.ContestDecision{
		{CID: "C", Method: "Bayes", Risk: 0.001, RiskLimit: 0.05, UpsetThresh: 0.99, Status: 1, SampleTotal: 40},
	}
	increments := []stage.CollectionIncrement{
		{PBCID: "J", AuditedSoFar: 40, NextIncrement: 0},
	}

	err := Emit(dir, "001", []string{inputPath}, decisions, increments,
		map[string]float64{"C": 0.01}, map[string]Driver{"J": {CID: "C", RiskLimit: 0.05}},
		map[string]int{"J": 40}, map[string]int{"J": 10000})
	require.NoError(err)

	for _, name := range []string{"20-audit-snapshot-001.csv", "30-audit-output-001.csv", "40-audit-plan-001.csv"} {
		_, err := os.Stat(filepath.Join(dir, name))
		require.NoError(err, name)
	}
}

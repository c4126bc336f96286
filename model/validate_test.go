// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func buildValidElection() *Election {
	e := New()
	e.AddContest(&Contest{
		CID:        "C",
		Winners:    1,
		Selections: []string{"0", "1"},
		Params: ContestParams{
			Method:           Bayes,
			RiskLimit:        0.05,
			UpsetThreshold:   0.99,
			SamplingMode:     Active,
			PseudocountAlpha: 1,
		},
	})
	e.AddCollection(&Collection{
		PBCID:           "J",
		Type:            CVR,
		AllowedContests: []string{"C"},
		MaxAuditRate:    40,
		N:               2,
	})
	e.RebuildRel()
	e.Manifests["J"] = &Manifest{PBCID: "J", Ballots: []BallotLocator{
		{Box: "1", Position: 1, Stamp: "S-1", BID: "B-1"},
		{Box: "1", Position: 2, Stamp: "S-2", BID: "B-2"},
	}}
	e.ReportedOutcome["C"] = []string{"1"}
	return e
}

func TestValidateElectionOK(t *testing.T) {
	require := require.New(t)
	e := buildValidElection()
	require.NoError(e.Validate())
}

func TestValidateRelInconsistency(t *testing.T) {
	require := require.New(t)
	e := buildValidElection()
	e.Rel["C"] = nil
	require.Error(e.Validate())
}

func TestValidateManifestMismatch(t *testing.T) {
	require := require.New(t)
	e := buildValidElection()
	e.Collections["J"].N = 5
	require.Error(e.Validate())
}

func TestValidateBadOutcome(t *testing.T) {
	require := require.New(t)
	e := buildValidElection()
	e.ReportedOutcome["C"] = []string{"9"}
	require.Error(e.Validate())
}

func TestValidateParameterRanges(t *testing.T) {
	require := require.New(t)
	e := buildValidElection()
	e.Contests["C"].Params.UpsetThreshold = 0.01 // below risk limit
	require.Error(e.Validate())
}

func TestValidateSeed(t *testing.T) {
	require := require.New(t)
	require.NoError(ValidateSeed("13456201235197891138"))
	require.Error(ValidateSeed("123"))
	require.Error(ValidateSeed("1234567890123456789a"))
}

// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package risk

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/bayesaudit/ids"
	"github.com/luxfi/bayesaudit/model"
	"github.com/luxfi/bayesaudit/tally"
)

// landslideElection builds a single CVR collection where the sample so far
// is lopsided (18 of the 20 audited ballots for alice), so a correctly implemented estimator should
// find the reported outcome very unlikely to be wrong.
func landslideElection(t *testing.T) (*model.Election, *model.Contest, *tally.Tally) {
	t.Helper()
	e := model.New()
	contest := &model.Contest{
		CID:        "C1",
		Winners:    1,
		Selections: []string{"alice", "bob"},
		Params:     model.ContestParams{PseudocountAlpha: 1},
	}
	e.AddContest(contest)
	e.AddCollection(&model.Collection{PBCID: "P1", Type: model.CVR, AllowedContests: []string{"C1"}, N: 100})
	e.RebuildRel()
	e.ReportedOutcome["C1"] = []string{"alice"}

	ballots := make([]model.BallotLocator, 0, 100)
	for i := 0; i < 90; i++ {
		bid := bidOf(i, "alice")
		ballots = append(ballots, model.BallotLocator{BID: bid})
		e.RecordReportedVote("P1", bid, "C1", ids.Vote{"alice"})
	}
	for i := 0; i < 10; i++ {
		bid := bidOf(i, "bob")
		ballots = append(ballots, model.BallotLocator{BID: bid})
		e.RecordReportedVote("P1", bid, "C1", ids.Vote{"bob"})
	}
	e.Manifests["P1"] = &model.Manifest{PBCID: "P1", Ballots: ballots}

	av := tally.AuditedVotes{"P1": {}}
	order := make([]int, len(ballots))
	for i := range order {
		order[i] = i
	}
	for i := 0; i < 20; i++ {
		bid := ballots[i].BID
		var v ids.Vote
		if i < 18 {
			v = ids.Vote{"alice"}
		} else {
			v = ids.Vote{"bob"}
		}
		av["P1"][bid] = map[string]ids.Vote{"C1": v}
	}

	tl, err := tally.Ingest(e, av, map[string][]int{"P1": order})
	require.NoError(t, err)
	return e, contest, tl
}

func bidOf(i int, who string) string {
	return who + "-" + itoa(i)
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	digits := []byte{}
	for i > 0 {
		digits = append([]byte{byte('0' + i%10)}, digits...)
		i /= 10
	}
	return string(digits)
}

func TestEstimateLandslideHasLowRisk(t *testing.T) {
	require := require.New(t)
	e, contest, tl := landslideElection(t)

	est := NewEstimator(nil, nil)
	est.Workers = 4
	r, err := est.Estimate(e, contest, tl, "test-seed", 0, 2000)
	require.NoError(err)
	require.Less(r, 0.05)
}

func TestEstimateIsDeterministicForSameSeed(t *testing.T) {
	require := require.New(t)
	e, contest, tl := landslideElection(t)

	est := NewEstimator(nil, nil)
	est.Workers = 4
	r1, err := est.Estimate(e, contest, tl, "fixed-seed", 0, 500)
	require.NoError(err)
	r2, err := est.Estimate(e, contest, tl, "fixed-seed", 0, 500)
	require.NoError(err)
	require.Equal(r1, r2)
}

func TestEstimateRunsForDifferentStageIndices(t *testing.T) {
	require := require.New(t)
	e, contest, tl := landslideElection(t)

	est := NewEstimator(nil, nil)
	r1, err := est.Estimate(e, contest, tl, "fixed-seed", 0, 500)
	require.NoError(err)
	r2, err := est.Estimate(e, contest, tl, "fixed-seed", 1, 500)
	require.NoError(err)
	// Not asserting inequality of the risk value itself (both may round to
	// the same estimate), only that both calls succeed independently.
	_ = r1
	_ = r2
}

func TestEstimateCloseContestHasNonzeroRisk(t *testing.T) {
	require := require.New(t)
	e := model.New()
	contest := &model.Contest{
		CID:        "C2",
		Winners:    1,
		Selections: []string{"alice", "bob"},
		Params:     model.ContestParams{PseudocountAlpha: 1},
	}
	e.AddContest(contest)
	e.AddCollection(&model.Collection{PBCID: "P2", Type: model.CVR, AllowedContests: []string{"C2"}, N: 100})
	e.RebuildRel()
	e.ReportedOutcome["C2"] = []string{"alice"}

	ballots := make([]model.BallotLocator, 0, 100)
	for i := 0; i < 51; i++ {
		bid := bidOf(i, "alice")
		ballots = append(ballots, model.BallotLocator{BID: bid})
		e.RecordReportedVote("P2", bid, "C2", ids.Vote{"alice"})
	}
	for i := 0; i < 49; i++ {
		bid := bidOf(i, "bob")
		ballots = append(ballots, model.BallotLocator{BID: bid})
		e.RecordReportedVote("P2", bid, "C2", ids.Vote{"bob"})
	}
	e.Manifests["P2"] = &model.Manifest{PBCID: "P2", Ballots: ballots}

	// Order the sample so the first four draws alternate alice/bob ballots,
	// keeping the audited prefix contiguous from position 0.
	order := []int{0, 51, 1, 52}
	seen := map[int]bool{0: true, 51: true, 1: true, 52: true}
	for i := range ballots {
		if !seen[i] {
			order = append(order, i)
		}
	}

	av := tally.AuditedVotes{"P2": {}}
	av["P2"][ballots[0].BID] = map[string]ids.Vote{"C2": ids.Vote{"alice"}}
	av["P2"][ballots[1].BID] = map[string]ids.Vote{"C2": ids.Vote{"alice"}}
	av["P2"][ballots[51].BID] = map[string]ids.Vote{"C2": ids.Vote{"bob"}}
	av["P2"][ballots[52].BID] = map[string]ids.Vote{"C2": ids.Vote{"bob"}}

	tl, err := tally.Ingest(e, av, map[string][]int{"P2": order})
	require.NoError(err)

	est := NewEstimator(nil, nil)
	est.Workers = 4
	r, err := est.Estimate(e, contest, tl, "close-seed", 0, 2000)
	require.NoError(err)
	require.Greater(r, 0.01)
}

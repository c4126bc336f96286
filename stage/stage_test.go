// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package stage

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/bayesaudit/ids"
	"github.com/luxfi/bayesaudit/model"
	"github.com/luxfi/bayesaudit/risk"
	"github.com/luxfi/bayesaudit/tally"
)

func landslide(t *testing.T) (*model.Election, *tally.Tally) {
	t.Helper()
	e := model.New()
	e.Seed = "13456201235197891138"
	c := &model.Contest{
		CID: "C", Winners: 1, Selections: []string{"0", "1"},
		Params: model.ContestParams{Method: model.Bayes, RiskLimit: 0.05, UpsetThreshold: 0.99, PseudocountAlpha: 1},
		Status: model.StatusOpen,
	}
	e.AddContest(c)
	e.AddCollection(&model.Collection{PBCID: "J", Type: model.CVR, AllowedContests: []string{"C"}, N: 10000, MaxAuditRate: 40})
	e.RebuildRel()
	e.ReportedOutcome["C"] = []string{"1"}

	ballots := make([]model.BallotLocator, 0, 10000)
	for i := 0; i < 9000; i++ {
		bid := "B-1-" + itoa(i)
		ballots = append(ballots, model.BallotLocator{BID: bid})
		e.RecordReportedVote("J", bid, "C", ids.Vote{"1"})
	}
	for i := 0; i < 1000; i++ {
		bid := "B-0-" + itoa(i)
		ballots = append(ballots, model.BallotLocator{BID: bid})
		e.RecordReportedVote("J", bid, "C", ids.Vote{"0"})
	}
	e.Manifests["J"] = &model.Manifest{PBCID: "J", Ballots: ballots}

	order := make([]int, len(ballots))
	for i := range order {
		order[i] = i
	}
	av := tally.AuditedVotes{"J": {}}
	for i := 0; i < 40; i++ {
		av["J"][ballots[i].BID] = map[string]ids.Vote{"C": ids.Vote{"1"}}
	}
	tl, err := tally.Ingest(e, av, map[string][]int{"J": order})
	require.NoError(t, err)
	return e, tl
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

func TestMeasureContestsLandslidePasses(t *testing.T) {
	require := require.New(t)
	e, tl := landslide(t)
	est := risk.NewEstimator(nil, nil)
	est.Workers = 4
	ctl := NewController(nil, est, 3000, nil)

	decisions, err := ctl.MeasureContests(e, tl, 0)
	require.NoError(err)
	require.Len(decisions, 1)
	require.Equal(model.StatusPassed, decisions[0].Status)
	require.True(Terminated(e))
}

func TestMeasureContestsSkipsTerminalContests(t *testing.T) {
	require := require.New(t)
	e, tl := landslide(t)
	e.Contests["C"].Status = model.StatusPassed
	est := risk.NewEstimator(nil, nil)
	ctl := NewController(nil, est, 100, nil)

	decisions, err := ctl.MeasureContests(e, tl, 0)
	require.NoError(err)
	require.Equal(model.StatusPassed, decisions[0].Status)
	require.Equal(0.0, decisions[0].Risk)
}

func TestPlanIncrementsZeroWhenNoActiveContest(t *testing.T) {
	require := require.New(t)
	e, _ := landslide(t)
	e.Contests["C"].Status = model.StatusPassed

	incs := PlanIncrements(e, map[string]int{"J": 40})
	require.Len(incs, 1)
	require.Equal(0, incs[0].NextIncrement)
}

func TestPlanIncrementsCapsAtAuditRate(t *testing.T) {
	require := require.New(t)
	e, _ := landslide(t)

	incs := PlanIncrements(e, map[string]int{"J": 40})
	require.Equal(40, incs[0].NextIncrement)
}

func TestPlanIncrementsCapsAtManifestSize(t *testing.T) {
	require := require.New(t)
	e, _ := landslide(t)
	e.Collections["J"].N = 50

	incs := PlanIncrements(e, map[string]int{"J": 40})
	require.Equal(10, incs[0].NextIncrement)
}

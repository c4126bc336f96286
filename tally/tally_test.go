// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tally

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/bayesaudit/ids"
	"github.com/luxfi/bayesaudit/model"
)

func buildElection() *model.Election {
	e := model.New()
	e.AddContest(&model.Contest{CID: "C", Winners: 1, Selections: []string{"0", "1"}})
	e.AddCollection(&model.Collection{PBCID: "J", Type: model.CVR, AllowedContests: []string{"C"}, N: 4})
	e.RebuildRel()
	e.Manifests["J"] = &model.Manifest{PBCID: "J", Ballots: []model.BallotLocator{
		{BID: "B-1"}, {BID: "B-2"}, {BID: "B-3"}, {BID: "B-4"},
	}}
	e.RecordReportedVote("J", "B-1", "C", ids.Vote{"1"})
	e.RecordReportedVote("J", "B-2", "C", ids.Vote{"1"})
	e.RecordReportedVote("J", "B-3", "C", ids.Vote{"0"})
	e.RecordReportedVote("J", "B-4", "C", ids.Vote{"1"})
	return e
}

func TestIngestPrefixOK(t *testing.T) {
	require := require.New(t)
	e := buildElection()
	order := []int{0, 1, 2, 3} // identity order

	av := AuditedVotes{"J": {
		"B-1": {"C": ids.Vote{"1"}},
		"B-2": {"C": ids.Vote{"1"}},
	}}

	tl, err := Ingest(e, av, map[string][]int{"J": order})
	require.NoError(err)
	require.Equal(2, tl.Count(Key{CID: "C", PBCID: "J", RVote: "1", AVote: "1"}))
}

func TestIngestOutOfOrder(t *testing.T) {
	require := require.New(t)
	e := buildElection()
	order := []int{0, 1, 2, 3}

	av := AuditedVotes{"J": {
		"B-3": {"C": ids.Vote{"0"}}, // position 2, but positions 0,1 missing
	}}

	_, err := Ingest(e, av, map[string][]int{"J": order})
	require.Error(err)
	var oos *OutOfOrderSampleError
	require.ErrorAs(err, &oos)
}

func TestIngestNoCVRUsesSentinel(t *testing.T) {
	require := require.New(t)
	e := model.New()
	e.AddContest(&model.Contest{CID: "C", Winners: 1, Selections: []string{"0", "1"}})
	e.AddCollection(&model.Collection{PBCID: "K", Type: model.NoCVR, AllowedContests: []string{"C"}, N: 2})
	e.RebuildRel()
	e.Manifests["K"] = &model.Manifest{PBCID: "K", Ballots: []model.BallotLocator{{BID: "X-1"}, {BID: "X-2"}}}

	av := AuditedVotes{"K": {"X-1": {"C": ids.Vote{"1"}}}}
	order := []int{0, 1}

	tl, err := Ingest(e, av, map[string][]int{"K": order})
	require.NoError(err)
	require.Equal(1, tl.Count(Key{CID: "C", PBCID: "K", RVote: NoCVR, AVote: "1"}))
}

// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package tally ingests cumulative audited-vote transcripts (spec §4.5,
// C5), cross-validates them against each collection's sampling order,
// and joins them with reported votes to form the sample cross-tab
// s[cid,pbcid,rvote,avote] that feeds the risk estimator.
package tally

import (
	"github.com/luxfi/bayesaudit/ids"
	"github.com/luxfi/bayesaudit/model"
)

// NoCVR is the sentinel reported-vote key used for noCVR collections,
// which have no per-ballot reported vote to stratify on.
const NoCVR = "noCVR"

// Key identifies one cell of the sample cross-tab.
type Key struct {
	CID   string
	PBCID string
	RVote string // reported vote key, or NoCVR
	AVote string // audited vote key
}

// Tally is the derived, ephemeral sample cross-tab s[cid,pbcid,rvote,avote]
// (spec §3). It is re-derivable from a snapshot and never persisted
// directly.
type Tally struct {
	counts map[Key]int
}

// New returns an empty Tally.
func New() *Tally {
	return &Tally{counts: make(map[Key]int)}
}

// Add increments the count for k.
func (t *Tally) Add(k Key, n int) {
	if n == 0 {
		return
	}
	t.counts[k] += n
}

// Count returns s[k].
func (t *Tally) Count(k Key) int {
	return t.counts[k]
}

// SumByAVote returns, for a fixed (cid,pbcid,rvote) stratum, the observed
// counts keyed by audited-vote string — the base the Polya urn prior adds
// its pseudocounts to.
func (t *Tally) SumByAVote(cid, pbcid, rvote string) map[string]int {
	out := make(map[string]int)
	for k, n := range t.counts {
		if k.CID == cid && k.PBCID == pbcid && k.RVote == rvote {
			out[k.AVote] += n
		}
	}
	return out
}

// StratumTotal returns n(pbcid) restricted to one (cid,pbcid,rvote)
// stratum: the number of ballots already audited whose reported vote
// fell in that stratum.
func (t *Tally) StratumTotal(cid, pbcid, rvote string) int {
	total := 0
	for _, n := range t.SumByAVote(cid, pbcid, rvote) {
		total += n
	}
	return total
}

// AuditedVotes is the cumulative, per-collection hand-interpretation
// transcript av(pbcid,bid,cid) -> vote.
type AuditedVotes map[string]map[string]map[string]ids.Vote // pbcid -> bid -> cid -> vote

// Ingest joins a cumulative audited-votes snapshot with the election's
// reported votes/tallies and sampling orders to produce the sample
// cross-tab. It fails with OutOfOrderSampleError if any collection's
// transcript is not an initial, unbroken prefix of its sampling order
// (spec §4.5, §8 property 3).
func Ingest(e *model.Election, av AuditedVotes, orders map[string][]int) (*Tally, error) {
	out := New()

	for pbcid, byBID := range av {
		manifest := e.Manifests[pbcid]
		order := orders[pbcid]
		if manifest == nil || order == nil {
			continue
		}
		if err := checkPrefix(pbcid, manifest, order, byBID); err != nil {
			return nil, err
		}

		coll := e.Collections[pbcid]
		for bid, byCID := range byBID {
			for cid, avote := range byCID {
				var rvoteKey string
				if coll.Type == model.CVR {
					rv := e.ReportedCVR[pbcid][bid][cid]
					rvoteKey = rv.Key()
				} else {
					rvoteKey = NoCVR
				}
				out.Add(Key{CID: cid, PBCID: pbcid, RVote: rvoteKey, AVote: avote.Key()}, 1)
			}
		}
	}
	return out, nil
}

// checkPrefix verifies that the set of audited bids for pbcid is exactly
// the first n entries of order, for some n, with no gaps.
func checkPrefix(pbcid string, manifest *model.Manifest, order []int, byBID map[string]map[string]ids.Vote) error {
	positionOf := make(map[string]int, len(order))
	for pos, manifestIdx := range order {
		positionOf[manifest.Ballots[manifestIdx].BID] = pos
	}

	maxPos := -1
	for bid := range byBID {
		pos, ok := positionOf[bid]
		if !ok {
			return &OutOfOrderSampleError{PBCID: pbcid, MissingBID: bid}
		}
		if pos > maxPos {
			maxPos = pos
		}
	}
	if maxPos < 0 {
		return nil
	}
	for pos := 0; pos <= maxPos; pos++ {
		bid := manifest.Ballots[order[pos]].BID
		if _, ok := byBID[bid]; !ok {
			return &OutOfOrderSampleError{PBCID: pbcid, MissingBID: bid}
		}
	}
	return nil
}

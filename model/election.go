// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package model

import "github.com/luxfi/bayesaudit/ids"

// Election is the engine's read-only-after-load view of everything an
// audit stage needs: structure, manifests, reported data, and the seed.
// It is passed explicitly to every stage operation; there is no global
// state (spec §9 design note).
type Election struct {
	Name, Dirname, Date, URL string

	Contests    map[string]*Contest
	Collections map[string]*Collection
	Manifests   map[string]*Manifest

	// Rel[cid] is the set of pbcids allowed to carry cid, kept
	// bidirectionally consistent with each Collection's AllowedContests.
	Rel map[string][]string

	// ReportedCVR[pbcid][bid][cid] is rcv(pbcid,bid,cid) for CVR
	// collections.
	ReportedCVR map[string]map[string]map[string]ids.Vote

	// ReportedTally[pbcid][cid][vote.Key()] is rt(pbcid,cid,vote) for
	// noCVR collections.
	ReportedTally map[string]map[string]map[string]int

	// ReportedOutcome[cid] is ro(cid), the ordered reported winner list.
	ReportedOutcome map[string][]string

	Seed string
}

// New returns an empty Election ready to be populated by a file adapter.
func New() *Election {
	return &Election{
		Contests:        make(map[string]*Contest),
		Collections:     make(map[string]*Collection),
		Manifests:       make(map[string]*Manifest),
		Rel:             make(map[string][]string),
		ReportedCVR:     make(map[string]map[string]map[string]ids.Vote),
		ReportedTally:   make(map[string]map[string]map[string]int),
		ReportedOutcome: make(map[string][]string),
	}
}

// AddContest registers a contest and gives it an empty Rel entry if it has
// none. It does not consult the collections already loaded; call
// RebuildRel after loading both tables to populate Rel.
func (e *Election) AddContest(c *Contest) {
	e.Contests[c.CID] = c
	if _, ok := e.Rel[c.CID]; !ok {
		e.Rel[c.CID] = nil
	}
}

// AddCollection registers a collection.
func (e *Election) AddCollection(c *Collection) {
	e.Collections[c.PBCID] = c
}

// RebuildRel recomputes Rel[cid] from every Collection's AllowedContests,
// maintaining the bidirectional invariant of spec §3: pbcid ∈ rel[cid] ⇔
// cid is listed among that collection's allowed contests.
func (e *Election) RebuildRel() {
	rel := make(map[string][]string, len(e.Contests))
	for cid := range e.Contests {
		rel[cid] = nil
	}
	for _, coll := range e.Collections {
		for _, cid := range coll.AllowedContests {
			rel[cid] = append(rel[cid], coll.PBCID)
		}
	}
	e.Rel = rel
}

// RecordReportedVote stores rcv(pbcid,bid,cid) for a CVR collection.
func (e *Election) RecordReportedVote(pbcid, bid, cid string, v ids.Vote) {
	byBID, ok := e.ReportedCVR[pbcid]
	if !ok {
		byBID = make(map[string]map[string]ids.Vote)
		e.ReportedCVR[pbcid] = byBID
	}
	byCID, ok := byBID[bid]
	if !ok {
		byCID = make(map[string]ids.Vote)
		byBID[bid] = byCID
	}
	byCID[cid] = v
}

// RecordReportedTally accumulates rt(pbcid,cid,vote) for a noCVR
// collection.
func (e *Election) RecordReportedTally(pbcid, cid string, v ids.Vote, count int) {
	byCID, ok := e.ReportedTally[pbcid]
	if !ok {
		byCID = make(map[string]map[string]int)
		e.ReportedTally[pbcid] = byCID
	}
	byVote, ok := byCID[cid]
	if !ok {
		byVote = make(map[string]int)
		byCID[cid] = byVote
	}
	byVote[v.Key()] += count
}

// ReportedVoteCounts returns, for a CVR collection and contest, the total
// number of manifest ballots reporting each distinct vote key — the
// "total_per_rvote" quantity §4.6 needs to derive unseen-ballot strata.
func (e *Election) ReportedVoteCounts(pbcid, cid string) map[string]int {
	counts := make(map[string]int)
	for _, byCID := range e.ReportedCVR[pbcid] {
		v, ok := byCID[cid]
		if !ok {
			continue
		}
		counts[v.Key()]++
	}
	return counts
}

// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package model

import (
	"fmt"
	"sort"

	"github.com/luxfi/bayesaudit/errlist"
)

// Validate runs every structural check spec §4.3 requires before
// sampling or risk computation may proceed: Rel bidirectional
// consistency, every referenced pbcid/cid declared, every reported
// selection valid-or-permitted-write-in, manifest totals matching N,
// and reported outcome winners valid. It returns the aggregate of every
// violation found, not just the first.
func (e *Election) Validate() error {
	var errs errlist.Errs

	e.validateRel(&errs)
	e.validateManifestTotals(&errs)
	e.validateReportedVotes(&errs)
	e.validateReportedOutcomes(&errs)
	e.validateContestParams(&errs)

	return errs.Err()
}

func (e *Election) validateRel(errs *errlist.Errs) {
	for pbcid, coll := range e.Collections {
		allowed := make(map[string]bool, len(coll.AllowedContests))
		for _, cid := range coll.AllowedContests {
			allowed[cid] = true
			if _, ok := e.Contests[cid]; !ok {
				errs.Add(&ModelConsistencyError{Detail: fmt.Sprintf(
					"collection %s allows undeclared contest %s", pbcid, cid)})
			}
		}
		for cid := range allowed {
			if !containsString(e.Rel[cid], pbcid) {
				errs.Add(&ModelConsistencyError{Detail: fmt.Sprintf(
					"rel[%s] missing %s despite collection declaring it allowed", cid, pbcid)})
			}
		}
	}
	for cid, pbcids := range e.Rel {
		for _, pbcid := range pbcids {
			coll, ok := e.Collections[pbcid]
			if !ok {
				errs.Add(&ModelConsistencyError{Detail: fmt.Sprintf(
					"rel[%s] references undeclared collection %s", cid, pbcid)})
				continue
			}
			if !containsString(coll.AllowedContests, cid) {
				errs.Add(&ModelConsistencyError{Detail: fmt.Sprintf(
					"rel[%s] includes %s but that collection does not allow %s", cid, pbcid, cid)})
			}
		}
	}
}

func (e *Election) validateManifestTotals(errs *errlist.Errs) {
	for pbcid, coll := range e.Collections {
		m, ok := e.Manifests[pbcid]
		if !ok {
			errs.Add(&ModelConsistencyError{Detail: fmt.Sprintf(
				"collection %s has no manifest", pbcid)})
			continue
		}
		if len(m.Ballots) != coll.N {
			errs.Add(&ManifestArithmeticError{PBCID: pbcid, Detail: fmt.Sprintf(
				"manifest has %d ballots, declared N=%d", len(m.Ballots), coll.N)})
		}
		seen := make(map[string]bool, len(m.Ballots))
		for _, b := range m.Ballots {
			if seen[b.BID] {
				errs.Add(&ModelConsistencyError{Detail: fmt.Sprintf(
					"collection %s manifest repeats bid %s", pbcid, b.BID)})
			}
			seen[b.BID] = true
		}
	}
}

func (e *Election) validateReportedVotes(errs *errlist.Errs) {
	for pbcid, byBID := range e.ReportedCVR {
		coll, ok := e.Collections[pbcid]
		if !ok {
			errs.Add(&ModelConsistencyError{Detail: fmt.Sprintf(
				"reported CVRs reference undeclared collection %s", pbcid)})
			continue
		}
		manifestBIDs := manifestBIDSet(e.Manifests[pbcid])
		for bid, byCID := range byBID {
			if !manifestBIDs[bid] {
				errs.Add(&ModelConsistencyError{Detail: fmt.Sprintf(
					"reported CVR references bid %s not in %s's manifest", bid, pbcid)})
			}
			for cid := range byCID {
				if !containsString(coll.AllowedContests, cid) {
					errs.Add(&ModelConsistencyError{Detail: fmt.Sprintf(
						"reported CVR for %s/%s references contest %s not allowed in that collection", pbcid, bid, cid)})
				}
			}
		}
	}
	for pbcid, byCID := range e.ReportedTally {
		coll, ok := e.Collections[pbcid]
		if !ok {
			errs.Add(&ModelConsistencyError{Detail: fmt.Sprintf(
				"reported tally references undeclared collection %s", pbcid)})
			continue
		}
		for cid := range byCID {
			if !containsString(coll.AllowedContests, cid) {
				errs.Add(&ModelConsistencyError{Detail: fmt.Sprintf(
					"reported tally for %s references contest %s not allowed in that collection", pbcid, cid)})
			}
		}
	}
}

func (e *Election) validateReportedOutcomes(errs *errlist.Errs) {
	for cid, winners := range e.ReportedOutcome {
		c, ok := e.Contests[cid]
		if !ok {
			errs.Add(&ModelConsistencyError{Detail: fmt.Sprintf(
				"reported outcome references undeclared contest %s", cid)})
			continue
		}
		sel := c.SelectionSet()
		qual := c.QualifiedSet()
		for _, w := range winners {
			if sel[w] {
				continue
			}
			if qual[w] {
				continue
			}
			errs.Add(&ModelConsistencyError{Detail: fmt.Sprintf(
				"reported outcome for %s names invalid winner %s", cid, w)})
		}
	}
}

func (e *Election) validateContestParams(errs *errlist.Errs) {
	for cid, c := range e.Contests {
		p := c.Params
		if p.RiskLimit < 0 || p.RiskLimit > 1 {
			errs.Add(&ParameterOutOfRangeError{CID: cid, Detail: fmt.Sprintf(
				"risk limit %.5f not in [0,1]", p.RiskLimit)})
		}
		if p.UpsetThreshold < 0 || p.UpsetThreshold > 1 {
			errs.Add(&ParameterOutOfRangeError{CID: cid, Detail: fmt.Sprintf(
				"upset threshold %.5f not in [0,1]", p.UpsetThreshold)})
		}
		if p.UpsetThreshold < p.RiskLimit {
			errs.Add(&ParameterOutOfRangeError{CID: cid, Detail: fmt.Sprintf(
				"upset threshold %.5f below risk limit %.5f", p.UpsetThreshold, p.RiskLimit)})
		}
		if p.Method == Bayes && p.PseudocountAlpha <= 0 {
			errs.Add(&ParameterOutOfRangeError{CID: cid, Detail: fmt.Sprintf(
				"pseudocount alpha %.5f must be > 0", p.PseudocountAlpha)})
		}
		if c.Winners < 1 {
			errs.Add(&ParameterOutOfRangeError{CID: cid, Detail: fmt.Sprintf(
				"winners %d must be >= 1", c.Winners)})
		}
	}
}

// ValidateSeed checks the spec §3 audit seed constraint: a decimal string
// of at least 20 digits.
func ValidateSeed(seed string) error {
	if len(seed) < 20 {
		return &SeedInvalidError{Detail: fmt.Sprintf("seed has %d characters, need >= 20 decimal digits", len(seed))}
	}
	for _, r := range seed {
		if r < '0' || r > '9' {
			return &SeedInvalidError{Detail: "seed must contain only decimal digits"}
		}
	}
	return nil
}

func containsString(list []string, target string) bool {
	for _, s := range list {
		if s == target {
			return true
		}
	}
	return false
}

func manifestBIDSet(m *Manifest) map[string]bool {
	if m == nil {
		return nil
	}
	set := make(map[string]bool, len(m.Ballots))
	for _, b := range m.Ballots {
		set[b.BID] = true
	}
	return set
}

// SortedCIDs returns every contest id in sorted order, used wherever
// iteration order must be stable for reproducibility.
func (e *Election) SortedCIDs() []string {
	out := make([]string, 0, len(e.Contests))
	for cid := range e.Contests {
		out = append(out, cid)
	}
	sort.Strings(out)
	return out
}

// SortedPBCIDs returns every collection id in sorted order.
func (e *Election) SortedPBCIDs() []string {
	out := make([]string, 0, len(e.Collections))
	for pbcid := range e.Collections {
		out = append(out, pbcid)
	}
	sort.Strings(out)
	return out
}

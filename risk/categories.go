// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package risk

import (
	"sort"

	"github.com/luxfi/bayesaudit/ids"
	"github.com/luxfi/bayesaudit/model"
)

// genericWritein is the catch-all category for write-ins a contest
// accepts under WriteinArbitrary but does not pre-declare individually.
const genericWritein = "+writein"

// categories returns the Polya-urn outcome categories for a contest,
// sorted by reduced selid so seeded runs are reproducible (spec §4.6
// "numerical semantics"): the declared selection set, the three standard
// invalid outcomes, and — only under an arbitrary write-in policy — the
// generic write-in bucket.
func categories(c *model.Contest) []string {
	set := make(map[string]bool, len(c.Selections)+4)
	for _, s := range c.Selections {
		set[s] = true
	}
	set["-Invalid"] = true
	set["-Overvote"] = true
	set["-Undervote"] = true
	if c.WriteinPolicy == ids.WriteinArbitrary {
		set[genericWritein] = true
	}

	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// categoryForVote maps one cast vote to its outcome category. A valid vote
// with more than one selection (a multi-winner contest's ballot) is
// represented by its lexicographically smallest selection — see
// DESIGN.md for why this is an acceptable simplification for w>1.
func categoryForVote(c *model.Contest, v ids.Vote) (string, error) {
	class, err := ids.ClassifyVote(c.CID, v, c.SelectionSet(), c.Winners, c.WriteinPolicy, c.QualifiedSet())
	if err != nil {
		return "", err
	}
	switch class {
	case ids.ClassUndervote:
		return "-Undervote", nil
	case ids.ClassOvervote:
		return "-Overvote", nil
	case ids.ClassSpecial:
		return v[0], nil
	case ids.ClassInvalidWritein:
		if c.WriteinPolicy == ids.WriteinArbitrary {
			return genericWritein, nil
		}
		return "-Invalid", nil
	default: // ClassValid
		if c.WriteinPolicy == ids.WriteinArbitrary && ids.IsWritein(v[0]) && !c.SelectionSet()[v[0]] {
			return genericWritein, nil
		}
		return v[0], nil
	}
}

// categorize buckets a map of vote-key -> count (as stored in the sample
// tally or a reported tally) into category -> count.
func categorize(c *model.Contest, voteCounts map[string]int) (map[string]int, error) {
	out := make(map[string]int, len(voteCounts))
	for key, n := range voteCounts {
		v := ids.VoteFromKey(key)
		cat, err := categoryForVote(c, v)
		if err != nil {
			return nil, err
		}
		out[cat] += n
	}
	return out, nil
}

// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ids normalizes the arbitrary-string identifiers and ballot votes
// that flow through the audit engine. Every identifier that reaches a
// model, sampling, or risk computation has already passed through Reduce.
// FileSafe gives the filename-safe form of an identifier; the file layer
// builds per-collection file names from the reduced pbcid without
// applying FileSafe.
package ids

import (
	"sort"
	"strings"
)

// Reduce canonicalizes an identifier: leading/trailing whitespace is
// stripped and internal whitespace runs collapse to a single space.
func Reduce(id string) string {
	fields := strings.Fields(id)
	return strings.Join(fields, " ")
}

// FileSafe reduces id and then strips every character outside
// [A-Za-z0-9+-_.] so the result is safe to use as a filename component.
func FileSafe(id string) string {
	reduced := Reduce(id)
	var b strings.Builder
	b.Grow(len(reduced))
	for _, r := range reduced {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' || r == '-' || r == '_' || r == '.':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsWritein reports whether a reduced selection id denotes a write-in.
func IsWritein(selid string) bool {
	return strings.HasPrefix(selid, "+")
}

// IsSpecial reports whether a reduced selection id denotes a standard
// non-choice outcome such as -Invalid or -Undervote.
func IsSpecial(selid string) bool {
	return strings.HasPrefix(selid, "-")
}

// Vote is a finite set of selection ids represented as a sorted, reduced
// tuple so it hashes and compares by value. The empty tuple is an
// undervote.
type Vote []string

// ParseVote trims each field, discards every fully blank field (trailing or
// not), reduces every remaining selection id, and returns the sorted tuple. The result is
// invariant under permutation and internal whitespace of the input fields
// (testable property 9).
func ParseVote(fields []string) Vote {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		r := Reduce(f)
		if r == "" {
			continue
		}
		out = append(out, r)
	}
	sort.Strings(out)
	return Vote(out)
}

// Key returns a stable string encoding of the vote suitable for use as a map
// key or CSV cell; selections never contain embedded commas (by the §4.1
// identifier constraint), so a comma join round-trips.
func (v Vote) Key() string {
	return strings.Join(v, ",")
}

// VoteFromKey parses a Vote.Key()-encoded string back into a Vote,
// inverting Key (spec §8 round-trip property).
func VoteFromKey(key string) Vote {
	if key == "" {
		return Vote{}
	}
	return Vote(strings.Split(key, ","))
}

// VoteClass is the outcome of classifying a vote against a contest's
// selection set and write-in policy.
type VoteClass int

const (
	ClassValid VoteClass = iota
	ClassUndervote
	ClassOvervote
	ClassInvalidWritein
	ClassSpecial
)

func (c VoteClass) String() string {
	switch c {
	case ClassValid:
		return "valid"
	case ClassUndervote:
		return "undervote"
	case ClassOvervote:
		return "overvote"
	case ClassInvalidWritein:
		return "invalid-writein"
	case ClassSpecial:
		return "special"
	default:
		return "unknown"
	}
}

// WriteinPolicy controls which write-in selections a contest accepts.
type WriteinPolicy int

const (
	WriteinNone WriteinPolicy = iota
	WriteinQualified
	WriteinArbitrary
)

// ClassifyVote classifies v against the contest's declared selection set,
// allowed cardinality (maxSelections, i.e. the contest's winners count w),
// and write-in policy. qualified holds the pre-qualified write-in ids (only
// consulted under WriteinQualified). It returns UnknownSelectionError if v
// contains a non-write-in, non-special selection absent from selSet.
func ClassifyVote(contestID string, v Vote, selSet map[string]bool, maxSelections int, policy WriteinPolicy, qualified map[string]bool) (VoteClass, error) {
	if len(v) == 0 {
		return ClassUndervote, nil
	}
	if len(v) > maxSelections {
		return ClassOvervote, nil
	}
	for _, s := range v {
		if IsSpecial(s) {
			return ClassSpecial, nil
		}
	}
	for _, s := range v {
		if IsWritein(s) {
			switch policy {
			case WriteinArbitrary:
				continue
			case WriteinQualified:
				if qualified[s] {
					continue
				}
				return ClassInvalidWritein, nil
			default:
				return ClassInvalidWritein, nil
			}
		}
		if !selSet[s] {
			return 0, &UnknownSelectionError{ContestID: contestID, Selection: s}
		}
	}
	return ClassValid, nil
}

// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package model holds the in-memory, read-only-after-load election
// object (spec §4.3, C3): contests, collections, manifests, reported
// votes and outcomes, and the audit seed, plus the consistency checks
// that must pass before any sampling or risk computation runs.
package model

import "github.com/luxfi/bayesaudit/ids"

// ContestType distinguishes plurality contests from the voting methods
// spec.md §1 reserves but does not implement.
type ContestType int

const (
	Plurality ContestType = iota
	ReservedIRV
	ReservedApproval
)

// AuditMethod is the risk-measurement method configured for a contest.
// Bayes is the only method the engine computes; Frequentist is reserved
// (spec §1: "the parameter file reserves a slot for them but the core
// implements Bayesian only").
type AuditMethod int

const (
	Bayes AuditMethod = iota
	ReservedFrequentist
)

// SamplingMode controls whether a contest's open status drives growth of
// its collections' next-stage sample size.
type SamplingMode int

const (
	Active SamplingMode = iota
	Opportunistic
)

// ContestStatus is the per-stage decision state of a contest (spec §4.6).
type ContestStatus int

const (
	StatusOpen ContestStatus = iota
	StatusPassed
	StatusUpset
	StatusOff
)

func (s ContestStatus) String() string {
	switch s {
	case StatusOpen:
		return "Open"
	case StatusPassed:
		return "Passed"
	case StatusUpset:
		return "Upset"
	case StatusOff:
		return "Off"
	default:
		return "Unknown"
	}
}

// Terminal reports whether status can never change again (spec §8
// property 5: a contest that is Passed or Upset stays terminal).
func (s ContestStatus) Terminal() bool {
	return s == StatusPassed || s == StatusUpset
}

// ContestParams holds the per-contest audit parameters from the
// audit-parameters-contest file.
type ContestParams struct {
	Method AuditMethod
	// RiskLimit is λ ∈ [0,1].
	RiskLimit float64
	// UpsetThreshold is υ ∈ [0,1], υ ≥ λ.
	UpsetThreshold float64
	SamplingMode   SamplingMode
	// PseudocountAlpha is α > 0, the Dirichlet concentration.
	PseudocountAlpha float64
	// NoCVRPriorWeight scales how heavily a noCVR collection's reported
	// tally counts as prior pseudo-observations relative to one audited
	// ballot (spec §9 Open Question (a); decision recorded in DESIGN.md).
	NoCVRPriorWeight float64
}

// Contest is one plurality decision being audited.
type Contest struct {
	CID           string
	Type          ContestType
	Winners       int // w ≥ 1
	WriteinPolicy ids.WriteinPolicy
	// Selections is SEL(cid): the declared, reduced selection ids,
	// including any pre-qualified write-ins (ids beginning with "+").
	Selections []string
	// QualifiedWriteins is the subset of Selections that are
	// pre-qualified write-ins, consulted only under WriteinQualified.
	QualifiedWriteins []string
	Params            ContestParams
	Status            ContestStatus
}

// SelectionSet returns SEL(cid) as a membership set for ClassifyVote.
func (c *Contest) SelectionSet() map[string]bool {
	set := make(map[string]bool, len(c.Selections))
	for _, s := range c.Selections {
		set[s] = true
	}
	return set
}

// QualifiedSet returns the pre-qualified write-in membership set.
func (c *Contest) QualifiedSet() map[string]bool {
	set := make(map[string]bool, len(c.QualifiedWriteins))
	for _, s := range c.QualifiedWriteins {
		set[s] = true
	}
	return set
}

// CollectionType distinguishes collections whose ballots carry a
// scanner-interpreted CVR from collections that report only tallies.
type CollectionType int

const (
	CVR CollectionType = iota
	NoCVR
)

// Collection is one paper ballot collection (PBC).
type Collection struct {
	PBCID           string
	Manager         string
	Type            CollectionType
	AllowedContests []string // cids this collection may carry
	MaxAuditRate    int       // r > 0, hard per-stage draw cap
	N               int       // manifest size, set once the manifest loads
}

// BallotLocator is one ballot's physical position within a collection's
// box, used by the manifest and the sampling/audit-order files.
type BallotLocator struct {
	Box      string
	Position int
	Stamp    string
	BID      string
}

// Manifest enumerates a collection's ballots in dense 1-based position
// order: Ballots[i] is the ballot at position i+1.
type Manifest struct {
	PBCID   string
	Ballots []BallotLocator
}

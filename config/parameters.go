// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import "github.com/luxfi/bayesaudit/model"

// GlobalParams is the engine-wide audit configuration (10-<label>-global.csv).
type GlobalParams struct {
	MaxAuditStages int
	NTrials        int
}

// DefaultGlobalParams mirrors the reference examples' default trial count
// (spec §4.6: "default K ≈ 10^5").
func DefaultGlobalParams() GlobalParams {
	return GlobalParams{MaxAuditStages: 20, NTrials: 100_000}
}

// QuickGlobalParams is a low-trial preset for interactive/CLI smoke runs,
// trading estimator precision for speed.
func QuickGlobalParams() GlobalParams {
	return GlobalParams{MaxAuditStages: 20, NTrials: 2_000}
}

// Valid reports whether p satisfies spec §7's ParameterOutOfRange checks
// at the global level.
func (p GlobalParams) Valid() error {
	if p.MaxAuditStages < 1 {
		return ErrInvalidMaxStages
	}
	if p.NTrials < 1 {
		return ErrInvalidTrials
	}
	return nil
}

// ContestParams is the per-contest audit configuration
// (11-<label>-contest.csv), mirroring model.ContestParams but carrying the
// fields a loader validates before they ever reach the election model.
type ContestParams struct {
	CID              string
	Method           model.AuditMethod
	RiskLimit        float64
	UpsetThreshold   float64
	SamplingMode     model.SamplingMode
	Status           model.ContestStatus
	PseudocountAlpha float64
	NoCVRPriorWeight float64
}

// DefaultContestParams returns the conservative defaults used across the
// reference scenarios (S1-S6): Bayes method, alpha=1, unit noCVR prior
// weight.
func DefaultContestParams(cid string) ContestParams {
	return ContestParams{
		CID:              cid,
		Method:           model.Bayes,
		RiskLimit:        0.05,
		UpsetThreshold:   0.99,
		SamplingMode:     model.Active,
		Status:           model.StatusOpen,
		PseudocountAlpha: 1,
		NoCVRPriorWeight: 1,
	}
}

// Valid reports whether p satisfies spec §7's ParameterOutOfRange checks
// at the contest level.
func (p ContestParams) Valid() error {
	if p.RiskLimit < 0 || p.RiskLimit > 1 {
		return ErrInvalidRiskLimit
	}
	if p.UpsetThreshold < 0 || p.UpsetThreshold > 1 || p.UpsetThreshold < p.RiskLimit {
		return ErrInvalidUpsetThreshold
	}
	if p.Method == model.Bayes && p.PseudocountAlpha <= 0 {
		return ErrInvalidPseudocount
	}
	return nil
}

// ApplyTo copies p onto c.Params and c.Status, the last step before
// c.Validate() runs as part of the election-wide model.Validate pass.
func (p ContestParams) ApplyTo(c *model.Contest) {
	c.Params.Method = p.Method
	c.Params.RiskLimit = p.RiskLimit
	c.Params.UpsetThreshold = p.UpsetThreshold
	c.Params.SamplingMode = p.SamplingMode
	c.Params.PseudocountAlpha = p.PseudocountAlpha
	c.Params.NoCVRPriorWeight = p.NoCVRPriorWeight
	c.Status = p.Status
}

// CollectionParams is the per-collection audit configuration
// (12-<label>-collection.csv).
type CollectionParams struct {
	PBCID        string
	MaxAuditRate int
}

// Valid reports whether p satisfies spec §7's ParameterOutOfRange checks
// at the collection level.
func (p CollectionParams) Valid() error {
	if p.MaxAuditRate <= 0 {
		return ErrInvalidAuditRate
	}
	return nil
}

// ApplyTo copies p.MaxAuditRate onto coll.
func (p CollectionParams) ApplyTo(coll *model.Collection) {
	coll.MaxAuditRate = p.MaxAuditRate
}

// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config holds the typed audit-parameter structs loaded from
// §6.2's audit-parameters-* tables: one level each for the whole engine,
// per contest, and per collection, with preset constructors and the
// range validation spec §7 calls ParameterOutOfRange.
package config

import "errors"

var (
	ErrInvalidRiskLimit      = errors.New("risk limit must be in [0,1]")
	ErrInvalidUpsetThreshold = errors.New("upset threshold must be in [0,1] and >= risk limit")
	ErrInvalidPseudocount    = errors.New("pseudocount alpha must be > 0 for the Bayes method")
	ErrInvalidWinners        = errors.New("winners must be >= 1")
	ErrInvalidTrials         = errors.New("n_trials must be >= 1")
	ErrInvalidAuditRate      = errors.New("max_audit_rate must be > 0")
	ErrInvalidMaxStages      = errors.New("max_audit_stages must be >= 1")
)

// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package model

import (
	"errors"
	"fmt"
)

// Sentinel errors for the eight kinds spec §7 names that originate in or
// pass through the election model. Each typed error below wraps one of
// these so callers can errors.Is/errors.As regardless of which field
// populated the message.
var (
	ErrModelConsistency   = errors.New("model consistency violation")
	ErrManifestArithmetic = errors.New("manifest arithmetic mismatch")
	ErrParameterOutOfRange = errors.New("audit parameter out of range")
	ErrSeedInvalid        = errors.New("audit seed invalid")
)

// ModelConsistencyError reports a structural disagreement between
// contests, collections, CVRs, manifests, or reported outcomes.
type ModelConsistencyError struct {
	Detail string
}

func (e *ModelConsistencyError) Error() string {
	return fmt.Sprintf("model consistency: %s", e.Detail)
}

func (e *ModelConsistencyError) Unwrap() error { return ErrModelConsistency }

// ManifestArithmeticError reports that a manifest's declared
// number_of_ballots sum disagrees with N(pbcid), or that a row could not
// be expanded.
type ManifestArithmeticError struct {
	PBCID  string
	Detail string
}

func (e *ManifestArithmeticError) Error() string {
	if e.PBCID == "" {
		return fmt.Sprintf("manifest arithmetic: %s", e.Detail)
	}
	return fmt.Sprintf("manifest arithmetic for %s: %s", e.PBCID, e.Detail)
}

func (e *ManifestArithmeticError) Unwrap() error { return ErrManifestArithmetic }

// ParameterOutOfRangeError reports an audit parameter outside its legal
// range (risk limit not in [0,1], pseudocount <= 0, upset < risk limit).
type ParameterOutOfRangeError struct {
	CID    string
	Detail string
}

func (e *ParameterOutOfRangeError) Error() string {
	return fmt.Sprintf("parameter out of range for %s: %s", e.CID, e.Detail)
}

func (e *ParameterOutOfRangeError) Unwrap() error { return ErrParameterOutOfRange }

// SeedInvalidError reports an audit seed shorter than 20 decimal digits or
// containing non-digit characters.
type SeedInvalidError struct {
	Detail string
}

func (e *SeedInvalidError) Error() string {
	return fmt.Sprintf("seed invalid: %s", e.Detail)
}

func (e *SeedInvalidError) Unwrap() error { return ErrSeedInvalid }

// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tally

import (
	"errors"
	"fmt"
)

var ErrOutOfOrderSample = errors.New("audited-vote transcript skips an entry of the sampling order")

// OutOfOrderSampleError reports a collection whose audited-votes
// transcript names a bid beyond the densely-audited prefix of its
// sampling order (spec §4.5, §7).
type OutOfOrderSampleError struct {
	PBCID      string
	MissingBID string
}

func (e *OutOfOrderSampleError) Error() string {
	return fmt.Sprintf("collection %s: audited-votes transcript skips %s before later positions were audited", e.PBCID, e.MissingBID)
}

func (e *OutOfOrderSampleError) Unwrap() error { return ErrOutOfOrderSample }

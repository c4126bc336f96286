// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ids

import "errors"

var ErrUnknownSelection = errors.New("vote references an undeclared selection")

// UnknownSelectionError is returned by ClassifyVote when a vote contains a
// selection id that is neither declared in the contest's selection set nor a
// write-in or special marker.
type UnknownSelectionError struct {
	ContestID string
	Selection string
}

func (e *UnknownSelectionError) Error() string {
	return "contest " + e.ContestID + ": unknown selection " + e.Selection
}

func (e *UnknownSelectionError) Unwrap() error {
	return ErrUnknownSelection
}

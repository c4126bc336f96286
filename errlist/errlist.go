// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package errlist collects multiple errors encountered while validating a
// table or file so a single pass reports every offending row instead of
// just the first. Adapted from the teacher's utils/wrappers.Errs.
package errlist

import (
	"errors"
	"fmt"
	"strings"
)

// Errs accumulates errors. The zero value is ready to use; it is not
// safe for concurrent use (stage-boundary validation is single-threaded,
// per spec §5).
type Errs struct {
	errs []error
}

// Add appends err if non-nil.
func (e *Errs) Add(err error) {
	if err != nil {
		e.errs = append(e.errs, err)
	}
}

// Errored reports whether any error has been added.
func (e *Errs) Errored() bool {
	return len(e.errs) > 0
}

// Len returns the number of collected errors.
func (e *Errs) Len() int {
	return len(e.errs)
}

// All returns the collected errors in the order they were added.
func (e *Errs) All() []error {
	return e.errs
}

// Err returns nil if empty, the sole error if there's exactly one, or an
// aggregate error listing every one.
func (e *Errs) Err() error {
	switch len(e.errs) {
	case 0:
		return nil
	case 1:
		return e.errs[0]
	default:
		return errors.New(e.String())
	}
}

func (e *Errs) String() string {
	if len(e.errs) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d errors occurred:", len(e.errs))
	for _, err := range e.errs {
		b.WriteString("\n\t* ")
		b.WriteString(err.Error())
	}
	return b.String()
}

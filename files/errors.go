// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package files

import (
	"errors"
	"fmt"
)

var (
	ErrMissingInput  = errors.New("required input file absent")
	ErrFileIntegrity = errors.New("file integrity violation")
)

// MissingInputError reports that no file matching a (prefix, suffix) pair
// exists in a directory where one was required.
type MissingInputError struct {
	Dir, Prefix, Suffix string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("missing input in %s: no file matching %s*%s", e.Dir, e.Prefix, e.Suffix)
}

func (e *MissingInputError) Unwrap() error { return ErrMissingInput }

// FileIntegrityError reports that two distinct paths hashed identically
// where the caller expected distinct content, or that a path listed in a
// snapshot no longer matches its recorded hash.
type FileIntegrityError struct {
	PathA, PathB string
	Detail       string
}

func (e *FileIntegrityError) Error() string {
	if e.PathB == "" {
		return fmt.Sprintf("file integrity for %s: %s", e.PathA, e.Detail)
	}
	return fmt.Sprintf("file integrity: %s and %s collide: %s", e.PathA, e.PathB, e.Detail)
}

func (e *FileIntegrityError) Unwrap() error { return ErrFileIntegrity }

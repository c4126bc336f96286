// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package files

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"os"
	"time"

	"github.com/cenkalti/backoff"
)

// MaxRetries bounds the number of retries, after the first attempt, that
// ReadFileRetry/WriteFileRetry make against transient I/O errors before
// surfacing them (spec §7:
// "transient I/O errors are retried a bounded number of times").
const MaxRetries = 4

func retryBackoff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 10 * time.Millisecond
	b.MaxInterval = 200 * time.Millisecond
	return backoff.WithMaxRetries(b, MaxRetries)
}

// ReadFileRetry reads path, retrying transient failures with bounded
// exponential backoff. A missing file is not transient (spec §7:
// MissingInput is a distinct, non-retried error kind) and is surfaced
// immediately via backoff.Permanent.
func ReadFileRetry(path string) ([]byte, error) {
	var data []byte
	op := func() error {
		b, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return backoff.Permanent(err)
			}
			return err
		}
		data = b
		return nil
	}
	if err := backoff.Retry(op, retryBackoff()); err != nil {
		return nil, err
	}
	return data, nil
}

// WriteFileRetry atomically writes data to path (via a temp file renamed
// into place, so a reader never observes a partial write) with bounded
// retry on transient failures.
func WriteFileRetry(path string, data []byte, perm os.FileMode) error {
	op := func() error {
		tmp := path + ".tmp"
		if err := os.WriteFile(tmp, data, perm); err != nil {
			return err
		}
		return os.Rename(tmp, path)
	}
	return backoff.Retry(op, retryBackoff())
}

// SHA256Hex returns the lowercase hex SHA-256 digest of path's contents,
// the form used by the audit-snapshot table (§6.2).
func SHA256Hex(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package prng implements the engine's deterministic counter-mode
// pseudo-random source (spec §4.2). Every draw is
// SHA-256(seed || "," || domain || "," || counter) interpreted as a
// big-endian 256-bit integer; the counter starts at 1 and increments
// monotonically within a domain. The same (seed, domain, counter
// sequence) always yields byte-identical output, which is what lets a
// stage be re-run and produce byte-identical files (spec §8 property 1).
package prng

import (
	"crypto/sha256"
	"fmt"
	"math/big"
)

var two256 = new(big.Int).Lsh(big.NewInt(1), 256)

// Source is a single counter-mode draw stream bound to one (seed, domain)
// pair. It is not safe for concurrent use; callers that need parallel,
// reproducible draws construct one Source per disjoint domain instead of
// sharing one across goroutines (spec §5).
type Source struct {
	seed    string
	domain  string
	counter uint64
}

// New returns a Source for the given seed and domain. The counter starts
// at 0 and is incremented before each draw, so the first draw uses
// counter=1 as spec §4.2 specifies.
func New(seed, domain string) *Source {
	return &Source{seed: seed, domain: domain}
}

// digest returns the next raw SHA-256 output, advancing the counter.
func (s *Source) digest() [32]byte {
	s.counter++
	msg := fmt.Sprintf("%s,%s,%d", s.seed, s.domain, s.counter)
	return sha256.Sum256([]byte(msg))
}

// Counter returns the number of draws consumed so far.
func (s *Source) Counter() uint64 {
	return s.counter
}

// UniformInt returns a uniformly distributed integer in [lo, hi] using
// rejection sampling over the raw 256-bit hash digits, eliminating modulo
// bias regardless of the span [lo, hi].
func (s *Source) UniformInt(lo, hi int) int {
	if hi < lo {
		panic("prng: UniformInt requires hi >= lo")
	}
	span := big.NewInt(int64(hi-lo) + 1)
	limit := new(big.Int).Sub(two256, new(big.Int).Mod(two256, span))
	for {
		d := s.digest()
		v := new(big.Int).SetBytes(d[:])
		if v.Cmp(limit) < 0 {
			mod := new(big.Int).Mod(v, span)
			return lo + int(mod.Int64())
		}
	}
}

// UniformFloat64 returns a uniformly distributed float64 in [0, 1),
// derived from the top 53 bits of the next digest.
func (s *Source) UniformFloat64() float64 {
	d := s.digest()
	v := new(big.Int).SetBytes(d[:])
	v.Rsh(v, 256-53)
	return float64(v.Uint64()) / float64(uint64(1)<<53)
}

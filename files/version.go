// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package files implements the versioned-file discipline of §6.1 and the
// CSV table formats of §6.2: election directories are append-only, and
// the operative file among several versions is the one whose label sorts
// lexicographically greatest.
package files

import (
	"os"
	"path/filepath"
	"strings"
)

// Match is one file in a directory whose name matches <prefix><label><suffix>.
type Match struct {
	Path  string
	Label string
}

// List returns every file in dir matching <prefix><label><suffix>, sorted
// by Label ascending (so the last element is the operative one).
func List(dir, prefix, suffix string) ([]Match, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []Match
	for _, ent := range entries {
		if ent.IsDir() {
			continue
		}
		name := ent.Name()
		if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, suffix) {
			continue
		}
		label := name[len(prefix) : len(name)-len(suffix)]
		out = append(out, Match{Path: filepath.Join(dir, name), Label: label})
	}
	sortMatches(out)
	return out, nil
}

func sortMatches(m []Match) {
	for i := 1; i < len(m); i++ {
		for j := i; j > 0 && m[j-1].Label > m[j].Label; j-- {
			m[j-1], m[j] = m[j], m[j-1]
		}
	}
}

// Latest returns the path of the operative file among those matching
// <prefix><label><suffix> in dir: the one with the lexicographically
// greatest label (empty label sorts below all others). It returns
// MissingInputError if no file matches.
func Latest(dir, prefix, suffix string) (string, error) {
	matches, err := List(dir, prefix, suffix)
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", &MissingInputError{Dir: dir, Prefix: prefix, Suffix: suffix}
	}
	return matches[len(matches)-1].Path, nil
}

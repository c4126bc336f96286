// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package files

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// SnapshotEntry is one row of 20-audit-snapshot-*.csv: a considered input
// path and its content hash.
type SnapshotEntry struct {
	Path   string
	SHA256 string
}

// BuildSnapshot hashes every path in paths and returns the rows sorted by
// path, for reproducible output (spec §8 property 1).
func BuildSnapshot(paths []string) ([]SnapshotEntry, error) {
	entries := make([]SnapshotEntry, 0, len(paths))
	seen := make(map[string]string, len(paths))
	for _, p := range paths {
		sum, err := SHA256Hex(p)
		if err != nil {
			return nil, err
		}
		for otherPath, otherSum := range seen {
			if otherSum == sum && otherPath != p {
				return nil, &FileIntegrityError{PathA: otherPath, PathB: p, Detail: "identical content hash"}
			}
		}
		seen[p] = sum
		entries = append(entries, SnapshotEntry{Path: p, SHA256: sum})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

// WriteSnapshot writes 20-audit-snapshot-<label>.csv.
func WriteSnapshot(dir, label string, entries []SnapshotEntry) error {
	var b strings.Builder
	b.WriteString("path,sha256\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "%s,%s\n", e.Path, e.SHA256)
	}
	return WriteFileRetry(filepath.Join(dir, "20-audit-snapshot-"+label+".csv"), []byte(b.String()), 0o644)
}

// OutputRow is one row of 30-audit-output-*.csv.
type OutputRow struct {
	CID             string
	Method          string
	MeasuredRisk    float64
	RiskLimit       float64
	UpsetThreshold  float64
	StatusAfter     string
	SampleTotal     int
}

// WriteOutput writes 30-audit-output-<label>.csv. Risks are formatted to
// at least 5 significant decimal digits (spec §4.6 numerical semantics).
func WriteOutput(dir, label string, rows []OutputRow) error {
	var b strings.Builder
	b.WriteString("cid,method,measured_risk,risk_limit,upset_threshold,status_after,sample_total\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "%s,%s,%.6f,%.6f,%.6f,%s,%d\n",
			r.CID, r.Method, r.MeasuredRisk, r.RiskLimit, r.UpsetThreshold, r.StatusAfter, r.SampleTotal)
	}
	return WriteFileRetry(filepath.Join(dir, "30-audit-output-"+label+".csv"), []byte(b.String()), 0o644)
}

// PlanRow is one row of 40-audit-plan-*.csv.
type PlanRow struct {
	PBCID                string
	AuditedSoFar         int
	NextStageIncrement   int
	EstimatedTotalNeeded int
}

// WritePlan writes 40-audit-plan-<label>.csv.
func WritePlan(dir, label string, rows []PlanRow) error {
	var b strings.Builder
	b.WriteString("pbcid,audited_so_far,next_stage_increment,estimated_total_needed\n")
	for _, r := range rows {
		b.WriteString(r.PBCID)
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(r.AuditedSoFar))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(r.NextStageIncrement))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(r.EstimatedTotalNeeded))
		b.WriteByte('\n')
	}
	return WriteFileRetry(filepath.Join(dir, "40-audit-plan-"+label+".csv"), []byte(b.String()), 0o644)
}

// InputPaths returns the operative (latest-labeled) file in dir for each
// of the engine's versioned input prefixes, for use as BuildSnapshot's
// argument. pbcids names the collections whose per-collection manifest
// and reported CVR files should also be considered. Per spec §4.7 step 1
// a stage snapshot hashes "the latest version of each" input, not every
// archival version lingering in the directory (§6.1: older labels are
// archival once a greater one exists).
func InputPaths(dir string, pbcids []string) ([]string, error) {
	prefixSuffixes := [][2]string{
		{"11-election", ".csv"},
		{"12-contests", ".csv"},
		{"13-collections", ".csv"},
		{"23-reported-outcomes", ".csv"},
		{"311-audit-seed", ".csv"},
		{"10-", "-global.csv"},
		{"11-", "-contest.csv"},
		{"12-", "-collection.csv"},
	}
	for _, pbcid := range pbcids {
		prefixSuffixes = append(prefixSuffixes,
			[2]string{"manifest-" + pbcid, ".csv"},
			[2]string{"reported-cvrs-" + pbcid, ".csv"},
		)
	}
	var out []string
	for _, ps := range prefixSuffixes {
		path, err := Latest(dir, ps[0], ps[1])
		if err != nil {
			var missing *MissingInputError
			if errors.As(err, &missing) {
				continue
			}
			return nil, err
		}
		out = append(out, path)
	}
	return out, nil
}

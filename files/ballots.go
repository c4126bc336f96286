// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package files

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/luxfi/bayesaudit/ids"
	"github.com/luxfi/bayesaudit/model"
	"github.com/luxfi/bayesaudit/tally"
)

// ReadManifest parses manifest-<pbcid>.csv, expanding compact rows (§3),
// and registers the result on e.
func ReadManifest(dir, pbcid string, e *model.Election) error {
	path, err := Latest(dir, "manifest-"+pbcid, ".csv")
	if err != nil {
		return err
	}
	rows, err := readCSV(path)
	if err != nil {
		return err
	}
	m := &model.Manifest{PBCID: pbcid}
	for _, row := range rows[1:] {
		if len(row) < 6 {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(row[5]))
		if err != nil {
			return err
		}
		expanded, err := model.ExpandManifestRow(ids.Reduce(row[1]), strings.TrimSpace(row[2]), ids.Reduce(row[3]), ids.Reduce(row[4]), n)
		if err != nil {
			return err
		}
		m.Ballots = append(m.Ballots, expanded...)
	}
	e.Manifests[pbcid] = m
	return nil
}

// ReadReportedCVRs parses reported-cvrs-<pbcid>.csv. For a CVR collection
// each row is (pbcid, scanner, bid, cid, sel_1, ...); for noCVR, bid is
// replaced with an integer tally count and e.RecordReportedTally is used
// instead.
func ReadReportedCVRs(dir, pbcid string, e *model.Election) error {
	path, err := Latest(dir, "reported-cvrs-"+pbcid, ".csv")
	if err != nil {
		return err
	}
	rows, err := readCSV(path)
	if err != nil {
		return err
	}
	coll := e.Collections[pbcid]
	for _, row := range rows[1:] {
		if len(row) < 4 {
			continue
		}
		cid := ids.Reduce(row[3])
		v := ids.ParseVote(row[4:])
		if coll != nil && coll.Type == model.NoCVR {
			count, err := strconv.Atoi(strings.TrimSpace(row[2]))
			if err != nil {
				return err
			}
			e.RecordReportedTally(pbcid, cid, v, count)
			continue
		}
		bid := ids.Reduce(row[2])
		e.RecordReportedVote(pbcid, bid, cid, v)
	}
	return nil
}

// ReadAuditOrder parses audit-order-<pbcid>.csv into a dense, 0-based
// slice of manifest indices, in order-ascending position.
func ReadAuditOrder(dir, pbcid string, e *model.Election) ([]int, error) {
	path, err := Latest(dir, "audit-order-"+pbcid, ".csv")
	if err != nil {
		return nil, err
	}
	rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	manifest := e.Manifests[pbcid]
	bidIndex := make(map[string]int, len(manifest.Ballots))
	for i, b := range manifest.Ballots {
		bidIndex[b.BID] = i
	}

	order := make([]int, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) < 6 {
			continue
		}
		bid := ids.Reduce(row[5])
		idx, ok := bidIndex[bid]
		if !ok {
			return nil, &MissingInputError{Dir: dir, Prefix: "audit-order-" + pbcid, Suffix: ".csv (bid " + bid + " not in manifest)"}
		}
		order = append(order, idx)
	}
	return order, nil
}

// WriteAuditOrder writes audit-order-<pbcid>.csv for a permutation
// expressed as manifest indices (as returned by sampling.GenerateOrder).
func WriteAuditOrder(dir, pbcid string, manifest *model.Manifest, order []int) error {
	var b strings.Builder
	b.WriteString("order,pbcid,box,position,stamp,bid,comments\n")
	for i, idx := range order {
		loc := manifest.Ballots[idx]
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteByte(',')
		b.WriteString(pbcid)
		b.WriteByte(',')
		b.WriteString(loc.Box)
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(loc.Position))
		b.WriteByte(',')
		b.WriteString(loc.Stamp)
		b.WriteByte(',')
		b.WriteString(loc.BID)
		b.WriteString(",\n")
	}
	return WriteFileRetry(filepath.Join(dir, "audit-order-"+pbcid+".csv"), []byte(b.String()), 0o644)
}

// ReadAuditedVotes parses the latest audited-votes-<pbcid>.csv (cumulative)
// into the AuditedVotes shape tally.Ingest expects.
func ReadAuditedVotes(dir, pbcid string, e *model.Election, out tally.AuditedVotes) error {
	path, err := Latest(dir, "audited-votes-"+pbcid, ".csv")
	if err != nil {
		return err
	}
	rows, err := readCSV(path)
	if err != nil {
		return err
	}
	byBID, ok := out[pbcid]
	if !ok {
		byBID = make(map[string]map[string]ids.Vote)
		out[pbcid] = byBID
	}
	for _, row := range rows[1:] {
		if len(row) < 3 {
			continue
		}
		bid := ids.Reduce(row[1])
		cid := ids.Reduce(row[2])
		v := ids.ParseVote(row[3:])
		byCID, ok := byBID[bid]
		if !ok {
			byCID = make(map[string]ids.Vote)
			byBID[bid] = byCID
		}
		byCID[cid] = v
	}
	return nil
}

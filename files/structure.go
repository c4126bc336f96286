// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package files

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/luxfi/bayesaudit/ids"
	"github.com/luxfi/bayesaudit/model"
)

// ReadElection parses 11-election.csv: attribute/value pairs with required
// keys Election name/dirname/date/URL.
func ReadElection(dir string) (*model.Election, error) {
	path, err := Latest(dir, "11-election", ".csv")
	if err != nil {
		return nil, err
	}
	rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	e := model.New()
	attrs := make(map[string]string, len(rows))
	for _, row := range rows[1:] {
		if len(row) < 2 {
			continue
		}
		attrs[ids.Reduce(row[0])] = ids.Reduce(row[1])
	}
	e.Name = attrs["Election name"]
	e.Dirname = attrs["Election dirname"]
	e.Date = attrs["Election date"]
	e.URL = attrs["Election URL"]
	required := []string{"Election name", "Election dirname", "Election date", "Election URL"}
	for _, k := range required {
		if _, ok := attrs[k]; !ok {
			return nil, &MissingInputError{Dir: dir, Prefix: "11-election", Suffix: ".csv (key " + k + ")"}
		}
	}
	return e, nil
}

// ReadContests parses 12-contests.csv and registers each contest on e.
func ReadContests(dir string, e *model.Election) error {
	path, err := Latest(dir, "12-contests", ".csv")
	if err != nil {
		return err
	}
	rows, err := readCSV(path)
	if err != nil {
		return err
	}
	for _, row := range rows[1:] {
		if len(row) < 4 {
			continue
		}
		cid := ids.Reduce(row[0])
		winners, err := strconv.Atoi(strings.TrimSpace(row[2]))
		if err != nil {
			return fmt.Errorf("contest %s: winners column not an integer: %w", cid, err)
		}
		c := &model.Contest{
			CID:           cid,
			Winners:       winners,
			WriteinPolicy: parseWriteinPolicy(row[3]),
		}
		for _, raw := range row[4:] {
			sel := ids.Reduce(raw)
			if sel == "" {
				continue
			}
			c.Selections = append(c.Selections, sel)
			if ids.IsWritein(sel) {
				c.QualifiedWriteins = append(c.QualifiedWriteins, sel)
			}
		}
		e.AddContest(c)
	}
	return nil
}

func parseWriteinPolicy(s string) ids.WriteinPolicy {
	switch ids.Reduce(s) {
	case "Qualified":
		return ids.WriteinQualified
	case "Arbitrary":
		return ids.WriteinArbitrary
	default:
		return ids.WriteinNone
	}
}

// ReadCollections parses 13-collections.csv and registers each collection
// on e, then rebuilds rel.
func ReadCollections(dir string, e *model.Election) error {
	path, err := Latest(dir, "13-collections", ".csv")
	if err != nil {
		return err
	}
	rows, err := readCSV(path)
	if err != nil {
		return err
	}
	for _, row := range rows[1:] {
		if len(row) < 3 {
			continue
		}
		coll := &model.Collection{
			PBCID:   ids.Reduce(row[0]),
			Manager: ids.Reduce(row[1]),
			Type:    parseCollectionType(row[2]),
		}
		for _, raw := range row[3:] {
			cid := ids.Reduce(raw)
			if cid != "" {
				coll.AllowedContests = append(coll.AllowedContests, cid)
			}
		}
		e.AddCollection(coll)
	}
	e.RebuildRel()
	return nil
}

func parseCollectionType(s string) model.CollectionType {
	if ids.Reduce(s) == "noCVR" {
		return model.NoCVR
	}
	return model.CVR
}

// ReadReportedOutcomes parses 23-reported-outcomes.csv into e.ReportedOutcome.
func ReadReportedOutcomes(dir string, e *model.Election) error {
	path, err := Latest(dir, "23-reported-outcomes", ".csv")
	if err != nil {
		return err
	}
	rows, err := readCSV(path)
	if err != nil {
		return err
	}
	for _, row := range rows[1:] {
		if len(row) < 2 {
			continue
		}
		cid := ids.Reduce(row[0])
		var winners []string
		for _, raw := range row[1:] {
			w := ids.Reduce(raw)
			if w != "" {
				winners = append(winners, w)
			}
		}
		e.ReportedOutcome[cid] = winners
	}
	return nil
}

// ReadSeed parses 311-audit-seed.csv: a header row followed by a
// single-cell decimal string.
func ReadSeed(dir string) (string, error) {
	path, err := Latest(dir, "311-audit-seed", ".csv")
	if err != nil {
		return "", err
	}
	rows, err := readCSV(path)
	if err != nil {
		return "", err
	}
	if len(rows) > 0 {
		rows = rows[1:]
	}
	for _, row := range rows {
		for _, cell := range row {
			s := strings.TrimSpace(cell)
			if s != "" {
				if err := model.ValidateSeed(s); err != nil {
					return "", err
				}
				return s, nil
			}
		}
	}
	return "", &MissingInputError{Dir: dir, Prefix: "311-audit-seed", Suffix: ".csv"}
}

func readCSV(path string) ([][]string, error) {
	data, err := ReadFileRetry(path)
	if err != nil {
		return nil, err
	}
	r := csv.NewReader(strings.NewReader(string(data)))
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

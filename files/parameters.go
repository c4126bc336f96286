// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package files

import (
	"errors"
	"strconv"
	"strings"

	"github.com/luxfi/bayesaudit/config"
	"github.com/luxfi/bayesaudit/ids"
	"github.com/luxfi/bayesaudit/model"
)

// ReadGlobalParams parses the latest 10-<label>-global.csv (the version
// label sits between "10-" and "-global.csv"; a name with text after
// "-global" is not matched), falling back to config.DefaultGlobalParams
// when no such file exists or for any row that file omits.
func ReadGlobalParams(dir string) (config.GlobalParams, error) {
	p := config.DefaultGlobalParams()
	path, err := Latest(dir, "10-", "-global.csv")
	if err != nil {
		var missing *MissingInputError
		if errors.As(err, &missing) {
			return p, nil
		}
		return p, err
	}
	rows, err := readCSV(path)
	if err != nil {
		return p, err
	}
	for _, row := range rows[1:] {
		if len(row) < 2 {
			continue
		}
		switch ids.Reduce(row[0]) {
		case "max_audit_stages":
			if n, err := strconv.Atoi(strings.TrimSpace(row[1])); err == nil {
				p.MaxAuditStages = n
			}
		case "n_trials":
			if n, err := strconv.Atoi(strings.TrimSpace(row[1])); err == nil {
				p.NTrials = n
			}
		}
	}
	return p, p.Valid()
}

// ReadContestParams parses the latest 11-<label>-contest.csv (a name with
// text after "-contest" is not matched) and applies each row's parameters
// to the matching contest already registered on e.
func ReadContestParams(dir string, e *model.Election) error {
	path, err := Latest(dir, "11-", "-contest.csv")
	if err != nil {
		var missing *MissingInputError
		if errors.As(err, &missing) {
			return nil
		}
		return err
	}
	rows, err := readCSV(path)
	if err != nil {
		return err
	}
	for _, row := range rows[1:] {
		if len(row) < 6 {
			continue
		}
		cid := ids.Reduce(row[0])
		c, ok := e.Contests[cid]
		if !ok {
			continue
		}
		p := config.DefaultContestParams(cid)
		p.Method = parseMethod(row[1])
		if riskLimit, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64); err == nil {
			p.RiskLimit = riskLimit
		}
		if upset, err := strconv.ParseFloat(strings.TrimSpace(row[3]), 64); err == nil {
			p.UpsetThreshold = upset
		}
		p.SamplingMode = parseSamplingMode(row[4])
		p.Status = parseStatus(row[5])
		if len(row) > 6 {
			if alpha, err := strconv.ParseFloat(strings.TrimSpace(row[6]), 64); err == nil {
				p.PseudocountAlpha = alpha
			}
		}
		if len(row) > 7 {
			if w, err := strconv.ParseFloat(strings.TrimSpace(row[7]), 64); err == nil {
				p.NoCVRPriorWeight = w
			}
		}
		if err := p.Valid(); err != nil {
			return err
		}
		p.ApplyTo(c)
	}
	return nil
}

func parseMethod(s string) model.AuditMethod {
	if ids.Reduce(s) == "Frequentist" {
		return model.ReservedFrequentist
	}
	return model.Bayes
}

func parseSamplingMode(s string) model.SamplingMode {
	if ids.Reduce(s) == "Opportunistic" {
		return model.Opportunistic
	}
	return model.Active
}

func parseStatus(s string) model.ContestStatus {
	switch ids.Reduce(s) {
	case "Passed":
		return model.StatusPassed
	case "Upset":
		return model.StatusUpset
	case "Off":
		return model.StatusOff
	default:
		return model.StatusOpen
	}
}

// ReadCollectionParams parses the latest 12-<label>-collection.csv (a name
// with text after "-collection" is not matched), setting MaxAuditRate on
// each matching collection.
func ReadCollectionParams(dir string, e *model.Election) error {
	path, err := Latest(dir, "12-", "-collection.csv")
	if err != nil {
		var missing *MissingInputError
		if errors.As(err, &missing) {
			return nil
		}
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
		pbcid := ids.Reduce(row[0])
		coll, ok := e.Collections[pbcid]
		if !ok {
			continue
		}
		rate, err := strconv.Atoi(strings.TrimSpace(row[1]))
		if err != nil {
			continue
		}
		p := config.CollectionParams{PBCID: pbcid, MaxAuditRate: rate}
		if err := p.Valid(); err != nil {
			return err
		}
		p.ApplyTo(coll)
	}
	return nil
}

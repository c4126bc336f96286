// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"

	"github.com/luxfi/bayesaudit/config"
	"github.com/luxfi/bayesaudit/files"
	"github.com/luxfi/bayesaudit/model"
)

// loadStructure reads the write-once structural tables (spec §4.3):
// election, contests, collections.
func loadStructure(dir string) (*model.Election, error) {
	e, err := files.ReadElection(dir)
	if err != nil {
		return nil, fmt.Errorf("reading election: %w", err)
	}
	if err := files.ReadContests(dir, e); err != nil {
		return nil, fmt.Errorf("reading contests: %w", err)
	}
	if err := files.ReadCollections(dir, e); err != nil {
		return nil, fmt.Errorf("reading collections: %w", err)
	}
	return e, nil
}

// loadReported reads manifests and reported votes/outcomes for every
// collection already registered on e.
func loadReported(dir string, e *model.Election) error {
	for _, pbcid := range e.SortedPBCIDs() {
		if err := files.ReadManifest(dir, pbcid, e); err != nil {
			return fmt.Errorf("reading manifest for %s: %w", pbcid, err)
		}
		coll := e.Collections[pbcid]
		coll.N = len(e.Manifests[pbcid].Ballots)
		if err := files.ReadReportedCVRs(dir, pbcid, e); err != nil {
			return fmt.Errorf("reading reported CVRs for %s: %w", pbcid, err)
		}
	}
	if err := files.ReadReportedOutcomes(dir, e); err != nil {
		return fmt.Errorf("reading reported outcomes: %w", err)
	}
	return nil
}

// loadParams applies global, per-contest, and per-collection audit
// parameters on top of the defaults baked into DefaultContestParams.
func loadParams(dir string, e *model.Election) (config.GlobalParams, error) {
	gp, err := files.ReadGlobalParams(dir)
	if err != nil {
		return gp, fmt.Errorf("reading global params: %w", err)
	}
	for _, cid := range e.SortedCIDs() {
		config.DefaultContestParams(cid).ApplyTo(e.Contests[cid])
	}
	if err := files.ReadContestParams(dir, e); err != nil {
		return gp, fmt.Errorf("reading contest params: %w", err)
	}
	if err := files.ReadCollectionParams(dir, e); err != nil {
		return gp, fmt.Errorf("reading collection params: %w", err)
	}
	return gp, nil
}

// loadElection performs every read spec §6.3's read-structure,
// read-reported, and read-seed subcommands perform individually, then
// validates the whole model.
func loadElection(dir string) (*model.Election, config.GlobalParams, error) {
	e, err := loadStructure(dir)
	if err != nil {
		return nil, config.GlobalParams{}, err
	}
	if err := loadReported(dir, e); err != nil {
		return nil, config.GlobalParams{}, err
	}
	gp, err := loadParams(dir, e)
	if err != nil {
		return nil, gp, err
	}
	seed, err := files.ReadSeed(dir)
	if err != nil {
		return nil, gp, fmt.Errorf("reading seed: %w", err)
	}
	e.Seed = seed

	if err := e.Validate(); err != nil {
		return nil, gp, fmt.Errorf("validating election: %w", err)
	}
	return e, gp, nil
}

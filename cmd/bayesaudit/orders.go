// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/luxfi/bayesaudit/files"
	"github.com/luxfi/bayesaudit/model"
	"github.com/luxfi/bayesaudit/sampling"
)

// generateOrders writes audit-order-<pbcid>.csv for every collection that
// does not already have one. The permutation is computed once per
// collection and never regenerated (spec §4.4: "the output depends only
// on (seed, pbcid, N, manifest order)").
func generateOrders(dir string, e *model.Election) error {
	for _, pbcid := range e.SortedPBCIDs() {
		if _, err := files.Latest(dir, "audit-order-"+pbcid, ".csv"); err == nil {
			continue
		} else {
			var missing *files.MissingInputError
			if !errors.As(err, &missing) {
				return err
			}
		}
		manifest := e.Manifests[pbcid]
		order := sampling.GenerateOrder(e.Seed, pbcid, len(manifest.Ballots))
		if err := files.WriteAuditOrder(dir, pbcid, manifest, order); err != nil {
			return err
		}
	}
	return nil
}

func makeAuditOrdersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "make-audit-orders <dir>",
		Short: "Produce the initial sampling order for each collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			e, err := loadStructure(dir)
			if err != nil {
				return err
			}
			if err := loadReported(dir, e); err != nil {
				return err
			}
			seed, err := files.ReadSeed(dir)
			if err != nil {
				return err
			}
			e.Seed = seed

			if err := generateOrders(dir, e); err != nil {
				return err
			}
			for _, pbcid := range e.SortedPBCIDs() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: sampling order frozen for %d ballots\n", pbcid, e.Collections[pbcid].N)
			}
			return nil
		},
	}
}

// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/luxfi/bayesaudit/files"
	"github.com/luxfi/bayesaudit/model"
	"github.com/luxfi/bayesaudit/tally"
)

// loadOrdersAndAudited reads every collection's frozen sampling order and
// cumulative audited-votes transcript, then joins them into a sample
// cross-tab (spec §4.5).
func loadOrdersAndAudited(dir string, e *model.Election) (*tally.Tally, error) {
	orders := make(map[string][]int, len(e.Collections))
	av := make(tally.AuditedVotes, len(e.Collections))
	for _, pbcid := range e.SortedPBCIDs() {
		order, err := files.ReadAuditOrder(dir, pbcid, e)
		if err != nil {
			return nil, fmt.Errorf("reading audit order for %s: %w", pbcid, err)
		}
		orders[pbcid] = order
		if err := files.ReadAuditedVotes(dir, pbcid, e, av); err != nil {
			return nil, fmt.Errorf("reading audited votes for %s: %w", pbcid, err)
		}
	}
	return tally.Ingest(e, av, orders)
}

func readAuditedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read-audited <dir>",
		Short: "Load and validate the cumulative audited-votes transcripts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			e, _, err := loadElection(dir)
			if err != nil {
				return err
			}
			tl, err := loadOrdersAndAudited(dir, e)
			if err != nil {
				return err
			}
			for _, cid := range e.SortedCIDs() {
				total := 0
				for _, pbcid := range e.Rel[cid] {
					if e.Collections[pbcid].Type == model.CVR {
						for rvote := range e.ReportedVoteCounts(pbcid, cid) {
							total += tl.StratumTotal(cid, pbcid, rvote)
						}
						continue
					}
					total += tl.StratumTotal(cid, pbcid, tally.NoCVR)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d ballots audited so far\n", cid, total)
			}
			return nil
		},
	}
}

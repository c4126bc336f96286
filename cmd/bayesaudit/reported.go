// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func readReportedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read-reported <dir>",
		Short: "Load reported CVRs, manifests, and reported outcomes",
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
			for _, pbcid := range e.SortedPBCIDs() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d ballots manifested\n", pbcid, e.Collections[pbcid].N)
			}
			for _, cid := range e.SortedCIDs() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: reported outcome %v\n", cid, e.ReportedOutcome[cid])
			}
			return nil
		},
	}
}

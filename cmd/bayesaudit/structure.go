// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func readStructureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read-structure <dir>",
		Short: "Load and check the election, contest, and collection tables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			e, err := loadStructure(dir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "election %q: %d contest(s), %d collection(s)\n",
				e.Name, len(e.Contests), len(e.Collections))
			return nil
		},
	}
}

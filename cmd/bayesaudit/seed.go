// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/luxfi/bayesaudit/files"
)

func readSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read-seed <dir>",
		Short: "Load and validate the public audit seed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, err := files.ReadSeed(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seed: %s (%d digits)\n", seed, len(seed))
			return nil
		},
	}
}

// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bayesaudit",
	Short: "Bayesian risk-limiting post-election audit engine",
	Long: `bayesaudit drives a multi-stage Bayesian risk-limiting audit of
plurality elections across contests and paper ballot collections: it
freezes a deterministic sampling order per collection, ingests
hand-interpreted audited votes, estimates the posterior probability that
each contest's reported outcome is wrong, and emits the next stage's
sampling workload.`,
}

func main() {
	rootCmd.AddCommand(
		readStructureCmd(),
		readReportedCmd(),
		readSeedCmd(),
		makeAuditOrdersCmd(),
		readAuditedCmd(),
		stageCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

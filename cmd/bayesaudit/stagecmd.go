// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/luxfi/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/luxfi/bayesaudit/files"
	"github.com/luxfi/bayesaudit/model"
	"github.com/luxfi/bayesaudit/report"
	"github.com/luxfi/bayesaudit/risk"
	"github.com/luxfi/bayesaudit/stage"
	"github.com/luxfi/bayesaudit/tally"
)

func stageCmd() *cobra.Command {
	var trials int
	cmd := &cobra.Command{
		Use:   "stage <NNN> <dir>",
		Short: "Run one audit stage end-to-end",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			label := args[0]
			dir := args[1]
			stageIndex, err := strconv.Atoi(label)
			if err != nil {
				return fmt.Errorf("stage label %q is not an integer: %w", label, err)
			}

			e, gp, err := loadElection(dir)
			if err != nil {
				return err
			}
			if err := generateOrders(dir, e); err != nil {
				return err
			}

			auditRates := make(map[string]int, len(e.Collections))
			manifestSizes := make(map[string]int, len(e.Collections))
			for pbcid, coll := range e.Collections {
				auditRates[pbcid] = coll.MaxAuditRate
				manifestSizes[pbcid] = coll.N
			}

			if stageIndex == 0 {
				// Initial stage performs setup only (spec §4.7): seed
				// read and sampling orders generated above; the plan
				// carries the first stage's proposed increments but no
				// contest has been measured yet.
				increments := stage.PlanIncrements(e, map[string]int{})
				inputPaths, err := files.InputPaths(dir, e.SortedPBCIDs())
				if err != nil {
					return err
				}
				if err := report.Emit(dir, label, inputPaths, nil, increments, nil, nil, auditRates, manifestSizes); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "stage %s: setup only, sampling orders frozen\n", label)
				return nil
			}

			auditedSoFar := make(map[string]int, len(e.Collections))
			orders := make(map[string][]int, len(e.Collections))
			av := make(tally.AuditedVotes, len(e.Collections))
			for _, pbcid := range e.SortedPBCIDs() {
				order, err := files.ReadAuditOrder(dir, pbcid, e)
				if err != nil {
					return fmt.Errorf("reading audit order for %s: %w", pbcid, err)
				}
				orders[pbcid] = order
				if err := files.ReadAuditedVotes(dir, pbcid, e, av); err != nil {
					return fmt.Errorf("reading audited votes for %s: %w", pbcid, err)
				}
				auditedSoFar[pbcid] = len(av[pbcid])
			}
			tl, err := tally.Ingest(e, av, orders)
			if err != nil {
				return err
			}

			if trials <= 0 {
				trials = gp.NTrials
			}
			logger := log.NewLogger("bayesaudit")
			reg := prometheus.NewRegistry()
			riskMetrics, err := risk.NewMetrics(reg)
			if err != nil {
				return err
			}
			stageMetrics, err := stage.NewMetrics(reg)
			if err != nil {
				return err
			}
			est := risk.NewEstimator(logger, riskMetrics)
			ctl := stage.NewController(logger, est, trials, stageMetrics)
			decisions, err := ctl.MeasureContests(e, tl, stageIndex)
			if err != nil {
				return err
			}
			increments := stage.PlanIncrements(e, auditedSoFar)

			prevRisks, err := readPreviousRisks(dir, label)
			if err != nil {
				return err
			}
			driverMap := collectionDrivers(e, decisions)

			inputPaths, err := files.InputPaths(dir, e.SortedPBCIDs())
			if err != nil {
				return err
			}
			inputPaths = append(inputPaths, auditedInputPaths(dir, e)...)

			if err := report.Emit(dir, label, inputPaths, decisions, increments, prevRisks, driverMap, auditRates, manifestSizes); err != nil {
				return err
			}

			for _, d := range decisions {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: risk=%.6f status=%s\n", d.CID, d.Risk, d.Status)
			}
			if stage.Terminated(e) {
				fmt.Fprintln(cmd.OutOrStdout(), "all contests terminated")
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&trials, "trials", 0, "Monte Carlo trials per contest (0 = use the global parameter)")
	return cmd
}

// auditedInputPaths returns the latest frozen sampling order and
// cumulative audited-votes file for every collection, so the stage
// snapshot covers the inputs the risk estimate was actually computed
// from.
func auditedInputPaths(dir string, e *model.Election) []string {
	var out []string
	for _, pbcid := range e.SortedPBCIDs() {
		if p, err := files.Latest(dir, "audit-order-"+pbcid, ".csv"); err == nil {
			out = append(out, p)
		}
		if p, err := files.Latest(dir, "audited-votes-"+pbcid, ".csv"); err == nil {
			out = append(out, p)
		}
	}
	return out
}

// readPreviousRisks parses the most recent audit-output table with a
// label strictly less than the stage now running, giving C8 the prior
// risk it needs to extrapolate estimated_total_needed.
func readPreviousRisks(dir, label string) (map[string]float64, error) {
	matches, err := files.List(dir, "30-audit-output-", ".csv")
	if err != nil {
		return nil, err
	}
	var prevPath string
	for _, m := range matches {
		if m.Label < label {
			prevPath = m.Path
		}
	}
	if prevPath == "" {
		return nil, nil
	}
	data, err := files.ReadFileRetry(prevPath)
	if err != nil {
		return nil, err
	}
	r := csv.NewReader(strings.NewReader(string(data)))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(rows))
	for _, row := range rows[1:] {
		if len(row) < 3 {
			continue
		}
		riskVal, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
		if err != nil {
			continue
		}
		out[row[0]] = riskVal
	}
	return out, nil
}

// collectionDrivers picks, for each collection, the allowed contest with
// the greatest measured risk this stage, to drive that collection's
// estimated-total-needed extrapolation.
func collectionDrivers(e *model.Election, decisions []stage.ContestDecision) map[string]report.Driver {
	riskByCID := make(map[string]float64, len(decisions))
	limitByCID := make(map[string]float64, len(decisions))
	for _, d := range decisions {
		riskByCID[d.CID] = d.Risk
		limitByCID[d.CID] = d.RiskLimit
	}

	out := make(map[string]report.Driver, len(e.Collections))
	for pbcid, coll := range e.Collections {
		var best string
		for _, cid := range coll.AllowedContests {
			if best == "" || riskByCID[cid] > riskByCID[best] {
				best = cid
			}
		}
		if best == "" {
			continue
		}
		out[pbcid] = report.Driver{CID: best, RiskLimit: limitByCID[best]}
	}
	return out
}

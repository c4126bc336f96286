// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package report assembles and writes the three artifacts a stage
// produces (spec §4.8): the content-addressed input snapshot, the
// per-contest risk/status output table, and the per-collection sampling
// plan, including the advisory estimated-total-needed figure.
package report

import (
	"math"

	"github.com/luxfi/bayesaudit/files"
	"github.com/luxfi/bayesaudit/stage"
)

// EstimatedTotalNeeded extrapolates how many audited ballots in total a
// collection's driving contest is likely to need before its risk falls to
// its risk limit, by geometric extrapolation on the risk reduction
// observed between the last two stages (spec §4.8, §9 Open Question (b):
// the formula is advisory only, not a correctness guarantee).
//
// It returns the floor, auditedSoFar+rate capped at n, when either risk
// observation is non-positive, when the risk did not decrease, or when the
// contest has already reached its limit. Any extrapolated result is also
// floored at auditedSoFar+rate and capped at n.
func EstimatedTotalNeeded(prevRisk, curRisk, riskLimit float64, auditedSoFar, rate, n int) int {
	floor := auditedSoFar + rate
	if floor > n {
		floor = n
	}
	if prevRisk <= 0 || curRisk <= 0 || curRisk >= prevRisk || riskLimit <= 0 || curRisk <= riskLimit {
		return floor
	}

	ratio := curRisk / prevRisk // in (0,1)
	// Each further increment of `rate` ballots multiplies risk by ~ratio;
	// solve ratio^stages * curRisk <= riskLimit for stages.
	stages := math.Log(riskLimit/curRisk) / math.Log(ratio)
	if stages < 0 || math.IsInf(stages, 0) || math.IsNaN(stages) {
		return floor
	}

	needed := auditedSoFar + int(math.Ceil(stages))*rate
	if needed < floor {
		needed = floor
	}
	if needed > n {
		needed = n
	}
	return needed
}

// Driver identifies the contest whose risk trend should inform a
// collection's estimated-total-needed figure, usually the contest with
// the largest outstanding risk among those the collection carries.
type Driver struct {
	CID       string
	RiskLimit float64
}

// Emit builds the audit-snapshot, audit-output, and audit-plan tables for
// one stage and writes them under dir with the given stage label.
func Emit(
	dir, label string,
	inputPaths []string,
	decisions []stage.ContestDecision,
	increments []stage.CollectionIncrement,
	prevRisks map[string]float64,
	collectionDriverRisk map[string]Driver,
	auditRates, manifestSizes map[string]int,
) error {
	snapshot, err := files.BuildSnapshot(inputPaths)
	if err != nil {
		return err
	}
	if err := files.WriteSnapshot(dir, label, snapshot); err != nil {
		return err
	}

	curRisks := make(map[string]float64, len(decisions))
	outputRows := make([]files.OutputRow, 0, len(decisions))
	for _, d := range decisions {
		curRisks[d.CID] = d.Risk
		outputRows = append(outputRows, files.OutputRow{
			CID: d.CID, Method: d.Method, MeasuredRisk: d.Risk,
			RiskLimit: d.RiskLimit, UpsetThreshold: d.UpsetThresh,
			StatusAfter: d.Status.String(), SampleTotal: d.SampleTotal,
		})
	}
	if err := files.WriteOutput(dir, label, outputRows); err != nil {
		return err
	}

	planRows := make([]files.PlanRow, 0, len(increments))
	for _, inc := range increments {
		driver, ok := collectionDriverRisk[inc.PBCID]
		estimated := inc.AuditedSoFar + inc.NextIncrement
		if ok {
			prev, havePrev := prevRisks[driver.CID]
			cur, haveCur := curRisks[driver.CID]
			if havePrev && haveCur {
				rate := auditRates[inc.PBCID]
				n := manifestSizes[inc.PBCID]
				estimated = EstimatedTotalNeeded(prev, cur, driver.RiskLimit, inc.AuditedSoFar, rate, n)
			}
		}
		planRows = append(planRows, files.PlanRow{
			PBCID: inc.PBCID, AuditedSoFar: inc.AuditedSoFar,
			NextStageIncrement: inc.NextIncrement, EstimatedTotalNeeded: estimated,
		})
	}
	return files.WritePlan(dir, label, planRows)
}

// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package stage holds the per-stage operations of spec §4.7: measuring
// contest risks and updating statuses, the termination test, and the
// next-stage sampling increments. State names the lifecycle positions
// initializing -> sampling_order_frozen -> ingesting -> risks_computed ->
// plan_emitted -> finalized; the Controller does not record or advance a
// State value. Work happens only through explicit calls, in the manner of
// snow/consensus/snowman's Topological, never implicit background work.
package stage

import (
	"strconv"
	"time"

	"github.com/luxfi/log"
	"go.uber.org/zap"

	"github.com/luxfi/bayesaudit/model"
	"github.com/luxfi/bayesaudit/risk"
	"github.com/luxfi/bayesaudit/tally"
)

// State is a stage's position in its lifecycle.
type State int

const (
	Initializing State = iota
	SamplingOrderFrozen
	Ingesting
	RisksComputed
	PlanEmitted
	Finalized
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case SamplingOrderFrozen:
		return "sampling_order_frozen"
	case Ingesting:
		return "ingesting"
	case RisksComputed:
		return "risks_computed"
	case PlanEmitted:
		return "plan_emitted"
	case Finalized:
		return "finalized"
	default:
		return "unknown"
	}
}

// ContestDecision is the outcome of measuring one contest at this stage.
type ContestDecision struct {
	CID          string
	Method       string
	Risk         float64
	RiskLimit    float64
	UpsetThresh  float64
	PrevStatus   model.ContestStatus
	Status       model.ContestStatus
	SampleTotal  int
}

// CollectionIncrement is the proposed next-stage sampling workload for one
// collection, before C8 folds in the advisory estimated-total-needed
// figure.
type CollectionIncrement struct {
	PBCID          string
	AuditedSoFar   int
	NextIncrement  int
}

// Controller runs contests' risk measurements and next-stage workload
// decisions for a single stage. It holds no state across MeasureContests
// calls; the
// election, tally, and stage index are passed explicitly (spec §9: "no
// global state").
type Controller struct {
	Log       log.Logger
	Estimator *risk.Estimator
	Trials    int
	Metrics   *Metrics
}

// NewController returns a Controller; logger and metrics may be nil.
func NewController(logger log.Logger, est *risk.Estimator, trials int, metrics *Metrics) *Controller {
	if logger == nil {
		logger = log.NewNoOpLogger()
	}
	return &Controller{Log: logger, Estimator: est, Trials: trials, Metrics: metrics}
}

// MeasureContests computes r(cid) for every open, Bayes-method contest
// and derives its updated status (spec §4.6 status-update rule, §8
// property 5: terminal statuses never revert). Contests already in a
// terminal or off status, or using the reserved frequentist method, pass
// through unmeasured with their prior status retained.
func (ctl *Controller) MeasureContests(e *model.Election, tl *tally.Tally, stageIndex int) ([]ContestDecision, error) {
	start := time.Now()
	defer func() {
		ctl.Metrics.observe(strconv.Itoa(stageIndex), time.Since(start).Seconds())
	}()

	cids := e.SortedCIDs()
	decisions := make([]ContestDecision, 0, len(cids))

	for _, cid := range cids {
		c := e.Contests[cid]
		prevStatus := c.Status
		sampleTotal := sampleTotalForContest(e, tl, cid)

		if c.Status.Terminal() || c.Status == model.StatusOff || c.Params.Method != model.Bayes {
			decisions = append(decisions, ContestDecision{
				CID: cid, Method: methodName(c.Params.Method), PrevStatus: prevStatus,
				Status: c.Status, RiskLimit: c.Params.RiskLimit, UpsetThresh: c.Params.UpsetThreshold,
				SampleTotal: sampleTotal,
			})
			continue
		}

		r, err := ctl.Estimator.Estimate(e, c, tl, e.Seed, stageIndex, ctl.Trials)
		if err != nil {
			return nil, err
		}

		newStatus := model.StatusOpen
		switch {
		case r <= c.Params.RiskLimit:
			newStatus = model.StatusPassed
		case r >= c.Params.UpsetThreshold:
			newStatus = model.StatusUpset
		}
		c.Status = newStatus

		if newStatus != prevStatus {
			ctl.Log.Info("contest status changed",
				zap.String("cid", cid),
				zap.Stringer("from", prevStatus),
				zap.Stringer("to", newStatus),
				zap.Float64("risk", r),
			)
		}

		decisions = append(decisions, ContestDecision{
			CID: cid, Method: methodName(c.Params.Method), Risk: r,
			RiskLimit: c.Params.RiskLimit, UpsetThresh: c.Params.UpsetThreshold,
			PrevStatus: prevStatus, Status: newStatus, SampleTotal: sampleTotal,
		})
	}

	return decisions, nil
}

// Terminated reports whether every contest has reached a stopping status
// (spec §4.7 step 4: passed, upset, or off).
func Terminated(e *model.Election) bool {
	for _, c := range e.Contests {
		if !c.Status.Terminal() && c.Status != model.StatusOff {
			return false
		}
	}
	return true
}

// PlanIncrements computes each collection's next-stage sampling increment
// (spec §4.7 step 5): capped at the collection's max audit rate, zeroed
// if no open, actively-sampled contest is associated with it, and the
// cumulative total never exceeds the collection's manifest size.
func PlanIncrements(e *model.Election, auditedSoFar map[string]int) []CollectionIncrement {
	pbcids := e.SortedPBCIDs()
	out := make([]CollectionIncrement, 0, len(pbcids))

	for _, pbcid := range pbcids {
		coll := e.Collections[pbcid]
		audited := auditedSoFar[pbcid]

		increment := coll.MaxAuditRate
		if !hasActiveOpenContest(e, pbcid) {
			increment = 0
		}
		if audited+increment > coll.N {
			increment = coll.N - audited
		}
		if increment < 0 {
			increment = 0
		}

		out = append(out, CollectionIncrement{PBCID: pbcid, AuditedSoFar: audited, NextIncrement: increment})
	}
	return out
}

func hasActiveOpenContest(e *model.Election, pbcid string) bool {
	for cid, pbcids := range e.Rel {
		if !containsPBCID(pbcids, pbcid) {
			continue
		}
		c := e.Contests[cid]
		if c == nil {
			continue
		}
		if c.Status == model.StatusOpen && c.Params.SamplingMode == model.Active {
			return true
		}
	}
	return false
}

func containsPBCID(list []string, target string) bool {
	for _, p := range list {
		if p == target {
			return true
		}
	}
	return false
}

func sampleTotalForContest(e *model.Election, tl *tally.Tally, cid string) int {
	total := 0
	for _, pbcid := range e.Rel[cid] {
		coll := e.Collections[pbcid]
		if coll == nil {
			continue
		}
		if coll.Type == model.CVR {
			for rvote := range e.ReportedVoteCounts(pbcid, cid) {
				total += tl.StratumTotal(cid, pbcid, rvote)
			}
			continue
		}
		total += tl.StratumTotal(cid, pbcid, tally.NoCVR)
	}
	return total
}

func methodName(m model.AuditMethod) string {
	if m == model.ReservedFrequentist {
		return "Frequentist"
	}
	return "Bayes"
}

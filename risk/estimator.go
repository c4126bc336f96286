// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package risk implements the per-contest Bayesian posterior estimator
// (spec §4.6, C6): for every unseen ballot, a Polya-urn draw from the
// category prior plus observed sample counts; aggregated across a
// contest's collections; run K times to estimate the probability that
// the reported outcome is wrong. This is the engine's dominant cost, and
// is parallelized across independent trials per spec §5.
package risk

import (
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/luxfi/log"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/luxfi/bayesaudit/model"
	"github.com/luxfi/bayesaudit/prng"
	"github.com/luxfi/bayesaudit/tally"
)

// DefaultTrials is used when a stage's configuration does not set
// n_trials (spec §4.6: "default K ≈ 10^5").
const DefaultTrials = 100_000

// Estimator computes r(cid) for contests whose method is Bayes.
type Estimator struct {
	Log     log.Logger
	Metrics *Metrics
	// Workers bounds the number of goroutines used per Estimate call; 0
	// means runtime.GOMAXPROCS(0) (spec §5: "a work-pool whose size is
	// an external parameter").
	Workers int
}

// NewEstimator returns an Estimator with the given logger; Metrics may be
// nil to disable instrumentation.
func NewEstimator(logger log.Logger, metrics *Metrics) *Estimator {
	if logger == nil {
		logger = log.NewNoOpLogger()
	}
	return &Estimator{Log: logger, Metrics: metrics}
}

// Estimate computes r(cid) for one contest at one stage, using K
// Monte-Carlo trials. The PRNG domain for trial t is
// "risk:"||cid||":"||stageIndex||":"||t, so the total draws consumed are
// a deterministic function of (seed, cid, stageIndex, K) regardless of
// how trials are scheduled across workers (spec §5, §8 property 1).
func (est *Estimator) Estimate(e *model.Election, contest *model.Contest, tl *tally.Tally, seed string, stageIndex, trials int) (float64, error) {
	if trials <= 0 {
		trials = DefaultTrials
	}
	workers := est.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > trials {
		workers = trials
	}

	// pbcids must be visited in a fixed order: e.Rel is built by ranging
	// a map (model.Election.RebuildRel), so without sorting here the
	// sequential draws consumed from src per collection would depend on
	// map iteration order rather than (seed, cid, stage, K) alone.
	pbcids := append([]string(nil), e.Rel[contest.CID]...)
	sortStrings(pbcids)
	reported := append([]string(nil), e.ReportedOutcome[contest.CID]...)
	sortStrings(reported)
	cats := categories(contest)

	var failures int64
	var grp errgroup.Group

	chunk := (trials + workers - 1) / workers
	start := time.Now()
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if lo >= trials {
			break
		}
		if hi > trials {
			hi = trials
		}
		grp.Go(func() error {
			for t := lo; t < hi; t++ {
				domain := fmt.Sprintf("risk:%s:%d:%d", contest.CID, stageIndex, t)
				src := prng.New(seed, domain)
				full, err := oneTrial(e, contest, tl, pbcids, cats, src)
				if err != nil {
					return err
				}
				winners := topWinners(full, contest.Winners, contest.Selections)
				if !equalStrings(winners, reported) {
					atomic.AddInt64(&failures, 1)
				}
			}
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return 0, err
	}
	elapsed := time.Since(start)

	r := float64(failures) / float64(trials)
	if est.Log != nil {
		est.Log.Debug("estimated contest risk",
			zap.String("cid", contest.CID),
			zap.Int("trials", trials),
			zap.Int64("failures", failures),
			zap.Float64("risk", r),
			zap.Duration("elapsed", elapsed),
		)
	}
	if est.Metrics != nil && elapsed > 0 {
		est.Metrics.observe(contest.CID, r, float64(trials)/elapsed.Seconds())
	}
	return r, nil
}

// oneTrial draws the unseen ballots for every collection in pbcids and
// returns the aggregated per-category tally for a single trial (spec
// §4.6 steps 1-2).
func oneTrial(e *model.Election, contest *model.Contest, tl *tally.Tally, pbcids []string, cats []string, src *prng.Source) (map[string]int, error) {
	full := make(map[string]int, len(cats))
	alpha := contest.Params.PseudocountAlpha

	for _, pbcid := range pbcids {
		coll := e.Collections[pbcid]
		if coll == nil {
			continue
		}

		if coll.Type == model.CVR {
			totals := e.ReportedVoteCounts(pbcid, contest.CID)
			rvotes := make([]string, 0, len(totals))
			for rvote := range totals {
				rvotes = append(rvotes, rvote)
			}
			sortStrings(rvotes)
			for _, rvote := range rvotes {
				total := totals[rvote]
				observed := tl.SumByAVote(contest.CID, pbcid, rvote)
				observedByCat, err := categorize(contest, observed)
				if err != nil {
					return nil, err
				}
				unseen := total - sumInts(observedByCat)
				if unseen < 0 {
					unseen = 0
				}
				base := baseCounts(cats, alpha, observedByCat)
				drawn := polyaDraw(src, cats, base, unseen)
				addInto(full, observedByCat)
				addInto(full, drawn)
			}
			continue
		}

		// noCVR: a single stratum over the whole collection.
		observed := tl.SumByAVote(contest.CID, pbcid, tally.NoCVR)
		observedByCat, err := categorize(contest, observed)
		if err != nil {
			return nil, err
		}
		unseen := coll.N - sumInts(observedByCat)
		if unseen < 0 {
			unseen = 0
		}
		base := baseCounts(cats, alpha, observedByCat)
		reportedByCat, err := categorize(contest, e.ReportedTally[pbcid][contest.CID])
		if err != nil {
			return nil, err
		}
		weight := contest.Params.NoCVRPriorWeight
		if weight == 0 {
			weight = 1
		}
		for cat, n := range reportedByCat {
			base[cat] += float64(n) * weight
		}
		drawn := polyaDraw(src, cats, base, unseen)
		addInto(full, observedByCat)
		addInto(full, drawn)
	}
	return full, nil
}

func baseCounts(cats []string, alpha float64, observed map[string]int) map[string]float64 {
	base := make(map[string]float64, len(cats))
	for _, c := range cats {
		base[c] = alpha + float64(observed[c])
	}
	return base
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

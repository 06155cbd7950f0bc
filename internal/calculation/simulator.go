package calculation

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rgehrsitz/drawdown/internal/account"
	"github.com/rgehrsitz/drawdown/internal/money"
	"github.com/rgehrsitz/drawdown/internal/portfolio"
	"github.com/rgehrsitz/drawdown/internal/withdrawal"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// ErrAllTrialsFailed is returned when no trial finished without a hard failure.
var ErrAllTrialsFailed = errors.New("every simulation trial failed")

// Params describes one Monte Carlo run.
type Params struct {
	Portfolio      *portfolio.Portfolio
	Strategy       withdrawal.Strategy
	Years          int
	NumSimulations int
	PayMortgage    bool
	Parallel       bool
	// MaxWorkers bounds the worker pool in parallel mode. Zero means one
	// worker per CPU.
	MaxWorkers int
	// Seed is the master seed every trial's random stream is derived from.
	// Zero picks a seed from the clock; the chosen seed is reported on the
	// result.
	Seed int64
	// NewSource overrides the per-trial return source. It must return an
	// independent source for every call.
	NewSource func(trial int, seed int64) account.ReturnSource
}

// Validate checks that p describes a runnable simulation.
func (p Params) Validate() error {
	if p.Portfolio == nil {
		return fmt.Errorf("portfolio is required")
	}
	if p.Strategy == nil {
		return fmt.Errorf("withdrawal strategy is required")
	}
	if p.Years <= 0 {
		return fmt.Errorf("years must be positive, got %d", p.Years)
	}
	if p.NumSimulations <= 0 {
		return fmt.Errorf("num_simulations must be positive, got %d", p.NumSimulations)
	}
	if p.MaxWorkers < 0 {
		return fmt.Errorf("max_workers cannot be negative, got %d", p.MaxWorkers)
	}
	return nil
}

// Simulator runs independent trials of a portfolio against a withdrawal
// strategy and aggregates the outcomes.
type Simulator struct {
	Logger Logger

	params   Params
	progress func(done, total int)
}

// NewSimulator creates a simulator for params. Parameters are validated by Run.
func NewSimulator(params Params) *Simulator {
	return &Simulator{Logger: NopLogger{}, params: params}
}

// SetLogger sets the logger; nil restores the no-op logger.
func (s *Simulator) SetLogger(l Logger) {
	if l == nil {
		s.Logger = NopLogger{}
		return
	}
	s.Logger = l
}

// OnTrialComplete registers fn to be told how many trials have finished.
// Calls are serialized, so fn needs no locking of its own.
func (s *Simulator) OnTrialComplete(fn func(done, total int)) {
	s.progress = fn
}

// Params returns the parameters the simulator was created with.
func (s *Simulator) Params() Params { return s.params }

// Run executes every trial and aggregates the results. Financial failure is
// data: depleted trials lower the success rate. A trial that hits a hard
// failure is recorded with Err and left out of the aggregates; Run itself only
// fails when the parameters are invalid, ctx is cancelled, or no trial
// succeeded.
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	if err := s.params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation parameters: %w", err)
	}
	seed := s.params.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	start := time.Now()
	s.Logger.Infof("starting %d trials over %d years (seed %d, parallel=%v)",
		s.params.NumSimulations, s.params.Years, seed, s.params.Parallel)

	var (
		runs []Run
		err  error
	)
	if s.params.Parallel {
		runs, err = s.runParallel(ctx, seed)
	} else {
		runs, err = s.runSequential(ctx, seed)
	}
	if err != nil {
		return nil, err
	}

	result := aggregate(runs, s.params)
	result.Seed = seed
	result.Duration = time.Since(start)
	if result.FailedRuns == len(runs) {
		return result, ErrAllTrialsFailed
	}
	s.Logger.Infof("finished in %s: success rate %s%%, %d failed trials",
		result.Duration, result.SuccessRate.StringFixed(2), result.FailedRuns)
	return result, nil
}

func (s *Simulator) workers() int {
	if s.params.MaxWorkers > 0 {
		return s.params.MaxWorkers
	}
	return runtime.GOMAXPROCS(0)
}

func (s *Simulator) runSequential(ctx context.Context, seed int64) ([]Run, error) {
	tracker := newProgress(s.params.NumSimulations, s.progress)
	runs := make([]Run, s.params.NumSimulations)
	for i := range runs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		runs[i] = s.runTrial(i, seed)
		s.logFailure(runs[i])
		tracker.done()
	}
	return runs, nil
}

func (s *Simulator) runParallel(ctx context.Context, seed int64) ([]Run, error) {
	workers := s.workers()
	s.Logger.Debugf("running trials on %d workers", workers)

	tracker := newProgress(s.params.NumSimulations, s.progress)
	runs := make([]Run, s.params.NumSimulations)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range runs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			runs[i] = s.runTrial(i, seed)
			s.logFailure(runs[i])
			tracker.done()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return runs, nil
}

func (s *Simulator) logFailure(r Run) {
	if r.Err != nil {
		s.Logger.Errorf("trial %d failed: %v", r.ID, r.Err)
	}
}

// trialSeed derives an independent seed for a trial from the master seed.
func trialSeed(seed int64, trial int) int64 {
	return int64(uint64(seed) + uint64(trial+1)*0x9E3779B97F4A7C15)
}

func (s *Simulator) source(trial int, seed int64) account.ReturnSource {
	ts := trialSeed(seed, trial)
	if s.params.NewSource != nil {
		return s.params.NewSource(trial, ts)
	}
	return account.NewGaussianSource(ts)
}

type progress struct {
	mu    sync.Mutex
	count int
	total int
	fn    func(done, total int)
}

func newProgress(total int, fn func(done, total int)) *progress {
	return &progress{total: total, fn: fn}
}

func (p *progress) done() {
	if p.fn == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.count++
	p.fn(p.count, p.total)
}

// DepletionStats summarizes when accounts of one type first ran dry.
// Probability is the fraction (0..1) of trials in which it happened.
type DepletionStats struct {
	Type        account.Type    `json:"type"`
	Median      int             `json:"medianYear"`
	Earliest    int             `json:"earliestYear"`
	Latest      int             `json:"latestYear"`
	Count       int             `json:"count"`
	Probability decimal.Decimal `json:"probability"`
}

// Result is the aggregate of a simulation. SuccessRate is a percentage.
type Result struct {
	ID              string `json:"id"`
	PortfolioID     string `json:"portfolioId"`
	Strategy        string `json:"strategy"`
	WithdrawalOrder string `json:"withdrawalOrder"`
	Years           int    `json:"years"`
	NumSimulations  int    `json:"numSimulations"`
	Seed            int64  `json:"seed"`

	SuccessRate              decimal.Decimal            `json:"successRate"`
	MedianFinalNetWorth      money.Money                `json:"medianFinalNetWorth"`
	FinalNetWorthPercentiles map[string]decimal.Decimal `json:"finalNetWorthPercentiles"`
	AccountDepletion         []DepletionStats           `json:"accountDepletion"`
	// MedianMortgagePayoffYear is only meaningful when MortgagePaidOffRuns > 0.
	MedianMortgagePayoffYear int         `json:"medianMortgagePayoffYear"`
	MortgagePaidOffRuns      int         `json:"mortgagePaidOffRuns"`
	AverageTaxesPerTrial     money.Money `json:"averageTaxesPerTrial"`
	AverageAnnualTaxes       money.Money `json:"averageAnnualTaxes"`
	FailedRuns               int         `json:"failedRuns"`

	Duration time.Duration `json:"duration"`
	Runs     []Run         `json:"-"`
}

// SuccessfulRuns returns the trials that finished without depleting.
func (r *Result) SuccessfulRuns() []Run {
	var out []Run
	for _, run := range r.Runs {
		if run.Err == nil && !run.Depleted {
			out = append(out, run)
		}
	}
	return out
}

// aggregate folds trial outcomes into a Result. It only depends on the set of
// runs, not on the order they finished in.
func aggregate(runs []Run, params Params) *Result {
	sort.Slice(runs, func(i, j int) bool { return runs[i].ID < runs[j].ID })

	currency := params.Portfolio.Currency
	order := params.Portfolio.WithdrawalOrder
	if o := params.Strategy.PreferredOrder(); o != "" {
		order = o
	}
	res := &Result{
		ID:              uuid.NewString(),
		PortfolioID:     params.Portfolio.ID,
		Strategy:        params.Strategy.Name(),
		WithdrawalOrder: string(order),
		Years:           params.Years,
		NumSimulations:  params.NumSimulations,
		Runs:            runs,
		SuccessRate:     decimal.Zero,
	}

	var (
		finals     []decimal.Decimal
		payoffs    []int
		taxTotal   = decimal.Zero
		successful int
		depletion  = map[account.Type][]int{}
	)
	for _, r := range runs {
		if r.Err != nil {
			res.FailedRuns++
			continue
		}
		if !r.Depleted {
			successful++
		}
		finals = append(finals, r.FinalNetWorth.Amount())
		if r.MortgagePaidOff {
			payoffs = append(payoffs, r.MortgagePaidOffYear)
		}
		for _, t := range r.Taxes {
			taxTotal = taxTotal.Add(t.Amount())
		}
		for t, year := range r.AccountDepletion {
			depletion[t] = append(depletion[t], year)
		}
	}

	completed := len(runs) - res.FailedRuns
	res.MedianFinalNetWorth = money.New(calculateMedian(finals), currency)
	res.FinalNetWorthPercentiles = calculatePercentiles(finals)
	res.AverageTaxesPerTrial = money.Zero(currency)
	res.AverageAnnualTaxes = money.Zero(currency)
	if completed > 0 {
		n := decimal.NewFromInt(int64(completed))
		res.SuccessRate = decimal.NewFromInt(int64(successful)).Div(n).Mul(decimal.NewFromInt(100))
		res.AverageTaxesPerTrial = money.New(taxTotal.Div(n), currency)
		res.AverageAnnualTaxes = money.New(taxTotal.Div(n.Mul(decimal.NewFromInt(int64(params.Years)))), currency)
	}

	res.MortgagePaidOffRuns = len(payoffs)
	res.MedianMortgagePayoffYear = calculateMedianInt(payoffs)

	for _, t := range account.Types {
		years, ok := depletion[t]
		if !ok {
			continue
		}
		sorted := append([]int(nil), years...)
		sort.Ints(sorted)
		res.AccountDepletion = append(res.AccountDepletion, DepletionStats{
			Type:        t,
			Median:      calculateMedianInt(sorted),
			Earliest:    sorted[0],
			Latest:      sorted[len(sorted)-1],
			Count:       len(sorted),
			Probability: decimal.NewFromInt(int64(len(sorted))).Div(decimal.NewFromInt(int64(completed))),
		})
	}
	return res
}

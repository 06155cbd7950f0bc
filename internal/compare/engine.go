package compare

import (
	"context"
	"fmt"
	"time"

	"github.com/rgehrsitz/drawdown/internal/calculation"
	"github.com/rgehrsitz/drawdown/internal/config"
	"github.com/rgehrsitz/drawdown/internal/domain"
)

// BaseName is the scenario name given to the unmodified configuration.
const BaseName = "base"

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	Logger            calculation.Logger
	MetricsCalculator *MetricsCalculator
	// OnScenario, when set, is called before each scenario is simulated.
	OnScenario func(name string, index, total int)
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine() *CompareEngine {
	return &CompareEngine{
		Logger:            calculation.NopLogger{},
		MetricsCalculator: NewMetricsCalculator(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	// BaseScenarioName picks the scenario deltas are measured against. Empty
	// means the unmodified configuration, named BaseName.
	BaseScenarioName string
	// Scenarios restricts the alternatives. Empty means every scenario in the
	// configuration.
	Scenarios  []string
	ConfigPath string
}

type namedConfig struct {
	name   string
	config *domain.Configuration
}

// Compare simulates the base and every alternative scenario with one shared
// seed so that all of them see the same market paths, then ranks them.
func (ce *CompareEngine) Compare(
	ctx context.Context,
	cfg *domain.Configuration,
	options CompareOptions,
) (*ComparisonSet, error) {
	base, alternatives, err := ce.selectScenarios(cfg, options)
	if err != nil {
		return nil, err
	}

	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	total := len(alternatives) + 1
	baseResult, err := ce.run(ctx, base, seed, 0, total)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   base.name,
		BaseResult:         &baseResult,
		AlternativeResults: []ComparisonResult{},
		ConfigPath:         options.ConfigPath,
		Seed:               seed,
	}
	for i, alt := range alternatives {
		altResult, err := ce.run(ctx, alt, seed, i+1, total)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", alt.name, err)
		}
		compSet.AlternativeResults = append(compSet.AlternativeResults,
			ce.MetricsCalculator.CalculateComparison(altResult, baseResult))
	}

	Rank(compSet)
	compSet.Recommendations = GenerateRecommendations(compSet)
	return compSet, nil
}

func (ce *CompareEngine) selectScenarios(cfg *domain.Configuration, options CompareOptions) (namedConfig, []namedConfig, error) {
	byName := map[string]domain.Scenario{}
	for _, s := range cfg.Scenarios {
		byName[s.Name] = s
	}

	base := namedConfig{name: BaseName, config: config.ResolveScenario(cfg, domain.Scenario{})}
	if options.BaseScenarioName != "" && options.BaseScenarioName != BaseName {
		s, ok := byName[options.BaseScenarioName]
		if !ok {
			return namedConfig{}, nil, fmt.Errorf("base scenario %s not found in configuration", options.BaseScenarioName)
		}
		base = namedConfig{name: s.Name, config: config.ResolveScenario(cfg, s)}
	}

	names := options.Scenarios
	if len(names) == 0 {
		for _, s := range cfg.Scenarios {
			names = append(names, s.Name)
		}
	}

	var alternatives []namedConfig
	for _, name := range names {
		if name == base.name {
			continue
		}
		if name == BaseName {
			alternatives = append(alternatives, namedConfig{name: BaseName, config: config.ResolveScenario(cfg, domain.Scenario{})})
			continue
		}
		s, ok := byName[name]
		if !ok {
			return namedConfig{}, nil, fmt.Errorf("alternative scenario %s not found", name)
		}
		alternatives = append(alternatives, namedConfig{name: s.Name, config: config.ResolveScenario(cfg, s)})
	}
	if len(alternatives) == 0 {
		return namedConfig{}, nil, fmt.Errorf("no scenarios to compare against %s", base.name)
	}
	return base, alternatives, nil
}

func (ce *CompareEngine) run(ctx context.Context, nc namedConfig, seed int64, index, total int) (ComparisonResult, error) {
	if ce.OnScenario != nil {
		ce.OnScenario(nc.name, index, total)
	}
	ce.Logger.Infof("running scenario %s (%d/%d)", nc.name, index+1, total)

	params, err := config.BuildParams(nc.config)
	if err != nil {
		return ComparisonResult{}, err
	}
	params.Seed = seed

	sim := calculation.NewSimulator(params)
	sim.SetLogger(ce.Logger)
	result, err := sim.Run(ctx)
	if err != nil {
		return ComparisonResult{}, err
	}
	return ce.MetricsCalculator.CalculateMetrics(nc.name, result), nil
}

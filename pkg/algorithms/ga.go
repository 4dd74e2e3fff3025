package algorithms

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"
	"k8s.io/klog/v2"
	"k8s.io/utils/clock"

	"github.com/vlsi-lab/floorplanner/pkg/constraints"
	"github.com/vlsi-lab/floorplanner/pkg/fitness"
	"github.com/vlsi-lab/floorplanner/pkg/framework"
)

const (
	Name = "GA"

	tracerName = "github.com/vlsi-lab/floorplanner/pkg/algorithms"
)

// Config holds configuration parameters for the genetic algorithm
type Config struct {
	PopulationSize int
	MaxGenerations int
	// CrossoverRate is the probability a selected pair is recombined;
	// otherwise the parents pass on unchanged to mutation.
	CrossoverRate float64
	MutationRate  float64
	// Elitism is the number of fittest individuals copied unchanged into the
	// next generation.
	Elitism   int
	Crossover CrossoverFunc
	Selector  Selector
	// Parallel enables concurrent fitness evaluation
	Parallel bool
	Seed     uint64
	// Seeds are placed in the initial population before random chromosomes
	Seeds []framework.Chromosome
}

// DefaultConfig returns the reference parameters: 6 individuals over 15
// generations, single-point crossover, mutation rate 0.1 and binary
// tournament selection with one elite.
func DefaultConfig() Config {
	return Config{
		PopulationSize: 6,
		MaxGenerations: 15,
		CrossoverRate:  1.0,
		MutationRate:   0.1,
		Elitism:        1,
		Crossover:      SinglePointCrossover,
		Selector:       TournamentSelector{Size: 2},
	}
}

// Validate returns a ConfigurationError describing the first invalid parameter
func (c Config) Validate() error {
	if c.PopulationSize < 2 {
		return framework.NewConfigurationError("population size must be at least 2, got %d", c.PopulationSize)
	}
	if c.MaxGenerations < 1 {
		return framework.NewConfigurationError("max generations must be at least 1, got %d", c.MaxGenerations)
	}
	if c.CrossoverRate < 0 || c.CrossoverRate > 1 {
		return framework.NewConfigurationError("crossover rate must be in [0, 1], got %v", c.CrossoverRate)
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		return framework.NewConfigurationError("mutation rate must be in [0, 1], got %v", c.MutationRate)
	}
	if c.Elitism < 0 || c.Elitism >= c.PopulationSize {
		return framework.NewConfigurationError("elitism must be in [0, %d), got %d", c.PopulationSize, c.Elitism)
	}
	if len(c.Seeds) > c.PopulationSize {
		return framework.NewConfigurationError("%d seed chromosomes exceed population size %d", len(c.Seeds), c.PopulationSize)
	}
	return nil
}

// GenerationStats summarizes one evaluated generation
type GenerationStats struct {
	Generation int
	// Best is the fittest individual of this generation
	Best framework.FitnessResult
	// BestSoFar is the fittest individual of generations 0..Generation
	BestSoFar     framework.FitnessResult
	MeanFitness   float64
	StdDevFitness float64
	Feasible      int
	Unique        int
	Evaluations   int
	Duration      time.Duration
}

// Result is the outcome of a run
type Result struct {
	// Best is the fittest individual observed in any generation
	Best           Individual
	BestGeneration int
	Population     []*Individual
	Trace          []GenerationStats
	Generations    int
	Evaluations    int
	Duration       time.Duration
	Seed           uint64
}

// GenerationHook observes each generation after it has been evaluated
type GenerationHook func(ctx context.Context, stats GenerationStats)

// Option configures a GA
type Option func(*GA)

// WithGenerationHook registers a hook called after every generation
func WithGenerationHook(hook GenerationHook) Option {
	return func(g *GA) {
		g.hooks = append(g.hooks, hook)
	}
}

// WithClock replaces the clock used to time generations
func WithClock(c clock.PassiveClock) Option {
	return func(g *GA) {
		g.clock = c
	}
}

// WithTracerProvider replaces the global tracer provider for run and
// generation spans
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(g *GA) {
		g.tracer = tp.Tracer(tracerName)
	}
}

// GA is a generational genetic algorithm over floorplan chromosomes
type GA struct {
	config    Config
	evaluator *fitness.Evaluator
	factory   *Factory
	mutator   *Mutator
	hooks     []GenerationHook
	clock     clock.PassiveClock
	tracer    trace.Tracer
}

// NewGA validates the configuration and seed chromosomes. A nil Crossover or
// Selector falls back to the DefaultConfig choice.
func NewGA(config Config, evaluator *fitness.Evaluator, factory *Factory, opts ...Option) (*GA, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.Crossover == nil {
		config.Crossover = SinglePointCrossover
	}
	if config.Selector == nil {
		config.Selector = TournamentSelector{Size: 2}
	}
	if factory.Catalog() != evaluator.Catalog() || factory.GridSize() != evaluator.GridSize() {
		return nil, framework.NewConfigurationError("factory and evaluator describe different problems")
	}
	for _, seed := range config.Seeds {
		if err := constraints.Validate(seed, evaluator.Catalog(), evaluator.GridSize()); err != nil {
			return nil, err
		}
	}

	mutator, err := NewMutator(factory, config.MutationRate)
	if err != nil {
		return nil, err
	}

	g := &GA{
		config:    config,
		evaluator: evaluator,
		factory:   factory,
		mutator:   mutator,
		clock:     clock.RealClock{},
		tracer:    otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Config returns the effective configuration
func (g *GA) Config() Config {
	return g.config
}

// Run evolves the population for MaxGenerations generations and returns the
// best individual seen in any of them. Identical configuration and seed
// reproduce the same result; all random draws happen on the calling goroutine.
// If ctx is cancelled between generations, the best result so far is returned
// together with the context error.
func (g *GA) Run(ctx context.Context) (*Result, error) {
	logger := klog.FromContext(ctx).WithValues("algorithm", Name)
	start := g.clock.Now()
	r := rand.New(rand.NewSource(g.config.Seed))

	ctx, span := g.tracer.Start(ctx, "GA.Run", trace.WithAttributes(
		attribute.Int("populationSize", g.config.PopulationSize),
		attribute.Int("maxGenerations", g.config.MaxGenerations),
		attribute.Int64("seed", int64(g.config.Seed)),
	))
	defer span.End()

	logger.Info("Starting evolution",
		"populationSize", g.config.PopulationSize,
		"generations", g.config.MaxGenerations,
		"crossoverRate", g.config.CrossoverRate,
		"mutationRate", g.config.MutationRate,
		"elitism", g.config.Elitism,
		"selection", g.config.Selector.Name(),
		"parallel", g.config.Parallel,
		"seed", g.config.Seed)

	chromosomes := make([]framework.Chromosome, 0, g.config.PopulationSize)
	for _, seed := range g.config.Seeds {
		chromosomes = append(chromosomes, seed.Clone())
	}
	chromosomes = append(chromosomes, g.factory.Initialize(r, g.config.PopulationSize-len(chromosomes))...)

	result := &Result{
		Seed:  g.config.Seed,
		Trace: make([]GenerationStats, 0, g.config.MaxGenerations),
	}
	var best *Individual

	for gen := 0; gen < g.config.MaxGenerations; gen++ {
		if err := ctx.Err(); err != nil {
			logger.Info("Evolution interrupted", "generation", gen, "err", err)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return g.finish(result, best, start), err
		}

		genStart := g.clock.Now()
		genCtx, genSpan := g.tracer.Start(ctx, "GA.Generation", trace.WithAttributes(attribute.Int("generation", gen)))

		population, err := EvaluatePopulation(genCtx, g.evaluator, chromosomes, g.config.Parallel)
		if err != nil {
			genSpan.RecordError(err)
			genSpan.SetStatus(codes.Error, err.Error())
			genSpan.End()
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			// an interrupted evaluation keeps the generations already completed
			if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, framework.ErrInvalidChromosome) {
				logger.Info("Evolution interrupted during evaluation", "generation", gen, "err", ctxErr)
				return g.finish(result, best, start), ctxErr
			}
			return nil, err
		}
		result.Evaluations += len(population)
		result.Population = population

		genBest := BestOf(population)
		if best == nil || genBest.Result.Better(best.Result) {
			best = genBest
			result.BestGeneration = gen
		}

		mean, stdDev := stat.MeanStdDev(Fitnesses(population), nil)
		stats := GenerationStats{
			Generation:    gen,
			Best:          genBest.Result,
			BestSoFar:     best.Result,
			MeanFitness:   mean,
			StdDevFitness: stdDev,
			Feasible:      CountFeasible(population),
			Unique:        CountUnique(population),
			Evaluations:   len(population),
			Duration:      g.clock.Since(genStart),
		}
		result.Trace = append(result.Trace, stats)
		result.Generations = gen + 1

		genSpan.SetAttributes(
			attribute.Float64("bestFitness", stats.Best.Fitness),
			attribute.Float64("bestSoFarFitness", stats.BestSoFar.Fitness),
			attribute.Int("feasible", stats.Feasible),
		)
		genSpan.End()

		logger.V(2).Info("Generation evaluated",
			"generation", gen+1,
			"of", g.config.MaxGenerations,
			"bestFitness", stats.Best.Fitness,
			"bestSoFar", stats.BestSoFar.Fitness,
			"meanFitness", stats.MeanFitness,
			"feasible", stats.Feasible,
			"unique", stats.Unique)

		for _, hook := range g.hooks {
			hook(ctx, stats)
		}

		if gen == g.config.MaxGenerations-1 {
			break
		}
		chromosomes = g.reproduce(ctx, r, population)
	}

	g.finish(result, best, start)
	span.SetAttributes(attribute.Float64("bestFitness", result.Best.Result.Fitness))
	logger.Info("Evolution complete",
		"generations", result.Generations,
		"evaluations", result.Evaluations,
		"bestFitness", result.Best.Result.Fitness,
		"bestGeneration", result.BestGeneration,
		"overlaps", result.Best.Result.OverlapCount,
		"wiringLength", result.Best.Result.WiringLength,
		"boundingArea", result.Best.Result.BoundingArea,
		"duration", result.Duration)

	return result, nil
}

func (g *GA) finish(result *Result, best *Individual, start time.Time) *Result {
	if best != nil {
		result.Best = Individual{Chromosome: best.Chromosome.Clone(), Result: best.Result}
	}
	result.Duration = g.clock.Since(start)
	return result
}

// reproduce builds the next generation: elites first, then children of
// selected parent pairs, each child mutated independently. The population
// size is held constant; a surplus second child is dropped.
func (g *GA) reproduce(ctx context.Context, r *rand.Rand, population []*Individual) []framework.Chromosome {
	logger := klog.FromContext(ctx)
	next := make([]framework.Chromosome, 0, g.config.PopulationSize)

	if g.config.Elitism > 0 {
		for _, elite := range SortByFitness(population)[:g.config.Elitism] {
			next = append(next, elite.Chromosome)
		}
	}

	for len(next) < g.config.PopulationSize {
		parent1 := g.config.Selector.Select(r, population)
		parent2 := g.config.Selector.Select(r, population)

		child1, child2 := parent1.Chromosome, parent2.Chromosome
		if r.Float64() < g.config.CrossoverRate {
			child1, child2 = g.config.Crossover(r, child1, child2)
		}

		next = append(next, g.mutator.Mutate(r, child1))
		if len(next) < g.config.PopulationSize {
			next = append(next, g.mutator.Mutate(r, child2))
		}
	}

	logger.V(4).Info("Reproduced generation", "size", len(next), "elites", g.config.Elitism)
	return next
}

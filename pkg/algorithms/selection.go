package algorithms

import (
	"sort"

	"golang.org/x/exp/rand"

	"github.com/vlsi-lab/floorplanner/pkg/framework"
)

// Selection strategy names accepted by SelectorByName
const (
	Tournament = "tournament"
	Roulette   = "roulette"
	Rank       = "rank"
)

// Selector picks one parent from an evaluated population
type Selector interface {
	Select(r *rand.Rand, population []*Individual) *Individual
	Name() string
}

// TournamentSelector returns the fittest of Size uniformly drawn contestants.
// Size 1 is a uniform random pick; the zero value runs binary tournaments.
type TournamentSelector struct {
	Size int
}

func (s TournamentSelector) Name() string { return Tournament }

func (s TournamentSelector) Select(r *rand.Rand, population []*Individual) *Individual {
	size := s.Size
	if size < 1 {
		size = 2
	}
	best := population[r.Intn(len(population))]

	for i := 1; i < size; i++ {
		contestant := population[r.Intn(len(population))]
		if contestant.Result.Better(best.Result) {
			best = contestant
		}
	}

	return best
}

// RouletteSelector is fitness-proportionate selection. Fitness is negative,
// so each weight is the fitness shifted above the population minimum, plus one
// so the worst individual keeps a non-zero chance.
type RouletteSelector struct{}

func (RouletteSelector) Name() string { return Roulette }

func (RouletteSelector) Select(r *rand.Rand, population []*Individual) *Individual {
	worst := population[0].Result.Fitness
	for _, ind := range population[1:] {
		worst = min(worst, ind.Result.Fitness)
	}

	total := 0.0
	for _, ind := range population {
		total += ind.Result.Fitness - worst + 1
	}

	spin := r.Float64() * total
	for _, ind := range population {
		spin -= ind.Result.Fitness - worst + 1
		if spin < 0 {
			return ind
		}
	}
	return population[len(population)-1]
}

// RankSelector is linear ranking selection. Pressure in [1, 2] is the expected
// number of offspring of the best individual; 1 is uniform selection.
type RankSelector struct {
	Pressure float64
}

func (RankSelector) Name() string { return Rank }

func (s RankSelector) Select(r *rand.Rand, population []*Individual) *Individual {
	n := len(population)
	if n == 1 {
		return population[0]
	}
	pressure := min(max(s.Pressure, 1), 2)

	// ascending: ranked[0] is the worst
	ranked := make([]*Individual, n)
	copy(ranked, population)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Result.Fitness < ranked[j].Result.Fitness
	})

	spin := r.Float64()
	acc := 0.0
	for i, ind := range ranked {
		acc += (2 - pressure + 2*(pressure-1)*float64(i)/float64(n-1)) / float64(n)
		if spin < acc {
			return ind
		}
	}
	return ranked[n-1]
}

// SelectorByName resolves tournament, roulette or rank selection
func SelectorByName(name string, tournamentSize int) (Selector, error) {
	switch name {
	case "", Tournament:
		return TournamentSelector{Size: tournamentSize}, nil
	case Roulette:
		return RouletteSelector{}, nil
	case Rank:
		return RankSelector{Pressure: 1.5}, nil
	default:
		return nil, framework.NewConfigurationError("unknown selection strategy %q", name)
	}
}

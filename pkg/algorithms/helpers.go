package algorithms

import (
	"fmt"
	"sort"

	"github.com/vlsi-lab/floorplanner/pkg/framework"
)

// Individual is an evaluated chromosome
type Individual struct {
	Chromosome framework.Chromosome
	Result     framework.FitnessResult
}

// BestOf returns the fittest individual, the earliest one on ties
func BestOf(population []*Individual) *Individual {
	if len(population) == 0 {
		return nil
	}
	best := population[0]
	for _, ind := range population[1:] {
		if ind.Result.Better(best.Result) {
			best = ind
		}
	}
	return best
}

// SortByFitness returns a copy of the population ordered fittest first
func SortByFitness(population []*Individual) []*Individual {
	sorted := make([]*Individual, len(population))
	copy(sorted, population)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Result.Fitness > sorted[j].Result.Fitness
	})
	return sorted
}

// CountUnique returns the number of distinct chromosomes in the population
func CountUnique(population []*Individual) int {
	unique := make(map[string]bool, len(population))
	for _, ind := range population {
		unique[fmt.Sprintf("%v", ind.Chromosome)] = true
	}
	return len(unique)
}

// CountFeasible returns the number of individuals without overlapping blocks
func CountFeasible(population []*Individual) int {
	n := 0
	for _, ind := range population {
		if ind.Result.OverlapCount == 0 {
			n++
		}
	}
	return n
}

// Fitnesses returns the fitness values in population order
func Fitnesses(population []*Individual) []float64 {
	values := make([]float64, len(population))
	for i, ind := range population {
		values[i] = ind.Result.Fitness
	}
	return values
}

package algorithms

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/exp/rand"

	"github.com/vlsi-lab/floorplanner/pkg/framework"
)

// CrossoverFunc combines two parents of equal length into two children.
// Children only ever copy genes from the parents, so valid parents give valid children.
type CrossoverFunc func(r *rand.Rand, p1, p2 framework.Chromosome) (child1, child2 framework.Chromosome)

// Crossover names accepted by CrossoverByName
const (
	SinglePoint = "single-point"
	TwoPoint    = "two-point"
	Uniform     = "uniform"
	KPoint      = "k-point"
)

// mustBeCompatible panics with an InvalidChromosomeError when the parents
// cannot be crossed. The catalog guarantees at least two blocks, so this only
// fires on a programming defect.
func mustBeCompatible(p1, p2 framework.Chromosome) {
	if len(p1) != len(p2) {
		panic(framework.NewInvalidChromosomeError(-1, "parents differ in length: %d vs %d", len(p1), len(p2)))
	}
	if len(p1) < 2 {
		panic(framework.NewInvalidChromosomeError(-1, "crossover needs at least 2 genes, got %d", len(p1)))
	}
}

// mustBeInterior panics with an InvalidChromosomeError unless 1 <= k1 < k2 <= n-1
func mustBeInterior(n, k1, k2 int) {
	if k1 < 1 || k2 > n-1 || k1 >= k2 {
		panic(framework.NewInvalidChromosomeError(-1, "cut points [%d, %d) must satisfy 1 <= k1 < k2 <= %d", k1, k2, n-1))
	}
}

// SinglePointAt returns p1[:k]+p2[k:] and p2[:k]+p1[k:]; k must be in [1, len-1]
func SinglePointAt(p1, p2 framework.Chromosome, k int) (framework.Chromosome, framework.Chromosome) {
	mustBeCompatible(p1, p2)
	if k < 1 || k > len(p1)-1 {
		panic(framework.NewInvalidChromosomeError(-1, "cut point %d outside [1, %d]", k, len(p1)-1))
	}
	child1 := make(framework.Chromosome, len(p1))
	child2 := make(framework.Chromosome, len(p2))

	copy(child1[:k], p1[:k])
	copy(child1[k:], p2[k:])
	copy(child2[:k], p2[:k])
	copy(child2[k:], p1[k:])

	return child1, child2
}

// TwoPointAt swaps the middle segment [k1, k2) between the parents
func TwoPointAt(p1, p2 framework.Chromosome, k1, k2 int) (framework.Chromosome, framework.Chromosome) {
	mustBeCompatible(p1, p2)
	mustBeInterior(len(p1), k1, k2)
	child1 := make(framework.Chromosome, len(p1))
	child2 := make(framework.Chromosome, len(p2))

	for i := 0; i < len(p1); i++ {
		if i < k1 || i >= k2 {
			child1[i] = p1[i]
			child2[i] = p2[i]
		} else {
			child1[i] = p2[i]
			child2[i] = p1[i]
		}
	}

	return child1, child2
}

// SinglePointCrossover creates offspring by selecting a cut point in [1, len-1]
func SinglePointCrossover(r *rand.Rand, p1, p2 framework.Chromosome) (framework.Chromosome, framework.Chromosome) {
	mustBeCompatible(p1, p2)
	k := 1 + r.Intn(len(p1)-1)
	return SinglePointAt(p1, p2, k)
}

// TwoPointCrossover creates offspring using cut points k1 in [1, len-2] and
// k2 in [k1+1, len-1]. Two-gene chromosomes have no interior segment, so
// they fall back to a single cut at 1.
func TwoPointCrossover(r *rand.Rand, p1, p2 framework.Chromosome) (framework.Chromosome, framework.Chromosome) {
	mustBeCompatible(p1, p2)
	n := len(p1)
	if n == 2 {
		return SinglePointAt(p1, p2, 1)
	}
	k1 := 1 + r.Intn(n-2)
	k2 := k1 + 1 + r.Intn(n-1-k1)
	return TwoPointAt(p1, p2, k1, k2)
}

// UniformCrossover creates offspring by randomly selecting from each parent
func UniformCrossover(r *rand.Rand, p1, p2 framework.Chromosome) (framework.Chromosome, framework.Chromosome) {
	mustBeCompatible(p1, p2)
	child1 := make(framework.Chromosome, len(p1))
	child2 := make(framework.Chromosome, len(p2))

	for i := range p1 {
		if r.Float64() < 0.5 {
			child1[i] = p1[i]
			child2[i] = p2[i]
		} else {
			child1[i] = p2[i]
			child2[i] = p1[i]
		}
	}

	return child1, child2
}

// KPointCrossover returns a crossover with k distinct cut points in [1, len-1],
// alternating the parent each child copies from. k is clamped to len-1.
func KPointCrossover(k int) CrossoverFunc {
	return func(r *rand.Rand, p1, p2 framework.Chromosome) (framework.Chromosome, framework.Chromosome) {
		mustBeCompatible(p1, p2)
		n := len(p1)
		cuts := min(max(k, 1), n-1)

		// cut points are a random subset of 1..n-1
		perm := r.Perm(n - 1)
		points := make([]int, 0, cuts+2)
		points = append(points, 0)
		for _, p := range perm[:cuts] {
			points = append(points, p+1)
		}
		sort.Ints(points[1:])
		points = append(points, n)

		child1 := make(framework.Chromosome, n)
		child2 := make(framework.Chromosome, n)
		swap := false
		for s := 0; s < len(points)-1; s++ {
			for j := points[s]; j < points[s+1]; j++ {
				if swap {
					child1[j] = p2[j]
					child2[j] = p1[j]
				} else {
					child1[j] = p1[j]
					child2[j] = p2[j]
				}
			}
			swap = !swap
		}

		return child1, child2
	}
}

// CrossoverByName resolves single-point, two-point, uniform or k-point:<k>
func CrossoverByName(name string) (CrossoverFunc, error) {
	switch {
	case name == "" || name == SinglePoint:
		return SinglePointCrossover, nil
	case name == TwoPoint:
		return TwoPointCrossover, nil
	case name == Uniform:
		return UniformCrossover, nil
	case strings.HasPrefix(name, KPoint+":"):
		k, err := strconv.Atoi(strings.TrimPrefix(name, KPoint+":"))
		if err != nil || k < 1 {
			return nil, framework.NewConfigurationError("invalid k-point crossover %q", name)
		}
		return KPointCrossover(k), nil
	default:
		return nil, framework.NewConfigurationError("unknown crossover %q", name)
	}
}

// CrossoverNames lists the accepted crossover names for help text
func CrossoverNames() string {
	return fmt.Sprintf("%s|%s|%s|%s:<k>", SinglePoint, TwoPoint, Uniform, KPoint)
}

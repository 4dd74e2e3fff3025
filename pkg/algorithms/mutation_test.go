package algorithms_test

import (
	"errors"
	"testing"

	"golang.org/x/exp/rand"

	"github.com/vlsi-lab/floorplanner/pkg/algorithms"
	"github.com/vlsi-lab/floorplanner/pkg/catalog"
	"github.com/vlsi-lab/floorplanner/pkg/constraints"
	"github.com/vlsi-lab/floorplanner/pkg/framework"
)

func newProcessorFactory(t *testing.T) *algorithms.Factory {
	t.Helper()
	factory, err := algorithms.NewFactory(catalog.Processor(), 25)
	if err != nil {
		t.Fatalf("Failed to create factory: %v", err)
	}
	return factory
}

func TestMutationLocality(t *testing.T) {
	factory := newProcessorFactory(t)
	mutator, err := algorithms.NewMutator(factory, 1.0)
	if err != nil {
		t.Fatalf("Failed to create mutator: %v", err)
	}

	r := rand.New(rand.NewSource(8))
	for trial := 0; trial < 500; trial++ {
		original := factory.RandomChromosome(r)
		snapshot := original.Clone()

		mutated := mutator.Mutate(r, original)

		if !original.Equal(snapshot) {
			t.Fatalf("Mutate modified its input")
		}
		if len(mutated) != len(original) {
			t.Fatalf("Mutation changed length")
		}
		changed := 0
		for i := range mutated {
			if mutated[i] != original[i] {
				changed++
			}
		}
		if changed > 1 {
			t.Fatalf("Mutation changed %d genes", changed)
		}
		if err := constraints.Validate(mutated, factory.Catalog(), factory.GridSize()); err != nil {
			t.Fatalf("Mutation produced out-of-bounds gene: %v", err)
		}
	}
}

func TestMutationNoOpReturnsInput(t *testing.T) {
	factory := newProcessorFactory(t)
	mutator, err := algorithms.NewMutator(factory, 0)
	if err != nil {
		t.Fatalf("Failed to create mutator: %v", err)
	}

	r := rand.New(rand.NewSource(9))
	c := factory.RandomChromosome(r)
	out := mutator.Mutate(r, c)
	if &out[0] != &c[0] {
		t.Errorf("Expected the unmutated chromosome to be returned as is")
	}
}

func TestMutationRate(t *testing.T) {
	factory := newProcessorFactory(t)
	mutator, err := algorithms.NewMutator(factory, 0.1)
	if err != nil {
		t.Fatalf("Failed to create mutator: %v", err)
	}

	r := rand.New(rand.NewSource(10))
	c := factory.RandomChromosome(r)
	mutations := 0
	trials := 10000
	for i := 0; i < trials; i++ {
		out := mutator.Mutate(r, c)
		if &out[0] != &c[0] {
			mutations++
		}
	}
	if mutations < 800 || mutations > 1200 {
		t.Errorf("Expected about 1000 mutations at rate 0.1, got %d", mutations)
	}
}

func TestNewMutatorRejectsBadRate(t *testing.T) {
	factory := newProcessorFactory(t)
	for _, rate := range []float64{-0.1, 1.5} {
		if _, err := algorithms.NewMutator(factory, rate); !errors.Is(err, framework.ErrConfiguration) {
			t.Errorf("Expected configuration error for rate %v, got %v", rate, err)
		}
	}
}

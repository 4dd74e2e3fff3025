/*
Copyright 2024 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// +k8s:deepcopy-gen:interfaces=k8s.io/apimachinery/pkg/runtime.Object

// FloorplanConfiguration describes one floorplanning problem and the
// parameters of the genetic search that solves it
type FloorplanConfiguration struct {
	metav1.TypeMeta `json:",inline"`

	// GridSize is the side length of the square placement grid
	GridSize int `json:"gridSize,omitempty" toml:"gridSize,omitempty"`

	// PopulationSize is the number of individuals per generation
	PopulationSize int `json:"populationSize,omitempty" toml:"populationSize,omitempty"`

	// MaxGenerations is the number of generations evaluated
	MaxGenerations int `json:"maxGenerations,omitempty" toml:"maxGenerations,omitempty"`

	// MutationRate is the probability that a child has one block redrawn
	MutationRate *float64 `json:"mutationRate,omitempty" toml:"mutationRate,omitempty"`

	// CrossoverRate is the probability that a selected pair is recombined
	CrossoverRate *float64 `json:"crossoverRate,omitempty" toml:"crossoverRate,omitempty"`

	// Crossover is one of single-point, two-point, uniform or k-point:<k>
	Crossover string `json:"crossover,omitempty" toml:"crossover,omitempty"`

	// Selection is one of tournament, roulette or rank
	Selection string `json:"selection,omitempty" toml:"selection,omitempty"`

	// TournamentSize is the number of contestants per tournament
	TournamentSize int `json:"tournamentSize,omitempty" toml:"tournamentSize,omitempty"`

	// Elitism is the number of fittest individuals carried over unchanged
	Elitism *int `json:"elitism,omitempty" toml:"elitism,omitempty"`

	// WarmStartSeeds is the number of shelf-packed floorplans placed in the
	// initial population
	WarmStartSeeds int `json:"warmStartSeeds,omitempty" toml:"warmStartSeeds,omitempty"`

	// Parallel enables concurrent fitness evaluation
	Parallel bool `json:"parallel,omitempty" toml:"parallel,omitempty"`

	// Seed fixes the random stream. A random seed is drawn and reported when unset.
	Seed *int64 `json:"seed,omitempty" toml:"seed,omitempty"`

	// Weights scale the penalty terms of the fitness function
	Weights *Weights `json:"weights,omitempty" toml:"weights,omitempty"`

	// Blocks lists the blocks to place. The reference processor is used when empty.
	Blocks []Block `json:"blocks,omitempty" toml:"blocks,omitempty"`

	// Connections lists unordered pairs of connected block names
	Connections []Connection `json:"connections,omitempty" toml:"connections,omitempty"`
}

// Weights of the fitness penalty terms
type Weights struct {
	// Overlap multiplies the number of overlapping block pairs
	Overlap float64 `json:"overlap" toml:"overlap"`
	// Wiring multiplies the total center-to-center wiring length
	Wiring float64 `json:"wiring" toml:"wiring"`
	// Area multiplies the bounding box area
	Area float64 `json:"area" toml:"area"`
}

// Block is a named rectangle in grid units
type Block struct {
	Name   string `json:"name" toml:"name"`
	Width  int    `json:"width" toml:"width"`
	Height int    `json:"height" toml:"height"`
}

// Connection joins two blocks by name
type Connection struct {
	From string `json:"from" toml:"from"`
	To   string `json:"to" toml:"to"`
}

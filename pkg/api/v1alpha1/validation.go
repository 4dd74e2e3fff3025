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
	"fmt"

	"k8s.io/apimachinery/pkg/util/sets"
	"k8s.io/apimachinery/pkg/util/validation/field"

	"github.com/vlsi-lab/floorplanner/pkg/algorithms"
	"github.com/vlsi-lab/floorplanner/pkg/framework"
)

var supportedSelections = []string{algorithms.Tournament, algorithms.Roulette, algorithms.Rank}

// ValidateFloorplanConfiguration validates a defaulted configuration. All
// problems are aggregated into one error that matches
// framework.ErrConfiguration.
func ValidateFloorplanConfiguration(cfg *FloorplanConfiguration) error {
	var allErrs field.ErrorList
	allErrs = append(allErrs, validateSearch(cfg)...)
	allErrs = append(allErrs, validateProblem(cfg)...)

	if agg := allErrs.ToAggregate(); agg != nil {
		return fmt.Errorf("%w: %w", framework.ErrConfiguration, agg)
	}
	return nil
}

func validateSearch(cfg *FloorplanConfiguration) field.ErrorList {
	var allErrs field.ErrorList

	if cfg.PopulationSize < 2 {
		allErrs = append(allErrs, field.Invalid(field.NewPath("populationSize"), cfg.PopulationSize, "must be at least 2"))
	}
	if cfg.MaxGenerations < 1 {
		allErrs = append(allErrs, field.Invalid(field.NewPath("maxGenerations"), cfg.MaxGenerations, "must be at least 1"))
	}
	if cfg.MutationRate != nil && (*cfg.MutationRate < 0 || *cfg.MutationRate > 1) {
		allErrs = append(allErrs, field.Invalid(field.NewPath("mutationRate"), *cfg.MutationRate, "must be between 0 and 1"))
	}
	if cfg.CrossoverRate != nil && (*cfg.CrossoverRate < 0 || *cfg.CrossoverRate > 1) {
		allErrs = append(allErrs, field.Invalid(field.NewPath("crossoverRate"), *cfg.CrossoverRate, "must be between 0 and 1"))
	}
	if _, err := algorithms.CrossoverByName(cfg.Crossover); err != nil {
		allErrs = append(allErrs, field.Invalid(field.NewPath("crossover"), cfg.Crossover, "must be one of "+algorithms.CrossoverNames()))
	}
	if !sets.New(supportedSelections...).Has(cfg.Selection) {
		allErrs = append(allErrs, field.NotSupported(field.NewPath("selection"), cfg.Selection, supportedSelections))
	}
	if cfg.Selection == algorithms.Tournament && cfg.TournamentSize < 1 {
		allErrs = append(allErrs, field.Invalid(field.NewPath("tournamentSize"), cfg.TournamentSize, "must be at least 1"))
	}
	if cfg.Elitism != nil && (*cfg.Elitism < 0 || *cfg.Elitism >= cfg.PopulationSize) {
		allErrs = append(allErrs, field.Invalid(field.NewPath("elitism"), *cfg.Elitism,
			fmt.Sprintf("must be at least 0 and below the population size %d", cfg.PopulationSize)))
	}
	if cfg.WarmStartSeeds < 0 || cfg.WarmStartSeeds > cfg.PopulationSize {
		allErrs = append(allErrs, field.Invalid(field.NewPath("warmStartSeeds"), cfg.WarmStartSeeds,
			fmt.Sprintf("must be between 0 and the population size %d", cfg.PopulationSize)))
	}
	if w := cfg.Weights; w != nil {
		weightsPath := field.NewPath("weights")
		for _, term := range []struct {
			name  string
			value float64
		}{{"overlap", w.Overlap}, {"wiring", w.Wiring}, {"area", w.Area}} {
			if term.value < 0 {
				allErrs = append(allErrs, field.Invalid(weightsPath.Child(term.name), term.value, "must not be negative"))
			}
		}
	}
	return allErrs
}

func validateProblem(cfg *FloorplanConfiguration) field.ErrorList {
	var allErrs field.ErrorList

	gridPath := field.NewPath("gridSize")
	if cfg.GridSize < 1 {
		allErrs = append(allErrs, field.Invalid(gridPath, cfg.GridSize, "must be positive"))
	}

	blocksPath := field.NewPath("blocks")
	if len(cfg.Blocks) < 2 {
		allErrs = append(allErrs, field.Invalid(blocksPath, len(cfg.Blocks), "at least 2 blocks are required"))
	}
	names := sets.New[string]()
	for i, b := range cfg.Blocks {
		p := blocksPath.Index(i)
		switch {
		case b.Name == "":
			allErrs = append(allErrs, field.Required(p.Child("name"), "block name is required"))
		case names.Has(b.Name):
			allErrs = append(allErrs, field.Duplicate(p.Child("name"), b.Name))
		}
		names.Insert(b.Name)

		if b.Width < 1 {
			allErrs = append(allErrs, field.Invalid(p.Child("width"), b.Width, "must be positive"))
		} else if cfg.GridSize > 0 && b.Width > cfg.GridSize {
			allErrs = append(allErrs, field.Invalid(p.Child("width"), b.Width, fmt.Sprintf("exceeds grid size %d", cfg.GridSize)))
		}
		if b.Height < 1 {
			allErrs = append(allErrs, field.Invalid(p.Child("height"), b.Height, "must be positive"))
		} else if cfg.GridSize > 0 && b.Height > cfg.GridSize {
			allErrs = append(allErrs, field.Invalid(p.Child("height"), b.Height, fmt.Sprintf("exceeds grid size %d", cfg.GridSize)))
		}
	}

	connectionsPath := field.NewPath("connections")
	seen := sets.New[[2]string]()
	for i, c := range cfg.Connections {
		p := connectionsPath.Index(i)
		if !names.Has(c.From) {
			allErrs = append(allErrs, field.NotFound(p.Child("from"), c.From))
		}
		if !names.Has(c.To) {
			allErrs = append(allErrs, field.NotFound(p.Child("to"), c.To))
		}
		if c.From == c.To {
			allErrs = append(allErrs, field.Invalid(p, c.From, "a block cannot connect to itself"))
			continue
		}
		key := [2]string{min(c.From, c.To), max(c.From, c.To)}
		if seen.Has(key) {
			allErrs = append(allErrs, field.Duplicate(p, c.From+" - "+c.To))
		}
		seen.Insert(key)
	}
	return allErrs
}

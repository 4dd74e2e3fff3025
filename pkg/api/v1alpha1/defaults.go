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
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/klog/v2"
	"k8s.io/utils/ptr"

	"github.com/vlsi-lab/floorplanner/pkg/algorithms"
	"github.com/vlsi-lab/floorplanner/pkg/catalog"
	"github.com/vlsi-lab/floorplanner/pkg/fitness"
)

const (
	DefaultGridSize       = 25
	DefaultPopulationSize = 6
	DefaultMaxGenerations = 15
	DefaultMutationRate   = 0.1
	DefaultCrossoverRate  = 1.0
	DefaultTournamentSize = 2
	DefaultElitism        = 1
)

func addDefaultingFuncs(scheme *runtime.Scheme) error {
	return RegisterDefaults(scheme)
}

func RegisterDefaults(scheme *runtime.Scheme) error {
	klog.V(5).InfoS("Registering defaults", "kind", Kind)
	scheme.AddTypeDefaultingFunc(&FloorplanConfiguration{}, func(obj interface{}) {
		SetDefaults_FloorplanConfiguration(obj.(*FloorplanConfiguration))
	})
	return nil
}

// SetDefaults_FloorplanConfiguration fills unset fields. Without blocks the
// reference processor and its connections are used.
func SetDefaults_FloorplanConfiguration(obj *FloorplanConfiguration) {
	if obj.APIVersion == "" {
		obj.APIVersion = SchemeGroupVersion.String()
	}
	if obj.Kind == "" {
		obj.Kind = Kind
	}
	if obj.GridSize == 0 {
		obj.GridSize = DefaultGridSize
	}
	if obj.PopulationSize == 0 {
		obj.PopulationSize = DefaultPopulationSize
	}
	if obj.MaxGenerations == 0 {
		obj.MaxGenerations = DefaultMaxGenerations
	}
	if obj.MutationRate == nil {
		obj.MutationRate = ptr.To(DefaultMutationRate)
	}
	if obj.CrossoverRate == nil {
		obj.CrossoverRate = ptr.To(DefaultCrossoverRate)
	}
	if obj.Crossover == "" {
		obj.Crossover = algorithms.SinglePoint
	}
	if obj.Selection == "" {
		obj.Selection = algorithms.Tournament
	}
	if obj.TournamentSize == 0 {
		obj.TournamentSize = DefaultTournamentSize
	}
	if obj.Elitism == nil {
		obj.Elitism = ptr.To(DefaultElitism)
	}
	if obj.Weights == nil {
		w := fitness.DefaultWeights()
		obj.Weights = &Weights{Overlap: w.Overlap, Wiring: w.Wiring, Area: w.Area}
	}
	if len(obj.Blocks) == 0 {
		for _, b := range catalog.ProcessorBlocks() {
			obj.Blocks = append(obj.Blocks, Block{Name: b.Name, Width: b.Width, Height: b.Height})
		}
		obj.Connections = nil
		for _, c := range catalog.ProcessorConnections() {
			obj.Connections = append(obj.Connections, Connection{From: c.From, To: c.To})
		}
	}
}

// NewDefaultConfiguration returns the reference processor problem with the
// default search parameters
func NewDefaultConfiguration() *FloorplanConfiguration {
	cfg := &FloorplanConfiguration{}
	SetDefaults_FloorplanConfiguration(cfg)
	return cfg
}

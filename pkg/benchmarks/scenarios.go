package benchmarks

import (
	"fmt"

	"github.com/vlsi-lab/floorplanner/pkg/api/v1alpha1"
	"github.com/vlsi-lab/floorplanner/pkg/catalog"
)

// Scenario is a named floorplanning problem. Search parameters left unset in
// Config are filled from the suite's base configuration.
type Scenario struct {
	Name   string
	Config *v1alpha1.FloorplanConfiguration
}

// BlockArea is the summed area of the scenario's blocks, a lower bound for
// the bounding area of any overlap-free placement
func (s Scenario) BlockArea() int {
	area := 0
	for _, b := range s.Config.Blocks {
		area += b.Width * b.Height
	}
	return area
}

// Processor is the six-unit reference processor on a 25x25 grid
func Processor() Scenario {
	cfg := &v1alpha1.FloorplanConfiguration{GridSize: 25}
	for _, b := range catalog.ProcessorBlocks() {
		cfg.Blocks = append(cfg.Blocks, v1alpha1.Block{Name: b.Name, Width: b.Width, Height: b.Height})
	}
	for _, c := range catalog.ProcessorConnections() {
		cfg.Connections = append(cfg.Connections, v1alpha1.Connection{From: c.From, To: c.To})
	}
	return Scenario{Name: "processor", Config: cfg}
}

// TwoBlock is the smallest problem: two connected blocks on a small grid
func TwoBlock() Scenario {
	return Scenario{
		Name: "two-block",
		Config: &v1alpha1.FloorplanConfiguration{
			GridSize:    6,
			Blocks:      []v1alpha1.Block{{Name: "A", Width: 2, Height: 2}, {Name: "B", Width: 3, Height: 2}},
			Connections: []v1alpha1.Connection{{From: "A", To: "B"}},
		},
	}
}

// Chain is n blocks of cycling sizes wired in a line
func Chain(n, gridSize int) Scenario {
	sizes := [][2]int{{3, 2}, {2, 3}, {4, 2}, {2, 2}, {3, 3}}
	cfg := &v1alpha1.FloorplanConfiguration{GridSize: gridSize}
	for i := 0; i < n; i++ {
		s := sizes[i%len(sizes)]
		cfg.Blocks = append(cfg.Blocks, v1alpha1.Block{Name: fmt.Sprintf("stage-%d", i), Width: s[0], Height: s[1]})
		if i > 0 {
			cfg.Connections = append(cfg.Connections, v1alpha1.Connection{From: cfg.Blocks[i-1].Name, To: cfg.Blocks[i].Name})
		}
	}
	return Scenario{Name: fmt.Sprintf("chain-%d", n), Config: cfg}
}

// Mesh is a rows x cols array of identical cores, each wired to its right
// and upper neighbours
func Mesh(rows, cols, coreSize, gridSize int) Scenario {
	cfg := &v1alpha1.FloorplanConfiguration{GridSize: gridSize}
	name := func(r, c int) string { return fmt.Sprintf("core-%d-%d", r, c) }
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			cfg.Blocks = append(cfg.Blocks, v1alpha1.Block{Name: name(r, c), Width: coreSize, Height: coreSize})
			if c > 0 {
				cfg.Connections = append(cfg.Connections, v1alpha1.Connection{From: name(r, c-1), To: name(r, c)})
			}
			if r > 0 {
				cfg.Connections = append(cfg.Connections, v1alpha1.Connection{From: name(r-1, c), To: name(r, c)})
			}
		}
	}
	return Scenario{Name: fmt.Sprintf("mesh-%dx%d", rows, cols), Config: cfg}
}

// StandardScenarios returns the scenarios run by AddStandardScenarios
func StandardScenarios() []Scenario {
	return []Scenario{
		TwoBlock(),
		Processor(),
		Chain(8, 20),
		Mesh(3, 3, 4, 20),
	}
}

// Package report summarizes a floorplanning run for people and tools: the
// best placement by block name, its fitness breakdown and the convergence
// trace, written as JSON or YAML or logged through klog.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/klog/v2"
	"sigs.k8s.io/yaml"

	"github.com/vlsi-lab/floorplanner/pkg/algorithms"
	"github.com/vlsi-lab/floorplanner/pkg/catalog"
	"github.com/vlsi-lab/floorplanner/pkg/framework"
	"github.com/vlsi-lab/floorplanner/pkg/objectives/area"
	"github.com/vlsi-lab/floorplanner/pkg/objectives/overlap"
	"github.com/vlsi-lab/floorplanner/pkg/objectives/wiring"
)

// Parameters echo the search setup of a run
type Parameters struct {
	GridSize       int     `json:"gridSize"`
	PopulationSize int     `json:"populationSize"`
	MaxGenerations int     `json:"maxGenerations"`
	MutationRate   float64 `json:"mutationRate"`
	CrossoverRate  float64 `json:"crossoverRate"`
	Crossover      string  `json:"crossover"`
	Selection      string  `json:"selection"`
	Elitism        int     `json:"elitism"`
	WarmStartSeeds int     `json:"warmStartSeeds,omitempty"`
	Parallel       bool    `json:"parallel,omitempty"`
	Weights        Weights `json:"weights"`
}

// Weights of the fitness penalty terms
type Weights struct {
	Overlap float64 `json:"overlap"`
	Wiring  float64 `json:"wiring"`
	Area    float64 `json:"area"`
}

// Placement is the final position of one block
type Placement struct {
	Name   string `json:"name"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Wire is the length of one connection in the best placement
type Wire struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Length float64 `json:"length"`
}

// Breakdown decomposes the fitness of the best placement
type Breakdown struct {
	Fitness      float64     `json:"fitness"`
	Overlaps     int         `json:"overlaps"`
	WiringLength float64     `json:"wiringLength"`
	BoundingArea float64     `json:"boundingArea"`
	Utilization  float64     `json:"utilization"`
	Overlapping  [][2]string `json:"overlapping,omitempty"`
	Wires        []Wire      `json:"wires,omitempty"`
}

// TracePoint is one generation of the convergence trace
type TracePoint struct {
	Generation int     `json:"generation"`
	Best       float64 `json:"best"`
	BestSoFar  float64 `json:"bestSoFar"`
	Mean       float64 `json:"mean"`
	StdDev     float64 `json:"stdDev"`
	Feasible   int     `json:"feasible"`
	Unique     int     `json:"unique"`
}

// Report describes one run
type Report struct {
	RunID          string       `json:"runID"`
	Scenario       string       `json:"scenario,omitempty"`
	CreatedAt      metav1.Time  `json:"createdAt"`
	Seed           uint64       `json:"seed"`
	Parameters     Parameters   `json:"parameters"`
	Placements     []Placement  `json:"placements"`
	Breakdown      Breakdown    `json:"breakdown"`
	Feasible       bool         `json:"feasible"`
	BestGeneration int          `json:"bestGeneration"`
	Generations    int          `json:"generations"`
	Evaluations    int          `json:"evaluations"`
	Duration       string       `json:"duration"`
	Trace          []TracePoint `json:"trace,omitempty"`

	layout string
}

// New builds the report of result, a run over cat
func New(runID, scenario string, params Parameters, cat *catalog.Catalog, result *algorithms.Result, createdAt time.Time) *Report {
	best := result.Best.Chromosome
	r := &Report{
		RunID:          runID,
		Scenario:       scenario,
		CreatedAt:      metav1.NewTime(createdAt),
		Seed:           result.Seed,
		Parameters:     params,
		Placements:     placements(best, cat),
		Breakdown:      breakdown(best, result.Best.Result, cat),
		Feasible:       result.Best.Result.OverlapCount == 0,
		BestGeneration: result.BestGeneration,
		Generations:    result.Generations,
		Evaluations:    result.Evaluations,
		Duration:       result.Duration.String(),
		Trace:          make([]TracePoint, len(result.Trace)),
		layout:         Layout(best, cat, params.GridSize),
	}
	for i, s := range result.Trace {
		r.Trace[i] = TracePoint{
			Generation: s.Generation,
			Best:       s.Best.Fitness,
			BestSoFar:  s.BestSoFar.Fitness,
			Mean:       s.MeanFitness,
			StdDev:     s.StdDevFitness,
			Feasible:   s.Feasible,
			Unique:     s.Unique,
		}
	}
	return r
}

func placements(c framework.Chromosome, cat *catalog.Catalog) []Placement {
	out := make([]Placement, len(c))
	for i, p := range c {
		b := cat.Block(i)
		out[i] = Placement{Name: b.Name, X: p.X, Y: p.Y, Width: b.Width, Height: b.Height}
	}
	return out
}

func breakdown(c framework.Chromosome, res framework.FitnessResult, cat *catalog.Catalog) Breakdown {
	names := cat.Names()
	b := Breakdown{
		Fitness:      res.Fitness,
		Overlaps:     res.OverlapCount,
		WiringLength: res.WiringLength,
		BoundingArea: res.BoundingArea,
		Utilization:  area.Utilization(c, cat),
	}
	_, pairs := overlap.OverlapObjectiveWithDetails(c, cat)
	for _, p := range pairs {
		b.Overlapping = append(b.Overlapping, [2]string{names[p.I], names[p.J]})
	}
	_, wires := wiring.WiringObjectiveWithDetails(c, cat)
	for _, w := range wires {
		b.Wires = append(b.Wires, Wire{From: names[w.Link.A], To: names[w.Link.B], Length: w.Length})
	}
	return b
}

// Layout draws the placement on the grid, top row first. Blocks are labeled
// A, B, C... in catalog order, overlapping cells show '#' and free cells '.'.
func Layout(c framework.Chromosome, cat *catalog.Catalog, gridSize int) string {
	if gridSize <= 0 || len(c) != cat.Len() {
		return ""
	}
	cells := make([][]byte, gridSize)
	for y := range cells {
		cells[y] = []byte(strings.Repeat(".", gridSize))
	}
	for i, p := range c {
		b := cat.Block(i)
		label := Label(i)
		for y := p.Y; y < p.Y+b.Height && y < gridSize; y++ {
			for x := p.X; x < p.X+b.Width && x < gridSize; x++ {
				if cells[y][x] == '.' {
					cells[y][x] = label
				} else {
					cells[y][x] = '#'
				}
			}
		}
	}

	var sb strings.Builder
	for y := gridSize - 1; y >= 0; y-- {
		sb.Write(cells[y])
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Label returns the layout label of block i
func Label(i int) byte {
	const labels = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	if i < 0 || i >= len(labels) {
		return '?'
	}
	return labels[i]
}

// Layout returns the text drawing of the best placement
func (r *Report) Layout() string {
	return r.layout
}

// Marshal encodes the report as "json" or "yaml"
func (r *Report) Marshal(format string) ([]byte, error) {
	switch format {
	case "json":
		return json.MarshalIndent(r, "", "  ")
	case "yaml":
		return yaml.Marshal(r)
	default:
		return nil, fmt.Errorf("unsupported report format %q", format)
	}
}

// Write stores the report at path, as YAML for .yaml/.yml and JSON otherwise
func (r *Report) Write(path string) error {
	format := "json"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = "yaml"
	}
	data, err := r.Marshal(format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// Log renders the report through logger
func (r *Report) Log(logger klog.Logger) {
	logger.Info("Best floorplan",
		"runID", r.RunID,
		"seed", r.Seed,
		"fitness", fmt.Sprintf("%.2f", r.Breakdown.Fitness),
		"overlaps", r.Breakdown.Overlaps,
		"wiringLength", fmt.Sprintf("%.2f", r.Breakdown.WiringLength),
		"boundingArea", r.Breakdown.BoundingArea,
		"utilization", fmt.Sprintf("%.1f%%", r.Breakdown.Utilization*100),
		"feasible", r.Feasible,
		"bestGeneration", r.BestGeneration+1,
		"generations", r.Generations,
		"duration", r.Duration)

	for i, p := range r.Placements {
		logger.Info("Block placement",
			"label", string(Label(i)),
			"block", p.Name,
			"position", framework.Position{X: p.X, Y: p.Y}.String(),
			"size", fmt.Sprintf("%dx%d", p.Width, p.Height))
	}
	for _, pair := range r.Breakdown.Overlapping {
		logger.Info("Overlapping blocks", "first", pair[0], "second", pair[1])
	}
	for _, w := range r.Breakdown.Wires {
		logger.V(2).Info("Wire", "from", w.From, "to", w.To, "length", fmt.Sprintf("%.2f", w.Length))
	}
	if r.layout != "" {
		logger.V(1).Info("Layout\n" + r.layout)
	}
}

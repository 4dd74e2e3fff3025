// Package metrics exposes the progress of a floorplanning run as Prometheus
// collectors on a private registry, labeled by scenario.
package metrics

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/vlsi-lab/floorplanner/pkg/algorithms"
)

const namespace = "floorplanner"

// Recorder collects per-generation statistics of GA runs
type Recorder struct {
	registry *prometheus.Registry

	bestFitness        *prometheus.GaugeVec
	bestSoFarFitness   *prometheus.GaugeVec
	meanFitness        *prometheus.GaugeVec
	overlaps           *prometheus.GaugeVec
	wiringLength       *prometheus.GaugeVec
	boundingArea       *prometheus.GaugeVec
	feasible           *prometheus.GaugeVec
	generations        *prometheus.CounterVec
	evaluations        *prometheus.CounterVec
	generationDuration *prometheus.HistogramVec
}

// NewRecorder registers the collectors on a fresh registry
func NewRecorder() *Recorder {
	gauge := func(name, help string) *prometheus.GaugeVec {
		return prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: namespace, Name: name, Help: help}, []string{"scenario"})
	}
	r := &Recorder{
		registry:         prometheus.NewRegistry(),
		bestFitness:      gauge("generation_best_fitness", "Fitness of the best individual of the latest generation."),
		bestSoFarFitness: gauge("best_fitness", "Fitness of the best individual seen so far."),
		meanFitness:      gauge("generation_mean_fitness", "Mean fitness of the latest generation."),
		overlaps:         gauge("best_overlaps", "Overlapping block pairs of the best individual seen so far."),
		wiringLength:     gauge("best_wiring_length", "Total wiring length of the best individual seen so far."),
		boundingArea:     gauge("best_bounding_area", "Bounding area of the best individual seen so far."),
		feasible:         gauge("generation_feasible_individuals", "Overlap-free individuals in the latest generation."),
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "generations_total", Help: "Evaluated generations.",
		}, []string{"scenario"}),
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "evaluations_total", Help: "Fitness evaluations.",
		}, []string{"scenario"}),
		generationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Wall time spent evaluating one generation.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"scenario"}),
	}
	r.registry.MustRegister(
		r.bestFitness, r.bestSoFarFitness, r.meanFitness,
		r.overlaps, r.wiringLength, r.boundingArea, r.feasible,
		r.generations, r.evaluations, r.generationDuration,
	)
	return r
}

// Registry returns the registry holding the collectors
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Hook returns a generation hook recording stats under the scenario label
func (r *Recorder) Hook(scenario string) algorithms.GenerationHook {
	return func(_ context.Context, stats algorithms.GenerationStats) {
		r.Observe(scenario, stats)
	}
}

// Observe records one generation
func (r *Recorder) Observe(scenario string, stats algorithms.GenerationStats) {
	r.bestFitness.WithLabelValues(scenario).Set(stats.Best.Fitness)
	r.bestSoFarFitness.WithLabelValues(scenario).Set(stats.BestSoFar.Fitness)
	r.meanFitness.WithLabelValues(scenario).Set(stats.MeanFitness)
	r.overlaps.WithLabelValues(scenario).Set(float64(stats.BestSoFar.OverlapCount))
	r.wiringLength.WithLabelValues(scenario).Set(stats.BestSoFar.WiringLength)
	r.boundingArea.WithLabelValues(scenario).Set(stats.BestSoFar.BoundingArea)
	r.feasible.WithLabelValues(scenario).Set(float64(stats.Feasible))
	r.generations.WithLabelValues(scenario).Inc()
	r.evaluations.WithLabelValues(scenario).Add(float64(stats.Evaluations))
	r.generationDuration.WithLabelValues(scenario).Observe(stats.Duration.Seconds())
}

// WriteTextfile writes all collected metrics to path in the Prometheus text
// exposition format, suitable for the node exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating metrics file: %w", err)
	}

	w := bufio.NewWriter(f)
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			f.Close()
			return fmt.Errorf("encoding metric %s: %w", mf.GetName(), err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("writing metrics file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing metrics file: %w", err)
	}
	return nil
}

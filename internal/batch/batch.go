// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package batch applies the mapping engine to whole survey uploads. Inputs
// are independent, so they are fanned out across a worker pool; the output
// slice always preserves input order, which is an externally observable
// contract.
package batch

import (
	"fmt"
	"runtime"
	"sync"

	"specmap/internal/engine"
	"specmap/internal/observability"
	"specmap/internal/taxonomy"
)

// Processor runs batches through a mapping engine.
type Processor struct {
	engine   *engine.Engine
	workers  int
	observer *observability.Observer
}

// NewProcessor creates a batch processor. workers <= 0 selects one worker
// per CPU.
func NewProcessor(eng *engine.Engine, workers int, observer *observability.Observer) *Processor {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Processor{engine: eng, workers: workers, observer: observer}
}

// job carries one input and its position so results can be reassembled in
// input order regardless of worker scheduling.
type job struct {
	index int
	input engine.RawInput
}

// Result is the outcome of a batch run.
type Result struct {
	Decisions []engine.MappingDecision
	Stats     Stats
}

// Process maps every input and computes aggregate statistics. Decisions
// come back in input order. A panic while scoring one input is recovered
// into an undecided decision so a single malformed row never aborts the
// batch.
func (p *Processor) Process(inputs []engine.RawInput) Result {
	var finish func(success bool, metadata map[string]interface{})
	if p.observer != nil {
		finish = p.observer.StartTiming("batch", "process", fmt.Sprintf("%d inputs", len(inputs)))
	}

	decisions := make([]engine.MappingDecision, len(inputs))

	jobs := make(chan job, p.workers*2)
	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				decisions[j.index] = p.mapOne(j.input)
			}
		}()
	}
	for i, input := range inputs {
		jobs <- job{index: i, input: input}
	}
	close(jobs)
	wg.Wait()

	stats := ComputeStats(decisions)

	if finish != nil {
		finish(true, map[string]interface{}{
			"total":            stats.TotalProcessed,
			"auto_decided":     stats.AutoDecided,
			"undecided":        stats.Undecided,
			"auto_decide_rate": stats.AutoDecideRate,
		})
	}

	return Result{Decisions: decisions, Stats: stats}
}

// mapOne isolates per-input failures: an unexpected panic becomes an
// undecided decision with an internal-error note and the batch continues.
func (p *Processor) mapOne(input engine.RawInput) (decision engine.MappingDecision) {
	defer func() {
		if r := recover(); r != nil {
			decision = engine.MappingDecision{
				Input:      input,
				Status:     engine.StatusUndecided,
				Confidence: 0,
				Notes:      fmt.Sprintf("internal error while scoring input: %v", r),
			}
		}
	}()
	return p.engine.Map(input)
}

// ConfusionCell groups decisions by resolved (parent, domain) pair.
// Clusters with many undecided inputs usually point at a missing synonym.
type ConfusionCell struct {
	Parent    string          `json:"parent"`
	Domain    taxonomy.Domain `json:"domain"`
	Total     int             `json:"total"`
	Decided   int             `json:"decided"`
	Undecided int             `json:"undecided"`
}

// Stats aggregates a batch run.
type Stats struct {
	TotalProcessed    int                      `json:"total_processed"`
	AutoDecided       int                      `json:"auto_decided"`
	Undecided         int                      `json:"undecided"`
	AutoDecideRate    float64                  `json:"auto_decide_rate"`
	AverageConfidence float64                  `json:"average_confidence"`
	SourceBreakdown   map[string]int           `json:"source_breakdown"`
	Confusion         map[string]ConfusionCell `json:"confusion"`
}

// ComputeStats derives aggregate statistics from a decision slice.
func ComputeStats(decisions []engine.MappingDecision) Stats {
	stats := Stats{
		TotalProcessed:  len(decisions),
		SourceBreakdown: make(map[string]int),
		Confusion:       make(map[string]ConfusionCell),
	}

	confidenceSum := 0.0
	for _, d := range decisions {
		stats.SourceBreakdown[d.Input.Source]++
		confidenceSum += d.Confidence
		if d.Decided() {
			stats.AutoDecided++
		} else {
			stats.Undecided++
		}

		parent := d.Parent
		if parent == "" {
			parent = "(none)"
		}
		key := parent + "|" + string(d.Domain)
		cell := stats.Confusion[key]
		cell.Parent = parent
		cell.Domain = d.Domain
		cell.Total++
		if d.Decided() {
			cell.Decided++
		} else {
			cell.Undecided++
		}
		stats.Confusion[key] = cell
	}

	if stats.TotalProcessed > 0 {
		stats.AutoDecideRate = float64(stats.AutoDecided) / float64(stats.TotalProcessed) * 100
		stats.AverageConfidence = confidenceSum / float64(stats.TotalProcessed)
	}

	return stats
}

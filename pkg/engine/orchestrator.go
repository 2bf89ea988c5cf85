// Package engine assembles the projection pipeline: position dispatch,
// the three-factor risk model, and batch generation over a worker pool.
package engine

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/gridiron-analytics/projection-engine/pkg/config"
	"github.com/gridiron-analytics/projection-engine/pkg/logger"
	"github.com/gridiron-analytics/projection-engine/pkg/projection"
	"github.com/gridiron-analytics/projection-engine/pkg/risk"
	"github.com/gridiron-analytics/projection-engine/types"
)

// PlayerInput is one player's complete evidence for a projection run
type PlayerInput struct {
	Attributes    types.PlayerAttributes
	CurrentSeason []types.GamePerformanceRecord
	PriorSeason   []types.GamePerformanceRecord
	Existing      *types.ExistingProjection
	Scope         types.ProjectionScope
}

// PlayerResult is one player's slot in a batch: either a complete
// (Projection, RiskAssessment) pair or the error that stopped it
type PlayerResult struct {
	PlayerID   string                `json:"player_id"`
	Projection *types.Projection     `json:"projection,omitempty"`
	Risk       *types.RiskAssessment `json:"risk,omitempty"`
	Err        error                 `json:"-"`
}

// BatchResult aggregates a batch run
type BatchResult struct {
	BatchID       string         `json:"batch_id"`
	Results       []PlayerResult `json:"results"`
	SuccessCount  int            `json:"success_count"`
	ErrorCount    int            `json:"error_count"`
	ExecutionTime time.Duration  `json:"execution_time"`
}

// Orchestrator routes players to position modules, runs the risk model
// alongside, and merges the output pair. Safe for concurrent use.
type Orchestrator struct {
	base    *projection.Engine
	modules map[types.Position]*projection.Module
	risk    *risk.Model
	workers int
}

// NewOrchestrator wires the full engine from config
func NewOrchestrator(cfg *config.Config) *Orchestrator {
	base := projection.NewEngine(cfg)
	return &Orchestrator{
		base:    base,
		modules: projection.NewPositionModules(base),
		risk:    risk.NewModel(cfg),
		workers: cfg.BatchWorkers,
	}
}

// ProjectPlayer computes the merged (Projection, RiskAssessment) pair
// for one player. Unsupported positions and invalid records fail the
// whole player; insufficient data never does.
func (o *Orchestrator) ProjectPlayer(input PlayerInput) (*types.Projection, *types.RiskAssessment, error) {
	if !input.Attributes.Position.IsSupported() {
		return nil, nil, &types.UnsupportedPositionError{Position: input.Attributes.Position}
	}
	if err := validateRecords(input.CurrentSeason); err != nil {
		return nil, nil, fmt.Errorf("current season history: %w", err)
	}
	if err := validateRecords(input.PriorSeason); err != nil {
		return nil, nil, fmt.Errorf("prior season history: %w", err)
	}

	proj := o.projectByPosition(&input.Attributes, input.CurrentSeason)
	if input.Scope == types.ScopeSeason {
		proj = o.base.ScaleToSeason(proj)
	}

	assessment := o.risk.Assess(risk.Input{
		Attributes:    input.Attributes,
		CurrentSeason: input.CurrentSeason,
		PriorSeason:   input.PriorSeason,
		Existing:      input.Existing,
	})

	logger.WithPlayerContext(input.Attributes.PlayerID, string(input.Attributes.Position)).
		WithFields(logrus.Fields{
			"points_ppr":    proj.PointsPPR,
			"risk_category": assessment.RiskCategory,
		}).Debug("Generated player projection")

	return proj, assessment, nil
}

// projectByPosition dispatches to the position's adjustment module;
// K and DEF run the unadjusted base engine at moderate tolerance
func (o *Orchestrator) projectByPosition(attrs *types.PlayerAttributes, history []types.GamePerformanceRecord) *types.Projection {
	if module, ok := o.modules[attrs.Position]; ok {
		return module.Project(attrs, history)
	}
	return o.base.RiskAdjustedProjection(attrs, history, types.ToleranceModerate)
}

// ProjectBatch computes every player independently on a worker pool.
// One player's failure lands in that player's result slot and never
// aborts the batch. Results come back in input order.
func (o *Orchestrator) ProjectBatch(inputs []PlayerInput) *BatchResult {
	start := time.Now()
	batchID := uuid.New().String()

	numWorkers := runtime.NumCPU()
	if o.workers > 0 {
		numWorkers = o.workers
	}
	if numWorkers > len(inputs) && len(inputs) > 0 {
		numWorkers = len(inputs)
	}

	batchLog := logger.WithBatchContext(batchID, len(inputs))
	batchLog.WithField("workers", numWorkers).Info("Starting batch projection run")

	jobs := make(chan int, len(inputs))
	results := make([]PlayerResult, len(inputs))

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				proj, assessment, err := o.ProjectPlayer(inputs[i])
				results[i] = PlayerResult{
					PlayerID:   inputs[i].Attributes.PlayerID,
					Projection: proj,
					Risk:       assessment,
					Err:        err,
				}
			}
		}()
	}

	for i := range inputs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	batch := &BatchResult{
		BatchID:       batchID,
		Results:       results,
		ExecutionTime: time.Since(start),
	}
	for _, result := range results {
		if result.Err != nil {
			batch.ErrorCount++
		} else {
			batch.SuccessCount++
		}
	}

	batchLog.WithFields(logrus.Fields{
		"successful_count": batch.SuccessCount,
		"error_count":      batch.ErrorCount,
		"processing_time":  batch.ExecutionTime,
	}).Info("Batch projection run completed")

	return batch
}

func validateRecords(records []types.GamePerformanceRecord) error {
	for i := range records {
		if err := records[i].Validate(); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	return nil
}

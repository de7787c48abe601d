package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/furnace-rank/pkg/core/loader"
	"github.com/jakechorley/furnace-rank/pkg/core/model"
	"github.com/jakechorley/furnace-rank/pkg/core/scoring"
)

// AllSteels is the steel filter value that keeps every steel type
const AllSteels = ""

// RankOptions narrows what a ranking run returns. Scores are always computed over the
// whole dataset; the options only select which rows are reported.
type RankOptions struct {
	Steel string // AllSteels or one steel type present in the data
	Top   int    // maximum scored rows returned, 0 for all
}

// UnknownSteelError is returned when the steel filter names a steel absent from the data
type UnknownSteelError struct {
	Steel string
	Known []string
}

func (e *UnknownSteelError) Error() string {
	return fmt.Sprintf("unknown steel type %q (known: %s)", e.Steel, strings.Join(e.Known, ", "))
}

// RankResult is the outcome of one ranking run
type RankResult struct {
	RunID   uuid.UUID
	Source  string
	Weights model.Weights
	Steel   string
	Steels  []string            // every steel type in the dataset, ascending
	Total   int                 // number of trials scored
	Scored  []model.ScoredTrial // filtered rows, score descending
	Best    []model.ScoredTrial // best furnace per steel, steel ascending
	Summary string              // set only when a single steel is selected
}

// RankFurnaces loads the trials from src, scores them with weights and selects the
// best furnace per steel type
func RankFurnaces(
	ctx context.Context,
	src loader.Source,
	cols model.Columns,
	weights model.Weights,
	opts RankOptions,
	logger *zap.Logger,
) (*RankResult, error) {
	runID := uuid.New()
	logger = logger.With(zap.String("run_id", runID.String()))
	logger.Debug("Starting rankFurnaces", zap.String("source", src.Name()), zap.String("steel", opts.Steel))

	ds, err := loader.Load(ctx, src, cols)
	if err != nil {
		return nil, err
	}

	return rankDataset(runID, ds, weights, opts, logger)
}

// RankDataset scores an already loaded dataset
func RankDataset(ds *model.Dataset, weights model.Weights, opts RankOptions, logger *zap.Logger) (*RankResult, error) {
	runID := uuid.New()
	return rankDataset(runID, ds, weights, opts, logger.With(zap.String("run_id", runID.String())))
}

func rankDataset(runID uuid.UUID, ds *model.Dataset, weights model.Weights, opts RankOptions, logger *zap.Logger) (*RankResult, error) {
	steels := ds.SteelTypes()
	if opts.Steel != AllSteels && !slices.Contains(steels, opts.Steel) {
		return nil, &UnknownSteelError{Steel: opts.Steel, Known: steels}
	}

	if sum := weights.Sum(); sum <= 0 {
		logger.Warn("Weights sum to a non-positive value", zap.Float64("sum", sum))
	}

	scored := scoring.Compute(ds.Trials, weights)
	best := scoring.BestPerGroup(scored)

	rows := scored
	if opts.Steel != AllSteels {
		rows = scoring.FilterSteel(scored, opts.Steel)
		best = scoring.FilterSteel(best, opts.Steel)
	}
	rows = scoring.SortByScore(rows)
	if opts.Top > 0 && len(rows) > opts.Top {
		rows = rows[:opts.Top]
	}

	result := &RankResult{
		RunID:   runID,
		Source:  ds.Source,
		Weights: weights,
		Steel:   opts.Steel,
		Steels:  steels,
		Total:   len(scored),
		Scored:  rows,
		Best:    best,
	}
	if opts.Steel != AllSteels && len(best) > 0 {
		result.Summary = Summary(best[0])
	}

	logger.Info("Ranked furnaces",
		zap.String("source", ds.Source),
		zap.Int("trials", len(scored)),
		zap.Int("steels", len(steels)),
		zap.Int("best", len(best)),
	)

	return result, nil
}

// Summary describes the best furnace for a steel in one line
func Summary(best model.ScoredTrial) string {
	return fmt.Sprintf("For steel %s, the best furnace is %s with a score of %.3f under the current weights.",
		best.SteelType, best.FurnaceID, best.Score)
}

// ListSteels loads the trials from src and returns the distinct steel types
func ListSteels(ctx context.Context, src loader.Source, cols model.Columns, logger *zap.Logger) ([]string, error) {
	ds, err := loader.Load(ctx, src, cols)
	if err != nil {
		return nil, err
	}

	steels := ds.SteelTypes()
	logger.Debug("Listed steels", zap.String("source", ds.Source), zap.Int("count", len(steels)))
	return steels, nil
}

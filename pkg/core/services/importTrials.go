package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/furnace-rank/pkg/core/loader"
	"github.com/jakechorley/furnace-rank/pkg/core/model"
)

// TrialStore defines the database operations needed to import trials
type TrialStore interface {
	InsertTrials(ctx context.Context, table string, ds *model.Dataset) (uuid.UUID, error)
}

// ImportResult describes a completed import
type ImportResult struct {
	ImportID uuid.UUID
	Source   string
	Table    string
	Count    int
}

// ImportTrials validates the trials in src and copies them into table.
// Nothing is written when the source fails validation.
func ImportTrials(
	ctx context.Context,
	src loader.Source,
	cols model.Columns,
	store TrialStore,
	table string,
	logger *zap.Logger,
) (*ImportResult, error) {
	logger.Debug("Starting importTrials", zap.String("source", src.Name()), zap.String("table", table))

	ds, err := loader.Load(ctx, src, cols)
	if err != nil {
		return nil, err
	}

	importID, err := store.InsertTrials(ctx, table, ds)
	if err != nil {
		return nil, fmt.Errorf("failed to import %s: %w", ds.Source, err)
	}

	logger.Info("Imported trials",
		zap.String("import_id", importID.String()),
		zap.String("source", ds.Source),
		zap.String("table", table),
		zap.Int("count", ds.Len()),
	)

	return &ImportResult{
		ImportID: importID,
		Source:   ds.Source,
		Table:    table,
		Count:    ds.Len(),
	}, nil
}

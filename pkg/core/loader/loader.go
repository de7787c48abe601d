package loader

import (
	"context"
	"fmt"
	"strings"

	"github.com/jakechorley/furnace-rank/pkg/core/model"
	"github.com/jakechorley/furnace-rank/pkg/tabular"
)

// Source reads a raw table of trial records
type Source interface {
	// Name identifies the source in logs and errors
	Name() string
	ReadTable(ctx context.Context) (*tabular.Table, error)
}

// SchemaError reports required columns that are absent from a source
type SchemaError struct {
	Source  string
	Missing []string
}

func (e *SchemaError) Error() string {
	quoted := make([]string, len(e.Missing))
	for i, label := range e.Missing {
		quoted[i] = fmt.Sprintf("%q", label)
	}
	return fmt.Sprintf("%s is missing required columns: %s", e.Source, strings.Join(quoted, ", "))
}

// Load reads every trial from the source and validates that all required columns exist.
// Header labels are trimmed before matching. Nothing is returned when a column is missing.
func Load(ctx context.Context, src Source, cols model.Columns) (*model.Dataset, error) {
	table, err := src.ReadTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", src.Name(), err)
	}

	return Decode(src.Name(), table, cols)
}

// Decode validates a table already read from a source and maps its rows to trials
func Decode(name string, table *tabular.Table, cols model.Columns) (*model.Dataset, error) {
	if missing := table.Missing(cols.RequiredLabels()); len(missing) > 0 {
		return nil, &SchemaError{Source: name, Missing: missing}
	}

	trials, err := tabular.DecodeRows[model.Trial](table, cols.Labels())
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}

	return &model.Dataset{
		Source: name,
		Trials: trials,
	}, nil
}

package sheetsclient

import (
	"context"
	"fmt"

	"github.com/jakechorley/furnace-rank/pkg/tabular"
)

// ValuesGetter reads a range of cells from a spreadsheet
type ValuesGetter interface {
	GetValues(ctx context.Context, spreadsheetID, sheetRange string) ([][]interface{}, error)
}

// TrialSource reads trial records from a range whose first row is the header
type TrialSource struct {
	Getter        ValuesGetter
	SpreadsheetID string
	Range         string
}

// Name identifies the spreadsheet range
func (s *TrialSource) Name() string {
	return fmt.Sprintf("sheets:%s/%s", s.SpreadsheetID, s.Range)
}

// ReadTable fetches the range and builds a table from it
func (s *TrialSource) ReadTable(ctx context.Context) (*tabular.Table, error) {
	values, err := s.Getter.GetValues(ctx, s.SpreadsheetID, s.Range)
	if err != nil {
		return nil, err
	}

	table, err := tabular.FromValues(values)
	if err != nil {
		return nil, fmt.Errorf("range %s: %w", s.Range, err)
	}

	return table, nil
}

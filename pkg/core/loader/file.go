package loader

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jakechorley/furnace-rank/pkg/tabular"
)

// DefaultFilePath is the workbook read when no source is configured
const DefaultFilePath = "hornos_mecanica_tiempos.xlsx"

// CSVSource reads trials from a delimited text file with a header row
type CSVSource struct {
	Path string
	// Comma is the field delimiter; zero means ','
	Comma rune
}

// Name returns the file path
func (s *CSVSource) Name() string {
	return s.Path
}

// ReadTable reads the whole file
func (s *CSVSource) ReadTable(ctx context.Context) (*tabular.Table, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	if s.Comma != 0 {
		r.Comma = s.Comma
	}
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv file: %w", err)
	}

	return tabular.FromRecords(records)
}

// XLSXSource reads trials from one sheet of an Excel workbook
type XLSXSource struct {
	Path string
	// Sheet is the worksheet name; empty means the first sheet
	Sheet string
}

// Name returns the file path, with the sheet when one is set
func (s *XLSXSource) Name() string {
	if s.Sheet == "" {
		return s.Path
	}
	return s.Path + "#" + s.Sheet
}

// ReadTable reads every row of the worksheet
func (s *XLSXSource) ReadTable(ctx context.Context) (*tabular.Table, error) {
	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := s.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	// Stored values, not the number-formatted display text
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}

	return tabular.FromRecords(rows)
}

// FileSource picks a file source from the path's extension
func FileSource(path, sheet string) (Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return &CSVSource{Path: path}, nil
	case ".tsv":
		return &CSVSource{Path: path, Comma: '\t'}, nil
	case ".xlsx", ".xlsm":
		return &XLSXSource{Path: path, Sheet: sheet}, nil
	default:
		return nil, fmt.Errorf("unsupported file type %q (expected .csv, .tsv or .xlsx)", filepath.Ext(path))
	}
}

package postgres

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/furnace-rank/pkg/core/model"
	"github.com/jakechorley/furnace-rank/pkg/tabular"
)

// DefaultTable is the table created by the embedded migrations
const DefaultTable = "furnace_trial"

// importColumns are written alongside the trial fields on import
var importColumns = []string{"id", "import_id", "source", "row_number"}

// tableIdentifier quotes a table name that may be schema qualified
func tableIdentifier(table string) string {
	if table == "" {
		table = DefaultTable
	}
	return pgx.Identifier(strings.Split(table, ".")).Sanitize()
}

func trialFieldKeys() []string {
	keys, err := tabular.FieldKeys(model.Trial{})
	if err != nil {
		// model.Trial is tagged at compile time
		panic(err)
	}
	return keys
}

// selectTrialsSQL reads the trials of the most recent import in source row order.
// Earlier imports stay in the table but are never scored.
func selectTrialsSQL(table string) string {
	keys := trialFieldKeys()
	quoted := make([]string, len(keys))
	for i, key := range keys {
		quoted[i] = pgx.Identifier{key}.Sanitize()
	}

	ident := tableIdentifier(table)
	return fmt.Sprintf(
		"SELECT %s FROM %s WHERE import_id = (SELECT import_id FROM %s ORDER BY imported_at DESC, id DESC LIMIT 1) ORDER BY row_number",
		strings.Join(quoted, ", "),
		ident,
		ident,
	)
}

// nullable stores undefined measurements as NULL
func nullable(v interface{}) interface{} {
	if f, ok := v.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
		return nil
	}
	return v
}

// trialRows builds CopyFrom rows: import columns followed by the trial fields
func trialRows(importID uuid.UUID, source string, trials []model.Trial) [][]interface{} {
	rows := make([][]interface{}, len(trials))
	for i, trial := range trials {
		row := []interface{}{uuid.New(), importID, source, i + 1}
		for _, v := range tabular.Values(trial) {
			row = append(row, nullable(v))
		}
		rows[i] = row
	}
	return rows
}

// TrialSource reads the latest import of trials from PostgreSQL.
// The table's columns are the trial field keys; the header is relabelled with Columns
// so the rows validate the same way as a workbook.
type TrialSource struct {
	DB      *DB
	Table   string
	Columns model.Columns
}

// Name identifies the table
func (s *TrialSource) Name() string {
	table := s.Table
	if table == "" {
		table = DefaultTable
	}
	return "postgres:" + table
}

// ReadTable queries all imported trials
func (s *TrialSource) ReadTable(ctx context.Context) (*tabular.Table, error) {
	rows, err := s.DB.pool.Query(ctx, selectTrialsSQL(s.Table))
	if err != nil {
		return nil, fmt.Errorf("failed to query trials: %w", err)
	}
	defer rows.Close()

	labels := s.Columns.Labels()
	keys := trialFieldKeys()
	header := make([]string, len(keys))
	for i, key := range keys {
		header[i] = labels[key]
		if header[i] == "" {
			header[i] = key
		}
	}

	table := &tabular.Table{Header: header}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("failed to scan trial: %w", err)
		}
		table.Rows = append(table.Rows, values)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trials: %w", err)
	}

	return table, nil
}

// InsertTrials copies the dataset's trials into table under a new import ID
func (db *DB) InsertTrials(ctx context.Context, table string, ds *model.Dataset) (uuid.UUID, error) {
	importID := uuid.New()
	if ds.Len() == 0 {
		return importID, nil
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if table == "" {
		table = DefaultTable
	}
	columns := append(append([]string{}, importColumns...), trialFieldKeys()...)

	copied, err := tx.CopyFrom(
		ctx,
		pgx.Identifier(strings.Split(table, ".")),
		columns,
		pgx.CopyFromRows(trialRows(importID, ds.Source, ds.Trials)),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to copy trials: %w", err)
	}
	if copied != int64(ds.Len()) {
		return uuid.Nil, fmt.Errorf("copied %d of %d trials", copied, ds.Len())
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return importID, nil
}

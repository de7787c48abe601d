package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/furnace-rank/pkg/core/model"
)

// mockTrialStore implements TrialStore
type mockTrialStore struct {
	importID uuid.UUID
	err      error
	table    string
	inserted *model.Dataset
}

func (m *mockTrialStore) InsertTrials(ctx context.Context, table string, ds *model.Dataset) (uuid.UUID, error) {
	if m.err != nil {
		return uuid.Nil, m.err
	}
	m.table = table
	m.inserted = ds
	return m.importID, nil
}

func TestImportTrials(t *testing.T) {
	store := &mockTrialStore{importID: uuid.New()}

	result, err := ImportTrials(context.Background(), twoSteelSource(), model.DefaultColumns(), store, "furnace_trial", zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, store.importID, result.ImportID)
	assert.Equal(t, 4, result.Count)
	assert.Equal(t, "mock", result.Source)
	assert.Equal(t, "furnace_trial", store.table)
	require.NotNil(t, store.inserted)
	assert.Equal(t, "H3", store.inserted.Trials[3].FurnaceID)
}

func TestImportTrials_InvalidSourceWritesNothing(t *testing.T) {
	store := &mockTrialStore{importID: uuid.New()}
	src := &mockSource{records: [][]string{{"RH-Acero"}}}

	_, err := ImportTrials(context.Background(), src, model.DefaultColumns(), store, "furnace_trial", zap.NewNop())
	require.Error(t, err)
	assert.Nil(t, store.inserted)
}

func TestImportTrials_StoreError(t *testing.T) {
	store := &mockTrialStore{err: errors.New("connection refused")}

	_, err := ImportTrials(context.Background(), twoSteelSource(), model.DefaultColumns(), store, "furnace_trial", zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to import mock")
	assert.Contains(t, err.Error(), "connection refused")
}

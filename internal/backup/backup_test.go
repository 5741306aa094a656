package backup_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/ride-ledger/internal/backup"
	applog "github.com/Tiliavir/ride-ledger/internal/log"
	"github.com/Tiliavir/ride-ledger/internal/model"
	"github.com/Tiliavir/ride-ledger/internal/storage"
)

func seeded(t *testing.T) *storage.Repository {
	t.Helper()
	repo := storage.NewRepository(storage.NewMemoryKV(), applog.Discard())
	ctx := context.Background()
	at := time.Date(2026, 2, 27, 9, 0, 0, 0, time.UTC)
	end := at.Add(6 * time.Hour)
	target := decimal.NewFromInt(250)

	require.NoError(t, repo.AddEntry(ctx, &model.Gain{
		EntryBase: model.EntryBase{ID: "g1", Amount: decimal.NewFromInt(180), Date: at},
		Platform:  model.PlatformUber,
	}))
	require.NoError(t, repo.AddShift(ctx, model.Shift{ID: "s1", Start: at, End: &end}))
	require.NoError(t, repo.SetGoals(ctx, model.Goals{Daily: model.Target{Revenue: &target}}))
	return repo
}

func TestExportImportRoundTrip(t *testing.T) {
	src := seeded(t)
	ctx := context.Background()

	var buf bytes.Buffer
	snap, err := backup.Export(ctx, src, &buf)
	require.NoError(t, err)
	assert.Equal(t, backup.Version, snap.Version)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.EqualValues(t, 1, doc["version"])

	dst := storage.NewRepository(storage.NewMemoryKV(), applog.Discard())
	imported, err := backup.Import(ctx, dst, bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Len(t, imported.Entries, 1)

	entries, err := dst.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "g1", entries[0].Base().ID)

	goals, err := dst.Goals(ctx)
	require.NoError(t, err)
	require.NotNil(t, goals.Daily.Revenue)
	assert.True(t, goals.Daily.Revenue.Equal(decimal.NewFromInt(250)))
}

func TestExportEmptyStore(t *testing.T) {
	repo := storage.NewRepository(storage.NewMemoryKV(), applog.Discard())
	var buf bytes.Buffer
	_, err := backup.Export(context.Background(), repo, &buf)
	require.NoError(t, err)
	assert.JSONEq(t, `{"entries":[],"shifts":[],"goals":{"daily":{},"weekly":{},"monthly":{}},"version":1}`, buf.String())
}

func TestImportRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"not json", `{entries:`, "invalid backup"},
		{"not an object", `[]`, "invalid backup"},
		{"missing goals", `{"entries":[],"shifts":[]}`, `missing "goals"`},
		{"shifts object", `{"entries":[],"shifts":{},"goals":{}}`, `"shifts" must be an array`},
		{"entries null", `{"entries":null,"shifts":[],"goals":{}}`, `"entries" must be an array`},
		{"goals array", `{"entries":[],"shifts":[],"goals":[]}`, `"goals" must be an object`},
		{"future version", `{"entries":[],"shifts":[],"goals":{},"version":2}`, "unsupported version"},
		{"bad entry", `{"entries":[{"id":"x","type":"GAIN","amount":-5,"date":"2026-02-27T09:00:00.000Z"}],"shifts":[],"goals":{}}`, "entry x"},
		{"bad shift", `{"entries":[],"shifts":[{"id":"s","start":"noon"}],"goals":{}}`, "shifts"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := seeded(t)
			ctx := context.Background()

			_, err := backup.Import(ctx, repo, strings.NewReader(tt.doc))
			require.ErrorIs(t, err, backup.ErrInvalidSnapshot)
			assert.Contains(t, err.Error(), tt.want)

			entries, err := repo.Entries(ctx)
			require.NoError(t, err)
			assert.Len(t, entries, 1)
			shifts, err := repo.Shifts(ctx)
			require.NoError(t, err)
			assert.Len(t, shifts, 1)
			goals, err := repo.Goals(ctx)
			require.NoError(t, err)
			assert.NotNil(t, goals.Daily.Revenue)
		})
	}
}

func TestParseAcceptsMissingVersion(t *testing.T) {
	snap, err := backup.Parse([]byte(`{"entries":[],"shifts":[],"goals":{"weekly":{"profit":900}}}`))
	require.NoError(t, err)
	require.NotNil(t, snap.Goals.Weekly.Profit)
	assert.True(t, snap.Goals.Weekly.Profit.Equal(decimal.NewFromInt(900)))
}

// goalsFailStore refuses goal writes after the other collections went in.
type goalsFailStore struct {
	*storage.Repository
}

func (goalsFailStore) SetGoals(context.Context, model.Goals) error {
	return errors.New("disk full")
}

func TestImportRestoresOnWriteFailure(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	_, err := backup.Export(ctx, seeded(t), &buf)
	require.NoError(t, err)

	repo := storage.NewRepository(storage.NewMemoryKV(), applog.Discard())
	at := time.Date(2026, 3, 1, 7, 0, 0, 0, time.UTC)
	require.NoError(t, repo.AddEntry(ctx, &model.Expense{
		EntryBase: model.EntryBase{ID: "keep", Amount: decimal.NewFromInt(30), Date: at},
		Category:  model.CategoryFood,
	}))
	end := at.Add(time.Hour)
	require.NoError(t, repo.AddShift(ctx, model.Shift{ID: "keep-shift", Start: at, End: &end}))

	_, err = backup.Import(ctx, goalsFailStore{repo}, bytes.NewReader(buf.Bytes()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	entries, err := repo.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "keep", entries[0].Base().ID)

	shifts, err := repo.Shifts(ctx)
	require.NoError(t, err)
	require.Len(t, shifts, 1)
	assert.Equal(t, "keep-shift", shifts[0].ID)
}

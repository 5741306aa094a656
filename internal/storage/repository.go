package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	applog "github.com/Tiliavir/ride-ledger/internal/log"
	"github.com/Tiliavir/ride-ledger/internal/model"
)

// Keys of the three collections.
const (
	KeyEntries = "entries"
	KeyShifts  = "shifts"
	KeyGoals   = "goals"
)

// ErrRecordNotFound is returned when an id is not present in a collection.
var ErrRecordNotFound = errors.New("record not found")

// Repository is the record store. Every mutation reads the whole
// collection, changes it and writes it back.
type Repository struct {
	kv  KV
	log *applog.Logger
}

func NewRepository(kv KV, logger *applog.Logger) *Repository {
	return &Repository{kv: kv, log: logger.WithComponent(applog.ComponentStorage)}
}

func (r *Repository) load(ctx context.Context, key string, v any) (bool, error) {
	data, err := r.kv.Get(ctx, key)
	if errors.Is(err, ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decoding %s: %w", key, err)
	}
	return true, nil
}

func (r *Repository) save(ctx context.Context, key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("storage error marshalling %s: %w", key, err)
	}
	return r.kv.Set(ctx, key, data)
}

// Entries returns every entry, or an empty slice when none were stored.
func (r *Repository) Entries(ctx context.Context) ([]model.Entry, error) {
	var es model.Entries
	if _, err := r.load(ctx, KeyEntries, &es); err != nil {
		return nil, err
	}
	if es == nil {
		es = model.Entries{}
	}
	return es, nil
}

// SetEntries replaces the entry collection.
func (r *Repository) SetEntries(ctx context.Context, entries []model.Entry) error {
	return r.save(ctx, KeyEntries, model.Entries(entries))
}

// AddEntry appends e.
func (r *Repository) AddEntry(ctx context.Context, e model.Entry) error {
	entries, err := r.Entries(ctx)
	if err != nil {
		return err
	}
	return r.SetEntries(ctx, append(entries, e))
}

// UpdateEntry replaces the entry with the same id.
func (r *Repository) UpdateEntry(ctx context.Context, e model.Entry) error {
	entries, err := r.Entries(ctx)
	if err != nil {
		return err
	}
	for i, cur := range entries {
		if cur.Base().ID == e.Base().ID {
			entries[i] = e
			return r.SetEntries(ctx, entries)
		}
	}
	return fmt.Errorf("entry %s: %w", e.Base().ID, ErrRecordNotFound)
}

// DeleteEntry removes the entry with the given id.
func (r *Repository) DeleteEntry(ctx context.Context, id string) error {
	entries, err := r.Entries(ctx)
	if err != nil {
		return err
	}
	kept := entries[:0]
	for _, e := range entries {
		if e.Base().ID != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(entries) {
		return fmt.Errorf("entry %s: %w", id, ErrRecordNotFound)
	}
	return r.SetEntries(ctx, kept)
}

// Shifts returns every shift, or an empty slice when none were stored.
func (r *Repository) Shifts(ctx context.Context) ([]model.Shift, error) {
	var shifts []model.Shift
	if _, err := r.load(ctx, KeyShifts, &shifts); err != nil {
		return nil, err
	}
	if shifts == nil {
		shifts = []model.Shift{}
	}
	return shifts, nil
}

// SetShifts replaces the shift collection.
func (r *Repository) SetShifts(ctx context.Context, shifts []model.Shift) error {
	if shifts == nil {
		shifts = []model.Shift{}
	}
	return r.save(ctx, KeyShifts, shifts)
}

func (r *Repository) AddShift(ctx context.Context, s model.Shift) error {
	shifts, err := r.Shifts(ctx)
	if err != nil {
		return err
	}
	return r.SetShifts(ctx, append(shifts, s))
}

func (r *Repository) UpdateShift(ctx context.Context, s model.Shift) error {
	shifts, err := r.Shifts(ctx)
	if err != nil {
		return err
	}
	for i := range shifts {
		if shifts[i].ID == s.ID {
			shifts[i] = s
			return r.SetShifts(ctx, shifts)
		}
	}
	return fmt.Errorf("shift %s: %w", s.ID, ErrRecordNotFound)
}

func (r *Repository) DeleteShift(ctx context.Context, id string) error {
	shifts, err := r.Shifts(ctx)
	if err != nil {
		return err
	}
	kept := shifts[:0]
	for _, s := range shifts {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	if len(kept) == len(shifts) {
		return fmt.Errorf("shift %s: %w", id, ErrRecordNotFound)
	}
	return r.SetShifts(ctx, kept)
}

// FindActiveShift returns the most recently added shift without an end.
func (r *Repository) FindActiveShift(ctx context.Context) (*model.Shift, error) {
	shifts, err := r.Shifts(ctx)
	if err != nil {
		return nil, err
	}
	for i := len(shifts) - 1; i >= 0; i-- {
		if shifts[i].Ongoing() {
			return &shifts[i], nil
		}
	}
	return nil, nil
}

// Goals returns the stored goals or the empty default.
func (r *Repository) Goals(ctx context.Context) (model.Goals, error) {
	g := model.DefaultGoals()
	if _, err := r.load(ctx, KeyGoals, &g); err != nil {
		return model.Goals{}, err
	}
	return g, nil
}

// SetGoals replaces the goals as a whole.
func (r *Repository) SetGoals(ctx context.Context, g model.Goals) error {
	return r.save(ctx, KeyGoals, g)
}

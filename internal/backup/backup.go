// Package backup writes and restores a full JSON snapshot of the ledger.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/Tiliavir/ride-ledger/internal/model"
)

// Version is the snapshot format written by Export.
const Version = 1

// ErrInvalidSnapshot wraps every reason an import is refused.
var ErrInvalidSnapshot = errors.New("invalid backup file")

// Store is the part of the record store a snapshot touches.
type Store interface {
	Entries(ctx context.Context) ([]model.Entry, error)
	SetEntries(ctx context.Context, entries []model.Entry) error
	Shifts(ctx context.Context) ([]model.Shift, error)
	SetShifts(ctx context.Context, shifts []model.Shift) error
	Goals(ctx context.Context) (model.Goals, error)
	SetGoals(ctx context.Context, g model.Goals) error
}

// Snapshot is the on-disk backup document.
type Snapshot struct {
	Entries model.Entries `json:"entries"`
	Shifts  []model.Shift `json:"shifts"`
	Goals   model.Goals   `json:"goals"`
	Version int           `json:"version"`
}

// Export writes the current collections as an indented snapshot.
func Export(ctx context.Context, store Store, w io.Writer) (Snapshot, error) {
	entries, err := store.Entries(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("reading entries: %w", err)
	}
	shifts, err := store.Shifts(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("reading shifts: %w", err)
	}
	goals, err := store.Goals(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("reading goals: %w", err)
	}
	if shifts == nil {
		shifts = []model.Shift{}
	}

	snap := Snapshot{Entries: entries, Shifts: shifts, Goals: goals, Version: Version}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return Snapshot{}, fmt.Errorf("encoding snapshot: %w", err)
	}
	return snap, nil
}

// Parse validates and decodes a snapshot. The three collections must be
// present with the right container types before anything is decoded.
func Parse(data []byte) (Snapshot, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}

	for _, check := range []struct {
		key  string
		open byte
		kind string
	}{
		{"entries", '[', "an array"},
		{"shifts", '[', "an array"},
		{"goals", '{', "an object"},
	} {
		v, ok := raw[check.key]
		if !ok {
			return Snapshot{}, fmt.Errorf("%w: missing %q", ErrInvalidSnapshot, check.key)
		}
		v = bytes.TrimSpace(v)
		if len(v) == 0 || v[0] != check.open {
			return Snapshot{}, fmt.Errorf("%w: %q must be %s", ErrInvalidSnapshot, check.key, check.kind)
		}
	}

	var snap Snapshot
	if v, ok := raw["version"]; ok {
		if err := json.Unmarshal(v, &snap.Version); err != nil {
			return Snapshot{}, fmt.Errorf("%w: version: %v", ErrInvalidSnapshot, err)
		}
		if snap.Version > Version {
			return Snapshot{}, fmt.Errorf("%w: unsupported version %d", ErrInvalidSnapshot, snap.Version)
		}
	}
	if err := json.Unmarshal(raw["entries"], &snap.Entries); err != nil {
		return Snapshot{}, fmt.Errorf("%w: entries: %v", ErrInvalidSnapshot, err)
	}
	if err := json.Unmarshal(raw["shifts"], &snap.Shifts); err != nil {
		return Snapshot{}, fmt.Errorf("%w: shifts: %v", ErrInvalidSnapshot, err)
	}
	if err := json.Unmarshal(raw["goals"], &snap.Goals); err != nil {
		return Snapshot{}, fmt.Errorf("%w: goals: %v", ErrInvalidSnapshot, err)
	}
	for _, e := range snap.Entries {
		if err := e.Validate(); err != nil {
			return Snapshot{}, fmt.Errorf("%w: entry %s: %v", ErrInvalidSnapshot, e.Base().ID, err)
		}
	}
	return snap, nil
}

// Import replaces all three collections with the snapshot in r. Nothing is
// written unless the whole document parses. When a later write fails the
// collections already written are put back.
func Import(ctx context.Context, store Store, r io.Reader) (Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Snapshot{}, fmt.Errorf("reading backup: %w", err)
	}
	snap, err := Parse(data)
	if err != nil {
		return Snapshot{}, err
	}

	prevEntries, err := store.Entries(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("reading entries: %w", err)
	}
	prevShifts, err := store.Shifts(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("reading shifts: %w", err)
	}

	if err := store.SetEntries(ctx, snap.Entries); err != nil {
		return Snapshot{}, fmt.Errorf("writing entries: %w", err)
	}
	if err := store.SetShifts(ctx, snap.Shifts); err != nil {
		return Snapshot{}, errors.Join(fmt.Errorf("writing shifts: %w", err),
			restore(store.SetEntries(ctx, prevEntries)))
	}
	if err := store.SetGoals(ctx, snap.Goals); err != nil {
		return Snapshot{}, errors.Join(fmt.Errorf("writing goals: %w", err),
			restore(store.SetEntries(ctx, prevEntries)),
			restore(store.SetShifts(ctx, prevShifts)))
	}
	return snap, nil
}

func restore(err error) error {
	if err != nil {
		return fmt.Errorf("restoring previous data: %w", err)
	}
	return nil
}

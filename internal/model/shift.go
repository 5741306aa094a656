package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Tiliavir/ride-ledger/internal/timecalc"
)

// Shift is a working session. End is nil while the shift is ongoing.
type Shift struct {
	ID     string
	Start  time.Time
	End    *time.Time
	Pauses []Pause
}

// Pause is a break inside a shift. End is nil while the pause is open.
type Pause struct {
	Start time.Time
	End   *time.Time
}

// Ongoing reports whether the shift has not been closed yet.
func (s *Shift) Ongoing() bool { return s.End == nil }

// OpenPause returns the pause that has no end, if any.
func (s *Shift) OpenPause() *Pause {
	for i := range s.Pauses {
		if s.Pauses[i].End == nil {
			return &s.Pauses[i]
		}
	}
	return nil
}

// PauseDuration sums all closed pauses with a positive length.
func (s *Shift) PauseDuration() time.Duration {
	var total time.Duration
	for _, p := range s.Pauses {
		if p.End == nil || !p.End.After(p.Start) {
			continue
		}
		total += p.End.Sub(p.Start)
	}
	return total
}

// Duration is the elapsed time of a closed shift. When withPauses is set the
// pauses are taken into account and subtracted. Open or inverted shifts
// yield zero.
func (s *Shift) Duration(withPauses bool) time.Duration {
	if s.End == nil || !s.End.After(s.Start) {
		return 0
	}
	d := s.End.Sub(s.Start)
	if withPauses {
		d -= s.PauseDuration()
	}
	if d < 0 {
		return 0
	}
	return d
}

// NetDuration is the worked time excluding pauses.
func (s *Shift) NetDuration() time.Duration { return s.Duration(true) }

// AdjustRollover fixes clock times that crossed midnight. All times are
// expected on the shift's start date: an end at or before the start moves to
// the next day, as does a pause starting before the shift or a pause ending
// before it started.
func (s *Shift) AdjustRollover() {
	if s.End != nil && !s.End.After(s.Start) {
		end := s.End.AddDate(0, 0, 1)
		s.End = &end
	}
	for i := range s.Pauses {
		p := &s.Pauses[i]
		if p.Start.Before(s.Start) {
			p.Start = p.Start.AddDate(0, 0, 1)
		}
		if p.End != nil && p.End.Before(p.Start) {
			end := p.End.AddDate(0, 0, 1)
			p.End = &end
		}
	}
}

type shiftJSON struct {
	ID     string      `json:"id"`
	Start  string      `json:"start"`
	End    *string     `json:"end,omitempty"`
	Pauses []pauseJSON `json:"pauses"`
}

type pauseJSON struct {
	Start string  `json:"start"`
	End   *string `json:"end,omitempty"`
}

func (s Shift) MarshalJSON() ([]byte, error) {
	w := shiftJSON{
		ID:     s.ID,
		Start:  s.Start.UTC().Format(timecalc.NaiveLayout),
		End:    formatOptional(s.End),
		Pauses: make([]pauseJSON, 0, len(s.Pauses)),
	}
	for _, p := range s.Pauses {
		w.Pauses = append(w.Pauses, pauseJSON{
			Start: p.Start.UTC().Format(timecalc.NaiveLayout),
			End:   formatOptional(p.End),
		})
	}
	return json.Marshal(w)
}

func (s *Shift) UnmarshalJSON(data []byte) error {
	var w shiftJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	start, err := timecalc.ParseNaiveUTC(w.Start)
	if err != nil {
		return fmt.Errorf("shift %s start: %w", w.ID, err)
	}
	end, err := parseOptional(w.End)
	if err != nil {
		return fmt.Errorf("shift %s end: %w", w.ID, err)
	}
	out := Shift{ID: w.ID, Start: start, End: end, Pauses: make([]Pause, 0, len(w.Pauses))}
	for i, p := range w.Pauses {
		ps, err := timecalc.ParseNaiveUTC(p.Start)
		if err != nil {
			return fmt.Errorf("shift %s pause %d: %w", w.ID, i, err)
		}
		pe, err := parseOptional(p.End)
		if err != nil {
			return fmt.Errorf("shift %s pause %d: %w", w.ID, i, err)
		}
		out.Pauses = append(out.Pauses, Pause{Start: ps, End: pe})
	}
	*s = out
	return nil
}

func formatOptional(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(timecalc.NaiveLayout)
	return &s
}

func parseOptional(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := timecalc.ParseNaiveUTC(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

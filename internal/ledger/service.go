// Package ledger implements the user-facing operations on the record store.
package ledger

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Tiliavir/ride-ledger/internal/goal"
	applog "github.com/Tiliavir/ride-ledger/internal/log"
	"github.com/Tiliavir/ride-ledger/internal/model"
	"github.com/Tiliavir/ride-ledger/internal/period"
	"github.com/Tiliavir/ride-ledger/internal/stats"
	"github.com/Tiliavir/ride-ledger/internal/timecalc"
)

// Store is the record store the service works on.
type Store interface {
	Entries(ctx context.Context) ([]model.Entry, error)
	AddEntry(ctx context.Context, e model.Entry) error
	UpdateEntry(ctx context.Context, e model.Entry) error
	DeleteEntry(ctx context.Context, id string) error

	Shifts(ctx context.Context) ([]model.Shift, error)
	AddShift(ctx context.Context, s model.Shift) error
	UpdateShift(ctx context.Context, s model.Shift) error
	DeleteShift(ctx context.Context, id string) error
	FindActiveShift(ctx context.Context) (*model.Shift, error)

	Goals(ctx context.Context) (model.Goals, error)
	SetGoals(ctx context.Context, g model.Goals) error
}

// Service validates input and applies it to the store.
type Service struct {
	store Store
	clock timecalc.Clock
	log   *applog.Logger
}

func NewService(store Store, clock timecalc.Clock, logger *applog.Logger) *Service {
	return &Service{store: store, clock: clock, log: logger.WithComponent(applog.ComponentLedger)}
}

func (s *Service) now() time.Time {
	return timecalc.ToNaiveUTC(s.clock.Now())
}

func (s *Service) stamp(t time.Time) time.Time {
	if t.IsZero() {
		return s.now()
	}
	return timecalc.ToNaiveUTC(t)
}

// AddGain records a gain.
func (s *Service) AddGain(ctx context.Context, in GainInput) (*model.Gain, error) {
	amount, err := ParseAmount(in.Amount)
	if err != nil {
		return nil, NewUserError("Could not save gain", err)
	}
	date := s.stamp(in.Date)
	g := &model.Gain{
		EntryBase: model.EntryBase{
			ID:          timecalc.GenerateID(date),
			Amount:      amount,
			Date:        date,
			Description: in.Description,
		},
		Platform:  in.Platform,
		TripCount: in.TripCount,
		IsReward:  in.IsReward,
	}
	if err := g.Validate(); err != nil {
		return nil, NewUserError("Could not save gain", err)
	}
	if err := s.store.AddEntry(ctx, g); err != nil {
		return nil, err
	}
	s.log.Info("gain recorded", applog.FieldOperation, applog.OpCreate, applog.FieldID, g.ID, applog.FieldAmount, g.Amount.String())
	return g, nil
}

// AddExpense records a non-fuel expense.
func (s *Service) AddExpense(ctx context.Context, in ExpenseInput) (*model.Expense, error) {
	amount, err := ParseAmount(in.Amount)
	if err != nil {
		return nil, NewUserError("Could not save expense", err)
	}
	if in.Category == model.CategoryFuel {
		return nil, NewUserError("Fuel expenses need fuel details", ErrIncompleteFuel)
	}
	date := s.stamp(in.Date)
	x := &model.Expense{
		EntryBase: model.EntryBase{
			ID:          timecalc.GenerateID(date),
			Amount:      amount,
			Date:        date,
			Description: in.Description,
		},
		Category: in.Category,
	}
	if err := x.Validate(); err != nil {
		return nil, NewUserError("Could not save expense", err)
	}
	if err := s.store.AddEntry(ctx, x); err != nil {
		return nil, err
	}
	s.log.Info("expense recorded", applog.FieldOperation, applog.OpCreate, applog.FieldID, x.ID, applog.FieldAmount, x.Amount.String(), applog.FieldType, string(x.Category))
	return x, nil
}

// AddFuel records a fuel expense whose amount is derived from the figures.
func (s *Service) AddFuel(ctx context.Context, in FuelInput) (*model.Expense, error) {
	price, ok1 := positive(in.PricePerLiter)
	consumption, ok2 := positive(in.AvgConsumption)
	distance, ok3 := positive(in.DistanceDriven)
	if !ok1 || !ok2 || !ok3 {
		return nil, NewUserError("Could not save fuel expense", ErrIncompleteFuel)
	}
	fuel := &model.FuelDetails{
		FuelType:       in.FuelType,
		PricePerLiter:  price,
		AvgConsumption: consumption,
		DistanceDriven: distance,
	}
	date := s.stamp(in.Date)
	x := &model.Expense{
		EntryBase: model.EntryBase{
			ID:          timecalc.GenerateID(date),
			Amount:      fuel.Cost(),
			Date:        date,
			Description: in.Description,
		},
		Category: model.CategoryFuel,
		Fuel:     fuel,
	}
	if err := x.Validate(); err != nil {
		return nil, NewUserError("Could not save fuel expense", err)
	}
	if err := s.store.AddEntry(ctx, x); err != nil {
		return nil, err
	}
	s.log.Info("fuel recorded", applog.FieldOperation, applog.OpCreate, applog.FieldID, x.ID, applog.FieldAmount, x.Amount.String())
	return x, nil
}

// UpdateEntry replaces an entry. Fuel amounts are recomputed.
func (s *Service) UpdateEntry(ctx context.Context, e model.Entry) error {
	if x, ok := e.(*model.Expense); ok && x.Fuel != nil {
		x.Amount = x.Fuel.Cost()
	}
	if err := e.Validate(); err != nil {
		return NewUserError("Could not update entry", err)
	}
	if err := s.store.UpdateEntry(ctx, e); err != nil {
		if errors.Is(err, ErrNotFound) {
			return NewUserError("Could not update entry", err)
		}
		return err
	}
	s.log.Info("entry updated", applog.FieldOperation, applog.OpUpdate, applog.FieldID, e.Base().ID)
	return nil
}

// AddShift records a completed shift from date and clock-time input.
func (s *Service) AddShift(ctx context.Context, in ShiftInput) (model.Shift, error) {
	shift, err := in.build()
	if err != nil {
		return model.Shift{}, NewUserError("Could not save shift", err)
	}
	shift.ID = timecalc.GenerateID(shift.Start)
	if err := s.store.AddShift(ctx, shift); err != nil {
		return model.Shift{}, err
	}
	s.log.Info("shift recorded", applog.FieldOperation, applog.OpCreate, applog.FieldID, shift.ID)
	return shift, nil
}

// UpdateShift replaces a shift by id.
func (s *Service) UpdateShift(ctx context.Context, shift model.Shift) error {
	if shift.Start.IsZero() || (shift.End != nil && shift.End.Before(shift.Start)) {
		return NewUserError("Could not update shift", ErrIncompleteShift)
	}
	if err := s.store.UpdateShift(ctx, shift); err != nil {
		if errors.Is(err, ErrNotFound) {
			return NewUserError("Could not update shift", err)
		}
		return err
	}
	s.log.Info("shift updated", applog.FieldOperation, applog.OpUpdate, applog.FieldID, shift.ID)
	return nil
}

// StartShift opens a live shift now. Only one can run at a time.
func (s *Service) StartShift(ctx context.Context) (model.Shift, error) {
	active, err := s.store.FindActiveShift(ctx)
	if err != nil {
		return model.Shift{}, err
	}
	if active != nil {
		return model.Shift{}, NewUserError("Cannot start shift", ErrShiftActive)
	}
	now := s.now()
	shift := model.Shift{ID: timecalc.GenerateID(now), Start: now, Pauses: []model.Pause{}}
	if err := s.store.AddShift(ctx, shift); err != nil {
		return model.Shift{}, err
	}
	s.log.Info("shift started", applog.FieldOperation, applog.OpCreate, applog.FieldID, shift.ID)
	return shift, nil
}

// PauseShift opens a pause on the running shift.
func (s *Service) PauseShift(ctx context.Context) (model.Shift, error) {
	shift, err := s.activeShift(ctx, "Cannot pause shift")
	if err != nil {
		return model.Shift{}, err
	}
	if shift.OpenPause() != nil {
		return model.Shift{}, NewUserError("Cannot pause shift", ErrAlreadyPaused)
	}
	shift.Pauses = append(shift.Pauses, model.Pause{Start: s.now()})
	return shift, s.save(ctx, shift, "shift paused")
}

// ResumeShift closes the open pause of the running shift.
func (s *Service) ResumeShift(ctx context.Context) (model.Shift, error) {
	shift, err := s.activeShift(ctx, "Cannot resume shift")
	if err != nil {
		return model.Shift{}, err
	}
	p := shift.OpenPause()
	if p == nil {
		return model.Shift{}, NewUserError("Cannot resume shift", ErrNotPaused)
	}
	now := s.now()
	p.End = &now
	return shift, s.save(ctx, shift, "shift resumed")
}

// StopShift ends the running shift, closing any open pause.
func (s *Service) StopShift(ctx context.Context) (model.Shift, error) {
	shift, err := s.activeShift(ctx, "Cannot stop shift")
	if err != nil {
		return model.Shift{}, err
	}
	now := s.now()
	if p := shift.OpenPause(); p != nil {
		p.End = &now
	}
	shift.End = &now
	return shift, s.save(ctx, shift, "shift stopped")
}

// ActiveShift returns the running shift or nil.
func (s *Service) ActiveShift(ctx context.Context) (*model.Shift, error) {
	return s.store.FindActiveShift(ctx)
}

func (s *Service) activeShift(ctx context.Context, msg string) (model.Shift, error) {
	active, err := s.store.FindActiveShift(ctx)
	if err != nil {
		return model.Shift{}, err
	}
	if active == nil {
		return model.Shift{}, NewUserError(msg, ErrNoActiveShift)
	}
	return *active, nil
}

func (s *Service) save(ctx context.Context, shift model.Shift, msg string) error {
	if err := s.store.UpdateShift(ctx, shift); err != nil {
		return err
	}
	s.log.Info(msg, applog.FieldOperation, applog.OpUpdate, applog.FieldID, shift.ID)
	return nil
}

// Delete removes the entry or shift with the given id.
func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.store.DeleteEntry(ctx, id)
	if errors.Is(err, ErrNotFound) {
		err = s.store.DeleteShift(ctx, id)
	}
	if errors.Is(err, ErrNotFound) {
		return NewUserError("Nothing to delete", err)
	}
	if err != nil {
		return err
	}
	s.log.Info("record deleted", applog.FieldOperation, applog.OpDelete, applog.FieldID, id)
	return nil
}

// Goals returns the stored goals.
func (s *Service) Goals(ctx context.Context) (model.Goals, error) {
	return s.store.Goals(ctx)
}

// SetGoals replaces all goals. Targets must be positive when set.
func (s *Service) SetGoals(ctx context.Context, g model.Goals) error {
	for _, t := range []model.Target{g.Daily, g.Weekly, g.Monthly} {
		for _, v := range []*decimal.Decimal{t.Profit, t.Revenue} {
			if v != nil && !v.IsPositive() {
				return NewUserError("Could not save goals", ErrInvalidAmount)
			}
		}
	}
	if err := s.store.SetGoals(ctx, g); err != nil {
		return err
	}
	s.log.Info("goals updated", applog.FieldOperation, applog.OpUpdate)
	return nil
}

// Dashboard is everything derived for one filter.
type Dashboard struct {
	Filter   model.Filter
	Range    period.Range
	Entries  []model.Entry
	Shifts   []model.Shift
	Summary  stats.Summary
	Goals    *goal.Evaluation
	Insights stats.Insights
}

// Dashboard resolves the filter against the clock and aggregates the
// matching records. Entries and shifts keep store order.
func (s *Service) Dashboard(ctx context.Context, f model.Filter) (Dashboard, error) {
	entries, err := s.store.Entries(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	shifts, err := s.store.Shifts(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	goals, err := s.store.Goals(ctx)
	if err != nil {
		return Dashboard{}, err
	}

	r := period.Resolve(f, s.clock)
	d := Dashboard{
		Filter:  f,
		Range:   r,
		Entries: stats.FilterEntries(entries, r),
		Shifts:  stats.FilterShifts(shifts, r),
	}
	d.Summary = stats.Summarize(d.Entries, d.Shifts)
	d.Goals = goal.Evaluate(f, r, goals, d.Summary)
	d.Insights = stats.ComputeInsights(d.Entries)
	s.log.Debug("dashboard computed", applog.FieldOperation, applog.OpRead, applog.FieldPeriod, string(f.Period), applog.FieldCount, len(d.Entries)+len(d.Shifts))
	return d, nil
}

// SortedEntries returns a newest-first copy of the dashboard entries.
func (d Dashboard) SortedEntries() []model.Entry {
	out := append([]model.Entry(nil), d.Entries...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Base().Date.After(out[j].Base().Date) })
	return out
}

// SortedShifts returns a newest-first copy of the dashboard shifts.
func (d Dashboard) SortedShifts() []model.Shift {
	out := append([]model.Shift(nil), d.Shifts...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start.After(out[j].Start) })
	return out
}

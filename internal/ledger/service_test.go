package ledger_test

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

	"github.com/Tiliavir/ride-ledger/internal/ledger"
	applog "github.com/Tiliavir/ride-ledger/internal/log"
	"github.com/Tiliavir/ride-ledger/internal/model"
	"github.com/Tiliavir/ride-ledger/internal/storage"
	"github.com/Tiliavir/ride-ledger/internal/timecalc"
)

// movableClock lets a test advance time between calls.
type movableClock struct{ t time.Time }

func (c *movableClock) Now() time.Time { return c.t }

func newService(t *testing.T, now time.Time) (*ledger.Service, *storage.Repository, *movableClock) {
	t.Helper()
	repo := storage.NewRepository(storage.NewMemoryKV(), applog.Discard())
	clock := &movableClock{t: now}
	return ledger.NewService(repo, clock, applog.Discard()), repo, clock
}

var brt = time.FixedZone("BRT", -3*3600)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"12", "12"},
		{"12.5", "12.5"},
		{"12,50", "12.5"},
		{"1.234,56", "1234.56"},
		{" R$ 80,00 ", "80"},
	}
	for _, tt := range tests {
		got, err := ledger.ParseAmount(tt.in)
		require.NoError(t, err, tt.in)
		assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "%s => %s", tt.in, got)
	}

	_, err := ledger.ParseAmount("abc")
	assert.ErrorIs(t, err, ledger.ErrInvalidAmount)
}

func TestAddGainStoresNaiveWallClock(t *testing.T) {
	svc, repo, _ := newService(t, time.Date(2026, 2, 27, 22, 45, 0, 0, brt))
	ctx := context.Background()
	trips := 3

	g, err := svc.AddGain(ctx, ledger.GainInput{Amount: "95,40", Platform: model.PlatformUber, TripCount: &trips})
	require.NoError(t, err)
	assert.Equal(t, "2026-02-27T22:45:00.000Z", g.Date.Format(timecalc.NaiveLayout))
	assert.Equal(t, "20260227-224500", g.ID[:15])

	entries, err := repo.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Base().Amount.Equal(decimal.RequireFromString("95.4")))
}

func TestAddGainRejectsInvalidAmount(t *testing.T) {
	svc, repo, _ := newService(t, time.Date(2026, 2, 27, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	for _, amount := range []string{"0", "-10", "", "ten"} {
		_, err := svc.AddGain(ctx, ledger.GainInput{Amount: amount})
		require.Error(t, err, amount)
		assert.ErrorIs(t, err, ledger.ErrInvalidAmount, amount)

		var uerr *ledger.UserError
		assert.True(t, errors.As(err, &uerr))
	}
	entries, err := repo.Entries(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAddGainRewardWithTrips(t *testing.T) {
	svc, _, _ := newService(t, time.Date(2026, 2, 27, 9, 0, 0, 0, time.UTC))
	trips := 2
	_, err := svc.AddGain(context.Background(), ledger.GainInput{Amount: "10", IsReward: true, TripCount: &trips})
	assert.ErrorIs(t, err, model.ErrRewardWithTrips)
}

func TestAddExpense(t *testing.T) {
	svc, _, _ := newService(t, time.Date(2026, 2, 27, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	x, err := svc.AddExpense(ctx, ledger.ExpenseInput{Amount: "35", Category: model.CategoryWashing})
	require.NoError(t, err)
	assert.Equal(t, model.CategoryWashing, x.Category)

	_, err = svc.AddExpense(ctx, ledger.ExpenseInput{Amount: "35", Category: model.CategoryFuel})
	assert.ErrorIs(t, err, ledger.ErrIncompleteFuel)

	_, err = svc.AddExpense(ctx, ledger.ExpenseInput{Amount: "35", Category: "CAR_WASH"})
	assert.ErrorIs(t, err, model.ErrInvalidCategory)
}

func TestAddFuel(t *testing.T) {
	svc, repo, _ := newService(t, time.Date(2026, 2, 27, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	x, err := svc.AddFuel(ctx, ledger.FuelInput{
		FuelType: model.FuelGasoline, PricePerLiter: "5", AvgConsumption: "10", DistanceDriven: "300",
	})
	require.NoError(t, err)
	assert.Equal(t, "150.00", x.Amount.StringFixed(2))

	for _, in := range []ledger.FuelInput{
		{FuelType: model.FuelGasoline, PricePerLiter: "5", AvgConsumption: "10"},
		{FuelType: model.FuelGasoline, PricePerLiter: "0", AvgConsumption: "10", DistanceDriven: "1"},
		{FuelType: model.FuelGasoline, PricePerLiter: "x", AvgConsumption: "10", DistanceDriven: "1"},
	} {
		_, err := svc.AddFuel(ctx, in)
		assert.ErrorIs(t, err, ledger.ErrIncompleteFuel)
	}

	entries, err := repo.Entries(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestAddShiftWithRollover(t *testing.T) {
	svc, _, _ := newService(t, time.Date(2026, 2, 28, 9, 0, 0, 0, time.UTC))
	shift, err := svc.AddShift(context.Background(), ledger.ShiftInput{
		Date:  "2026-02-27",
		Start: "20:00",
		End:   "03:30",
		Pauses: []ledger.PauseInput{
			{Start: "23:50", End: "00:20"},
			{},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 28, 3, 30, 0, 0, time.UTC), *shift.End)
	require.Len(t, shift.Pauses, 1)
	assert.Equal(t, 30*time.Minute, shift.PauseDuration())
	assert.Equal(t, 7*time.Hour, shift.NetDuration())
}

func TestAddShiftIncomplete(t *testing.T) {
	svc, repo, _ := newService(t, time.Date(2026, 2, 28, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()
	for _, in := range []ledger.ShiftInput{
		{Start: "08:00", End: "12:00"},
		{Date: "2026-02-27", End: "12:00"},
		{Date: "2026-02-27", Start: "08:00"},
		{Date: "27/02/2026", Start: "08:00", End: "12:00"},
		{Date: "2026-02-27", Start: "8h", End: "12:00"},
		{Date: "2026-02-27", Start: "08:00", End: "12:00", Pauses: []ledger.PauseInput{{Start: "10:00"}}},
	} {
		_, err := svc.AddShift(ctx, in)
		assert.ErrorIs(t, err, ledger.ErrIncompleteShift, "%+v", in)
	}
	shifts, err := repo.Shifts(ctx)
	require.NoError(t, err)
	assert.Empty(t, shifts)
}

func TestLiveShift(t *testing.T) {
	svc, _, clock := newService(t, time.Date(2026, 2, 27, 7, 0, 0, 0, brt))
	ctx := context.Background()

	_, err := svc.StopShift(ctx)
	assert.ErrorIs(t, err, ledger.ErrNoActiveShift)

	started, err := svc.StartShift(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, started.Start.Hour())

	_, err = svc.StartShift(ctx)
	assert.ErrorIs(t, err, ledger.ErrShiftActive)

	_, err = svc.ResumeShift(ctx)
	assert.ErrorIs(t, err, ledger.ErrNotPaused)

	clock.t = clock.t.Add(3 * time.Hour)
	_, err = svc.PauseShift(ctx)
	require.NoError(t, err)
	_, err = svc.PauseShift(ctx)
	assert.ErrorIs(t, err, ledger.ErrAlreadyPaused)

	clock.t = clock.t.Add(45 * time.Minute)
	_, err = svc.ResumeShift(ctx)
	require.NoError(t, err)

	clock.t = clock.t.Add(2 * time.Hour)
	_, err = svc.PauseShift(ctx)
	require.NoError(t, err)

	clock.t = clock.t.Add(15 * time.Minute)
	stopped, err := svc.StopShift(ctx)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, stopped.PauseDuration())
	assert.Equal(t, 5*time.Hour, stopped.NetDuration())

	active, err := svc.ActiveShift(ctx)
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestDeleteEntryOrShift(t *testing.T) {
	svc, repo, _ := newService(t, time.Date(2026, 2, 27, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	g, err := svc.AddGain(ctx, ledger.GainInput{Amount: "10"})
	require.NoError(t, err)
	s, err := svc.AddShift(ctx, ledger.ShiftInput{Date: "2026-02-27", Start: "08:00", End: "09:00"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, s.ID))
	require.NoError(t, svc.Delete(ctx, g.ID))
	assert.ErrorIs(t, svc.Delete(ctx, g.ID), ledger.ErrNotFound)

	entries, err := repo.Entries(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUpdateEntryRecomputesFuel(t *testing.T) {
	svc, repo, _ := newService(t, time.Date(2026, 2, 27, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	x, err := svc.AddFuel(ctx, ledger.FuelInput{
		FuelType: model.FuelEthanol, PricePerLiter: "4", AvgConsumption: "8", DistanceDriven: "80",
	})
	require.NoError(t, err)

	x.Fuel.DistanceDriven = decimal.NewFromInt(160)
	require.NoError(t, svc.UpdateEntry(ctx, x))

	entries, err := repo.Entries(ctx)
	require.NoError(t, err)
	assert.Equal(t, "80.00", entries[0].Base().Amount.StringFixed(2))

	missing := &model.Gain{EntryBase: model.EntryBase{ID: "ghost", Amount: decimal.NewFromInt(1), Date: x.Date}}
	assert.ErrorIs(t, svc.UpdateEntry(ctx, missing), ledger.ErrNotFound)
}

func TestSetGoalsRejectsNonPositive(t *testing.T) {
	svc, _, _ := newService(t, time.Date(2026, 2, 27, 9, 0, 0, 0, time.UTC))
	zero := decimal.Zero
	err := svc.SetGoals(context.Background(), model.Goals{Monthly: model.Target{Revenue: &zero}})
	assert.ErrorIs(t, err, ledger.ErrInvalidAmount)
}

func TestDashboard(t *testing.T) {
	svc, _, _ := newService(t, time.Date(2026, 2, 27, 20, 0, 0, 0, brt))
	ctx := context.Background()

	_, err := svc.AddGain(ctx, ledger.GainInput{Amount: "100", Date: time.Date(2026, 2, 27, 9, 0, 0, 0, brt)})
	require.NoError(t, err)
	_, err = svc.AddExpense(ctx, ledger.ExpenseInput{Amount: "40", Category: model.CategoryFood, Date: time.Date(2026, 2, 27, 12, 0, 0, 0, brt)})
	require.NoError(t, err)
	_, err = svc.AddGain(ctx, ledger.GainInput{Amount: "999", Date: time.Date(2026, 2, 26, 9, 0, 0, 0, brt)})
	require.NoError(t, err)
	_, err = svc.AddShift(ctx, ledger.ShiftInput{Date: "2026-02-27", Start: "08:00", End: "12:00"})
	require.NoError(t, err)

	target := decimal.NewFromInt(120)
	require.NoError(t, svc.SetGoals(ctx, model.Goals{Daily: model.Target{Profit: &target}}))

	d, err := svc.Dashboard(ctx, model.Filter{Period: model.PeriodToday})
	require.NoError(t, err)
	assert.Len(t, d.Entries, 2)
	assert.Len(t, d.Shifts, 1)
	assert.True(t, d.Summary.Profit.Equal(decimal.NewFromInt(60)))
	assert.Equal(t, "15.00", d.Summary.PerHour.Profit.StringFixed(2))
	require.NotNil(t, d.Goals)
	require.NotNil(t, d.Goals.Profit)
	assert.Equal(t, int64(50), d.Goals.Profit.Percent)
	require.NotNil(t, d.Insights.BestWeekday)
	assert.Equal(t, time.Friday, d.Insights.BestWeekday.Weekday)

	sorted := d.SortedEntries()
	assert.True(t, sorted[0].Base().Date.After(sorted[1].Base().Date))

	all, err := svc.Dashboard(ctx, model.Filter{Period: model.PeriodAll})
	require.NoError(t, err)
	assert.Len(t, all.Entries, 3)
	assert.Nil(t, all.Goals)
}

func TestMutationsAreLoggedWithOperation(t *testing.T) {
	var buf bytes.Buffer
	logger, err := applog.Setup(applog.Config{Level: "info", Format: "json"}, &buf)
	require.NoError(t, err)

	repo := storage.NewRepository(storage.NewMemoryKV(), applog.Discard())
	svc := ledger.NewService(repo, &movableClock{t: time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)}, logger)
	ctx := context.Background()

	g, err := svc.AddGain(ctx, ledger.GainInput{Amount: "80"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, g.ID))

	var ops []string
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		assert.Equal(t, applog.ComponentLedger, rec[applog.FieldComponent])
		assert.Equal(t, g.ID, rec[applog.FieldID])
		ops = append(ops, rec[applog.FieldOperation].(string))
	}
	assert.Equal(t, []string{applog.OpCreate, applog.OpDelete}, ops)
}

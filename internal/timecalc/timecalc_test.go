package timecalc_test

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/ride-ledger/internal/timecalc"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0s"},
		{45 * time.Second, "45s"},
		{time.Minute, "1m"},
		{90 * time.Second, "1m"},
		{time.Hour, "1h 0m"},
		{time.Hour + time.Minute + time.Second, "1h 1m"},
		{90 * time.Minute, "1h 30m"},
		{-time.Hour, "0s"},
	}
	for _, tt := range tests {
		got := timecalc.FormatDuration(tt.d)
		if got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatDurationHHMMSS(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00:00"},
		{61 * time.Second, "00:01:01"},
		{3661 * time.Second, "01:01:01"},
		{3661*time.Second + 900*time.Millisecond, "01:01:01"},
		{-5 * time.Second, "00:00:00"},
		{30 * time.Hour, "30:00:00"},
	}
	for _, tt := range tests {
		got := timecalc.FormatDurationHHMMSS(tt.d)
		if got != tt.want {
			t.Errorf("FormatDurationHHMMSS(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatDurationHM(t *testing.T) {
	assert.Equal(t, "08h05", timecalc.FormatDurationHM(8*time.Hour+5*time.Minute+59*time.Second))
	assert.Equal(t, "00h00", timecalc.FormatDurationHM(-time.Minute))
	assert.Equal(t, "125h00", timecalc.FormatDurationHM(125*time.Hour))
}

func TestWeekRange(t *testing.T) {
	// 2026-02-27 is a Friday (week 9).
	fri := time.Date(2026, 2, 27, 10, 0, 0, 0, time.UTC)
	monday, sunday := timecalc.WeekRange(fri)

	wantMonday := time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC)
	wantSunday := time.Date(2026, 3, 1, 23, 59, 59, int(999*time.Millisecond), time.UTC)

	if !monday.Equal(wantMonday) {
		t.Errorf("WeekRange monday = %v, want %v", monday, wantMonday)
	}
	if !sunday.Equal(wantSunday) {
		t.Errorf("WeekRange sunday = %v, want %v", sunday, wantSunday)
	}
}

func TestWeekRangeOnSunday(t *testing.T) {
	sun := time.Date(2026, 3, 1, 23, 0, 0, 0, time.UTC)
	monday, _ := timecalc.WeekRange(sun)
	assert.Equal(t, time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC), monday)
}

func TestMonthRange(t *testing.T) {
	first, last := timecalc.MonthRange(time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), first)
	assert.Equal(t, time.Date(2024, 2, 29, 23, 59, 59, int(999*time.Millisecond), time.UTC), last)
}

func TestISOWeekLabel(t *testing.T) {
	fri := time.Date(2026, 2, 27, 10, 0, 0, 0, time.UTC)
	got := timecalc.ISOWeekLabel(fri)
	if got != "2026-W09" {
		t.Errorf("ISOWeekLabel = %q, want %q", got, "2026-W09")
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2026, 2, 27, 10, 0, 0, 0, time.UTC)
	b := time.Date(2026, 2, 27, 23, 59, 59, 0, time.UTC)
	c := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)

	if !timecalc.SameDay(a, b) {
		t.Error("SameDay: expected same day for a and b")
	}
	if timecalc.SameDay(a, c) {
		t.Error("SameDay: expected different day for a and c")
	}
}

func TestGenerateID(t *testing.T) {
	ts := time.Date(2026, 2, 27, 8, 32, 10, 0, time.UTC)
	id := timecalc.GenerateID(ts)
	if len(id) != len("20260227-083210-abcdef12") {
		t.Errorf("GenerateID length = %d, want %d", len(id), len("20260227-083210-abcdef12"))
	}
	if id[:15] != "20260227-083210" {
		t.Errorf("GenerateID prefix = %q, want %q", id[:15], "20260227-083210")
	}
	assert.NotEqual(t, id, timecalc.GenerateID(ts))
}

func TestToNaiveUTCKeepsWallClock(t *testing.T) {
	zones := []*time.Location{
		time.UTC,
		time.FixedZone("BRT", -3*3600),
		time.FixedZone("JST", 9*3600),
		time.FixedZone("NPT", 5*3600+45*60),
	}
	for _, loc := range zones {
		t.Run(loc.String(), func(t *testing.T) {
			local := time.Date(2026, 2, 27, 23, 30, 15, 123456789, loc)
			got := timecalc.ToNaiveUTCISOString(local)
			assert.Equal(t, "2026-02-27T23:30:15.123Z", got)

			naive := timecalc.ToNaiveUTC(local)
			assert.Equal(t, time.UTC, naive.Location())
			assert.Equal(t, 23, naive.Hour())
		})
	}
}

func TestParseNaiveUTC(t *testing.T) {
	got, err := timecalc.ParseNaiveUTC("2026-02-27T08:32:10.000Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 27, 8, 32, 10, 0, time.UTC), got)

	got, err = timecalc.ParseNaiveUTC("2026-02-27T08:32:10Z")
	require.NoError(t, err)
	assert.Equal(t, 8, got.Hour())

	_, err = timecalc.ParseNaiveUTC("27/02/2026")
	assert.Error(t, err)
}

func TestFormatDateAndTimeFromNaiveUTC(t *testing.T) {
	tests := []struct {
		in       string
		wantDate string
		wantTime string
	}{
		{"2026-02-27T08:32:10.000Z", "27/02/2026", "08:32"},
		{"2026-12-31T23:59:59.999Z", "31/12/2026", "23:59"},
		{"2026-02-27", "", ""},
		{"", "", ""},
		{"garbage", "", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.wantDate, timecalc.FormatDateFromNaiveUTC(tt.in), tt.in)
		assert.Equal(t, tt.wantTime, timecalc.FormatTimeFromNaiveUTC(tt.in), tt.in)
	}
}

func TestLocalDateISOString(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	assert.Equal(t, "2026-01-05", timecalc.LocalDateISOString(time.Date(2026, 1, 5, 23, 0, 0, 0, loc)))
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "R$ 0,00"},
		{1234.56, "R$ 1.234,56"},
		{1234567.891, "R$ 1.234.567,89"},
		{-45.5, "-R$ 45,50"},
		{-0.001, "R$ 0,00"},
		{math.NaN(), "R$ 0,00"},
		{math.Inf(1), "R$ 0,00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, timecalc.FormatCurrency(tt.in), "%v", tt.in)
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "12,35", timecalc.FormatNumber(12.346, 2))
	assert.Equal(t, "1.500", timecalc.FormatNumber(1500, 0))
	assert.Equal(t, "7,1", timecalc.FormatNumber(7.06, 1))
	assert.Equal(t, "0", timecalc.FormatNumber(math.Inf(-1), 0))
}

func TestMoney(t *testing.T) {
	got := timecalc.Money(decimal.RequireFromString("150.005"))
	assert.True(t, strings.HasPrefix(got, "R$ 150,0"), got)
}

func TestFixedClock(t *testing.T) {
	at := time.Date(2026, 2, 27, 8, 0, 0, 0, time.UTC)
	var c timecalc.Clock = timecalc.FixedClock{T: at}
	assert.Equal(t, at, c.Now())
}

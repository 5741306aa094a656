package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/ride-ledger/internal/model"
	"github.com/Tiliavir/ride-ledger/internal/timecalc"
)

// periodFlags is the --period/--from/--to trio shared by the reporting
// commands.
type periodFlags struct {
	period string
	from   string
	to     string
}

func (p *periodFlags) register(cmd *cobra.Command, def model.PeriodKey) {
	keys := make([]string, len(model.PeriodKeys))
	for i, k := range model.PeriodKeys {
		keys[i] = string(k)
	}
	cmd.Flags().StringVar(&p.period, "period", string(def), "Period: "+strings.Join(keys, ", "))
	cmd.Flags().StringVar(&p.from, "from", "", "Custom range start (YYYY-MM-DD), implies --period custom")
	cmd.Flags().StringVar(&p.to, "to", "", "Custom range end (YYYY-MM-DD), implies --period custom")
}

// filter turns the flags into a model.Filter. --from/--to imply custom.
func (p *periodFlags) filter() (model.Filter, error) {
	key := model.PeriodKey(strings.ToLower(strings.TrimSpace(p.period)))
	if p.from != "" || p.to != "" {
		key = model.PeriodCustom
	}
	known := false
	for _, k := range model.PeriodKeys {
		if k == key {
			known = true
			break
		}
	}
	if !known {
		return model.Filter{}, fmt.Errorf("unknown period %q", p.period)
	}
	return model.Filter{Period: key, CustomRange: model.DateRange{Start: p.from, End: p.to}}, nil
}

// periodLabel is the heading shown for a period key.
func periodLabel(k model.PeriodKey) string {
	switch k {
	case model.PeriodToday:
		return "Today"
	case model.PeriodYesterday:
		return "Yesterday"
	case model.PeriodThisWeek:
		return "This week"
	case model.PeriodLast7Days:
		return "Last 7 days"
	case model.PeriodThisMonth:
		return "This month"
	case model.PeriodLast30Days:
		return "Last 30 days"
	case model.PeriodAll:
		return "All time"
	case model.PeriodCustom:
		return "Custom range"
	}
	return string(k)
}

// parseWhen reads --date. Empty means now; a bare date keeps the current
// time of day. Values are wall-clock times.
func parseWhen(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{"2006-01-02T15:04", "2006-01-02 15:04"} {
		if t, err := time.ParseInLocation(layout, s, now.Location()); err == nil {
			return t, nil
		}
	}
	d, err := time.ParseInLocation(timecalc.DateLayout, s, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD or YYYY-MM-DDTHH:MM", s)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), now.Hour(), now.Minute(), now.Second(), 0, now.Location()), nil
}

func parsePlatform(s string) (model.Platform, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case "uber":
		return model.PlatformUber, nil
	case "99", "nine_nine", "ninenine":
		return model.PlatformNineNine, nil
	case "particular", "private":
		return model.PlatformParticular, nil
	}
	return "", fmt.Errorf("unknown platform %q: use uber, 99 or particular", s)
}

func parseCategory(s string) (model.Category, error) {
	c := model.Category(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

func parseFuelType(s string) (model.FuelType, error) {
	f := model.FuelType(strings.ToUpper(strings.TrimSpace(s)))
	if !f.Valid() {
		return "", fmt.Errorf("unknown fuel type %q: use ethanol or gasoline", s)
	}
	return f, nil
}

// parsePause reads "HH:MM-HH:MM".
func parsePause(s string) (startHM, endHM string, err error) {
	start, end, ok := strings.Cut(s, "-")
	if !ok || strings.TrimSpace(start) == "" || strings.TrimSpace(end) == "" {
		return "", "", fmt.Errorf("invalid pause %q: use HH:MM-HH:MM", s)
	}
	return strings.TrimSpace(start), strings.TrimSpace(end), nil
}

// naive renders a stored naive-UTC time as "DD/MM/YYYY HH:MM".
func naive(t time.Time) string {
	iso := t.Format(timecalc.NaiveLayout)
	return timecalc.FormatDateFromNaiveUTC(iso) + " " + timecalc.FormatTimeFromNaiveUTC(iso)
}

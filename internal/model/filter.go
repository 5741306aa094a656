package model

// PeriodKey names a reporting period.
type PeriodKey string

const (
	PeriodToday      PeriodKey = "today"
	PeriodYesterday  PeriodKey = "yesterday"
	PeriodThisWeek   PeriodKey = "this_week"
	PeriodLast7Days  PeriodKey = "last_7_days"
	PeriodThisMonth  PeriodKey = "this_month"
	PeriodLast30Days PeriodKey = "last_30_days"
	PeriodAll        PeriodKey = "all"
	PeriodCustom     PeriodKey = "custom"
)

// PeriodKeys lists the accepted keys in menu order.
var PeriodKeys = []PeriodKey{
	PeriodToday, PeriodYesterday, PeriodThisWeek, PeriodLast7Days,
	PeriodThisMonth, PeriodLast30Days, PeriodAll, PeriodCustom,
}

// DateRange is a pair of "YYYY-MM-DD" strings; either side may be empty.
type DateRange struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// Filter selects the records shown in listings, summaries and exports.
type Filter struct {
	Period      PeriodKey `json:"period"`
	CustomRange DateRange `json:"customRange"`
}

package stats

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Tiliavir/ride-ledger/internal/model"
)

// Ties in every reduction below go to the first candidate in iteration order:
// weekdays run Sunday..Saturday, platforms and fuel types run in the order
// they first appear in the entry slice.

// WeekdayInsight is the weekday with the best average daily profit.
type WeekdayInsight struct {
	Weekday       time.Weekday    `json:"weekday" yaml:"weekday"`
	AverageProfit decimal.Decimal `json:"averageProfit" yaml:"average_profit"`
	Days          int             `json:"days" yaml:"days"`
}

// PlatformInsight pairs a platform with a per-trip value or a trip count.
type PlatformInsight struct {
	Platform       model.Platform  `json:"platform" yaml:"platform"`
	RevenuePerTrip decimal.Decimal `json:"revenuePerTrip" yaml:"revenue_per_trip,omitempty"`
	Trips          int             `json:"trips" yaml:"trips"`
}

// FuelInsight is the fuel with the lowest cost per km.
type FuelInsight struct {
	FuelType  model.FuelType  `json:"fuelType" yaml:"fuel_type"`
	CostPerKm decimal.Decimal `json:"costPerKm" yaml:"cost_per_km"`
}

// Insights groups the optional findings. A nil field means insufficient data.
type Insights struct {
	BestWeekday      *WeekdayInsight  `json:"bestWeekday" yaml:"best_weekday"`
	BestPlatform     *PlatformInsight `json:"bestPlatform" yaml:"best_platform"`
	CheapestFuel     *FuelInsight     `json:"cheapestFuel" yaml:"cheapest_fuel"`
	MostUsedPlatform *PlatformInsight `json:"mostUsedPlatform" yaml:"most_used_platform"`
}

// ComputeInsights runs every insight over entries.
func ComputeInsights(entries []model.Entry) Insights {
	return Insights{
		BestWeekday:      BestWeekday(entries),
		BestPlatform:     BestPlatform(entries),
		CheapestFuel:     CheapestFuel(entries),
		MostUsedPlatform: MostUsedPlatform(entries),
	}
}

// BestWeekday averages signed daily profit per weekday over the distinct
// dates seen for that weekday. Only a positive average qualifies.
func BestWeekday(entries []model.Entry) *WeekdayInsight {
	var totals [7]decimal.Decimal
	var dates [7]map[string]struct{}
	for i := range dates {
		dates[i] = map[string]struct{}{}
	}

	for _, e := range entries {
		b := e.Base()
		wd := b.Date.Weekday()
		amount := b.Amount
		if e.Type() == model.EntryExpense {
			amount = amount.Neg()
		}
		totals[wd] = totals[wd].Add(amount)
		dates[wd][b.Date.Format("2006-01-02")] = struct{}{}
	}

	var best *WeekdayInsight
	for wd := 0; wd < 7; wd++ {
		n := len(dates[wd])
		if n == 0 {
			continue
		}
		avg := totals[wd].Div(decimal.NewFromInt(int64(n)))
		if !avg.IsPositive() {
			continue
		}
		if best == nil || avg.GreaterThan(best.AverageProfit) {
			best = &WeekdayInsight{Weekday: time.Weekday(wd), AverageProfit: avg, Days: n}
		}
	}
	return best
}

// BestPlatform picks the highest revenue per trip among non-reward gains
// with a platform and a positive trip count.
func BestPlatform(entries []model.Entry) *PlatformInsight {
	type acc struct {
		revenue decimal.Decimal
		trips   int
	}
	var order []model.Platform
	byPlatform := map[model.Platform]*acc{}

	for _, e := range entries {
		g, ok := e.(*model.Gain)
		if !ok || g.IsReward || g.Platform == "" || g.TripCount == nil || *g.TripCount <= 0 {
			continue
		}
		a, seen := byPlatform[g.Platform]
		if !seen {
			a = &acc{}
			byPlatform[g.Platform] = a
			order = append(order, g.Platform)
		}
		a.revenue = a.revenue.Add(g.Amount)
		a.trips += *g.TripCount
	}

	var best *PlatformInsight
	for _, p := range order {
		a := byPlatform[p]
		rpt := a.revenue.Div(decimal.NewFromInt(int64(a.trips)))
		if best == nil || rpt.GreaterThan(best.RevenuePerTrip) {
			best = &PlatformInsight{Platform: p, RevenuePerTrip: rpt, Trips: a.trips}
		}
	}
	return best
}

// CheapestFuel picks the fuel type with the lowest cost per km driven.
func CheapestFuel(entries []model.Entry) *FuelInsight {
	type acc struct{ cost, distance decimal.Decimal }
	var order []model.FuelType
	byFuel := map[model.FuelType]*acc{}

	for _, e := range entries {
		x, ok := e.(*model.Expense)
		if !ok || x.Category != model.CategoryFuel || x.Fuel == nil {
			continue
		}
		a, seen := byFuel[x.Fuel.FuelType]
		if !seen {
			a = &acc{}
			byFuel[x.Fuel.FuelType] = a
			order = append(order, x.Fuel.FuelType)
		}
		a.cost = a.cost.Add(x.Amount)
		a.distance = a.distance.Add(x.Fuel.DistanceDriven)
	}

	var best *FuelInsight
	for _, ft := range order {
		a := byFuel[ft]
		if !a.distance.IsPositive() {
			continue
		}
		cpk := a.cost.Div(a.distance)
		if best == nil || cpk.LessThan(best.CostPerKm) {
			best = &FuelInsight{FuelType: ft, CostPerKm: cpk}
		}
	}
	return best
}

// MostUsedPlatform picks the platform with the most trips, rewards included.
func MostUsedPlatform(entries []model.Entry) *PlatformInsight {
	var order []model.Platform
	trips := map[model.Platform]int{}

	for _, e := range entries {
		g, ok := e.(*model.Gain)
		if !ok || g.Platform == "" || g.TripCount == nil || *g.TripCount <= 0 {
			continue
		}
		if _, seen := trips[g.Platform]; !seen {
			order = append(order, g.Platform)
		}
		trips[g.Platform] += *g.TripCount
	}

	var best *PlatformInsight
	for _, p := range order {
		if best == nil || trips[p] > best.Trips {
			best = &PlatformInsight{Platform: p, Trips: trips[p]}
		}
	}
	return best
}

package model

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Tiliavir/ride-ledger/internal/timecalc"
)

// entryJSON is the flat wire form shared by both entry variants.
type entryJSON struct {
	ID          string          `json:"id"`
	Type        EntryType       `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Description string          `json:"description,omitempty"`

	Category    Category         `json:"category,omitempty"`
	FuelDetails *fuelDetailsJSON `json:"fuelDetails,omitempty"`

	Platform  Platform `json:"platform,omitempty"`
	TripCount *int     `json:"tripCount,omitempty"`
	IsReward  *bool    `json:"isReward,omitempty"`
}

type fuelDetailsJSON struct {
	FuelType       FuelType        `json:"fuelType"`
	PricePerLiter  decimal.Decimal `json:"pricePerLiter"`
	AvgConsumption decimal.Decimal `json:"avgConsumption"`
	DistanceDriven decimal.Decimal `json:"distanceDriven"`
}

// Entries is a slice of mixed entry variants with a tagged JSON encoding.
type Entries []Entry

// MarshalJSON writes entries in their flat tagged form. A nil slice is
// written as [].
func (es Entries) MarshalJSON() ([]byte, error) {
	out := make([]entryJSON, 0, len(es))
	for _, e := range es {
		w, err := encodeEntry(e)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes tagged entries and rejects fields that do not belong
// to the declared variant.
func (es *Entries) UnmarshalJSON(data []byte) error {
	var raw []entryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Entries, 0, len(raw))
	for i, w := range raw {
		e, err := decodeEntry(w)
		if err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
		out = append(out, e)
	}
	*es = out
	return nil
}

func encodeEntry(e Entry) (entryJSON, error) {
	b := e.Base()
	w := entryJSON{
		ID:          b.ID,
		Type:        e.Type(),
		Amount:      b.Amount,
		Date:        b.Date.UTC().Format(timecalc.NaiveLayout),
		Description: b.Description,
	}
	switch v := e.(type) {
	case *Gain:
		w.Platform = v.Platform
		reward := v.IsReward
		w.IsReward = &reward
		if !v.IsReward {
			w.TripCount = v.TripCount
		}
	case *Expense:
		w.Category = v.Category
		if v.Fuel != nil {
			w.FuelDetails = &fuelDetailsJSON{
				FuelType:       v.Fuel.FuelType,
				PricePerLiter:  v.Fuel.PricePerLiter,
				AvgConsumption: v.Fuel.AvgConsumption,
				DistanceDriven: v.Fuel.DistanceDriven,
			}
		}
	default:
		return entryJSON{}, fmt.Errorf("unsupported entry type %T", e)
	}
	return w, nil
}

func decodeEntry(w entryJSON) (Entry, error) {
	date, err := timecalc.ParseNaiveUTC(w.Date)
	if err != nil {
		return nil, fmt.Errorf("entry %s: %w", w.ID, err)
	}
	base := EntryBase{ID: w.ID, Amount: w.Amount, Date: date, Description: w.Description}

	switch w.Type {
	case EntryGain:
		if w.Category != "" || w.FuelDetails != nil {
			return nil, fmt.Errorf("gain %s carries expense fields", w.ID)
		}
		g := &Gain{EntryBase: base, Platform: w.Platform, TripCount: w.TripCount}
		if w.IsReward != nil {
			g.IsReward = *w.IsReward
		}
		if g.IsReward && g.TripCount != nil {
			return nil, fmt.Errorf("gain %s: %w", w.ID, ErrRewardWithTrips)
		}
		return g, nil
	case EntryExpense:
		if w.Platform != "" || w.TripCount != nil || w.IsReward != nil {
			return nil, fmt.Errorf("expense %s carries gain fields", w.ID)
		}
		x := &Expense{EntryBase: base, Category: w.Category}
		if fd := w.FuelDetails; fd != nil {
			x.Fuel = &FuelDetails{
				FuelType:       fd.FuelType,
				PricePerLiter:  fd.PricePerLiter,
				AvgConsumption: fd.AvgConsumption,
				DistanceDriven: fd.DistanceDriven,
			}
		}
		return x, nil
	}
	return nil, fmt.Errorf("unknown entry type %q", w.Type)
}

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Snapshots and stores carry amounts as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// EntryType tags the two entry variants.
type EntryType string

const (
	EntryGain    EntryType = "GAIN"
	EntryExpense EntryType = "EXPENSE"
)

// Platform is the ride-hailing source of a gain.
type Platform string

const (
	PlatformUber       Platform = "UBER"
	PlatformNineNine   Platform = "NINE_NINE"
	PlatformParticular Platform = "PARTICULAR"
)

// Platforms lists every known platform in display order.
var Platforms = []Platform{PlatformUber, PlatformNineNine, PlatformParticular}

// Valid reports whether p is a known platform.
func (p Platform) Valid() bool {
	switch p {
	case PlatformUber, PlatformNineNine, PlatformParticular:
		return true
	}
	return false
}

// Label is the human name shown in reports.
func (p Platform) Label() string {
	switch p {
	case PlatformUber:
		return "Uber"
	case PlatformNineNine:
		return "99"
	case PlatformParticular:
		return "Particular"
	}
	return string(p)
}

// Category classifies an expense.
type Category string

const (
	CategoryFuel        Category = "FUEL"
	CategoryRental      Category = "RENTAL"
	CategoryWashing     Category = "WASHING"
	CategoryMaintenance Category = "MAINTENANCE"
	CategoryFood        Category = "FOOD"
	CategoryTolls       Category = "TOLLS"
	CategoryOther       Category = "OTHER"
)

// Categories lists every expense category in display order.
var Categories = []Category{
	CategoryFuel, CategoryRental, CategoryWashing, CategoryMaintenance,
	CategoryFood, CategoryTolls, CategoryOther,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

func (c Category) Label() string {
	switch c {
	case CategoryFuel:
		return "Fuel"
	case CategoryRental:
		return "Rental"
	case CategoryWashing:
		return "Washing"
	case CategoryMaintenance:
		return "Maintenance"
	case CategoryFood:
		return "Food"
	case CategoryTolls:
		return "Tolls"
	case CategoryOther:
		return "Other"
	}
	return string(c)
}

// FuelType is the kind of fuel bought.
type FuelType string

const (
	FuelEthanol  FuelType = "ETHANOL"
	FuelGasoline FuelType = "GASOLINE"
)

func (f FuelType) Valid() bool {
	return f == FuelEthanol || f == FuelGasoline
}

func (f FuelType) Label() string {
	switch f {
	case FuelEthanol:
		return "Ethanol"
	case FuelGasoline:
		return "Gasoline"
	}
	return string(f)
}

// EntryBase holds the fields shared by every entry variant.
type EntryBase struct {
	ID          string
	Amount      decimal.Decimal
	Date        time.Time // naive UTC
	Description string
}

// Entry is a monetary record: either a Gain or an Expense.
type Entry interface {
	Base() *EntryBase
	Type() EntryType
	Validate() error
	isEntry()
}

// Gain is income from a platform or a private ride.
type Gain struct {
	EntryBase
	Platform  Platform
	TripCount *int
	IsReward  bool
}

func (g *Gain) Base() *EntryBase { return &g.EntryBase }
func (g *Gain) Type() EntryType  { return EntryGain }
func (g *Gain) isEntry()         {}

// Trips is the number of trips that count toward per-trip figures.
// Rewards never count.
func (g *Gain) Trips() int {
	if g.IsReward || g.TripCount == nil {
		return 0
	}
	return *g.TripCount
}

// Validate checks amount, platform and trip rules.
func (g *Gain) Validate() error {
	if err := validateBase(&g.EntryBase); err != nil {
		return err
	}
	if g.Platform != "" && !g.Platform.Valid() {
		return ErrInvalidPlatform
	}
	if g.TripCount != nil {
		if *g.TripCount < 0 {
			return ErrInvalidTripCount
		}
		if g.IsReward {
			return ErrRewardWithTrips
		}
	}
	return nil
}

// Expense is money spent running the vehicle.
type Expense struct {
	EntryBase
	Category Category
	Fuel     *FuelDetails
}

func (e *Expense) Base() *EntryBase { return &e.EntryBase }
func (e *Expense) Type() EntryType  { return EntryExpense }
func (e *Expense) isEntry()         {}

// Validate checks the amount, the category and that fuel details are present
// exactly when the category is FUEL.
func (e *Expense) Validate() error {
	if err := validateBase(&e.EntryBase); err != nil {
		return err
	}
	if !e.Category.Valid() {
		return ErrInvalidCategory
	}
	if e.Category == CategoryFuel {
		if e.Fuel == nil {
			return ErrIncompleteFuel
		}
		return e.Fuel.Validate()
	}
	if e.Fuel != nil {
		return ErrUnexpectedFuel
	}
	return nil
}

// FuelDetails describes a refuel. Amount of the owning expense is derived
// from these figures.
type FuelDetails struct {
	FuelType       FuelType
	PricePerLiter  decimal.Decimal
	AvgConsumption decimal.Decimal // km per liter
	DistanceDriven decimal.Decimal // km
}

func (f *FuelDetails) Validate() error {
	if !f.FuelType.Valid() {
		return ErrInvalidFuelType
	}
	if !f.PricePerLiter.IsPositive() || !f.AvgConsumption.IsPositive() || !f.DistanceDriven.IsPositive() {
		return ErrIncompleteFuel
	}
	return nil
}

// Liters consumed over the distance. Zero when consumption is not positive.
func (f *FuelDetails) Liters() decimal.Decimal {
	if !f.AvgConsumption.IsPositive() {
		return decimal.Zero
	}
	return f.DistanceDriven.Div(f.AvgConsumption)
}

// Cost is distance / consumption * price, rounded to cents.
func (f *FuelDetails) Cost() decimal.Decimal {
	return f.Liters().Mul(f.PricePerLiter).Round(2)
}

func validateBase(b *EntryBase) error {
	if !b.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if b.Date.IsZero() {
		return ErrMissingDate
	}
	return nil
}

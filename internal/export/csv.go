// Package export renders ledger records as a spreadsheet-friendly CSV file.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/Tiliavir/ride-ledger/internal/model"
	"github.com/Tiliavir/ride-ledger/internal/timecalc"
)

// ErrNothingToExport is returned when the selection holds no records.
var ErrNothingToExport = errors.New("nothing to export in the selected period")

const bom = "\uFEFF"

// Header is the fixed column layout.
var Header = []string{
	"Date", "Type", "Title", "Description", "Amount",
	"Platform", "TripCount", "IsReward",
	"ExpenseCategory", "FuelType", "PricePerLiter", "Consumption", "Distance",
	"StartTime", "EndTime", "PauseDuration", "NetDuration",
}

const (
	colDate = iota
	colType
	colTitle
	colDescription
	colAmount
	colPlatform
	colTripCount
	colIsReward
	colCategory
	colFuelType
	colPrice
	colConsumption
	colDistance
	colStart
	colEnd
	colPause
	colNet
)

type row struct {
	at     time.Time
	fields []string
}

// WriteCSV writes a BOM, the header and one row per entry and shift, newest
// first. Nothing is written when both slices are empty.
func WriteCSV(w io.Writer, entries []model.Entry, shifts []model.Shift) error {
	if len(entries) == 0 && len(shifts) == 0 {
		return ErrNothingToExport
	}

	rows := make([]row, 0, len(entries)+len(shifts))
	for _, e := range entries {
		rows = append(rows, row{at: e.Base().Date, fields: entryRow(e)})
	}
	for i := range shifts {
		rows = append(rows, row{at: shifts[i].Start, fields: shiftRow(&shifts[i])})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].at.After(rows[j].at) })

	if _, err := io.WriteString(w, bom); err != nil {
		return fmt.Errorf("writing BOM: %w", err)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(r.fields); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile exports to path. The file is only created when there is
// something to write.
func WriteFile(path string, entries []model.Entry, shifts []model.Shift) error {
	if len(entries) == 0 && len(shifts) == 0 {
		return ErrNothingToExport
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteCSV(f, entries, shifts); err != nil {
		f.Close()
		_ = os.Remove(path)
		return err
	}
	return f.Close()
}

func entryRow(e model.Entry) []string {
	b := e.Base()
	r := make([]string, len(Header))
	r[colDate] = timecalc.FormatDateFromNaiveUTC(b.Date.Format(timecalc.NaiveLayout))
	r[colType] = string(e.Type())
	r[colDescription] = b.Description
	r[colAmount] = b.Amount.StringFixed(2)

	switch v := e.(type) {
	case *model.Gain:
		r[colTitle] = "Gain"
		if v.Platform != "" {
			r[colTitle] = v.Platform.Label()
			r[colPlatform] = string(v.Platform)
		}
		if v.TripCount != nil {
			r[colTripCount] = strconv.Itoa(*v.TripCount)
		}
		r[colIsReward] = strconv.FormatBool(v.IsReward)
	case *model.Expense:
		r[colTitle] = v.Category.Label()
		r[colCategory] = string(v.Category)
		if f := v.Fuel; f != nil {
			r[colFuelType] = string(f.FuelType)
			r[colPrice] = f.PricePerLiter.String()
			r[colConsumption] = f.AvgConsumption.String()
			r[colDistance] = f.DistanceDriven.String()
		}
	}
	return r
}

func shiftRow(s *model.Shift) []string {
	start := s.Start.Format(timecalc.NaiveLayout)
	r := make([]string, len(Header))
	r[colDate] = timecalc.FormatDateFromNaiveUTC(start)
	r[colType] = "SHIFT"
	r[colTitle] = "Shift"
	r[colStart] = timecalc.FormatTimeFromNaiveUTC(start)
	if s.End != nil {
		r[colEnd] = timecalc.FormatTimeFromNaiveUTC(s.End.Format(timecalc.NaiveLayout))
	}
	r[colPause] = timecalc.FormatDurationHHMMSS(s.PauseDuration())
	r[colNet] = timecalc.FormatDurationHHMMSS(s.NetDuration())
	return r
}

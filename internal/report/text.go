package report

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Tiliavir/ride-ledger/internal/timecalc"
)

// RenderText renders the report for a terminal.
func RenderText(d Data) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(d.Title))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render(d.PeriodLabel + " | " + d.RangeLabel()))
	b.WriteString("\n")

	totals := make([]string, 0, len(d.Totals()))
	for _, kv := range d.Totals() {
		value := kv[1]
		if kv[0] == "Profit" {
			if d.Summary.Profit.IsNegative() {
				value = expenseStyle.Render(value)
			} else {
				value = gainStyle.Render(value)
			}
		}
		totals = append(totals, lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(16).Render(kv[0]), value))
	}
	b.WriteString(boxStyle.Render(strings.Join(totals, "\n")))
	b.WriteString("\n")

	if lines := d.GoalLines(); len(lines) > 0 {
		b.WriteString(sectionStyle.Render("Goals"))
		b.WriteString("\n")
		b.WriteString(strings.Join(lines, "\n"))
		b.WriteString("\n")
	}
	if lines := d.FuelLines(); len(lines) > 0 {
		b.WriteString(sectionStyle.Render("Fuel efficiency"))
		b.WriteString("\n")
		b.WriteString(strings.Join(lines, "\n"))
		b.WriteString("\n")
	}

	b.WriteString(sectionStyle.Render("Insights"))
	b.WriteString("\n")
	b.WriteString(strings.Join(d.InsightLines(), "\n"))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Transactions"))
	b.WriteString("\n")
	lines := d.Lines()
	if len(lines) == 0 {
		b.WriteString(subtitleStyle.Render("No transactions in this period."))
		b.WriteString("\n")
	} else {
		b.WriteString(transactionsTable(lines))
		b.WriteString("\n")
	}

	if len(d.Shifts) > 0 {
		b.WriteString(sectionStyle.Render("Shifts"))
		b.WriteString("\n")
		b.WriteString(shiftsTable(d))
		b.WriteString("\n")
	}
	return b.String()
}

func transactionsTable(lines []Line) string {
	rows := make([][]string, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, []string{l.Date, l.Title, l.Amount})
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(subtitleStyle).
		Headers("Date", "Description", "Amount").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCellStyle
			}
			if col == 2 {
				if lines[row].Gain {
					return gainStyle.Padding(0, 1).Align(lipgloss.Right)
				}
				return expenseStyle.Padding(0, 1).Align(lipgloss.Right)
			}
			return cellStyle
		}).
		String()
}

func shiftsTable(d Data) string {
	rows := make([][]string, 0, len(d.Shifts))
	for _, s := range d.Shifts {
		start := s.Start.Format(timecalc.NaiveLayout)
		end := "running"
		if s.End != nil {
			end = timecalc.FormatTimeFromNaiveUTC(s.End.Format(timecalc.NaiveLayout))
		}
		rows = append(rows, []string{
			timecalc.FormatDateFromNaiveUTC(start),
			timecalc.FormatTimeFromNaiveUTC(start) + " - " + end,
			timecalc.FormatDurationHHMMSS(s.PauseDuration()),
			timecalc.FormatDurationHHMMSS(s.NetDuration()),
		})
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(subtitleStyle).
		Headers("Date", "Time", "Paused", "Worked").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCellStyle
			}
			return cellStyle
		}).
		String()
}

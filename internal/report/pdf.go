package report

import (
	"fmt"
	"io"

	"github.com/phpdave11/gofpdf"

	"github.com/Tiliavir/ride-ledger/internal/timecalc"
)

var (
	txnColW   = []float64{34, 112, 36}
	totalColW = []float64{60, 60, 62}
)

// WritePDF renders the report as an A4 document.
func WritePDF(w io.Writer, d Data) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(14, 14, 14)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, tr(d.Title))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(80, 80, 80)
	pdf.Cell(0, 6, tr("Period: "+d.PeriodLabel+" ("+d.RangeLabel()+")"))
	pdf.Ln(10)

	// Executive totals, three per row.
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetTextColor(20, 20, 20)
	totals := d.Totals()
	for i := 0; i < len(totals); i += 3 {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(248, 248, 248)
		for j := 0; j < 3; j++ {
			label := ""
			if i+j < len(totals) {
				label = totals[i+j][0]
			}
			pdf.CellFormat(totalColW[j], 8, tr(label), "1", lnAfter(j), "C", true, 0, "")
		}
		pdf.SetFont("Helvetica", "", 11)
		for j := 0; j < 3; j++ {
			value := ""
			if i+j < len(totals) {
				value = totals[i+j][1]
			}
			pdf.CellFormat(totalColW[j], 9, tr(value), "1", lnAfter(j), "C", false, 0, "")
		}
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	for _, line := range append(d.GoalLines(), d.InsightLines()...) {
		pdf.CellFormat(0, 6, tr(line), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	writeTxnHeader(pdf)
	pdf.SetFont("Helvetica", "", 9)
	for _, l := range d.Lines() {
		if pdf.GetY() > 270 {
			pdf.AddPage()
			writeTxnHeader(pdf)
			pdf.SetFont("Helvetica", "", 9)
		}
		if l.Gain {
			pdf.SetTextColor(20, 120, 110)
		} else {
			pdf.SetTextColor(180, 40, 40)
		}
		pdf.CellFormat(txnColW[0], 7, l.Date, "1", 0, "C", false, 0, "")
		pdf.SetTextColor(30, 30, 30)
		pdf.CellFormat(txnColW[1], 7, tr(trimTo(l.Title, 70)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(txnColW[2], 7, tr(l.Amount), "1", 1, "R", false, 0, "")
	}

	pdf.SetY(-18)
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 10, "Generated "+timecalc.FormatDateFromNaiveUTC(d.GeneratedAt.Format(timecalc.NaiveLayout)), "", 0, "C", false, 0, "")

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("building pdf: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

func writeTxnHeader(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(245, 245, 245)
	pdf.SetTextColor(20, 20, 20)
	pdf.CellFormat(txnColW[0], 8, "DATE", "1", 0, "C", true, 0, "")
	pdf.CellFormat(txnColW[1], 8, "DESCRIPTION", "1", 0, "L", true, 0, "")
	pdf.CellFormat(txnColW[2], 8, "AMOUNT", "1", 1, "R", true, 0, "")
}

func lnAfter(col int) int {
	if col == 2 {
		return 1
	}
	return 0
}

func trimTo(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

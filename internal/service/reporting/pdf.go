package reporting

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/jhconstruction/backoffice/internal/domain/models"
)

const dateLayout = "2006-01-02"

// RenderPDF writes the financial report as a fixed-layout PDF: letterhead,
// summary block, then the transaction table with income rows in green and
// expense rows in red. gofpdf inserts page breaks automatically once the
// table runs past the bottom margin.
func RenderPDF(w io.Writer, q Query, summary Summary, transactions []models.Transaction) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	// Letterhead.
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(30, 41, 59)
	pdf.CellFormat(0, 10, "JH Construction (Pvt) Ltd", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(100, 116, 139)
	pdf.CellFormat(0, 6, "Financial Report", "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6,
		fmt.Sprintf("Period: %s to %s", q.From.Format(dateLayout), q.To.Format(dateLayout)),
		"", 1, "C", false, 0, "")
	pdf.Ln(6)

	// Summary block.
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(30, 41, 59)
	summaryRows := []struct {
		label string
		value float64
	}{
		{"Total Income", summary.TotalIncome},
		{"Total Expense", summary.TotalExpense},
		{"Balance", summary.Balance},
	}
	for _, row := range summaryRows {
		pdf.CellFormat(50, 8, row.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 8, fmt.Sprintf("%.2f", row.value), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	// Transaction table header.
	writeHeader := func() {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(241, 245, 249)
		pdf.SetTextColor(30, 41, 59)
		pdf.CellFormat(25, 8, "Date", "1", 0, "L", true, 0, "")
		pdf.CellFormat(22, 8, "Type", "1", 0, "L", true, 0, "")
		pdf.CellFormat(40, 8, "Category", "1", 0, "L", true, 0, "")
		pdf.CellFormat(73, 8, "Description", "1", 0, "L", true, 0, "")
		pdf.CellFormat(30, 8, "Amount", "1", 1, "R", true, 0, "")
	}
	writeHeader()

	pdf.SetFont("Helvetica", "", 9)
	for _, t := range transactions {
		// Repeat the header after an automatic page break.
		if pdf.GetY() > 260 {
			pdf.AddPage()
			writeHeader()
			pdf.SetFont("Helvetica", "", 9)
		}

		if t.Type == models.TransactionIncome {
			pdf.SetTextColor(22, 101, 52)
		} else {
			pdf.SetTextColor(153, 27, 27)
		}

		pdf.CellFormat(25, 7, t.Date.Format(dateLayout), "1", 0, "L", false, 0, "")
		pdf.CellFormat(22, 7, string(t.Type), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, truncate(t.Category, 28), "1", 0, "L", false, 0, "")
		pdf.CellFormat(73, 7, truncate(t.Description, 52), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%.2f", t.Amount), "1", 1, "R", false, 0, "")
	}

	if len(transactions) == 0 {
		pdf.SetTextColor(100, 116, 139)
		pdf.CellFormat(190, 8, "No transactions in the selected period.", "1", 1, "C", false, 0, "")
	}

	return pdf.Output(w)
}

// truncate shortens s to max characters. It counts runes so a cut never
// lands inside a multibyte sequence.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

package reporting_test

import (
	"bytes"
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/jhconstruction/backoffice/internal/domain/models"
	"github.com/jhconstruction/backoffice/internal/repository/mongodb"
	"github.com/jhconstruction/backoffice/internal/service/reporting"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func fixtures() []models.Transaction {
	return []models.Transaction{
		{Type: models.TransactionIncome, Category: "Customer payment", Amount: 1000, Date: day(5)},
		{Type: models.TransactionIncome, Category: "Customer payment", Amount: 2000, Date: day(12)},
		{Type: models.TransactionExpense, Category: "Fuel", Amount: 500, Date: day(20)},
	}
}

func TestSummarize(t *testing.T) {
	sum := reporting.Summarize(fixtures())

	if sum.TotalIncome != 3000 {
		t.Errorf("totalIncome = %v, want 3000", sum.TotalIncome)
	}
	if sum.TotalExpense != 500 {
		t.Errorf("totalExpense = %v, want 500", sum.TotalExpense)
	}
	if sum.Balance != 2500 {
		t.Errorf("balance = %v, want 2500", sum.Balance)
	}
	if sum.Count != 3 {
		t.Errorf("count = %d, want 3", sum.Count)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	sum := reporting.Summarize(nil)
	if sum.TotalIncome != 0 || sum.TotalExpense != 0 || sum.Balance != 0 || sum.Count != 0 {
		t.Errorf("empty set must produce a zero summary, got %+v", sum)
	}
}

func TestSummarizeDecimalAccumulation(t *testing.T) {
	// 0.1 added a thousand times drifts under float64 accumulation.
	transactions := make([]models.Transaction, 1000)
	for i := range transactions {
		transactions[i] = models.Transaction{Type: models.TransactionIncome, Amount: 0.1}
	}

	sum := reporting.Summarize(transactions)
	if math.Abs(sum.TotalIncome-100) > 1e-9 {
		t.Errorf("totalIncome = %v, want exactly 100", sum.TotalIncome)
	}
}

func TestQueryValidate(t *testing.T) {
	income := []models.TransactionType{models.TransactionIncome}

	tests := []struct {
		name    string
		q       reporting.Query
		wantErr bool
	}{
		{"valid", reporting.Query{From: day(1), To: day(31), Types: income}, false},
		{"missing from", reporting.Query{To: day(31), Types: income}, true},
		{"missing to", reporting.Query{From: day(1), Types: income}, true},
		{"inverted range", reporting.Query{From: day(31), To: day(1), Types: income}, true},
		{"no types", reporting.Query{From: day(1), To: day(31)}, true},
		{"unknown type", reporting.Query{From: day(1), To: day(31), Types: []models.TransactionType{"transfer"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.q.Validate()
			if tt.wantErr && !errors.Is(err, reporting.ErrInvalidQuery) {
				t.Errorf("err = %v, want ErrInvalidQuery", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

type stubSource struct {
	transactions []models.Transaction
	gotFilter    mongodb.TransactionFilter
}

func (s *stubSource) FindTransactions(_ context.Context, f mongodb.TransactionFilter) ([]models.Transaction, error) {
	s.gotFilter = f
	return s.transactions, nil
}

func TestFinancialReport(t *testing.T) {
	source := &stubSource{transactions: fixtures()}
	svc := reporting.NewService(source, nil, nil)

	q := reporting.Query{
		From:  day(1),
		To:    day(31),
		Types: []models.TransactionType{models.TransactionIncome, models.TransactionExpense},
	}

	sum, transactions, err := svc.FinancialReport(context.Background(), q)
	if err != nil {
		t.Fatalf("FinancialReport: %v", err)
	}
	if sum.Balance != 2500 {
		t.Errorf("balance = %v, want 2500", sum.Balance)
	}
	if len(transactions) != 3 {
		t.Errorf("transactions = %d, want 3", len(transactions))
	}
	if source.gotFilter.From == nil || !source.gotFilter.From.Equal(day(1)) {
		t.Errorf("filter.From = %v, want %v", source.gotFilter.From, day(1))
	}
	if len(source.gotFilter.Types) != 2 {
		t.Errorf("filter.Types = %v, want both types", source.gotFilter.Types)
	}
}

func TestFinancialReportInvalidQuery(t *testing.T) {
	svc := reporting.NewService(&stubSource{}, nil, nil)

	_, _, err := svc.FinancialReport(context.Background(), reporting.Query{})
	if !errors.Is(err, reporting.ErrInvalidQuery) {
		t.Errorf("err = %v, want ErrInvalidQuery", err)
	}
}

func TestRenderPDF(t *testing.T) {
	q := reporting.Query{
		From:  day(1),
		To:    day(31),
		Types: []models.TransactionType{models.TransactionIncome, models.TransactionExpense},
	}
	transactions := fixtures()
	sum := reporting.Summarize(transactions)

	var buf bytes.Buffer
	if err := reporting.RenderPDF(&buf, q, sum, transactions); err != nil {
		t.Fatalf("RenderPDF: %v", err)
	}

	if buf.Len() == 0 {
		t.Fatal("empty PDF output")
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Errorf("output does not start with %%PDF header")
	}
}

func TestRenderPDFLongMultibyteText(t *testing.T) {
	q := reporting.Query{
		From:  day(1),
		To:    day(31),
		Types: []models.TransactionType{models.TransactionExpense},
	}
	// Long enough to force truncation in both the category and description
	// columns. A byte-level cut through "crépi" or "béton" would produce an
	// invalid UTF-8 tail.
	transactions := []models.Transaction{
		{
			Type:        models.TransactionExpense,
			Category:    "Matériaux de façade et crépi extérieur pour la tour nord",
			Description: "Achat de béton armé, d'enduit décoratif et de crépi pour les façades extérieures du bâtiment principal",
			Amount:      1250.50,
			Date:        day(8),
		},
	}

	var buf bytes.Buffer
	if err := reporting.RenderPDF(&buf, q, reporting.Summarize(transactions), transactions); err != nil {
		t.Fatalf("RenderPDF: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Errorf("output does not start with %%PDF header")
	}
}

func TestRenderPDFEmptyPeriod(t *testing.T) {
	q := reporting.Query{From: day(1), To: day(31), Types: []models.TransactionType{models.TransactionIncome}}

	var buf bytes.Buffer
	if err := reporting.RenderPDF(&buf, q, reporting.Summary{}, nil); err != nil {
		t.Fatalf("RenderPDF: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Errorf("output does not start with %%PDF header")
	}
}

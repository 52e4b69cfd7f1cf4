package service

import (
	"testing"

	"github.com/kwamevaughan/richuncle-outlook-sub003/internal/dto"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func TestReconcileShortDrawer(t *testing.T) {
	// opening 500, cash_in 100, cash_out 50, sales 450 (cash 300 + momo 150)
	totals := dto.LedgerTotals{CashInTotal: d(100), CashOutTotal: d(50)}
	summary := &dto.SalesSummary{
		TotalSales:   d(450),
		TotalRefund:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}

	rec := Reconcile(d(500), totals, summary, d(850))

	assert.Equal(t, "1000", rec.Expected.String())
	assert.Equal(t, "-150", rec.Difference.String())
	assert.True(t, rec.RequiresNote)
}

func TestReconcileBalancedDrawer(t *testing.T) {
	totals := dto.LedgerTotals{CashInTotal: d(100), CashOutTotal: d(50)}
	summary := &dto.SalesSummary{TotalSales: d(450)}

	rec := Reconcile(d(500), totals, summary, d(1000))

	assert.True(t, rec.Difference.IsZero())
	assert.False(t, rec.RequiresNote)
}

func TestReconcileSubtractsRefundsAndExpenses(t *testing.T) {
	totals := dto.LedgerTotals{CashInTotal: decimal.Zero, CashOutTotal: decimal.Zero}
	summary := &dto.SalesSummary{
		TotalSales:   d(1000),
		TotalRefund:  d(120),
		TotalExpense: d(80),
	}

	rec := Reconcile(d(200), totals, summary, d(1000))

	assert.Equal(t, "1000", rec.Expected.String())
	assert.True(t, rec.Difference.IsZero())
}

func TestReconcileOverDrawerIsPositive(t *testing.T) {
	rec := Reconcile(d(100), dto.LedgerTotals{}, &dto.SalesSummary{}, d(130))
	assert.Equal(t, "30", rec.Difference.String())
	assert.True(t, rec.RequiresNote)
}

func TestReconcileSubCentDifferenceNeedsNoNote(t *testing.T) {
	// Differences that round to zero at the currency minor unit do not gate.
	rec := Reconcile(d(100), dto.LedgerTotals{}, &dto.SalesSummary{}, decimal.RequireFromString("100.001"))
	assert.False(t, rec.RequiresNote)
}

func TestReconcileIsDeterministic(t *testing.T) {
	totals := dto.LedgerTotals{CashInTotal: d(33.33), CashOutTotal: d(12.5)}
	summary := &dto.SalesSummary{TotalSales: d(777.77), TotalRefund: d(5), TotalExpense: d(1.25)}

	first := Reconcile(d(250), totals, summary, d(1000))
	second := Reconcile(d(250), totals, summary, d(1000))

	assert.Equal(t, first.Expected.String(), second.Expected.String())
	assert.Equal(t, first.Difference.String(), second.Difference.String())
	assert.Equal(t, first.RequiresNote, second.RequiresNote)
}

func TestIsLargeDiscrepancy(t *testing.T) {
	threshold := d(50)
	assert.False(t, IsLargeDiscrepancy(d(50), threshold))
	assert.False(t, IsLargeDiscrepancy(d(-50), threshold))
	assert.True(t, IsLargeDiscrepancy(d(50.01), threshold))
	assert.True(t, IsLargeDiscrepancy(d(-150), threshold))
}

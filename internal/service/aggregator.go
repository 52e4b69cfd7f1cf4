package service

import (
	"context"

	"github.com/kwamevaughan/richuncle-outlook-sub003/internal/dto"
	"github.com/kwamevaughan/richuncle-outlook-sub003/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// SalesAggregator folds a session's completed orders into a payment-method
// breakdown and a per-product rollup. The computation is idempotent and
// side-effect-free; the dashboard calls it repeatedly for live refresh, and
// SessionManager calls it once more at close time.
type SalesAggregator interface {
	Summarize(ctx context.Context, registerID, sessionID uuid.UUID) (*dto.SalesSummary, error)
}

type salesAggregator struct {
	orders repository.OrderRepository
}

func NewSalesAggregator(orders repository.OrderRepository) SalesAggregator {
	return &salesAggregator{orders: orders}
}

func (a *salesAggregator) Summarize(ctx context.Context, registerID, sessionID uuid.UUID) (*dto.SalesSummary, error) {
	orders, err := a.orders.ListBySession(ctx, registerID, sessionID)
	if err != nil {
		return nil, err
	}

	summary := &dto.SalesSummary{
		PaymentBreakdown: map[string]decimal.Decimal{
			MethodCash:  decimal.Zero,
			MethodMomo:  decimal.Zero,
			MethodCard:  decimal.Zero,
			MethodOther: decimal.Zero,
		},
		ProductsSold: []dto.ProductSale{},
		TotalSales:   decimal.Zero,
		TotalRefund:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}
	if len(orders) == 0 {
		return a.withRefundsAndExpenses(ctx, sessionID, summary), nil
	}

	orderIDs := make([]uuid.UUID, 0, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID)
	}

	// Partial failure tolerated: if the item sub-fetch fails the product
	// rollup is omitted but order totals still count into the breakdown.
	itemsByOrder, err := a.orders.ListItemsByOrders(ctx, orderIDs)
	if err != nil {
		log.Warn().Err(err).
			Str("session_id", sessionID.String()).
			Int("orders", len(orders)).
			Msg("item fetch failed, products omitted from summary")
		itemsByOrder = nil
	}

	productIdx := make(map[uuid.UUID]int)
	for _, o := range orders {
		// Per-product rollup, first-seen order preserved.
		for _, it := range itemsByOrder[o.ID] {
			if pos, seen := productIdx[it.ProductID]; seen {
				summary.ProductsSold[pos].Quantity += it.Quantity
				summary.ProductsSold[pos].Total = summary.ProductsSold[pos].Total.Add(it.Total)
				continue
			}
			productIdx[it.ProductID] = len(summary.ProductsSold)
			summary.ProductsSold = append(summary.ProductsSold, dto.ProductSale{
				ProductID: it.ProductID.String(),
				Name:      it.Name,
				Quantity:  it.Quantity,
				Total:     it.Total,
			})
		}

		// Payment classification — one normalized pass per order.
		for _, ev := range NormalizePayments(&o) {
			bucket := methodBucket(ev.Method)
			summary.PaymentBreakdown[bucket] = summary.PaymentBreakdown[bucket].Add(ev.Amount)
		}
		summary.TotalSales = summary.TotalSales.Add(o.Total)
	}

	return a.withRefundsAndExpenses(ctx, sessionID, summary), nil
}

// withRefundsAndExpenses fills the reserved refund/expense accumulators from
// the external collaborators; a failed sub-fetch leaves the zero default
// rather than failing the whole summary.
func (a *salesAggregator) withRefundsAndExpenses(ctx context.Context, sessionID uuid.UUID, summary *dto.SalesSummary) *dto.SalesSummary {
	if refunds, err := a.orders.SumRefunds(ctx, sessionID); err != nil {
		log.Warn().Err(err).Str("session_id", sessionID.String()).Msg("refund fetch failed, defaulting to zero")
	} else {
		summary.TotalRefund = refunds
	}
	if expenses, err := a.orders.SumExpenses(ctx, sessionID); err != nil {
		log.Warn().Err(err).Str("session_id", sessionID.String()).Msg("expense fetch failed, defaulting to zero")
	} else {
		summary.TotalExpense = expenses
	}
	return summary
}

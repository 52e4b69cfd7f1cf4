package repository

import (
	"context"

	"github.com/kwamevaughan/richuncle-outlook-sub003/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderRepository reads the external sales subsystem's tables. Strictly
// read-only — orders, items, and expenses are owned elsewhere.
type OrderRepository interface {
	// ListBySession fetches completed orders rung up under the session.
	// Scope is session-bounded, not time-bounded: an order belongs to the
	// session it was created under even if settled later.
	ListBySession(ctx context.Context, registerID, sessionID uuid.UUID) ([]model.Order, error)
	// ListItemsByOrders batch-fetches line items for many orders in one query,
	// keyed by order id.
	ListItemsByOrders(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]model.OrderItem, error)
	// SumRefunds totals refunded orders attributed to the session.
	SumRefunds(ctx context.Context, sessionID uuid.UUID) (decimal.Decimal, error)
	// SumExpenses totals expense rows attributed to the session.
	SumExpenses(ctx context.Context, sessionID uuid.UUID) (decimal.Decimal, error)
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) OrderRepository { return &orderRepo{db: db} }

func (r *orderRepo) ListBySession(ctx context.Context, registerID, sessionID uuid.UUID) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Where("register_id = ? AND session_id = ? AND status = ?", registerID, sessionID, "completed").
		Order("timestamp ASC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepo) ListItemsByOrders(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]model.OrderItem, error) {
	byOrder := make(map[uuid.UUID][]model.OrderItem, len(orderIDs))
	if len(orderIDs) == 0 {
		return byOrder, nil
	}
	var items []model.OrderItem
	err := r.db.WithContext(ctx).
		Where("order_id IN ?", orderIDs).
		Order("order_id, id").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		byOrder[it.OrderID] = append(byOrder[it.OrderID], it)
	}
	return byOrder, nil
}

func (r *orderRepo) SumRefunds(ctx context.Context, sessionID uuid.UUID) (decimal.Decimal, error) {
	return r.sumColumn(ctx, r.db.Model(&model.Order{}).
		Where("session_id = ? AND status = ?", sessionID, "refunded"), "total")
}

func (r *orderRepo) SumExpenses(ctx context.Context, sessionID uuid.UUID) (decimal.Decimal, error) {
	return r.sumColumn(ctx, r.db.Model(&model.Expense{}).
		Where("session_id = ?", sessionID), "amount")
}

func (r *orderRepo) sumColumn(ctx context.Context, q *gorm.DB, column string) (decimal.Decimal, error) {
	var row struct{ Total decimal.Decimal }
	err := q.WithContext(ctx).
		Select("COALESCE(SUM(" + column + "), 0) AS total").
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

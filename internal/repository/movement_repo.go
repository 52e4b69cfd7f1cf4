package repository

import (
	"context"

	"github.com/kwamevaughan/richuncle-outlook-sub003/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MovementRepository is append-only: movements are never updated or deleted
// (audit trail), so the interface deliberately exposes no mutation beyond
// CreateMovement.
type MovementRepository interface {
	CreateMovement(ctx context.Context, m *model.CashMovement) error
	ListMovements(ctx context.Context, sessionID uuid.UUID) ([]model.CashMovement, error)
	// SumByType returns {cash_in: total, cash_out: total} for one session,
	// computed in a single GROUP BY pass.
	SumByType(ctx context.Context, sessionID uuid.UUID) (map[string]decimal.Decimal, error)
}

type movementRepo struct{ db *gorm.DB }

func NewMovementRepository(db *gorm.DB) MovementRepository { return &movementRepo{db: db} }

func (r *movementRepo) CreateMovement(ctx context.Context, m *model.CashMovement) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *movementRepo) ListMovements(ctx context.Context, sessionID uuid.UUID) ([]model.CashMovement, error) {
	var movs []model.CashMovement
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&movs).Error
	return movs, err
}

func (r *movementRepo) SumByType(ctx context.Context, sessionID uuid.UUID) (map[string]decimal.Decimal, error) {
	var rows []struct {
		Type  string
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&model.CashMovement{}).
		Select("type, COALESCE(SUM(amount), 0) AS total").
		Where("session_id = ?", sessionID).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	sums := map[string]decimal.Decimal{
		model.MovementCashIn:  decimal.Zero,
		model.MovementCashOut: decimal.Zero,
	}
	for _, row := range rows {
		sums[row.Type] = row.Total
	}
	return sums, nil
}

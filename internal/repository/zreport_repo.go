package repository

import (
	"context"
	"errors"

	"github.com/kwamevaughan/richuncle-outlook-sub003/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ZReportRepository interface {
	CreateReport(ctx context.Context, r *model.ZReport) error
	// FindBySession returns (nil, nil) when the session has no report yet.
	FindBySession(ctx context.Context, sessionID uuid.UUID) (*model.ZReport, error)
}

type zreportRepo struct{ db *gorm.DB }

func NewZReportRepository(db *gorm.DB) ZReportRepository { return &zreportRepo{db: db} }

func (r *zreportRepo) CreateReport(ctx context.Context, z *model.ZReport) error {
	return r.db.WithContext(ctx).Create(z).Error
}

func (r *zreportRepo) FindBySession(ctx context.Context, sessionID uuid.UUID) (*model.ZReport, error) {
	var z model.ZReport
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&z).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &z, nil
}

package repository

import (
	"context"
	"errors"

	"github.com/kwamevaughan/richuncle-outlook-sub003/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrDuplicateOpen is returned by CreateSession when the partial unique index
// rejects a second open session for the same register. The check-and-create
// is atomic at the storage layer — two concurrent opens race on the insert
// and exactly one wins.
var ErrDuplicateOpen = errors.New("open session already exists for register")

// ErrSessionNotFound is returned by FindSessionByID when no row matches the
// id. Only this sentinel means "the session does not exist"; any other error
// is a storage failure and must stay untyped so callers report it as such.
var ErrSessionNotFound = errors.New("session not found")

// ErrAlreadyClosed is returned by CloseSession when the conditional update
// matched no open row: the session was closed by a concurrent request (or
// never existed).
var ErrAlreadyClosed = errors.New("session not open")

type SessionRepository interface {
	CreateSession(ctx context.Context, s *model.RegisterSession) error
	FindSessionByID(ctx context.Context, id uuid.UUID) (*model.RegisterSession, error)
	// FindOpenByRegister returns (nil, nil) when the register has no open session.
	FindOpenByRegister(ctx context.Context, registerID uuid.UUID) (*model.RegisterSession, error)
	// CloseSession writes the close columns iff the row is still open.
	CloseSession(ctx context.Context, s *model.RegisterSession) error
	ListClosed(ctx context.Context, page, limit int) ([]model.RegisterSession, int64, error)
}

type sessionRepo struct{ db *gorm.DB }

func NewSessionRepository(db *gorm.DB) SessionRepository { return &sessionRepo{db: db} }

func (r *sessionRepo) CreateSession(ctx context.Context, s *model.RegisterSession) error {
	err := r.db.WithContext(ctx).Create(s).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateOpen
	}
	return err
}

func (r *sessionRepo) FindSessionByID(ctx context.Context, id uuid.UUID) (*model.RegisterSession, error) {
	var s model.RegisterSession
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepo) FindOpenByRegister(ctx context.Context, registerID uuid.UUID) (*model.RegisterSession, error) {
	var s model.RegisterSession
	err := r.db.WithContext(ctx).
		Where("register_id = ? AND status = ?", registerID, model.SessionOpen).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// CloseSession performs the open → closed transition as one conditional
// UPDATE guarded on status. Two concurrent closes both pass the service-level
// status check, but only one matches the WHERE clause here; the loser gets
// ErrAlreadyClosed and can never overwrite the winner's close columns.
func (r *sessionRepo) CloseSession(ctx context.Context, s *model.RegisterSession) error {
	res := r.db.WithContext(ctx).
		Model(&model.RegisterSession{}).
		Where("id = ? AND status = ?", s.ID, model.SessionOpen).
		Updates(map[string]interface{}{
			"status":       s.Status,
			"closing_cash": s.ClosingCash,
			"over_short":   s.OverShort,
			"close_note":   s.CloseNote,
			"closed_at":    s.ClosedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAlreadyClosed
	}
	return nil
}

func (r *sessionRepo) ListClosed(ctx context.Context, page, limit int) ([]model.RegisterSession, int64, error) {
	var sessions []model.RegisterSession
	var total int64

	q := r.db.WithContext(ctx).Model(&model.RegisterSession{}).
		Where("status = ?", model.SessionClosed)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("closed_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&sessions).Error
	return sessions, total, err
}

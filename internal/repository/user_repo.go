package repository

import (
	"context"

	"github.com/kwamevaughan/richuncle-outlook-sub003/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository resolves operator identities for display. User administration
// lives in the external identity service.
type UserRepository interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	// NamesByIDs maps user ids to full names; unknown ids are simply absent.
	NamesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
}

type userRepo struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepo{db: db} }

func (r *userRepo) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).Where("active = true").Order("full_name ASC").Find(&users).Error
	return users, err
}

func (r *userRepo) NamesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	var users []model.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		names[u.ID] = u.FullName
	}
	return names, nil
}

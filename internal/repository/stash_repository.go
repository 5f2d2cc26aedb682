package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"linkstash/internal/model"
)

type StashRepository struct {
	db *gorm.DB
}

func NewStashRepository(db *gorm.DB) *StashRepository {
	return &StashRepository{db: db}
}

func (r *StashRepository) Create(stash *model.Stash) error {
	if err := r.db.Create(stash).Error; err != nil {
		return fmt.Errorf("create stash failed: %w", err)
	}
	return nil
}

// ListByUserID returns every stash for the user. Order is whatever the
// storage hands back; nothing sorts on it.
func (r *StashRepository) ListByUserID(userID string) ([]model.Stash, error) {
	var stashes []model.Stash
	if err := r.db.Where("user_id = ?", userID).Find(&stashes).Error; err != nil {
		return nil, fmt.Errorf("list stashes failed: %w", err)
	}
	return stashes, nil
}

func (r *StashRepository) GetByID(urlID string) (*model.Stash, error) {
	var stash model.Stash
	if err := r.db.Where("url_id = ?", urlID).First(&stash).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query stash by id failed: %w", err)
	}
	return &stash, nil
}

// DeleteByID deletes by primary key only, regardless of owner. Deleting an
// id that matches nothing is not an error.
func (r *StashRepository) DeleteByID(urlID string) error {
	if err := r.db.Where("url_id = ?", urlID).Delete(&model.Stash{}).Error; err != nil {
		return fmt.Errorf("delete stash failed: %w", err)
	}
	return nil
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"devconnector/internal/model"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// withUser joins the owner's public fields.
func withUser(db *gorm.DB) *gorm.DB {
	return db.Preload("User", func(tx *gorm.DB) *gorm.DB {
		return tx.Select("id", "name", "avatar")
	})
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID uint) (*model.Profile, error) {
	var profile model.Profile
	err := withUser(r.db.WithContext(ctx)).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query profile by user failed: %w", err)
	}
	return &profile, nil
}

func (r *ProfileRepository) List(ctx context.Context) ([]model.Profile, error) {
	var profiles []model.Profile
	if err := withUser(r.db.WithContext(ctx)).Order("id ASC").Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("list profiles failed: %w", err)
	}
	return profiles, nil
}

func (r *ProfileRepository) Create(ctx context.Context, profile *model.Profile) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(profile).Error; err != nil {
		return fmt.Errorf("create profile failed: %w", err)
	}
	return nil
}

// Save writes every column of an existing profile, nested lists included.
// It never inserts: a profile removed since it was read yields
// gorm.ErrRecordNotFound.
func (r *ProfileRepository) Save(ctx context.Context, profile *model.Profile) error {
	result := r.db.WithContext(ctx).Model(profile).Select("*").Omit(clause.Associations).Updates(profile)
	if result.Error != nil {
		return fmt.Errorf("save profile failed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("save profile failed: %w", gorm.ErrRecordNotFound)
	}
	return nil
}

// DeleteAccount removes the user's profile and the user row in one
// transaction. Posts and comments written by the user are left in place.
func (r *ProfileRepository) DeleteAccount(ctx context.Context, userID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.Profile{}).Error; err != nil {
			return fmt.Errorf("delete profile failed: %w", err)
		}
		if err := tx.Delete(&model.User{}, userID).Error; err != nil {
			return fmt.Errorf("delete user failed: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete account failed: %w", err)
	}
	return nil
}

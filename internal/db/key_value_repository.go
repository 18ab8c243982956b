package db

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/cyclecare/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrEmptyKey = errors.New("storage key must not be empty")

// KeyValueRepository is the device-local string store every service persists through.
type KeyValueRepository struct {
	database *gorm.DB
	now      func() time.Time
}

func NewKeyValueRepository(database *gorm.DB) *KeyValueRepository {
	return &KeyValueRepository{database: database, now: time.Now}
}

func (repo *KeyValueRepository) Get(ctx context.Context, key string) (string, bool, error) {
	if strings.TrimSpace(key) == "" {
		return "", false, ErrEmptyKey
	}

	entry := models.KeyValueEntry{}
	result := repo.database.WithContext(ctx).
		Where("storage_key = ?", key).
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return "", false, result.Error
	}
	if result.RowsAffected == 0 {
		return "", false, nil
	}
	return entry.Value, true, nil
}

func (repo *KeyValueRepository) Set(ctx context.Context, key string, value string) error {
	if strings.TrimSpace(key) == "" {
		return ErrEmptyKey
	}

	entry := models.KeyValueEntry{
		Key:       key,
		Value:     value,
		UpdatedAt: repo.now().UTC(),
	}
	return repo.database.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "storage_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

func (repo *KeyValueRepository) Remove(ctx context.Context, key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrEmptyKey
	}
	return repo.database.WithContext(ctx).Where("storage_key = ?", key).Delete(&models.KeyValueEntry{}).Error
}

package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/terraincognita07/cyclecare/internal/models"
)

func (service *CommunityService) ListBuddies(ctx context.Context) ([]models.CycleBuddy, error) {
	return loadCollection[models.CycleBuddy](ctx, service.store, service.logger, BuddiesStorageKey)
}

// AddBuddy links another user by id. The sync status is always "different"
// because buddies' cycle data is not shared with this device.
func (service *CommunityService) AddBuddy(ctx context.Context, buddyUserID string, buddyUserName string) (models.CycleBuddy, error) {
	buddyUserID = strings.TrimSpace(buddyUserID)
	buddyUserName = strings.TrimSpace(buddyUserName)
	if buddyUserID == "" || buddyUserName == "" {
		return models.CycleBuddy{}, fmt.Errorf("%w: buddy id and name are required", ErrInvalidBuddyInput)
	}

	unlock := service.locks.lock(BuddiesStorageKey)
	defer unlock()

	buddies, err := loadCollection[models.CycleBuddy](ctx, service.store, service.logger, BuddiesStorageKey)
	if err != nil {
		return models.CycleBuddy{}, err
	}
	for _, existing := range buddies {
		if existing.UserID == buddyUserID {
			return existing, ErrBuddyAlreadyExists
		}
	}

	buddy := models.CycleBuddy{
		ID:              uuid.NewString(),
		UserID:          buddyUserID,
		UserName:        buddyUserName,
		CycleSyncStatus: models.CycleSyncDifferent,
		LastActive:      service.timestamp(),
		IsConnected:     true,
	}
	buddies = append(buddies, buddy)
	if err := saveCollection(ctx, service.store, BuddiesStorageKey, buddies); err != nil {
		return models.CycleBuddy{}, err
	}
	return buddy, nil
}

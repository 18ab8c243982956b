package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/terraincognita07/cyclecare/internal/security"
)

const (
	shareCodeKeyPrefix      = "@share_code:"
	shareCodeOwnerKeyPrefix = "@share_code_owner:"
	shareCodeAttempts       = 5
)

var errShareCodeExhausted = errors.New("could not allocate a unique share code")

// GenerateShareCode returns the device's share code, allocating a random one
// on first use. Codes are registry entries, not encodings of the user id.
func (service *CommunityService) GenerateShareCode(ctx context.Context) (string, error) {
	userID, err := service.EnsureUserID(ctx)
	if err != nil {
		return "", err
	}

	unlock := service.locks.lock(shareCodeKeyPrefix)
	defer unlock()

	ownerKey := shareCodeOwnerKeyPrefix + userID
	existing, found, err := service.store.Get(ctx, ownerKey)
	if err != nil {
		return "", storageError("get", ownerKey, err)
	}
	if found && security.IsShareCode(existing) {
		return existing, nil
	}

	for attempt := 0; attempt < shareCodeAttempts; attempt++ {
		code, err := security.NewShareCode()
		if err != nil {
			return "", fmt.Errorf("generate share code: %w", err)
		}

		codeKey := shareCodeKeyPrefix + code
		_, taken, err := service.store.Get(ctx, codeKey)
		if err != nil {
			return "", storageError("get", codeKey, err)
		}
		if taken {
			continue
		}

		if err := service.store.Set(ctx, codeKey, userID); err != nil {
			return "", storageError("set", codeKey, err)
		}
		if err := service.store.Set(ctx, ownerKey, code); err != nil {
			return "", storageError("set", ownerKey, err)
		}
		return code, nil
	}
	return "", errShareCodeExhausted
}

// DecodeShareCode resolves a code issued by GenerateShareCode. Unknown or
// malformed codes report false and never a guessed id.
func (service *CommunityService) DecodeShareCode(ctx context.Context, code string) (string, bool, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !security.IsShareCode(code) {
		return "", false, nil
	}

	codeKey := shareCodeKeyPrefix + code
	userID, found, err := service.store.Get(ctx, codeKey)
	if err != nil {
		return "", false, storageError("get", codeKey, err)
	}
	if !found || strings.TrimSpace(userID) == "" {
		return "", false, nil
	}
	return userID, true, nil
}

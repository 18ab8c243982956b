package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf16"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	PostsStorageKey    = "@community_posts"
	CommentsStorageKey = "@community_comments"
	BuddiesStorageKey  = "@cycle_buddies"
	UserIDStorageKey   = "@user_id"

	postLikeKeyPrefix = "@post_like:"
	postLikeMarker    = "1"
)

var (
	ErrInvalidPostInput    = errors.New("invalid post input")
	ErrInvalidCommentInput = errors.New("invalid comment input")
	ErrInvalidBuddyInput   = errors.New("invalid buddy input")
	ErrPostNotFound        = errors.New("post not found")
	ErrBuddyAlreadyExists  = errors.New("buddy already exists")
)

var anonymousNames = [...]string{
	"Luna",
	"Rose",
	"Iris",
	"Willow",
	"Sage",
	"Ivy",
	"Aurora",
	"Daisy",
	"Hazel",
	"Jade",
}

// CommunityService stores posts, comments and buddies for the single
// identity of this device. Each collection is one JSON blob, so every
// read-modify-write holds the collection's key lock.
type CommunityService struct {
	store  KeyValueStore
	logger *zap.Logger
	now    func() time.Time
	locks  *keyedMutex

	identityMu sync.Mutex
	userID     string
}

func NewCommunityService(store KeyValueStore, logger *zap.Logger, now func() time.Time) *CommunityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &CommunityService{
		store:  store,
		logger: logger,
		now:    now,
		locks:  newKeyedMutex(),
	}
}

// EnsureUserID returns the device identity, creating and persisting it on
// first use. Concurrent first callers all observe the same id.
func (service *CommunityService) EnsureUserID(ctx context.Context) (string, error) {
	service.identityMu.Lock()
	defer service.identityMu.Unlock()

	if service.userID != "" {
		return service.userID, nil
	}

	stored, found, err := service.store.Get(ctx, UserIDStorageKey)
	if err != nil {
		return "", storageError("get", UserIDStorageKey, err)
	}
	if found && strings.TrimSpace(stored) != "" {
		service.userID = stored
		return stored, nil
	}

	userID := uuid.NewString()
	if err := service.store.Set(ctx, UserIDStorageKey, userID); err != nil {
		return "", storageError("set", UserIDStorageKey, err)
	}
	service.userID = userID
	service.logger.Info("created device identity", zap.String("user_id", userID))
	return userID, nil
}

// AnonymousName derives a stable display name from userID. Different ids may
// share a name.
func AnonymousName(userID string) string {
	hash := anonymousNameHash(userID)
	return anonymousNames[hash%int64(len(anonymousNames))] + strconv.FormatInt(hash%1000, 10)
}

// anonymousNameHash is the 31-multiplier string hash over UTF-16 code units
// with 32-bit wraparound, returned as an absolute value.
func anonymousNameHash(value string) int64 {
	var hash int32
	for _, unit := range utf16.Encode([]rune(value)) {
		hash = hash*31 + int32(unit)
	}
	result := int64(hash)
	if result < 0 {
		result = -result
	}
	return result
}

func (service *CommunityService) currentIdentity(ctx context.Context) (string, string, error) {
	userID, err := service.EnsureUserID(ctx)
	if err != nil {
		return "", "", err
	}
	return userID, AnonymousName(userID), nil
}

func postLikeKey(postID string, userID string) string {
	return postLikeKeyPrefix + postID + ":" + userID
}

func (service *CommunityService) timestamp() time.Time {
	return service.now().UTC()
}

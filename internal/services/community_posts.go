package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/terraincognita07/cyclecare/internal/models"
	"go.uber.org/zap"
)

const (
	maxPostTitleLength   = 120
	maxPostContentLength = 5000
	maxPostTags          = 10
	maxPostTagLength     = 32
)

type PostFilter struct {
	Category *models.PostCategory
	Limit    int
}

type NewPostInput struct {
	Title    string
	Content  string
	Category models.PostCategory
	Phase    models.CyclePhase
	Tags     []string
}

// ListPosts returns pinned posts first, then everything else newest first.
// IsLiked reflects the device identity.
func (service *CommunityService) ListPosts(ctx context.Context, filter PostFilter) ([]models.CommunityPost, error) {
	userID, err := service.EnsureUserID(ctx)
	if err != nil {
		return nil, err
	}

	posts, err := loadCollection[models.CommunityPost](ctx, service.store, service.logger, PostsStorageKey)
	if err != nil {
		return nil, err
	}

	filtered := make([]models.CommunityPost, 0, len(posts))
	for _, post := range posts {
		if filter.Category != nil && post.Category != *filter.Category {
			continue
		}
		filtered = append(filtered, post)
	}

	sortPostsForFeed(filtered)
	if filter.Limit > 0 && len(filtered) > filter.Limit {
		filtered = filtered[:filter.Limit]
	}

	for index := range filtered {
		liked, err := service.isPostLiked(ctx, filtered[index].ID, userID)
		if err != nil {
			return nil, err
		}
		filtered[index].IsLiked = liked
	}
	return filtered, nil
}

func sortPostsForFeed(posts []models.CommunityPost) {
	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].IsPinned != posts[j].IsPinned {
			return posts[i].IsPinned
		}
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
}

func (service *CommunityService) CreatePost(ctx context.Context, input NewPostInput) (models.CommunityPost, error) {
	normalized, err := normalizePostInput(input)
	if err != nil {
		return models.CommunityPost{}, err
	}

	userID, userName, err := service.currentIdentity(ctx)
	if err != nil {
		return models.CommunityPost{}, err
	}

	unlock := service.locks.lock(PostsStorageKey)
	defer unlock()

	posts, err := loadCollection[models.CommunityPost](ctx, service.store, service.logger, PostsStorageKey)
	if err != nil {
		return models.CommunityPost{}, err
	}

	now := service.timestamp()
	post := models.CommunityPost{
		ID:        uuid.NewString(),
		UserID:    userID,
		UserName:  userName,
		Category:  normalized.Category,
		Title:     normalized.Title,
		Content:   normalized.Content,
		Phase:     normalized.Phase,
		CreatedAt: now,
		UpdatedAt: now,
		Tags:      normalized.Tags,
	}

	posts = append(posts, post)
	if err := saveCollection(ctx, service.store, PostsStorageKey, posts); err != nil {
		return models.CommunityPost{}, err
	}
	return post, nil
}

// TogglePostLike flips the like state of postID for the device identity and
// returns the new state. The marker and the counter change under one lock.
func (service *CommunityService) TogglePostLike(ctx context.Context, postID string) (bool, error) {
	userID, err := service.EnsureUserID(ctx)
	if err != nil {
		return false, err
	}

	unlock := service.locks.lock(PostsStorageKey)
	defer unlock()

	posts, err := loadCollection[models.CommunityPost](ctx, service.store, service.logger, PostsStorageKey)
	if err != nil {
		return false, err
	}

	index := findPostIndex(posts, postID)
	if index < 0 {
		return false, ErrPostNotFound
	}

	likeKey := postLikeKey(postID, userID)
	liked, err := service.isPostLiked(ctx, postID, userID)
	if err != nil {
		return false, err
	}

	previous := posts[index]
	post := &posts[index]
	if liked {
		if post.Likes > 0 {
			post.Likes--
		}
	} else {
		post.Likes++
	}
	post.UpdatedAt = service.timestamp()

	// The counter is saved before the marker moves; a failed marker write
	// puts the counter back.
	if err := saveCollection(ctx, service.store, PostsStorageKey, posts); err != nil {
		return false, err
	}

	var markerErr error
	if liked {
		if err := service.store.Remove(ctx, likeKey); err != nil {
			markerErr = storageError("remove", likeKey, err)
		}
	} else {
		if err := service.store.Set(ctx, likeKey, postLikeMarker); err != nil {
			markerErr = storageError("set", likeKey, err)
		}
	}
	if markerErr != nil {
		posts[index] = previous
		if err := saveCollection(ctx, service.store, PostsStorageKey, posts); err != nil {
			service.logger.Error("like counter rollback failed",
				zap.String("post_id", postID),
				zap.Int("likes", previous.Likes),
				zap.Error(err),
			)
		}
		return false, markerErr
	}
	return !liked, nil
}

func (service *CommunityService) isPostLiked(ctx context.Context, postID string, userID string) (bool, error) {
	likeKey := postLikeKey(postID, userID)
	value, found, err := service.store.Get(ctx, likeKey)
	if err != nil {
		return false, storageError("get", likeKey, err)
	}
	return found && value == postLikeMarker, nil
}

func findPostIndex(posts []models.CommunityPost, postID string) int {
	for index := range posts {
		if posts[index].ID == postID {
			return index
		}
	}
	return -1
}

func normalizePostInput(input NewPostInput) (NewPostInput, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Content = strings.TrimSpace(input.Content)

	titleLength := utf8.RuneCountInString(input.Title)
	if titleLength == 0 || titleLength > maxPostTitleLength {
		return NewPostInput{}, fmt.Errorf("%w: title must be 1..%d characters", ErrInvalidPostInput, maxPostTitleLength)
	}
	contentLength := utf8.RuneCountInString(input.Content)
	if contentLength == 0 || contentLength > maxPostContentLength {
		return NewPostInput{}, fmt.Errorf("%w: content must be 1..%d characters", ErrInvalidPostInput, maxPostContentLength)
	}
	if !input.Category.Valid() {
		return NewPostInput{}, fmt.Errorf("%w: unknown category %q", ErrInvalidPostInput, input.Category)
	}
	if input.Phase != "" && !input.Phase.Valid() {
		return NewPostInput{}, fmt.Errorf("%w: unknown phase %q", ErrInvalidPostInput, input.Phase)
	}

	tags := make([]string, 0, len(input.Tags))
	seen := make(map[string]struct{}, len(input.Tags))
	for _, raw := range input.Tags {
		tag := strings.TrimSpace(raw)
		if tag == "" {
			continue
		}
		if utf8.RuneCountInString(tag) > maxPostTagLength {
			return NewPostInput{}, fmt.Errorf("%w: tag longer than %d characters", ErrInvalidPostInput, maxPostTagLength)
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	if len(tags) > maxPostTags {
		return NewPostInput{}, fmt.Errorf("%w: at most %d tags", ErrInvalidPostInput, maxPostTags)
	}
	input.Tags = tags
	return input, nil
}

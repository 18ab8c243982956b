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

const maxCommentLength = 2000

// ListComments returns the comments on postID oldest first.
func (service *CommunityService) ListComments(ctx context.Context, postID string) ([]models.Comment, error) {
	comments, err := loadCollection[models.Comment](ctx, service.store, service.logger, CommentsStorageKey)
	if err != nil {
		return nil, err
	}

	result := make([]models.Comment, 0)
	for _, comment := range comments {
		if comment.PostID == postID {
			result = append(result, comment)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// AddComment stores the comment and bumps the parent post's counter. A
// missing parent is logged and skipped; the comment is kept either way.
func (service *CommunityService) AddComment(ctx context.Context, postID string, content string) (models.Comment, error) {
	postID = strings.TrimSpace(postID)
	content = strings.TrimSpace(content)
	if postID == "" {
		return models.Comment{}, fmt.Errorf("%w: post id is required", ErrInvalidCommentInput)
	}
	length := utf8.RuneCountInString(content)
	if length == 0 || length > maxCommentLength {
		return models.Comment{}, fmt.Errorf("%w: content must be 1..%d characters", ErrInvalidCommentInput, maxCommentLength)
	}

	userID, userName, err := service.currentIdentity(ctx)
	if err != nil {
		return models.Comment{}, err
	}

	// Posts before comments, always, so AddComment never deadlocks against itself.
	unlockPosts := service.locks.lock(PostsStorageKey)
	defer unlockPosts()
	unlockComments := service.locks.lock(CommentsStorageKey)
	defer unlockComments()

	comments, err := loadCollection[models.Comment](ctx, service.store, service.logger, CommentsStorageKey)
	if err != nil {
		return models.Comment{}, err
	}

	comment := models.Comment{
		ID:        uuid.NewString(),
		PostID:    postID,
		UserID:    userID,
		UserName:  userName,
		Content:   content,
		CreatedAt: service.timestamp(),
	}
	comments = append(comments, comment)
	if err := saveCollection(ctx, service.store, CommentsStorageKey, comments); err != nil {
		return models.Comment{}, err
	}

	// The comment is stored at this point, so counter failures are logged
	// rather than returned.
	posts, err := loadCollection[models.CommunityPost](ctx, service.store, service.logger, PostsStorageKey)
	if err != nil {
		service.logCommentCounterAnomaly(postID, comment.ID, err)
		return comment, nil
	}
	index := findPostIndex(posts, postID)
	if index < 0 {
		service.logger.Warn("comment references missing post",
			zap.String("post_id", postID),
			zap.String("comment_id", comment.ID),
		)
		return comment, nil
	}

	posts[index].Comments++
	posts[index].UpdatedAt = comment.CreatedAt
	if err := saveCollection(ctx, service.store, PostsStorageKey, posts); err != nil {
		service.logCommentCounterAnomaly(postID, comment.ID, err)
	}
	return comment, nil
}

func (service *CommunityService) logCommentCounterAnomaly(postID string, commentID string, err error) {
	service.logger.Error("comment stored but post counter not updated",
		zap.String("post_id", postID),
		zap.String("comment_id", commentID),
		zap.Error(err),
	)
}

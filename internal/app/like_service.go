package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"postboard/internal/model"
	"postboard/internal/repository"
)

const maxToggleAttempts = 3

// LikeStore is satisfied by repository.LikeRepository. Create must return
// repository.ErrLikeExists when the (user, post) unique index rejects the row
// and repository.ErrPostMissing when the post is gone.
type LikeStore interface {
	Exists(ctx context.Context, userID, postID uint) (bool, error)
	Create(ctx context.Context, userID, postID uint) error
	Delete(ctx context.Context, userID, postID uint) (bool, error)
	CountByPostID(ctx context.Context, postID uint) (int64, error)
}

type PostExistence interface {
	Exists(ctx context.Context, id uint) (bool, error)
}

type LikeEventPublisher interface {
	PublishLikeEvent(ctx context.Context, event model.LikeEvent) error
}

type ToggleResult struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"likeCount"`
}

type LikeService struct {
	likes     LikeStore
	posts     PostExistence
	publisher LikeEventPublisher
	cache     PostCache
	logger    *zap.Logger
	now       func() time.Time
}

// NewLikeService accepts a nil publisher or cache and substitutes no-ops.
func NewLikeService(likes LikeStore, posts PostExistence, publisher LikeEventPublisher, cache PostCache, logger *zap.Logger) *LikeService {
	if publisher == nil {
		publisher = nopPublisher{}
	}
	if cache == nil {
		cache = nopPostCache{}
	}
	return &LikeService{
		likes:     likes,
		posts:     posts,
		publisher: publisher,
		cache:     cache,
		logger:    logger,
		now:       time.Now,
	}
}

// Toggle flips the like state of (userID, postID) and returns the state and count after the flip.
// A request that loses a race against another toggle for the same pair re-reads and decides again.
func (s *LikeService) Toggle(ctx context.Context, userID, postID uint) (*ToggleResult, error) {
	exists, err := s.posts.Exists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrPostNotFound
	}

	liked, err := s.decide(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	count, err := s.likes.CountByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}
	result := &ToggleResult{Liked: liked, LikeCount: count}

	s.afterToggle(ctx, userID, postID, result)
	return result, nil
}

func (s *LikeService) decide(ctx context.Context, userID, postID uint) (bool, error) {
	for attempt := 1; attempt <= maxToggleAttempts; attempt++ {
		present, err := s.likes.Exists(ctx, userID, postID)
		if err != nil {
			return false, err
		}

		if present {
			removed, err := s.likes.Delete(ctx, userID, postID)
			if err != nil {
				return false, err
			}
			if removed {
				return false, nil
			}
			// A concurrent unlike removed the row between the read and the delete.
		} else {
			err = s.likes.Create(ctx, userID, postID)
			if err == nil {
				return true, nil
			}
			if errors.Is(err, repository.ErrPostMissing) {
				return false, ErrPostNotFound
			}
			if !errors.Is(err, repository.ErrLikeExists) {
				return false, err
			}

			present, err = s.likes.Exists(ctx, userID, postID)
			if err != nil {
				return false, err
			}
			if present {
				return true, nil
			}
		}
		s.logger.Debug("like toggle lost a race, retrying",
			zap.Uint("user_id", userID),
			zap.Uint("post_id", postID),
			zap.Int("attempt", attempt),
		)
	}
	return false, fmt.Errorf("toggle like for user %d post %d: %w", userID, postID, ErrConflict)
}

func (s *LikeService) afterToggle(ctx context.Context, userID, postID uint, result *ToggleResult) {
	if err := s.cache.DeletePostDetail(ctx, postID); err != nil {
		s.logger.Warn("invalidate post cache failed", zap.Uint("post_id", postID), zap.Error(err))
	}

	event := model.LikeEvent{
		UserID:    userID,
		PostID:    postID,
		Liked:     result.Liked,
		LikeCount: result.LikeCount,
		At:        s.now().UTC(),
	}
	if err := s.publisher.PublishLikeEvent(ctx, event); err != nil {
		s.logger.Warn("publish like event failed",
			zap.Uint("user_id", userID),
			zap.Uint("post_id", postID),
			zap.Error(err),
		)
	}
}

type nopPublisher struct{}

func (nopPublisher) PublishLikeEvent(context.Context, model.LikeEvent) error { return nil }

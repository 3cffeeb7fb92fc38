package app

import (
	"context"

	"postboard/internal/model"
	"postboard/internal/repository"
)

const notificationListLimit = 50

type NotificationService struct {
	notificationRepo *repository.NotificationRepository
	posts            OwnerLookup
}

func NewNotificationService(notificationRepo *repository.NotificationRepository, posts OwnerLookup) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		posts:            posts,
	}
}

// HandleLikeEvent notifies the post owner about a like from someone else.
// Unlikes, self-likes and likes on deleted posts are dropped.
func (s *NotificationService) HandleLikeEvent(ctx context.Context, event model.LikeEvent) error {
	if !event.Liked {
		return nil
	}

	ownerID, found, err := s.posts.OwnerID(ctx, event.PostID)
	if err != nil {
		return err
	}
	if !found || ownerID == event.UserID {
		return nil
	}

	return s.notificationRepo.Create(ctx, &model.Notification{
		UserID:    ownerID,
		ActorID:   event.UserID,
		PostID:    event.PostID,
		Kind:      model.NotificationPostLiked,
		CreatedAt: event.At,
	})
}

func (s *NotificationService) List(ctx context.Context, userID uint) ([]model.Notification, error) {
	return s.notificationRepo.ListByUserID(ctx, userID, notificationListLimit)
}

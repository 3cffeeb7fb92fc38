package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postboard/internal/model"
	"postboard/internal/pkg/testdb"
	"postboard/internal/repository"
)

func TestNotificationService_HandleLikeEvent(t *testing.T) {
	db := testdb.New(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	post := createPost(t, db, alice.ID)
	svc := NewNotificationService(repository.NewNotificationRepository(db), repository.NewPostRepository(db))
	ctx := context.Background()
	at := time.Now().UTC()

	events := []model.LikeEvent{
		{UserID: bob.ID, PostID: post.ID, Liked: true, LikeCount: 1, At: at},
		{UserID: bob.ID, PostID: post.ID, Liked: false, LikeCount: 0, At: at},
		{UserID: alice.ID, PostID: post.ID, Liked: true, LikeCount: 1, At: at},
		{UserID: bob.ID, PostID: 999, Liked: true, LikeCount: 1, At: at},
	}
	for _, ev := range events {
		require.NoError(t, svc.HandleLikeEvent(ctx, ev))
	}

	forAlice, err := svc.List(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, forAlice, 1)
	assert.Equal(t, bob.ID, forAlice[0].ActorID)
	assert.Equal(t, model.NotificationPostLiked, forAlice[0].Kind)

	forBob, err := svc.List(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, forBob)
}

func TestNotificationService_OwnerLookupError(t *testing.T) {
	db := testdb.New(t)
	svc := NewNotificationService(repository.NewNotificationRepository(db), failingOwners{err: errStoreDown})

	err := svc.HandleLikeEvent(context.Background(), model.LikeEvent{UserID: 1, PostID: 1, Liked: true})
	assert.ErrorIs(t, err, errStoreDown)
}

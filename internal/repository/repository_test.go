package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"postboard/internal/model"
	"postboard/internal/pkg/testdb"
)

func seedUser(t *testing.T, db *gorm.DB, name string) *model.User {
	t.Helper()
	u := &model.User{Username: name, Email: name + "@example.com", PasswordHash: "x"}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), u))
	return u
}

func seedPost(t *testing.T, db *gorm.DB, owner uint, title string) *model.Post {
	t.Helper()
	p := &model.Post{UserID: owner, Title: title, Content: "some content here"}
	require.NoError(t, NewPostRepository(db).Create(context.Background(), p))
	return p
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	db := testdb.New(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	seedUser(t, db, "alice")
	err := repo.Create(ctx, &model.User{Username: "alice", Email: "other@example.com", PasswordHash: "x"})
	assert.ErrorIs(t, err, ErrUserExists)

	got, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "alice@example.com", got.Email)

	missing, err := repo.GetByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestLikeRepository_UniquePair(t *testing.T) {
	db := testdb.New(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()
	u := seedUser(t, db, "alice")
	p := seedPost(t, db, u.ID, "first post")

	require.NoError(t, repo.Create(ctx, u.ID, p.ID))
	assert.ErrorIs(t, repo.Create(ctx, u.ID, p.ID), ErrLikeExists)

	exists, err := repo.Exists(ctx, u.ID, p.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	count, err := repo.CountByPostID(ctx, p.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	removed, err := repo.Delete(ctx, u.ID, p.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Delete(ctx, u.ID, p.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestLikeRepository_PostForeignKey(t *testing.T) {
	db := testdb.New(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()
	u := seedUser(t, db, "alice")
	p := seedPost(t, db, u.ID, "first post")

	assert.ErrorIs(t, repo.Create(ctx, u.ID, p.ID+100), ErrPostMissing)

	require.NoError(t, repo.Create(ctx, u.ID, p.ID))
	require.NoError(t, db.Delete(&model.Post{}, p.ID).Error)

	count, err := repo.CountByPostID(ctx, p.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestPostRepository_SummaryAndOwnership(t *testing.T) {
	db := testdb.New(t)
	posts := NewPostRepository(db)
	likes := NewLikeRepository(db)
	comments := NewCommentRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	first := seedPost(t, db, alice.ID, "first post")
	second := seedPost(t, db, alice.ID, "second post")

	require.NoError(t, likes.Create(ctx, alice.ID, first.ID))
	require.NoError(t, likes.Create(ctx, bob.ID, first.ID))
	require.NoError(t, comments.Create(ctx, &model.Comment{UserID: bob.ID, PostID: first.ID, Content: "nice"}))

	summary, err := posts.GetSummary(ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.Equal(t, "alice", summary.Author)
	assert.EqualValues(t, 2, summary.LikeCount)
	assert.EqualValues(t, 1, summary.CommentCount)

	list, err := posts.List(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)

	total, err := posts.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	owner, found, err := posts.OwnerID(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, alice.ID, owner)

	_, found, err = posts.OwnerID(ctx, 9999)
	require.NoError(t, err)
	assert.False(t, found)

	updated, err := posts.UpdateByIDAndUserID(ctx, first.ID, bob.ID, "hijacked", "hijacked content")
	require.NoError(t, err)
	assert.False(t, updated)

	deleted, err := posts.DeleteByIDAndUserID(ctx, first.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	count, err := likes.CountByPostID(ctx, first.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	left, err := comments.ListByPostID(ctx, first.ID)
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestCommentRepository_ListWithAuthor(t *testing.T) {
	db := testdb.New(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	p := seedPost(t, db, alice.ID, "first post")

	require.NoError(t, repo.Create(ctx, &model.Comment{UserID: bob.ID, PostID: p.ID, Content: "one"}))
	require.NoError(t, repo.Create(ctx, &model.Comment{UserID: alice.ID, PostID: p.ID, Content: "two"}))

	list, err := repo.ListByPostID(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "bob", list[0].Author)
	assert.Equal(t, "one", list[0].Content)

	ok, err := repo.DeleteByIDAndUserID(ctx, list[0].ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNotificationRepository_NewestFirst(t *testing.T) {
	db := testdb.New(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	for i := uint(1); i <= 3; i++ {
		require.NoError(t, repo.Create(ctx, &model.Notification{UserID: 1, ActorID: 2, PostID: i, Kind: model.NotificationPostLiked}))
	}
	require.NoError(t, repo.Create(ctx, &model.Notification{UserID: 5, ActorID: 2, PostID: 1, Kind: model.NotificationPostLiked}))

	items, err := repo.ListByUserID(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.EqualValues(t, 3, items[0].PostID)
}

package app

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"postboard/internal/model"
	"postboard/internal/repository"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []model.LikeEvent
	err    error
}

func (p *recordingPublisher) PublishLikeEvent(_ context.Context, event model.LikeEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) Events() []model.LikeEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]model.LikeEvent(nil), p.events...)
}

// memoryCache is a PostCache that records invalidations.
type memoryCache struct {
	mu          sync.Mutex
	items       map[uint]*model.PostDetail
	invalidated []uint
	getErr      error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: make(map[uint]*model.PostDetail)}
}

func (c *memoryCache) GetPostDetail(_ context.Context, id uint) (*model.PostDetail, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	d, ok := c.items[id]
	return d, ok, nil
}

func (c *memoryCache) SetPostDetail(_ context.Context, d *model.PostDetail) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[d.ID] = d
	return nil
}

func (c *memoryCache) DeletePostDetail(_ context.Context, id uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, id)
	c.invalidated = append(c.invalidated, id)
	return nil
}

func (c *memoryCache) Invalidated() []uint {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]uint(nil), c.invalidated...)
}

type staticOwners map[uint]uint

func (o staticOwners) OwnerID(_ context.Context, id uint) (uint, bool, error) {
	owner, ok := o[id]
	return owner, ok, nil
}

type failingOwners struct{ err error }

func (f failingOwners) OwnerID(context.Context, uint) (uint, bool, error) {
	return 0, false, f.err
}

var errStoreDown = errors.New("store down")

func createUser(t *testing.T, db *gorm.DB, name string) *model.User {
	t.Helper()
	u := &model.User{Username: name, Email: name + "@example.com", PasswordHash: "x"}
	require.NoError(t, repository.NewUserRepository(db).Create(context.Background(), u))
	return u
}

func createPost(t *testing.T, db *gorm.DB, owner uint) *model.Post {
	t.Helper()
	p := &model.Post{UserID: owner, Title: "hello world", Content: "a post worth liking"}
	require.NoError(t, repository.NewPostRepository(db).Create(context.Background(), p))
	return p
}

package app

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"postboard/internal/model"
	"postboard/internal/repository"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 50
)

// PostCache stores post details without any per-viewer fields.
type PostCache interface {
	GetPostDetail(ctx context.Context, id uint) (*model.PostDetail, bool, error)
	SetPostDetail(ctx context.Context, detail *model.PostDetail) error
	DeletePostDetail(ctx context.Context, id uint) error
}

type PostInput struct {
	Title   string `validate:"required,min=3,max=100"`
	Content string `validate:"required,min=10"`
}

type PostPage struct {
	Posts []model.PostSummary `json:"posts"`
	Page  int                 `json:"page"`
	Limit int                 `json:"limit"`
	Total int64               `json:"total"`
}

type PostView struct {
	*model.PostDetail
	LikedByMe bool `json:"likedByMe"`
}

type PostService struct {
	postRepo    *repository.PostRepository
	commentRepo *repository.CommentRepository
	likes       LikeStore
	cache       PostCache
	logger      *zap.Logger
}

func NewPostService(postRepo *repository.PostRepository, commentRepo *repository.CommentRepository, likes LikeStore, cache PostCache, logger *zap.Logger) *PostService {
	if cache == nil {
		cache = nopPostCache{}
	}
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		likes:       likes,
		cache:       cache,
		logger:      logger,
	}
}

func (s *PostService) Create(ctx context.Context, userID uint, input PostInput) (*model.Post, error) {
	input = trimPostInput(input)
	if err := ValidateStruct(input); err != nil {
		return nil, err
	}

	post := &model.Post{UserID: userID, Title: input.Title, Content: input.Content}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) List(ctx context.Context, page, limit int) (*PostPage, error) {
	page, limit = normalizePage(page, limit)

	posts, err := s.postRepo.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	total, err := s.postRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &PostPage{Posts: posts, Page: page, Limit: limit, Total: total}, nil
}

// Detail serves the post from cache when possible. viewerID 0 means anonymous.
func (s *PostService) Detail(ctx context.Context, id, viewerID uint) (*PostView, error) {
	detail, err := s.loadDetail(ctx, id)
	if err != nil {
		return nil, err
	}

	view := &PostView{PostDetail: detail}
	if viewerID != 0 {
		liked, err := s.likes.Exists(ctx, viewerID, id)
		if err != nil {
			return nil, err
		}
		view.LikedByMe = liked
	}
	return view, nil
}

func (s *PostService) Update(ctx context.Context, userID, id uint, input PostInput) (*model.Post, error) {
	input = trimPostInput(input)
	if err := ValidateStruct(input); err != nil {
		return nil, err
	}

	updated, err := s.postRepo.UpdateByIDAndUserID(ctx, id, userID, input.Title, input.Content)
	if err != nil {
		return nil, err
	}
	if !updated {
		if err := s.missOrForbidden(ctx, userID, id); err != nil {
			return nil, err
		}
	}
	s.invalidate(ctx, id)

	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

func (s *PostService) Delete(ctx context.Context, userID, id uint) error {
	deleted, err := s.postRepo.DeleteByIDAndUserID(ctx, id, userID)
	if err != nil {
		return err
	}
	if !deleted {
		if err := s.missOrForbidden(ctx, userID, id); err != nil {
			return err
		}
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *PostService) loadDetail(ctx context.Context, id uint) (*model.PostDetail, error) {
	cached, ok, err := s.cache.GetPostDetail(ctx, id)
	if err != nil {
		s.logger.Warn("read post cache failed", zap.Uint("post_id", id), zap.Error(err))
	}
	if ok {
		return cached, nil
	}

	summary, err := s.postRepo.GetSummary(ctx, id)
	if err != nil {
		return nil, err
	}
	if summary == nil {
		return nil, ErrPostNotFound
	}
	comments, err := s.commentRepo.ListByPostID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &model.PostDetail{PostSummary: *summary, Comments: comments}
	if err := s.cache.SetPostDetail(ctx, detail); err != nil {
		s.logger.Warn("write post cache failed", zap.Uint("post_id", id), zap.Error(err))
	}
	return detail, nil
}

// missOrForbidden explains why a mutation filtered by owner touched no rows.
// MySQL reports zero affected rows for an update that changes nothing, so an owned post is not an error.
func (s *PostService) missOrForbidden(ctx context.Context, userID, id uint) error {
	ownerID, found, err := s.postRepo.OwnerID(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return ErrPostNotFound
	}
	if ownerID != userID {
		return ErrForbidden
	}
	return nil
}

func (s *PostService) invalidate(ctx context.Context, id uint) {
	if err := s.cache.DeletePostDetail(ctx, id); err != nil {
		s.logger.Warn("invalidate post cache failed", zap.Uint("post_id", id), zap.Error(err))
	}
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

func trimPostInput(in PostInput) PostInput {
	return PostInput{Title: strings.TrimSpace(in.Title), Content: strings.TrimSpace(in.Content)}
}

type nopPostCache struct{}

func (nopPostCache) GetPostDetail(context.Context, uint) (*model.PostDetail, bool, error) {
	return nil, false, nil
}
func (nopPostCache) SetPostDetail(context.Context, *model.PostDetail) error { return nil }
func (nopPostCache) DeletePostDetail(context.Context, uint) error          { return nil }

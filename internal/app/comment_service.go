package app

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"postboard/internal/model"
	"postboard/internal/repository"
)

type CommentInput struct {
	Content string `validate:"required,min=1,max=500"`
}

type CommentService struct {
	commentRepo *repository.CommentRepository
	postRepo    *repository.PostRepository
	cache       PostCache
	logger      *zap.Logger
}

func NewCommentService(commentRepo *repository.CommentRepository, postRepo *repository.PostRepository, cache PostCache, logger *zap.Logger) *CommentService {
	if cache == nil {
		cache = nopPostCache{}
	}
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		cache:       cache,
		logger:      logger,
	}
}

func (s *CommentService) List(ctx context.Context, postID uint) ([]model.CommentView, error) {
	if err := s.requirePost(ctx, postID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPostID(ctx, postID)
}

func (s *CommentService) Create(ctx context.Context, userID, postID uint, input CommentInput) (*model.Comment, error) {
	input.Content = strings.TrimSpace(input.Content)
	if err := ValidateStruct(input); err != nil {
		return nil, err
	}
	if err := s.requirePost(ctx, postID); err != nil {
		return nil, err
	}

	comment := &model.Comment{UserID: userID, PostID: postID, Content: input.Content}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	s.invalidate(ctx, postID)
	return comment, nil
}

func (s *CommentService) Update(ctx context.Context, userID, id uint, input CommentInput) (*model.Comment, error) {
	input.Content = strings.TrimSpace(input.Content)
	if err := ValidateStruct(input); err != nil {
		return nil, err
	}

	comment, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.commentRepo.UpdateByIDAndUserID(ctx, id, userID, input.Content); err != nil {
		return nil, err
	}
	s.invalidate(ctx, comment.PostID)

	comment.Content = input.Content
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, userID, id uint) error {
	comment, err := s.owned(ctx, userID, id)
	if err != nil {
		return err
	}
	if _, err := s.commentRepo.DeleteByIDAndUserID(ctx, id, userID); err != nil {
		return err
	}
	s.invalidate(ctx, comment.PostID)
	return nil
}

func (s *CommentService) owned(ctx context.Context, userID, id uint) (*model.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrCommentNotFound
	}
	if comment.UserID != userID {
		return nil, ErrForbidden
	}
	return comment, nil
}

func (s *CommentService) requirePost(ctx context.Context, postID uint) error {
	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrPostNotFound
	}
	return nil
}

func (s *CommentService) invalidate(ctx context.Context, postID uint) {
	if err := s.cache.DeletePostDetail(ctx, postID); err != nil {
		s.logger.Warn("invalidate post cache failed", zap.Uint("post_id", postID), zap.Error(err))
	}
}

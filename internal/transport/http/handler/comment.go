package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"postboard/internal/app"
	"postboard/internal/transport/http/middleware"
	"postboard/internal/transport/http/response"
)

type CommentHandler struct {
	commentService *app.CommentService
	logger         *zap.Logger
}

type CreateCommentRequest struct {
	PostID  uint   `json:"postId" binding:"required,gt=0"`
	Content string `json:"content"`
}

type UpdateCommentRequest struct {
	Content string `json:"content"`
}

func NewCommentHandler(commentService *app.CommentService, logger *zap.Logger) *CommentHandler {
	return &CommentHandler{commentService: commentService, logger: logger}
}

func (h *CommentHandler) List(c *gin.Context) {
	postID, ok := queryID(c, "postId")
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid postId")
		return
	}

	comments, err := h.commentService.List(c.Request.Context(), postID)
	if err != nil {
		writeError(c, h.logger, err, "list comments")
		return
	}
	response.OK(c, gin.H{"comments": comments})
}

func (h *CommentHandler) Create(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "unauthorized")
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	comment, err := h.commentService.Create(c.Request.Context(), identity.UserID, req.PostID, app.CommentInput{Content: req.Content})
	if err != nil {
		writeError(c, h.logger, err, "create comment")
		return
	}
	response.Created(c, comment)
}

// Update runs behind RequireOwnership.
func (h *CommentHandler) Update(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	var req UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	comment, err := h.commentService.Update(c.Request.Context(), identity.UserID, middleware.ResourceID(c), app.CommentInput{Content: req.Content})
	if err != nil {
		writeError(c, h.logger, err, "update comment")
		return
	}
	response.OK(c, comment)
}

// Delete runs behind RequireOwnership.
func (h *CommentHandler) Delete(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)
	id := middleware.ResourceID(c)

	if err := h.commentService.Delete(c.Request.Context(), identity.UserID, id); err != nil {
		writeError(c, h.logger, err, "delete comment")
		return
	}
	response.OK(c, gin.H{"id": id, "deleted": true})
}

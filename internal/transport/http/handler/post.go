package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"postboard/internal/app"
	"postboard/internal/transport/http/middleware"
	"postboard/internal/transport/http/response"
)

type PostHandler struct {
	postService *app.PostService
	logger      *zap.Logger
}

type PostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func NewPostHandler(postService *app.PostService, logger *zap.Logger) *PostHandler {
	return &PostHandler{postService: postService, logger: logger}
}

// Get returns one post when ?id= is given and a page of posts otherwise.
func (h *PostHandler) Get(c *gin.Context) {
	if c.Query("id") != "" {
		h.detail(c)
		return
	}

	page, err := h.postService.List(c.Request.Context(), queryInt(c, "page"), queryInt(c, "limit"))
	if err != nil {
		writeError(c, h.logger, err, "list posts")
		return
	}
	response.OK(c, page)
}

func (h *PostHandler) detail(c *gin.Context) {
	id, ok := queryID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid id")
		return
	}

	var viewerID uint
	if identity, ok := middleware.IdentityFrom(c); ok {
		viewerID = identity.UserID
	}

	view, err := h.postService.Detail(c.Request.Context(), id, viewerID)
	if err != nil {
		writeError(c, h.logger, err, "get post")
		return
	}
	response.OK(c, view)
}

func (h *PostHandler) Create(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "unauthorized")
		return
	}

	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	post, err := h.postService.Create(c.Request.Context(), identity.UserID, app.PostInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		writeError(c, h.logger, err, "create post")
		return
	}
	response.Created(c, post)
}

// Update runs behind RequireOwnership.
func (h *PostHandler) Update(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	post, err := h.postService.Update(c.Request.Context(), identity.UserID, middleware.ResourceID(c), app.PostInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		writeError(c, h.logger, err, "update post")
		return
	}
	response.OK(c, post)
}

// Delete runs behind RequireOwnership.
func (h *PostHandler) Delete(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)
	id := middleware.ResourceID(c)

	if err := h.postService.Delete(c.Request.Context(), identity.UserID, id); err != nil {
		writeError(c, h.logger, err, "delete post")
		return
	}
	response.OK(c, gin.H{"id": id, "deleted": true})
}

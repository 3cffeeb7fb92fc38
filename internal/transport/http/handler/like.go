package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"postboard/internal/app"
	"postboard/internal/transport/http/middleware"
	"postboard/internal/transport/http/response"
)

type LikeHandler struct {
	likeService *app.LikeService
	logger      *zap.Logger
}

func NewLikeHandler(likeService *app.LikeService, logger *zap.Logger) *LikeHandler {
	return &LikeHandler{likeService: likeService, logger: logger}
}

func (h *LikeHandler) Toggle(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "unauthorized")
		return
	}

	postID, ok := queryID(c, "postId")
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid postId")
		return
	}

	result, err := h.likeService.Toggle(c.Request.Context(), identity.UserID, postID)
	if err != nil {
		writeError(c, h.logger, err, "toggle like")
		return
	}
	response.OK(c, result)
}

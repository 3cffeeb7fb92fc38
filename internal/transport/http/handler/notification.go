package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"postboard/internal/app"
	"postboard/internal/transport/http/middleware"
	"postboard/internal/transport/http/response"
)

type NotificationHandler struct {
	notificationService *app.NotificationService
	logger              *zap.Logger
}

func NewNotificationHandler(notificationService *app.NotificationService, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService, logger: logger}
}

func (h *NotificationHandler) List(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "unauthorized")
		return
	}

	items, err := h.notificationService.List(c.Request.Context(), identity.UserID)
	if err != nil {
		writeError(c, h.logger, err, "list notifications")
		return
	}
	response.OK(c, gin.H{"notifications": items})
}

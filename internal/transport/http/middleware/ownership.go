package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"postboard/internal/app"
	"postboard/internal/transport/http/response"
)

const ContextResourceIDKey = "resource_id"

type Authorizer interface {
	Authorize(ctx context.Context, userID uint, kind app.ResourceKind, id uint) error
}

// RequireOwnership must run after AuthJWT. It reads ?id= and lets the request
// through only when the caller owns that resource.
func RequireOwnership(guard Authorizer, kind app.ResourceKind, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFrom(c)
		if !ok {
			response.Abort(c, http.StatusUnauthorized, response.CodeUnauthorized, "unauthorized")
			return
		}

		id, err := strconv.ParseUint(c.Query("id"), 10, 64)
		if err != nil || id == 0 {
			response.Abort(c, http.StatusBadRequest, response.CodeBadRequest, "invalid id")
			return
		}

		err = guard.Authorize(c.Request.Context(), identity.UserID, kind, uint(id))
		switch {
		case err == nil:
			c.Set(ContextResourceIDKey, uint(id))
			c.Next()
		case errors.Is(err, app.ErrForbidden):
			response.Abort(c, http.StatusForbidden, response.CodeForbidden, "you do not own this "+string(kind))
		case errors.Is(err, app.ErrPostNotFound):
			response.Abort(c, http.StatusNotFound, response.CodePostNotFound, err.Error())
		case errors.Is(err, app.ErrCommentNotFound):
			response.Abort(c, http.StatusNotFound, response.CodeCommentNotFound, err.Error())
		default:
			logger.Error("ownership check failed",
				zap.String("kind", string(kind)),
				zap.Uint64("id", id),
				zap.Error(err),
			)
			response.Abort(c, http.StatusInternalServerError, response.CodeInternalServer, "internal error")
		}
	}
}

// ResourceID returns the id validated by RequireOwnership.
func ResourceID(c *gin.Context) uint {
	return c.GetUint(ContextResourceIDKey)
}

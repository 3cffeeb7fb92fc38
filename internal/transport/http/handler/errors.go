package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"postboard/internal/app"
	"postboard/internal/transport/http/response"
)

// writeError maps service errors onto the response envelope. Unknown errors are logged and hidden.
func writeError(c *gin.Context, logger *zap.Logger, err error, action string) {
	var verr *app.ValidationError
	switch {
	case errors.As(err, &verr):
		response.Validation(c, verr.Fields)
	case errors.Is(err, app.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
	case errors.Is(err, app.ErrForbidden):
		response.Error(c, http.StatusForbidden, response.CodeForbidden, err.Error())
	case errors.Is(err, app.ErrPostNotFound):
		response.Error(c, http.StatusNotFound, response.CodePostNotFound, err.Error())
	case errors.Is(err, app.ErrCommentNotFound):
		response.Error(c, http.StatusNotFound, response.CodeCommentNotFound, err.Error())
	default:
		logger.Error(action+" failed", zap.Error(err))
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "internal error")
	}
}

// writeBindError reports a request body that gin could not bind.
func writeBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		response.Validation(c, app.FromValidator(verrs).Fields)
		return
	}
	response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
}

func queryID(c *gin.Context, key string) (uint, bool) {
	id, err := strconv.ParseUint(c.Query(key), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func queryInt(c *gin.Context, key string) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return v
}

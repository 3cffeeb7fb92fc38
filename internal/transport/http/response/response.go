package response

import "github.com/gin-gonic/gin"

const (
	CodeOK                 = 0
	CodeBadRequest         = 40000
	CodeUsernameExists     = 40001
	CodeEmailExists        = 40002
	CodeValidation         = 40003
	CodeUnauthorized       = 40100
	CodeInvalidCredentials = 40101
	CodeForbidden          = 40300
	CodeNotFound           = 40400
	CodePostNotFound       = 40401
	CodeCommentNotFound    = 40402
	CodeConflict           = 40900
	CodeInternalServer     = 50000
)

// ErrorBody is the envelope for every non-2xx response.
type ErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// OK writes data as the plain response body.
func OK(c *gin.Context, data interface{}) {
	c.JSON(200, data)
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(201, data)
}

func Error(c *gin.Context, httpStatus, code int, message string) {
	c.JSON(httpStatus, ErrorBody{
		Code:    code,
		Message: message,
	})
}

func Validation(c *gin.Context, fields map[string]string) {
	c.JSON(400, ErrorBody{
		Code:    CodeValidation,
		Message: "validation failed",
		Fields:  fields,
	})
}

// Abort writes an error and stops the handler chain.
func Abort(c *gin.Context, httpStatus, code int, message string) {
	c.AbortWithStatusJSON(httpStatus, ErrorBody{
		Code:    code,
		Message: message,
	})
}

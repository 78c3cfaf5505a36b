package response

import "github.com/gin-gonic/gin"

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Body 统一响应包：成功带 data 或 message，失败带 message（校验失败附 errors）
type Body struct {
	Status  string       `json:"status"`
	Message string       `json:"message,omitempty"`
	Data    any          `json:"data,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

func OK(c *gin.Context, code int, data any) {
	c.JSON(code, Body{Status: StatusSuccess, Data: data})
}

func Message(c *gin.Context, code int, msg string) {
	c.JSON(code, Body{Status: StatusSuccess, Message: msg})
}

func Fail(c *gin.Context, code int, msg string) {
	c.JSON(code, Body{Status: StatusError, Message: msg})
}

func FailFields(c *gin.Context, code int, msg string, errs []FieldError) {
	c.JSON(code, Body{Status: StatusError, Message: msg, Errors: errs})
}

// AbortFail 中间件拒绝请求时用，终止后续 handler
func AbortFail(c *gin.Context, code int, msg string) {
	c.AbortWithStatusJSON(code, Body{Status: StatusError, Message: msg})
}

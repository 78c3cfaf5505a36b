package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// PanicResponse 兜底 500；非 dev 环境隐藏 panic 细节
// 配合 ginzap.CustomRecoveryWithZap 用（panic 日志由它打）
func PanicResponse(dev bool) gin.RecoveryFunc {
	return func(c *gin.Context, err any) {
		msg := "Something went wrong"
		if dev {
			msg = fmt.Sprint(err)
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": msg,
		})
	}
}

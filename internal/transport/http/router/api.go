package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"go-user-api/internal/core/auth"
	"go-user-api/internal/domain"
	"go-user-api/internal/transport/http/handler"
	mdw "go-user-api/internal/transport/http/middleware"
)

func NewAPIEngine(l *zap.Logger, h *handler.UserHandler, jwter *auth.JWTer, users domain.UserRepository, dev bool) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		ginzap.CustomRecoveryWithZap(l, true, mdw.PanicResponse(dev)),
		mdw.Metrics(),
		mdw.AccessLog(l),
		cors.Default(),
	)

	// 健康检查 + 指标
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})

	user := r.Group("/user")
	user.POST("/signup", h.Signup)
	user.POST("/login", h.Login)

	// 受保护路由：每次请求都走 token 校验 + 用户回查
	authed := user.Group("")
	authed.Use(mdw.AuthUser(jwter, users))
	authed.POST("/logout", h.Logout)
	authed.GET("/getuser", h.GetUser)
	authed.PUT("/update-profile", h.UpdateProfile)
	authed.PUT("/change-password", h.ChangePassword)

	return r
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"go-user-api/internal/core/auth"
	"go-user-api/internal/domain"
	resp "go-user-api/internal/transport/http/response"
)

const (
	KeyUser   = "user"
	KeyUserID = "userId"
)

// AuthUser 提取 Bearer token → 校验 → 回查用户 → 挂到上下文
// 每个请求都重新回查，不跨请求缓存
func AuthUser(j *auth.JWTer, users domain.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			resp.AbortFail(c, http.StatusUnauthorized, "you are not logged in, login to continue")
			return
		}

		// 过期与伪造内部可区分，对外一律 401
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			resp.AbortFail(c, http.StatusUnauthorized, "invalid token, login again")
			return
		}

		u, err := users.FindByID(c.Request.Context(), claims.UID)
		if err != nil {
			resp.AbortFail(c, http.StatusInternalServerError, "internal server error")
			return
		}
		if u == nil {
			resp.AbortFail(c, http.StatusUnauthorized, "user does not exist")
			return
		}

		c.Set(KeyUser, u)
		c.Set(KeyUserID, u.ID)
		c.Next()
	}
}

// CurrentUser 取 AuthUser 挂上的用户；只能在鉴权分组里调
func CurrentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(KeyUser)
	if !ok {
		return nil
	}
	u, _ := v.(*domain.User)
	return u
}

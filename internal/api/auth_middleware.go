package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pharmaqualify/qms-gin/internal/auth"
	"github.com/pharmaqualify/qms-gin/internal/model"
)

const userContextKey = "current_user"

// AuthMiddleware 会话认证中间件
// 只负责身份提取；管理员门禁由状态机执行，这样未授权的拒绝
// 一律以引擎的 Unauthorized 形式出现
func AuthMiddleware(sessions *auth.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			Error(c, http.StatusUnauthorized, ReasonUnauthorized, "missing bearer token", "")
			c.Abort()
			return
		}

		user, err := sessions.Validate(token)
		if err != nil {
			Error(c, http.StatusUnauthorized, ReasonUnauthorized, "invalid session token", err.Error())
			c.Abort()
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// CurrentUser 从请求上下文取当前用户
func CurrentUser(c *gin.Context) model.User {
	if v, ok := c.Get(userContextKey); ok {
		if user, ok := v.(model.User); ok {
			return user
		}
	}
	return model.User{}
}

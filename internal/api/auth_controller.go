package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pharmaqualify/qms-gin/internal/auth"
)

// AuthController 登录控制器
type AuthController struct {
	sessions *auth.SessionManager
}

// NewAuthController 创建登录控制器
func NewAuthController(sessions *auth.SessionManager) *AuthController {
	return &AuthController{sessions: sessions}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login 登录
// @Summary 登录并签发会话令牌
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "登录凭据"
// @Success 200 {object} Response
// @Failure 401 {object} ErrorResponse
// @Router /auth/login [post]
func (ctl *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, ReasonBadRequest, "malformed request body", err.Error())
		return
	}

	token, user, err := ctl.sessions.Login(req.Username, req.Password)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, gin.H{"token": token, "user": user})
}

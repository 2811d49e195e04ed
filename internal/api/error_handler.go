package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pharmaqualify/qms-gin/internal/assist"
	"github.com/pharmaqualify/qms-gin/internal/auth"
	"github.com/pharmaqualify/qms-gin/internal/repository"
	"github.com/pharmaqualify/qms-gin/internal/signature"
	"github.com/pharmaqualify/qms-gin/internal/statemachine"
	"github.com/pharmaqualify/qms-gin/internal/store"
)

// ErrorHandlerMiddleware 错误处理中间件
// 把引擎的哨兵错误映射为带稳定机读原因码的 HTTP 响应，
// 前端据此区分"未授权/不合法流转/凭据不符"等不同拒绝
func ErrorHandlerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		status, reason, message := classify(err)
		Error(c, status, reason, message, err.Error())
	}
}

// Fail 记录错误并中止处理，由错误处理中间件生成响应
func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

func classify(err error) (int, string, string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, ReasonNotFound, "record not found"
	case errors.Is(err, statemachine.ErrUnauthorized):
		return http.StatusForbidden, ReasonUnauthorized, "operation not permitted for this role"
	case errors.Is(err, statemachine.ErrInvalidTransition):
		return http.StatusConflict, ReasonInvalidTransition, "transition not legal from current status"
	case errors.Is(err, repository.ErrValidation):
		return http.StatusBadRequest, ReasonValidation, "validation failed"
	case errors.Is(err, signature.ErrCredentialMismatch):
		return http.StatusUnauthorized, ReasonCredentialMismatch, "signature credential mismatch"
	case errors.Is(err, repository.ErrSignatureRequired):
		return http.StatusUnprocessableEntity, ReasonSignatureRequired, "electronic signature required"
	case errors.Is(err, store.ErrStorageFailure):
		return http.StatusInternalServerError, ReasonStorageFailure, "storage failure"
	case errors.Is(err, assist.ErrUnavailable):
		return http.StatusServiceUnavailable, ReasonAssistUnavailable, "AI assist unavailable, enter manually"
	case errors.Is(err, auth.ErrBadCredentials):
		return http.StatusUnauthorized, ReasonCredentialMismatch, "bad credentials"
	case errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized, ReasonUnauthorized, "invalid session token"
	default:
		return http.StatusInternalServerError, ReasonInternal, "internal server error"
	}
}

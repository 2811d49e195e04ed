package api

import (
	"github.com/gin-gonic/gin"
	"github.com/pharmaqualify/qms-gin/internal/audit"
	"github.com/pharmaqualify/qms-gin/internal/model"
)

// TrailController 审计台账控制器，只读
type TrailController struct {
	trail *audit.Trail
}

// NewTrailController 创建审计台账控制器
func NewTrailController(trail *audit.Trail) *TrailController {
	return &TrailController{trail: trail}
}

// RegisterRoutes 挂载审计台账路由
func (ctl *TrailController) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/audit-trail", ctl.list)
}

// list 审计条目列表，最新在前
// 支持按 recordId、module、user 任一维度过滤
func (ctl *TrailController) list(c *gin.Context) {
	var (
		entries []model.AuditTrailEntry
		err     error
	)
	switch {
	case c.Query("recordId") != "":
		entries, err = ctl.trail.ByRecord(c.Query("recordId"))
	case c.Query("module") != "":
		entries, err = ctl.trail.ByModule(c.Query("module"))
	case c.Query("user") != "":
		entries, err = ctl.trail.ByUser(c.Query("user"))
	default:
		entries, err = ctl.trail.Entries()
	}
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, entries)
}

package api

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pharmaqualify/qms-gin/internal/service"
)

// ArchiveController 批量导出/导入控制器
type ArchiveController struct {
	archive service.ArchiveService
}

// NewArchiveController 创建归档控制器
func NewArchiveController(archive service.ArchiveService) *ArchiveController {
	return &ArchiveController{archive: archive}
}

// RegisterRoutes 挂载归档路由
func (ctl *ArchiveController) RegisterRoutes(group *gin.RouterGroup) {
	g := group.Group("/archive")
	g.GET("/export", ctl.export)
	g.POST("/import", ctl.restore)
}

// export 导出所有命名集合
func (ctl *ArchiveController) export(c *gin.Context) {
	bundle, err := ctl.archive.Export()
	if err != nil {
		Fail(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="qms-archive.json"`)
	c.JSON(http.StatusOK, bundle)
}

// restore 破坏性导入，覆盖包内出现的集合
func (ctl *ArchiveController) restore(c *gin.Context) {
	var bundle map[string]json.RawMessage
	if err := c.ShouldBindJSON(&bundle); err != nil {
		Error(c, http.StatusBadRequest, ReasonBadRequest, "malformed archive bundle", err.Error())
		return
	}
	imported, err := ctl.archive.Import(bundle, CurrentUser(c))
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, gin.H{"imported": imported})
}

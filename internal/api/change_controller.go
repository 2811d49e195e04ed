package api

import (
	"github.com/gin-gonic/gin"
	"github.com/pharmaqualify/qms-gin/internal/model"
	"github.com/pharmaqualify/qms-gin/internal/repository"
	"github.com/pharmaqualify/qms-gin/internal/signature"
	"github.com/pharmaqualify/qms-gin/internal/statemachine"
)

// ChangeController 变更控制控制器
type ChangeController struct {
	*RecordsController[*model.ChangeRequest]
	repo *repository.ChangeRepository
}

// NewChangeController 创建变更控制控制器
func NewChangeController(repo *repository.ChangeRepository, verifier signature.Verifier) *ChangeController {
	meanings := map[statemachine.Action]signature.Meaning{
		repository.ActionApprove: signature.MeaningApproval,
		repository.ActionReject:  signature.MeaningReview,
	}
	return &ChangeController{
		RecordsController: NewRecordsController(repo.Repository, verifier, meanings),
		repo:              repo,
	}
}

// RegisterRoutes 挂载变更控制路由
func (ctl *ChangeController) RegisterRoutes(group *gin.RouterGroup) {
	g := ctl.Register(group, "/changes", func() *model.ChangeRequest { return &model.ChangeRequest{} })
	g.POST("/:id/tasks/:taskId/complete", ctl.completeTask)
}

// completeTask 勾选实施任务
func (ctl *ChangeController) completeTask(c *gin.Context) {
	rec, err := ctl.repo.CompleteTask(c.Param("id"), c.Param("taskId"), CurrentUser(c))
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, rec)
}

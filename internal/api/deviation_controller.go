package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pharmaqualify/qms-gin/internal/assist"
	"github.com/pharmaqualify/qms-gin/internal/model"
	"github.com/pharmaqualify/qms-gin/internal/repository"
	"github.com/pharmaqualify/qms-gin/internal/signature"
)

// DeviationController 偏差控制器
// 在通用记录端点之上追加 CAPA 关联与 AI 辅助分析
type DeviationController struct {
	*RecordsController[*model.Deviation]
	repo    *repository.DeviationRepository
	advisor *assist.Advisor
}

// NewDeviationController 创建偏差控制器
func NewDeviationController(repo *repository.DeviationRepository, verifier signature.Verifier, advisor *assist.Advisor) *DeviationController {
	return &DeviationController{
		RecordsController: NewRecordsController(repo.Repository, verifier, nil),
		repo:              repo,
		advisor:           advisor,
	}
}

// RegisterRoutes 挂载偏差路由
func (ctl *DeviationController) RegisterRoutes(group *gin.RouterGroup) {
	g := ctl.Register(group, "/deviations", func() *model.Deviation { return &model.Deviation{} })
	g.POST("/:id/capa-link", ctl.linkCAPA)
	g.POST("/:id/ai-analysis", ctl.suggestAnalysis)
	g.POST("/:id/analysis", ctl.attachAnalysis)
}

type capaLinkRequest struct {
	CAPANumber string `json:"capaNumber" binding:"required"`
}

// linkCAPA 以展示编号关联一条 CAPA
func (ctl *DeviationController) linkCAPA(c *gin.Context) {
	var req capaLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, ReasonBadRequest, "malformed request body", err.Error())
		return
	}
	rec, err := ctl.repo.LinkCAPA(c.Param("id"), req.CAPANumber, CurrentUser(c))
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, rec)
}

// suggestAnalysis 请求 AI 根因分析建议，失败降级为人工录入提示
func (ctl *DeviationController) suggestAnalysis(c *gin.Context) {
	rec, err := ctl.repo.Get(c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	analysis, err := ctl.advisor.SuggestDeviationAnalysis(c.Request.Context(), rec)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, analysis)
}

// attachAnalysis 采纳一份分析并入记录
func (ctl *DeviationController) attachAnalysis(c *gin.Context) {
	var analysis model.AIAnalysis
	if err := c.ShouldBindJSON(&analysis); err != nil {
		Error(c, http.StatusBadRequest, ReasonBadRequest, "malformed request body", err.Error())
		return
	}
	rec, err := ctl.repo.AttachAnalysis(c.Param("id"), analysis, CurrentUser(c))
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, rec)
}

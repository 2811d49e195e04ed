package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pharmaqualify/qms-gin/internal/assist"
	"github.com/pharmaqualify/qms-gin/internal/model"
)

// AssistController AI 建议控制器
// 所有端点都是纯建议：失败返回 503 与人工录入降级提示，
// 从不阻塞记录操作
type AssistController struct {
	advisor *assist.Advisor
}

// NewAssistController 创建 AI 建议控制器
func NewAssistController(advisor *assist.Advisor) *AssistController {
	return &AssistController{advisor: advisor}
}

// RegisterRoutes 挂载 AI 建议路由
func (ctl *AssistController) RegisterRoutes(group *gin.RouterGroup) {
	g := group.Group("/assist")
	g.POST("/monograph-tests", ctl.monographTests)
	g.POST("/mfr-draft", ctl.mfrDraft)
}

type monographRequest struct {
	ProductName string            `json:"productName" binding:"required"`
	Category    model.COACategory `json:"category"`
}

// monographTests 按药典专论建议检验项
func (ctl *AssistController) monographTests(c *gin.Context) {
	var req monographRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, ReasonBadRequest, "malformed request body", err.Error())
		return
	}
	if req.Category == "" {
		req.Category = model.COAFinishedProduct
	}
	lines, err := ctl.advisor.SuggestMonographTests(c.Request.Context(), req.ProductName, req.Category)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, lines)
}

type mfrDraftRequest struct {
	ProductName string `json:"productName" binding:"required"`
	DosageForm  string `json:"dosageForm" binding:"required"`
}

// mfrDraft 起草主配方骨架
func (ctl *AssistController) mfrDraft(c *gin.Context) {
	var req mfrDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, ReasonBadRequest, "malformed request body", err.Error())
		return
	}
	draft, err := ctl.advisor.DraftMFR(c.Request.Context(), req.ProductName, req.DosageForm)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, draft)
}

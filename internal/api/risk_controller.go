package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pharmaqualify/qms-gin/internal/assist"
	"github.com/pharmaqualify/qms-gin/internal/model"
	"github.com/pharmaqualify/qms-gin/internal/repository"
	"github.com/pharmaqualify/qms-gin/internal/service"
	"github.com/pharmaqualify/qms-gin/internal/signature"
)

// RiskController 风险登记控制器
// RPN 与残余风险等级在服务端计算，客户端提交的评分值只作输入
type RiskController struct {
	*RecordsController[*model.RiskEntry]
	repo    *repository.RiskRepository
	advisor *assist.Advisor
}

// NewRiskController 创建风险登记控制器
func NewRiskController(repo *repository.RiskRepository, verifier signature.Verifier, advisor *assist.Advisor) *RiskController {
	return &RiskController{
		RecordsController: NewRecordsController(repo.Repository, verifier, nil),
		repo:              repo,
		advisor:           advisor,
	}
}

// RegisterRoutes 挂载风险登记路由
func (ctl *RiskController) RegisterRoutes(group *gin.RouterGroup) {
	g := ctl.RegisterWithoutCreate(group, "/risks")
	g.POST("", ctl.create)
	g.POST("/:id/reassess", ctl.reassess)
	g.POST("/:id/revert", ctl.revert)
	g.POST("/hazard-scout", ctl.scoutHazards)
}

// create 创建条目，评分落库前计算
func (ctl *RiskController) create(c *gin.Context) {
	entry := &model.RiskEntry{}
	if err := c.ShouldBindJSON(entry); err != nil {
		Error(c, http.StatusBadRequest, ReasonBadRequest, "malformed request body", err.Error())
		return
	}
	service.ScoreRiskEntry(entry)
	entry.AssessedAt = time.Now().UTC()
	ctl.Create(c, entry)
}

type reassessRequest struct {
	Severity   int    `json:"severity" binding:"required"`
	Occurrence int    `json:"occurrence" binding:"required"`
	Detection  int    `json:"detection" binding:"required"`
	Mitigation string `json:"mitigation"`
}

// reassess 再评估，先前评分归档进历史
func (ctl *RiskController) reassess(c *gin.Context) {
	var req reassessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, ReasonBadRequest, "malformed request body", err.Error())
		return
	}

	next := model.RiskSnapshot{
		Date:       time.Now().UTC(),
		Severity:   req.Severity,
		Occurrence: req.Occurrence,
		Detection:  req.Detection,
		Mitigation: req.Mitigation,
	}
	service.ScoreRiskSnapshot(&next)

	rec, err := ctl.repo.Reassess(c.Param("id"), next, CurrentUser(c))
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, rec)
}

type revertRequest struct {
	Index int `json:"index"`
}

// revert 回滚到历史评分
func (ctl *RiskController) revert(c *gin.Context) {
	var req revertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, ReasonBadRequest, "malformed request body", err.Error())
		return
	}
	rec, err := ctl.repo.Revert(c.Param("id"), req.Index, CurrentUser(c))
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, rec)
}

type hazardScoutRequest struct {
	ProcessStep string `json:"processStep" binding:"required"`
}

// scoutHazards AI 危害扫描建议
func (ctl *RiskController) scoutHazards(c *gin.Context) {
	var req hazardScoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, ReasonBadRequest, "malformed request body", err.Error())
		return
	}
	suggestions, err := ctl.advisor.ScoutHazards(c.Request.Context(), req.ProcessStep)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, suggestions)
}

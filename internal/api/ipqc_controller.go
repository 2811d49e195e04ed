package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pharmaqualify/qms-gin/internal/model"
	"github.com/pharmaqualify/qms-gin/internal/repository"
	"github.com/pharmaqualify/qms-gin/internal/service"
)

// IPQCController 过程控制检测控制器
// 判定状态由统计计算得出，IPQC 记录没有流转端点
type IPQCController struct {
	repo *repository.Repository[*model.IPQCRecord]
}

// NewIPQCController 创建过程控制检测控制器
func NewIPQCController(repo *repository.Repository[*model.IPQCRecord]) *IPQCController {
	return &IPQCController{repo: repo}
}

// RegisterRoutes 挂载 IPQC 路由
func (ctl *IPQCController) RegisterRoutes(group *gin.RouterGroup) {
	g := group.Group("/ipqc")
	g.POST("", ctl.create)
	g.GET("", ctl.list)
	g.GET("/:id", ctl.get)
	g.DELETE("/:id", ctl.remove)
	g.POST("/evaluations/weight-variation", ctl.weightVariation)
	g.POST("/evaluations/loss-on-drying", ctl.lossOnDrying)
}

// create 录入读数集并计算均值、SD、Cpk 与判定
func (ctl *IPQCController) create(c *gin.Context) {
	rec := &model.IPQCRecord{}
	if err := c.ShouldBindJSON(rec); err != nil {
		Error(c, http.StatusBadRequest, ReasonBadRequest, "malformed request body", err.Error())
		return
	}

	stats, err := service.ComputeReadingStats(rec.Readings, rec.USL, rec.LSL)
	if err != nil {
		Fail(c, fmt.Errorf("%w: %v", repository.ErrValidation, err))
		return
	}
	service.ApplyReadingStats(rec, stats)

	created, err := ctl.repo.Create(rec, CurrentUser(c))
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, created)
}

func (ctl *IPQCController) list(c *gin.Context) {
	items, err := ctl.repo.List(&repository.Filter{
		Search: c.Query("search"),
		Status: model.Status(c.Query("status")),
	})
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, items)
}

func (ctl *IPQCController) get(c *gin.Context) {
	rec, err := ctl.repo.Get(c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, rec)
}

func (ctl *IPQCController) remove(c *gin.Context) {
	if err := ctl.repo.Delete(c.Param("id"), CurrentUser(c)); err != nil {
		Fail(c, err)
		return
	}
	Success(c, gin.H{"deleted": c.Param("id")})
}

type weightVariationRequest struct {
	Weights  []float64 `json:"weights" binding:"required"`
	TargetMg float64   `json:"targetMg" binding:"required"`
}

// weightVariation 片重差异评估
func (ctl *IPQCController) weightVariation(c *gin.Context) {
	var req weightVariationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, ReasonBadRequest, "malformed request body", err.Error())
		return
	}
	status := service.EvaluateWeightVariation(req.Weights, req.TargetMg)
	Success(c, gin.H{"status": status})
}

type lossOnDryingRequest struct {
	InitialWeight float64 `json:"initialWeight" binding:"required"`
	DriedWeight   float64 `json:"driedWeight" binding:"required"`
}

// lossOnDrying 干燥失重评估
func (ctl *IPQCController) lossOnDrying(c *gin.Context) {
	var req lossOnDryingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, ReasonBadRequest, "malformed request body", err.Error())
		return
	}
	loss, status := service.EvaluateLossOnDrying(req.InitialWeight, req.DriedWeight)
	Success(c, gin.H{"lossPercent": loss, "status": status})
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pharmaqualify/qms-gin/internal/model"
	"github.com/pharmaqualify/qms-gin/internal/repository"
	"github.com/pharmaqualify/qms-gin/internal/service"
	"github.com/pharmaqualify/qms-gin/internal/signature"
	"github.com/pharmaqualify/qms-gin/internal/statemachine"
)

// BatchController 主配方与批生产记录控制器
type BatchController struct {
	mfrCtl   *RecordsController[*model.MFR]
	bmrCtl   *RecordsController[*model.BMRRecord]
	bmrs     *repository.BMRRepository
	issuer   service.BatchService
	verifier signature.Verifier
}

// NewBatchController 创建批记录控制器
func NewBatchController(mfrs *repository.Repository[*model.MFR], bmrs *repository.BMRRepository, issuer service.BatchService, verifier signature.Verifier) *BatchController {
	mfrMeanings := map[statemachine.Action]signature.Meaning{
		repository.ActionMakeEffective: signature.MeaningApproval,
	}
	bmrMeanings := map[statemachine.Action]signature.Meaning{
		repository.ActionComplete: signature.MeaningTechnicalRelease,
	}
	return &BatchController{
		mfrCtl:   NewRecordsController(mfrs, verifier, mfrMeanings),
		bmrCtl:   NewRecordsController(bmrs.Repository, verifier, bmrMeanings),
		bmrs:     bmrs,
		issuer:   issuer,
		verifier: verifier,
	}
}

// RegisterRoutes 挂载 MFR/BMR 路由
func (ctl *BatchController) RegisterRoutes(group *gin.RouterGroup) {
	ctl.mfrCtl.Register(group, "/mfrs", func() *model.MFR { return &model.MFR{} })

	g := ctl.bmrCtl.RegisterWithoutCreate(group, "/bmrs")
	g.POST("", ctl.issue)
	g.POST("/:id/steps/:stepId/sign", ctl.signStep)
	g.POST("/:id/steps/:stepId/verify", ctl.verifyStep)
	g.POST("/:id/line-clearance", ctl.lineClearance)
}

type issueRequest struct {
	MFRID       string `json:"mfrId" binding:"required"`
	BatchNumber string `json:"batchNumber" binding:"required"`
}

// issue 从生效的主配方签发批生产记录
func (ctl *BatchController) issue(c *gin.Context) {
	var req issueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, ReasonBadRequest, "malformed request body", err.Error())
		return
	}
	bmr, err := ctl.issuer.IssueFromMFR(req.MFRID, req.BatchNumber, CurrentUser(c))
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, bmr)
}

type stepActionRequest struct {
	Observation string            `json:"observation"`
	Signature   *SignatureRequest `json:"signature"`
}

// signStep 执行人签署工序步骤
func (ctl *BatchController) signStep(c *gin.Context) {
	var req stepActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, ReasonBadRequest, "malformed request body", err.Error())
		return
	}
	outcome, err := ConfirmSignature(c, ctl.verifier, "Sign Step", signature.MeaningAuthorship, req.Signature)
	if err != nil {
		Fail(c, err)
		return
	}
	rec, err := ctl.bmrs.SignStep(c.Param("id"), c.Param("stepId"), req.Observation, CurrentUser(c), outcome)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, rec)
}

// verifyStep 复核工序步骤，未签署的步骤不可复核
func (ctl *BatchController) verifyStep(c *gin.Context) {
	var req stepActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, ReasonBadRequest, "malformed request body", err.Error())
		return
	}
	outcome, err := ConfirmSignature(c, ctl.verifier, "Verify Step", signature.MeaningVerification, req.Signature)
	if err != nil {
		Fail(c, err)
		return
	}
	rec, err := ctl.bmrs.VerifyStep(c.Param("id"), c.Param("stepId"), CurrentUser(c), outcome)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, rec)
}

// lineClearance 清场确认
func (ctl *BatchController) lineClearance(c *gin.Context) {
	var req stepActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, ReasonBadRequest, "malformed request body", err.Error())
		return
	}
	outcome, err := ConfirmSignature(c, ctl.verifier, "Line Clearance", signature.MeaningLineClearance, req.Signature)
	if err != nil {
		Fail(c, err)
		return
	}
	rec, err := ctl.bmrs.ClearLine(c.Param("id"), CurrentUser(c), outcome)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, rec)
}

package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pharmaqualify/qms-gin/internal/metrics"
	"github.com/pharmaqualify/qms-gin/internal/model"
	"github.com/pharmaqualify/qms-gin/internal/repository"
	"github.com/pharmaqualify/qms-gin/internal/signature"
	"github.com/pharmaqualify/qms-gin/internal/statemachine"
	"github.com/pharmaqualify/qms-gin/internal/utils"
)

// SignatureRequest 电子签名凭据
type SignatureRequest struct {
	Credential string `json:"credential" binding:"required"`
	Reason     string `json:"reason"`
	Meaning    string `json:"meaning"`
}

// TransitionRequest 状态流转请求
type TransitionRequest struct {
	Action    string            `json:"action" binding:"required"`
	Signature *SignatureRequest `json:"signature,omitempty"`
}

// RecordsController 模块记录控制器
// 同一套 create/list/get/transition/delete 端点服务所有模块，
// 模块差异收敛在仓储配置里
type RecordsController[T model.Record] struct {
	repo     *repository.Repository[T]
	verifier signature.Verifier
	meanings map[statemachine.Action]signature.Meaning
}

// NewRecordsController 创建模块记录控制器
func NewRecordsController[T model.Record](repo *repository.Repository[T], verifier signature.Verifier, meanings map[statemachine.Action]signature.Meaning) *RecordsController[T] {
	return &RecordsController[T]{repo: repo, verifier: verifier, meanings: meanings}
}

// Register 挂载模块路由
func (ctl *RecordsController[T]) Register(group *gin.RouterGroup, path string, newRecord func() T) *gin.RouterGroup {
	g := ctl.RegisterWithoutCreate(group, path)
	g.POST("", ctl.create(newRecord))
	return g
}

// RegisterWithoutCreate 挂载除创建外的模块路由
// 创建前需要额外计算（风险评分、IPQC 统计）的模块自带 POST 处理器
func (ctl *RecordsController[T]) RegisterWithoutCreate(group *gin.RouterGroup, path string) *gin.RouterGroup {
	g := group.Group(path)
	g.GET("", ctl.list)
	g.GET("/:id", ctl.get)
	g.POST("/:id/transition", ctl.transition)
	g.DELETE("/:id", ctl.remove)
	return g
}

// Create 创建一条已就绪的记录，供自带 POST 处理器的控制器复用
func (ctl *RecordsController[T]) Create(c *gin.Context, rec T) {
	created, err := ctl.repo.Create(rec, CurrentUser(c))
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, created)
}

// create 创建记录
// @Summary 创建记录
// @Accept json
// @Produce json
// @Success 201 {object} Response
// @Failure 400 {object} ErrorResponse
func (ctl *RecordsController[T]) create(newRecord func() T) gin.HandlerFunc {
	return func(c *gin.Context) {
		rec := newRecord()
		if err := c.ShouldBindJSON(rec); err != nil {
			Error(c, http.StatusBadRequest, ReasonBadRequest, "malformed request body", err.Error())
			return
		}
		created, err := ctl.repo.Create(rec, CurrentUser(c))
		if err != nil {
			Fail(c, err)
			return
		}
		Created(c, created)
	}
}

// list 记录列表，支持 search 与 status 查询参数
func (ctl *RecordsController[T]) list(c *gin.Context) {
	filter := &repository.Filter{
		Search: c.Query("search"),
		Status: model.Status(c.Query("status")),
	}
	items, err := ctl.repo.List(filter)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, items)
}

// RecordID 读取并校验路径中的记录 ID，格式不合法时直接报 400
func RecordID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if err := utils.ValidateRecordID(id); err != nil {
		Fail(c, fmt.Errorf("%w: %v", repository.ErrValidation, err))
		return "", false
	}
	return id, true
}

// get 单条记录
func (ctl *RecordsController[T]) get(c *gin.Context) {
	id, ok := RecordID(c)
	if !ok {
		return
	}
	rec, err := ctl.repo.Get(id)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, rec)
}

// transition 执行状态流转
// 需要签名的动作在这里完成门交互：请求未携带签名块时直接交给
// 仓储拒绝（SignatureRequired）；携带时开门、验凭据、确认，
// 凭据不符保持门开启并返回 CredentialMismatch
func (ctl *RecordsController[T]) transition(c *gin.Context) {
	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, ReasonBadRequest, "malformed request body", err.Error())
		return
	}

	user := CurrentUser(c)
	action := statemachine.Action(req.Action)

	var outcome *signature.Outcome
	if ctl.repo.RequiresSignature(action) && req.Signature != nil {
		gate := signature.NewGate(req.Action, ctl.meaningFor(action), ctl.verifier)
		confirmed, err := gate.Confirm(user.Username, req.Signature.Credential, req.Signature.Reason, signature.Meaning(req.Signature.Meaning))
		if err != nil {
			metrics.RecordSignature("mismatch")
			Fail(c, err)
			return
		}
		metrics.RecordSignature("confirmed")
		outcome = confirmed
	}

	id, ok := RecordID(c)
	if !ok {
		return
	}
	rec, err := ctl.repo.Transition(id, action, user, outcome)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, rec)
}

// remove 删除记录
func (ctl *RecordsController[T]) remove(c *gin.Context) {
	id, ok := RecordID(c)
	if !ok {
		return
	}
	if err := ctl.repo.Delete(id, CurrentUser(c)); err != nil {
		Fail(c, err)
		return
	}
	Success(c, gin.H{"deleted": id})
}

func (ctl *RecordsController[T]) meaningFor(action statemachine.Action) signature.Meaning {
	if m, ok := ctl.meanings[action]; ok {
		return m
	}
	return signature.MeaningApproval
}

// ConfirmSignature 为流转之外的签名场景（步骤签署、清场）执行门交互
func ConfirmSignature(c *gin.Context, verifier signature.Verifier, action string, meaning signature.Meaning, req *SignatureRequest) (*signature.Outcome, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: %s", repository.ErrSignatureRequired, action)
	}
	user := CurrentUser(c)
	gate := signature.NewGate(action, meaning, verifier)
	outcome, err := gate.Confirm(user.Username, req.Credential, req.Reason, signature.Meaning(req.Meaning))
	if err != nil {
		metrics.RecordSignature("mismatch")
		return nil, err
	}
	metrics.RecordSignature("confirmed")
	return outcome, nil
}

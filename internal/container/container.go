package container

import (
	"fmt"
	"time"

	"github.com/pharmaqualify/qms-gin/internal/assist"
	"github.com/pharmaqualify/qms-gin/internal/audit"
	"github.com/pharmaqualify/qms-gin/internal/auth"
	"github.com/pharmaqualify/qms-gin/internal/config"
	"github.com/pharmaqualify/qms-gin/internal/database"
	"github.com/pharmaqualify/qms-gin/internal/model"
	"github.com/pharmaqualify/qms-gin/internal/notify"
	"github.com/pharmaqualify/qms-gin/internal/repository"
	"github.com/pharmaqualify/qms-gin/internal/service"
	"github.com/pharmaqualify/qms-gin/internal/signature"
	"github.com/pharmaqualify/qms-gin/internal/store"
	"github.com/pharmaqualify/qms-gin/internal/websocket"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Container 依赖注入容器
// 管理所有应用依赖:数据库、存储、审计台账、仓储、服务与推送通道
type Container struct {
	db       *gorm.DB
	adapter  store.Adapter
	trail    *audit.Trail
	notifier *notify.Notifier
	hub      *websocket.Hub
	sessions *auth.SessionManager
	verifier signature.Verifier
	advisor  *assist.Advisor

	deviations *repository.DeviationRepository
	capas      *repository.CAPARepository
	audits     *repository.Repository[*model.AuditRecord]
	risks      *repository.RiskRepository
	oos        *repository.Repository[*model.OOSRecord]
	recalls    *repository.Repository[*model.Recall]
	changes    *repository.ChangeRepository
	stability  *repository.Repository[*model.StabilityStudy]
	inventory  *repository.Repository[*model.InventoryItem]
	lims       *repository.Repository[*model.LIMSSample]
	coas       *repository.Repository[*model.COARecord]
	ipqc       *repository.Repository[*model.IPQCRecord]
	mfrs       *repository.Repository[*model.MFR]
	bmrs       *repository.BMRRepository

	batch   service.BatchService
	archive service.ArchiveService
}

// NewContainer 创建依赖注入容器
// 根据配置初始化所有依赖组件
func NewContainer(cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	// 数据库（带重试，指数退避）
	db, err := database.ConnectWithRetry(cfg.Database, 3, time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	adapter := store.NewGormStore(db)
	trail := audit.NewTrail(adapter)

	notifier := notify.NewNotifier(adapter, logger)
	hub := websocket.NewHub()
	notifier.SetBroadcaster(hub)

	account := auth.Account{
		User: model.User{
			Username:   cfg.Auth.Username,
			FullName:   cfg.Auth.FullName,
			Role:       cfg.Auth.Role,
			Department: cfg.Auth.Department,
			Email:      cfg.Auth.Email,
		},
		PasswordHash: cfg.Auth.PasswordHash,
	}
	sessions := auth.NewSessionManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer,
		time.Duration(cfg.Auth.SessionTTL)*time.Hour, []auth.Account{account})
	verifier := signature.VerifierFunc(sessions.VerifyCredential)

	advisor := assist.NewAdvisor(assist.NewHTTPClient(
		cfg.Assist.Endpoint, cfg.Assist.APIKey,
		time.Duration(cfg.Assist.Timeout)*time.Second, logger))

	c := &Container{
		db:       db,
		adapter:  adapter,
		trail:    trail,
		notifier: notifier,
		hub:      hub,
		sessions: sessions,
		verifier: verifier,
		advisor:  advisor,

		deviations: repository.NewDeviationRepository(adapter, trail, notifier),
		capas:      repository.NewCAPARepository(adapter, trail, notifier),
		audits:     repository.NewAuditRecordRepository(adapter, trail),
		risks:      repository.NewRiskRepository(adapter, trail),
		oos:        repository.NewOOSRepository(adapter, trail),
		recalls:    repository.NewRecallRepository(adapter, trail),
		changes:    repository.NewChangeRepository(adapter, trail),
		stability:  repository.NewStabilityRepository(adapter, trail),
		inventory:  repository.NewInventoryRepository(adapter, trail),
		lims:       repository.NewLIMSRepository(adapter, trail),
		coas:       repository.NewCOARepository(adapter, trail),
		ipqc:       repository.NewIPQCRepository(adapter, trail),
		mfrs:       repository.NewMFRRepository(adapter, trail),
		bmrs:       repository.NewBMRRepository(adapter, trail),
	}
	c.batch = service.NewBatchService(c.mfrs, c.bmrs)
	c.archive = service.NewArchiveService(adapter, trail)

	return c, nil
}

// DB 获取数据库连接
func (c *Container) DB() *gorm.DB { return c.db }

// Adapter 获取集合存储
func (c *Container) Adapter() store.Adapter { return c.adapter }

// Trail 获取审计台账
func (c *Container) Trail() *audit.Trail { return c.trail }

// Notifier 获取通知旁路
func (c *Container) Notifier() *notify.Notifier { return c.notifier }

// Hub 获取 WebSocket 推送通道
func (c *Container) Hub() *websocket.Hub { return c.hub }

// Sessions 获取会话管理器
func (c *Container) Sessions() *auth.SessionManager { return c.sessions }

// Verifier 获取签名凭据校验器
func (c *Container) Verifier() signature.Verifier { return c.verifier }

// Advisor 获取 AI 建议封装
func (c *Container) Advisor() *assist.Advisor { return c.advisor }

// Deviations 偏差仓储
func (c *Container) Deviations() *repository.DeviationRepository { return c.deviations }

// CAPAs CAPA 仓储
func (c *Container) CAPAs() *repository.CAPARepository { return c.capas }

// Audits 内部审核仓储
func (c *Container) Audits() *repository.Repository[*model.AuditRecord] { return c.audits }

// Risks 风险登记仓储
func (c *Container) Risks() *repository.RiskRepository { return c.risks }

// OOS 超标检验仓储
func (c *Container) OOS() *repository.Repository[*model.OOSRecord] { return c.oos }

// Recalls 召回仓储
func (c *Container) Recalls() *repository.Repository[*model.Recall] { return c.recalls }

// Changes 变更控制仓储
func (c *Container) Changes() *repository.ChangeRepository { return c.changes }

// Stability 稳定性研究仓储
func (c *Container) Stability() *repository.Repository[*model.StabilityStudy] { return c.stability }

// Inventory 库存物料仓储
func (c *Container) Inventory() *repository.Repository[*model.InventoryItem] { return c.inventory }

// LIMS 检品仓储
func (c *Container) LIMS() *repository.Repository[*model.LIMSSample] { return c.lims }

// COAs 检验报告仓储
func (c *Container) COAs() *repository.Repository[*model.COARecord] { return c.coas }

// IPQC 过程控制检测仓储
func (c *Container) IPQC() *repository.Repository[*model.IPQCRecord] { return c.ipqc }

// MFRs 主配方仓储
func (c *Container) MFRs() *repository.Repository[*model.MFR] { return c.mfrs }

// BMRs 批生产记录仓储
func (c *Container) BMRs() *repository.BMRRepository { return c.bmrs }

// Batch 批记录签发服务
func (c *Container) Batch() service.BatchService { return c.batch }

// Archive 归档服务
func (c *Container) Archive() service.ArchiveService { return c.archive }

// Close 关闭容器,清理资源
func (c *Container) Close() error {
	if c.db != nil {
		sqlDB, err := c.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	return nil
}

package model

import (
	"strings"
	"time"
)

// Status 记录状态
type Status string

const (
	StatusPending     Status = "Pending"
	StatusInProgress  Status = "In Progress"
	StatusCompleted   Status = "Completed"
	StatusClosed      Status = "Closed"
	StatusApproved    Status = "Approved"
	StatusRejected    Status = "Rejected"
	StatusReleased    Status = "Released"
	StatusUnderReview Status = "Under Review"
	StatusSubmitted   Status = "Submitted"
	StatusDraft       Status = "Draft"
	StatusEffective   Status = "Effective"
	StatusSuperseded  Status = "Superseded"
	StatusIssued      Status = "Issued"
	StatusOngoing     Status = "Ongoing"
	StatusStopped     Status = "Stopped"
	StatusLogged      Status = "Logged"
	StatusTesting     Status = "Testing"
	StatusReview      Status = "Review"
	StatusQuarantine  Status = "Quarantine"
	StatusExpired     Status = "Expired"
)

// Severity 严重度等级
type Severity string

const (
	SeverityLow      Severity = "Low"
	SeverityMedium   Severity = "Medium"
	SeverityHigh     Severity = "High"
	SeverityCritical Severity = "Critical"
)

// Reference 跨模块弱引用
// 只按展示编号引用，被引用记录可能已被删除，解引用方必须容忍 NotFound
type Reference struct {
	Kind string `json:"kind"`
	Code string `json:"code"`
}

// IsZero 判断引用是否为空
func (r Reference) IsZero() bool {
	return r.Kind == "" && r.Code == ""
}

// Base 记录基础字段，所有模块记录内嵌
// ID 在创建时分配且不可变，删除后不复用，保证审计追溯引用始终有效
type Base struct {
	ID        string     `json:"id"`
	Number    string     `json:"number"`
	Status    Status     `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	ClosedAt  *time.Time `json:"closedAt,omitempty"`
}

// RecordID 返回记录唯一标识
func (b *Base) RecordID() string {
	return b.ID
}

// DisplayNumber 返回人类可读编号
func (b *Base) DisplayNumber() string {
	return b.Number
}

// CurrentStatus 返回当前状态
func (b *Base) CurrentStatus() Status {
	return b.Status
}

// SetStatus 设置状态
func (b *Base) SetStatus(s Status) {
	b.Status = s
}

// Stamp 创建时分配标识、编号、初始状态和创建时间
func (b *Base) Stamp(id string, number string, status Status, at time.Time) {
	b.ID = id
	b.Number = number
	b.Status = status
	b.CreatedAt = at
}

// Close 终态流转时记录关闭时间
func (b *Base) Close(at time.Time) {
	b.ClosedAt = &at
}

// Record 生命周期引擎管理的记录
type Record interface {
	RecordID() string
	DisplayNumber() string
	CurrentStatus() Status
	SetStatus(Status)
	Stamp(id string, number string, status Status, at time.Time)
	Close(at time.Time)
}

// User 当前操作用户
type User struct {
	Username   string `json:"username"`
	FullName   string `json:"fullName"`
	Role       string `json:"role"`
	Department string `json:"department"`
	Email      string `json:"email"`
}

// IsAdmin 判断是否为管理员角色
func (u User) IsAdmin() bool {
	return strings.EqualFold(u.Role, "admin")
}

package statemachine

import (
	"errors"
	"fmt"

	"github.com/pharmaqualify/qms-gin/internal/model"
)

var (
	// ErrUnauthorized 角色守卫拒绝了该操作
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidTransition 当前状态下该操作不合法
	ErrInvalidTransition = errors.New("invalid transition")
)

// Action 状态机动作
type Action string

// Transition 一条流转规则：动作把 From 中任一状态带到 To
type Transition struct {
	Action Action
	From   []model.Status
	To     model.Status
}

// Config 模块状态机配置
type Config struct {
	Initial           model.Status
	Transitions       []Transition
	AdminOnly         []Action
	SignatureRequired []Action
}

// Machine 模块状态状态机
// 纯状态计算，不直接写审计台账——审计由仓储层与流转作为一个
// 逻辑单元一起完成
type Machine struct {
	name    string
	initial model.Status
	rules   map[model.Status]map[Action]model.Status
	admin   map[Action]bool
	signed  map[Action]bool
}

// New 按配置构建状态机
func New(name string, cfg Config) *Machine {
	m := &Machine{
		name:    name,
		initial: cfg.Initial,
		rules:   make(map[model.Status]map[Action]model.Status),
		admin:   make(map[Action]bool),
		signed:  make(map[Action]bool),
	}
	for _, t := range cfg.Transitions {
		for _, from := range t.From {
			if m.rules[from] == nil {
				m.rules[from] = make(map[Action]model.Status)
			}
			m.rules[from][t.Action] = t.To
		}
	}
	for _, a := range cfg.AdminOnly {
		m.admin[a] = true
	}
	for _, a := range cfg.SignatureRequired {
		m.signed[a] = true
	}
	return m
}

// Initial 初始状态
func (m *Machine) Initial() model.Status {
	return m.initial
}

// Next 计算流转结果
// 先查角色守卫再查流转表：未授权时必须不泄露流转是否合法
func (m *Machine) Next(current model.Status, action Action, user model.User) (model.Status, error) {
	if m.admin[action] && !user.IsAdmin() {
		return current, fmt.Errorf("%w: action %s requires admin role", ErrUnauthorized, action)
	}
	actions, ok := m.rules[current]
	if !ok {
		return current, fmt.Errorf("%w: no actions from status %q", ErrInvalidTransition, current)
	}
	next, ok := actions[action]
	if !ok {
		return current, fmt.Errorf("%w: action %s not legal from status %q", ErrInvalidTransition, action, current)
	}
	return next, nil
}

// RequiresSignature 该动作是否需要电子签名确认
func (m *Machine) RequiresSignature(action Action) bool {
	return m.signed[action]
}

// IsTerminal 终态＝没有任何出边的状态
func (m *Machine) IsTerminal(s model.Status) bool {
	return len(m.rules[s]) == 0
}

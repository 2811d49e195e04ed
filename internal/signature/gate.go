package signature

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrCredentialMismatch 凭据校验失败，门保持开启可重试
	ErrCredentialMismatch = errors.New("credential mismatch")
	// ErrGateClosed 门已到达终态，本次交互不可复用
	ErrGateClosed = errors.New("signature gate closed")
)

// Meaning 签名法定含义
type Meaning string

const (
	MeaningAuthorship       Meaning = "Authorship"
	MeaningReview           Meaning = "Review"
	MeaningApproval         Meaning = "Approval"
	MeaningVerification     Meaning = "Verification"
	MeaningWitnessing       Meaning = "Witnessing"
	MeaningTechnicalRelease Meaning = "Technical Release"
	MeaningLineClearance    Meaning = "Line Clearance"
)

// State 门状态：Idle -> AwaitingInput -> {Confirmed | Cancelled}
type State int

const (
	StateIdle State = iota
	StateAwaitingInput
	StateConfirmed
	StateCancelled
)

// Outcome 签名确认结果
// 签名事件本身不落盘，只有它带来的状态变更和审计条目会被持久化
type Outcome struct {
	Action   string    `json:"action"`
	Meaning  Meaning   `json:"meaning"`
	Reason   string    `json:"reason"`
	SignedBy string    `json:"signedBy"`
	SignedAt time.Time `json:"signedAt"`
}

// Verifier 凭据校验谓词，可替换为真实身份认证实现
type Verifier interface {
	Verify(username string, credential string) bool
}

// VerifierFunc 函数形式的凭据校验
type VerifierFunc func(username string, credential string) bool

// Verify 实现 Verifier
func (f VerifierFunc) Verify(username string, credential string) bool {
	return f(username, credential)
}

// BcryptVerifier 按用户名查 bcrypt 哈希的凭据校验
type BcryptVerifier struct {
	hashes map[string]string
}

// NewBcryptVerifier 创建 bcrypt 凭据校验器
func NewBcryptVerifier(hashes map[string]string) *BcryptVerifier {
	return &BcryptVerifier{hashes: hashes}
}

// Verify 校验用户凭据
func (v *BcryptVerifier) Verify(username string, credential string) bool {
	hash, ok := v.hashes[username]
	if !ok {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(credential)) == nil
}

// Gate 电子签名门
// 每个待提交动作构造一次性的门交互，确认或取消后即终结。
// 取消必须不留任何副作用，且幂等
type Gate struct {
	action         string
	defaultMeaning Meaning
	verifier       Verifier
	state          State
	outcome        *Outcome
	now            func() time.Time
}

// NewGate 发起一次签名交互，门进入 AwaitingInput
func NewGate(action string, defaultMeaning Meaning, verifier Verifier) *Gate {
	return &Gate{
		action:         action,
		defaultMeaning: defaultMeaning,
		verifier:       verifier,
		state:          StateAwaitingInput,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// State 当前门状态
func (g *Gate) State() State {
	return g.state
}

// Outcome 确认结果，未确认时为 nil
func (g *Gate) Outcome() *Outcome {
	return g.outcome
}

// Confirm 提交凭据确认签名
// 凭据不符返回 ErrCredentialMismatch 且门保持开启；成功后门终结
func (g *Gate) Confirm(username string, credential string, reason string, meaning Meaning) (*Outcome, error) {
	if g.state != StateAwaitingInput {
		return nil, ErrGateClosed
	}
	if !g.verifier.Verify(username, credential) {
		return nil, ErrCredentialMismatch
	}
	if meaning == "" {
		meaning = g.defaultMeaning
	}
	g.state = StateConfirmed
	g.outcome = &Outcome{
		Action:   g.action,
		Meaning:  meaning,
		Reason:   reason,
		SignedBy: username,
		SignedAt: g.now(),
	}
	return g.outcome, nil
}

// Cancel 放弃签名，幂等；已确认的门不受影响
func (g *Gate) Cancel() {
	if g.state == StateAwaitingInput {
		g.state = StateCancelled
	}
}

package signature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testVerifier() Verifier {
	return VerifierFunc(func(username string, credential string) bool {
		return username == "maryam" && credential == "secret"
	})
}

// TestGateConfirm 测试签名确认
func TestGateConfirm(t *testing.T) {
	gate := NewGate("Approve Deviation", MeaningApproval, testVerifier())
	assert.Equal(t, StateAwaitingInput, gate.State())

	outcome, err := gate.Confirm("maryam", "secret", "Investigation complete", "")
	require.NoError(t, err)
	require.NotNil(t, outcome)
	assert.Equal(t, "Approve Deviation", outcome.Action)
	assert.Equal(t, MeaningApproval, outcome.Meaning)
	assert.Equal(t, "Investigation complete", outcome.Reason)
	assert.Equal(t, "maryam", outcome.SignedBy)
	assert.False(t, outcome.SignedAt.IsZero())
	assert.Equal(t, StateConfirmed, gate.State())
	assert.Equal(t, outcome, gate.Outcome())
}

// TestGateConfirmMeaningOverride 测试调用方覆盖默认含义
func TestGateConfirmMeaningOverride(t *testing.T) {
	gate := NewGate("Release COA", MeaningApproval, testVerifier())

	outcome, err := gate.Confirm("maryam", "secret", "", MeaningTechnicalRelease)
	require.NoError(t, err)
	assert.Equal(t, MeaningTechnicalRelease, outcome.Meaning)
}

// TestGateCredentialMismatch 测试凭据不符时门保持开启
func TestGateCredentialMismatch(t *testing.T) {
	gate := NewGate("Approve Deviation", MeaningApproval, testVerifier())

	outcome, err := gate.Confirm("maryam", "wrong", "", "")
	assert.ErrorIs(t, err, ErrCredentialMismatch)
	assert.Nil(t, outcome)
	assert.Equal(t, StateAwaitingInput, gate.State())
	assert.Nil(t, gate.Outcome())

	// 门未终结，可以重试
	outcome, err = gate.Confirm("maryam", "secret", "", "")
	require.NoError(t, err)
	assert.Equal(t, StateConfirmed, gate.State())
	assert.NotNil(t, outcome)
}

// TestGateCancel 测试取消无副作用且幂等
func TestGateCancel(t *testing.T) {
	gate := NewGate("Approve Deviation", MeaningApproval, testVerifier())

	gate.Cancel()
	assert.Equal(t, StateCancelled, gate.State())
	assert.Nil(t, gate.Outcome())

	// 幂等
	gate.Cancel()
	assert.Equal(t, StateCancelled, gate.State())

	// 取消后的门不可再确认
	outcome, err := gate.Confirm("maryam", "secret", "", "")
	assert.ErrorIs(t, err, ErrGateClosed)
	assert.Nil(t, outcome)
}

// TestGateConfirmOnce 测试已确认的门不可复用
func TestGateConfirmOnce(t *testing.T) {
	gate := NewGate("Approve Deviation", MeaningApproval, testVerifier())

	first, err := gate.Confirm("maryam", "secret", "", "")
	require.NoError(t, err)

	second, err := gate.Confirm("maryam", "secret", "", "")
	assert.ErrorIs(t, err, ErrGateClosed)
	assert.Nil(t, second)

	// 已确认的门不受 Cancel 影响
	gate.Cancel()
	assert.Equal(t, StateConfirmed, gate.State())
	assert.Equal(t, first, gate.Outcome())
}

// TestBcryptVerifier 测试 bcrypt 凭据校验器
func TestBcryptVerifier(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	v := NewBcryptVerifier(map[string]string{"maryam": string(hash)})
	assert.True(t, v.Verify("maryam", "secret"))
	assert.False(t, v.Verify("maryam", "wrong"))
	assert.False(t, v.Verify("unknown", "secret"))
}

package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSanitizeString 测试字符串清理
func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "&lt;b&gt;hello&lt;/b&gt;", SanitizeString("<b>hello</b>"))
	// 控制字符被移除，换行和制表符保留
	assert.Equal(t, "a\nb\tc", SanitizeString("a\nb\tc\x00\x1b"))
}

// TestValidateRecordID 测试记录 ID 校验
func TestValidateRecordID(t *testing.T) {
	assert.NoError(t, ValidateRecordID("DEV-1756600000000-a1b2c3"))
	assert.NoError(t, ValidateRecordID("CAPA_2"))

	assert.ErrorIs(t, ValidateRecordID(""), ErrEmptyID)
	assert.ErrorIs(t, ValidateRecordID("dev/1"), ErrInvalidIDFormat)
	assert.ErrorIs(t, ValidateRecordID("dev 1"), ErrInvalidIDFormat)
	assert.ErrorIs(t, ValidateRecordID(strings.Repeat("a", 65)), ErrIDTooLong)
}

// TestValidateFreeText 测试自由文本校验
func TestValidateFreeText(t *testing.T) {
	assert.NoError(t, ValidateFreeText("Tablet weight out of range", 100))

	assert.ErrorIs(t, ValidateFreeText("   ", 100), ErrEmptyString)
	assert.ErrorIs(t, ValidateFreeText(strings.Repeat("x", 101), 100), ErrStringTooLong)
	assert.ErrorIs(t, ValidateFreeText("<script>alert(1)</script>", 100), ErrDangerousChars)
	assert.ErrorIs(t, ValidateFreeText("1'; DROP TABLE users", 100), ErrDangerousChars)
}

// TestTrimAndValidate 测试清理并校验
func TestTrimAndValidate(t *testing.T) {
	out, err := TrimAndValidate("  hello  ", 10)
	assert.NoError(t, err)
	assert.Equal(t, "hello", out)

	_, err = TrimAndValidate("  ", 10)
	assert.ErrorIs(t, err, ErrEmptyString)

	out, err = TrimAndValidate("<i>x</i>", 20)
	assert.NoError(t, err)
	assert.Equal(t, "&lt;i&gt;x&lt;/i&gt;", out)
}

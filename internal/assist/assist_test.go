package assist

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// TestHTTPClientGenerate 测试请求构造与结果信封解包
func TestHTTPClientGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req struct {
			Prompt string `json:"prompt"`
			Schema string `json:"schema"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req.Prompt, "root cause")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result": {"rootCause": "Worn punch"}}`))
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "test-key", time.Second, newTestLogger())
	raw, err := client.Generate(context.Background(), "propose a root cause", "{}")
	require.NoError(t, err)
	assert.JSONEq(t, `{"rootCause": "Worn punch"}`, string(raw))
}

// TestHTTPClientGenerateBareDocument 测试端点直接返回结果文档
func TestHTTPClientGenerateBareDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"hazard": "Cross contamination"}]`))
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "", time.Second, newTestLogger())
	raw, err := client.Generate(context.Background(), "scout hazards", "")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"hazard": "Cross contamination"}]`, string(raw))
}

// TestHTTPClientUpstreamError 测试上游错误映射为不可用
func TestHTTPClientUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "", time.Second, newTestLogger())
	_, err := client.Generate(context.Background(), "prompt", "")
	assert.ErrorIs(t, err, ErrUnavailable)
}

// TestHTTPClientNoEndpoint 测试未配置端点
func TestHTTPClientNoEndpoint(t *testing.T) {
	client := NewHTTPClient("", "", time.Second, newTestLogger())
	_, err := client.Generate(context.Background(), "prompt", "")
	assert.ErrorIs(t, err, ErrUnavailable)
}

// TestHTTPClientTransportError 测试网络不可达
func TestHTTPClientTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // 立即关闭，制造连接失败

	client := NewHTTPClient(srv.URL, "", time.Second, newTestLogger())
	_, err := client.Generate(context.Background(), "prompt", "")
	assert.ErrorIs(t, err, ErrUnavailable)
}

package assist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrUnavailable AI 协作端不可用
// 调用方必须把它降级为人工录入提示，绝不能因此阻塞记录操作
var ErrUnavailable = errors.New("assist service unavailable")

// Client AI 协作端
// prompt 为任务描述，schema 为期望的结构化输出形状说明；
// 返回的 JSON 在采纳前仅作建议展示
type Client interface {
	Generate(ctx context.Context, prompt string, schema string) (json.RawMessage, error)
}

// HTTPClient 通过可配置的 HTTP 端点实现 Client
type HTTPClient struct {
	endpoint string
	apiKey   string
	client   *http.Client
	logger   *logrus.Logger
}

// NewHTTPClient 创建 HTTP 协作端
func NewHTTPClient(endpoint string, apiKey string, timeout time.Duration, logger *logrus.Logger) *HTTPClient {
	return &HTTPClient{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

type generateRequest struct {
	Prompt string `json:"prompt"`
	Schema string `json:"schema,omitempty"`
}

type generateResponse struct {
	Result json.RawMessage `json:"result"`
}

// Generate 请求结构化生成
func (c *HTTPClient) Generate(ctx context.Context, prompt string, schema string) (json.RawMessage, error) {
	if c.endpoint == "" {
		return nil, fmt.Errorf("%w: no endpoint configured", ErrUnavailable)
	}

	body, err := json.Marshal(generateRequest{Prompt: prompt, Schema: schema})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.WithError(err).Warn("assist request failed")
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.WithField("status", resp.StatusCode).Warn("assist request rejected")
		return nil, fmt.Errorf("%w: upstream status %d", ErrUnavailable, resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var parsed generateResponse
	if err := json.Unmarshal(raw, &parsed); err != nil || len(parsed.Result) == 0 {
		// 端点直接返回结果文档的情况
		return json.RawMessage(raw), nil
	}
	return parsed.Result, nil
}

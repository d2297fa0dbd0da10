// Package extractor - Client gọi service trích xuất text từ tài liệu PDF.
// Request = bytes tài liệu; response = plain text hoặc lỗi.
package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"case_harvest/config"
	"case_harvest/internal/common"
	"case_harvest/internal/logger"
)

// Client bọc text extractor API.
type Client struct {
	httpClient *http.Client
	apiURL     string
}

// NewClient tạo extractor client từ cấu hình server.
func NewClient(cfg *config.Configuration) *Client {
	timeout := time.Duration(cfg.FetchTimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		apiURL:     cfg.ExtractorAPIURL,
	}
}

// extractResponse định dạng trả về của extractor service.
type extractResponse struct {
	Text  string `json:"text"`
	Error string `json:"error,omitempty"`
}

// Extract gửi bytes tài liệu, nhận về plain text.
// Tài liệu hỏng/không parse được trả lỗi ExternalExtract — item fail, không chặn batch.
func (c *Client) Extract(ctx context.Context, document []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", c.apiURL, bytes.NewReader(document))
	if err != nil {
		return "", common.NewError(common.ErrCodeExternalExtract, "Không dựng được request tới extractor", common.StatusBadGateway, err)
	}
	req.Header.Set("Content-Type", "application/pdf")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.GetPipelineLogger().WithError(err).Warn("📄 [EXTRACT] Lỗi khi gọi extractor service")
		return "", common.NewError(common.ErrCodeExternalExtract, "Extractor service không phản hồi", common.StatusBadGateway, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", common.NewError(common.ErrCodeExternalExtract,
			fmt.Sprintf("Extractor trả về status %d: %s", resp.StatusCode, string(bodyBytes)), common.StatusBadGateway, nil)
	}

	var result extractResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", common.NewError(common.ErrCodeExternalExtract, "Response của extractor không phải JSON hợp lệ", common.StatusBadGateway, err)
	}
	if result.Error != "" {
		return "", common.NewError(common.ErrCodeExternalExtract,
			fmt.Sprintf("Extractor báo lỗi: %s", result.Error), common.StatusBadGateway, nil)
	}
	if result.Text == "" {
		return "", common.NewError(common.ErrCodeExternalExtract, "Extractor trả về text rỗng", common.StatusBadGateway, nil)
	}
	return result.Text, nil
}

// Package enrichment - Client gọi service tra cứu thông tin liên hệ/đăng ký doanh nghiệp.
package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"case_harvest/config"
	"case_harvest/internal/common"
	"case_harvest/internal/logger"
)

// Client bọc enrichment lookup API.
type Client struct {
	httpClient *http.Client
	apiURL     string
}

// NewClient tạo enrichment client từ cấu hình server.
func NewClient(cfg *config.Configuration) *Client {
	timeout := time.Duration(cfg.FetchTimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		apiURL:     cfg.EnrichmentAPIURL,
	}
}

// Result thông tin liên hệ tra cứu được.
type Result struct {
	ContactEmail   string `json:"contactEmail,omitempty"`
	ContactPhone   string `json:"contactPhone,omitempty"`
	ContactAddress string `json:"contactAddress,omitempty"`
	Website        string `json:"website,omitempty"`
}

// Lookup tra cứu theo tên doanh nghiệp (+ mã đăng ký nếu có).
// Thất bại trả lỗi ExternalEnrich — lead giữ nguyên pending để retry lần chạy sau.
func (c *Client) Lookup(ctx context.Context, name, registrationID string) (*Result, error) {
	params := url.Values{}
	params.Set("name", name)
	if registrationID != "" {
		params.Set("registrationId", registrationID)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", c.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, common.NewError(common.ErrCodeExternalEnrich, "Không dựng được request tới enrichment service", common.StatusBadGateway, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.GetPipelineLogger().WithError(err).Warn("🏢 [ENRICH] Lỗi khi gọi enrichment service")
		return nil, common.NewError(common.ErrCodeExternalEnrich, "Enrichment service không phản hồi", common.StatusBadGateway, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, common.NewError(common.ErrCodeExternalEnrich,
			fmt.Sprintf("Enrichment service trả về status %d: %s", resp.StatusCode, string(bodyBytes)), common.StatusBadGateway, nil)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, common.NewError(common.ErrCodeExternalEnrich, "Response của enrichment không phải JSON hợp lệ", common.StatusBadGateway, err)
	}
	return &result, nil
}

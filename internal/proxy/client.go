// Package proxy - Client gọi fetch proxy (kiểu ZenRows) để tải tài liệu từ registry,
// vượt các lớp chống tự động hóa. Request = URL đích + gợi ý quốc gia + render JS.
package proxy

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"case_harvest/config"
	"case_harvest/internal/common"
	"case_harvest/internal/logger"
)

// Client bọc fetch proxy API.
type Client struct {
	httpClient *http.Client
	apiURL     string
	apiKey     string
	country    string
	premium    bool
}

// NewClient tạo proxy client từ cấu hình server.
func NewClient(cfg *config.Configuration) *Client {
	timeout := time.Duration(cfg.FetchTimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		apiURL:     cfg.ProxyAPIURL,
		apiKey:     cfg.ProxyAPIKey,
		country:    cfg.ProxyCountry,
		premium:    cfg.ProxyPremium,
	}
}

// Fetch tải URL đích qua proxy, trả về raw bytes.
// Mọi response không phải 2xx được coi là fetch thất bại.
func (c *Client) Fetch(ctx context.Context, targetURL string) ([]byte, error) {
	log := logger.GetPipelineLogger()

	params := url.Values{}
	params.Set("url", targetURL)
	params.Set("apikey", c.apiKey)
	params.Set("js_render", "true")
	if c.country != "" {
		params.Set("proxy_country", c.country)
	}
	if c.premium {
		params.Set("premium_proxy", "true")
	}

	req, err := http.NewRequestWithContext(ctx, "GET", c.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, common.NewError(common.ErrCodeExternalFetch, "Không dựng được request tới fetch proxy", common.StatusBadGateway, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.WithError(err).WithFields(map[string]interface{}{
			"targetUrl": targetURL,
		}).Warn("🌐 [PROXY] Lỗi khi gọi fetch proxy")
		return nil, common.NewError(common.ErrCodeExternalFetch, "Fetch proxy không phản hồi", common.StatusBadGateway, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		log.WithFields(map[string]interface{}{
			"targetUrl":  targetURL,
			"statusCode": resp.StatusCode,
			"response":   string(bodyBytes),
		}).Warn("🌐 [PROXY] Fetch proxy trả về lỗi")
		return nil, common.NewError(common.ErrCodeExternalFetch,
			fmt.Sprintf("Fetch proxy trả về status %d", resp.StatusCode), common.StatusBadGateway, nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, common.NewError(common.ErrCodeExternalFetch, "Không đọc được nội dung từ fetch proxy", common.StatusBadGateway, err)
	}
	return body, nil
}

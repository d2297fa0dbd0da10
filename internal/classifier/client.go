// Package classifier - Client gọi service phân loại văn bản lệnh tòa.
// Request = text của lệnh (+ góc nhìn bên tham gia nếu có); response = metadata có cấu trúc.
// Kết quả được validate tại boundary này, tầng dưới không tin payload tự do.
package classifier

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

// Client bọc classification API.
type Client struct {
	httpClient *http.Client
	apiURL     string
}

// NewClient tạo classifier client từ cấu hình server.
func NewClient(cfg *config.Configuration) *Client {
	timeout := time.Duration(cfg.FetchTimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		apiURL:     cfg.ClassifierAPIURL,
	}
}

// Result metadata có cấu trúc do classifier trả về, các trường optional tường minh.
type Result struct {
	CaseTitle     string   `json:"caseTitle,omitempty"`
	CaseType      string   `json:"caseType,omitempty"`
	CaseCategory  string   `json:"caseCategory,omitempty"`
	PartyNames    []string `json:"partyNames,omitempty"`
	AdvocateNames []string `json:"advocateNames,omitempty"`

	HearingDate     int64 `json:"hearingDate,omitempty"`     // Unix ms
	NextHearingDate int64 `json:"nextHearingDate,omitempty"` // Unix ms

	FreshCaseAssignment   bool   `json:"freshCaseAssignment,omitempty"`
	BusinessEntityPresent bool   `json:"businessEntityPresent,omitempty"`
	NotablePersonPresent  bool   `json:"notablePersonPresent,omitempty"`
	Adjourned             bool   `json:"adjourned,omitempty"`
	AdjournedBy           string `json:"adjournedBy,omitempty"`

	BusinessNames           []string `json:"businessNames,omitempty"`
	BusinessRegistrationIds []string `json:"businessRegistrationIds,omitempty"`
	PersonNames             []string `json:"personNames,omitempty"`

	PendingActions []string `json:"pendingActions,omitempty"`
	EventSummary   string   `json:"eventSummary,omitempty"`
	Significance   string   `json:"significance,omitempty"`
}

// classifyRequest body gửi lên classifier.
type classifyRequest struct {
	Text        string `json:"text"`
	Perspective string `json:"perspective,omitempty"` // Góc nhìn bên tham gia (optional)
}

// Classify gửi text, nhận metadata có cấu trúc.
// Kết quả rỗng/không hợp lệ trả lỗi ExternalClassify — item fail, không chặn batch.
func (c *Client) Classify(ctx context.Context, text, perspective string) (*Result, error) {
	if text == "" {
		return nil, common.NewError(common.ErrCodeValidationInput, "Text phân loại rỗng", common.StatusBadRequest, nil)
	}

	payload, err := json.Marshal(classifyRequest{Text: text, Perspective: perspective})
	if err != nil {
		return nil, common.NewError(common.ErrCodeExternalClassify, "Không serialize được request phân loại", common.StatusBadGateway, err)
	}
	req, err := http.NewRequestWithContext(ctx, "POST", c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return nil, common.NewError(common.ErrCodeExternalClassify, "Không dựng được request tới classifier", common.StatusBadGateway, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.GetPipelineLogger().WithError(err).Warn("🏷️ [CLASSIFY] Lỗi khi gọi classifier service")
		return nil, common.NewError(common.ErrCodeExternalClassify, "Classifier service không phản hồi", common.StatusBadGateway, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, common.NewError(common.ErrCodeExternalClassify,
			fmt.Sprintf("Classifier trả về status %d: %s", resp.StatusCode, string(bodyBytes)), common.StatusBadGateway, nil)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, common.NewError(common.ErrCodeExternalClassify, "Response của classifier không phải JSON hợp lệ", common.StatusBadGateway, err)
	}
	if err := validateResult(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// validateResult kiểm tra kết quả phân loại tại boundary — kết quả rỗng hoặc mâu thuẫn bị loại.
func validateResult(r *Result) error {
	if r.CaseTitle == "" && r.EventSummary == "" && len(r.PartyNames) == 0 && !r.Adjourned {
		return common.NewError(common.ErrCodeExternalClassify, "Kết quả phân loại rỗng", common.StatusBadGateway, nil)
	}
	if r.AdjournedBy != "" && !r.Adjourned {
		return common.NewError(common.ErrCodeExternalClassify, "Kết quả phân loại mâu thuẫn: có adjournedBy nhưng adjourned = false", common.StatusBadGateway, nil)
	}
	if r.BusinessEntityPresent && len(r.BusinessNames) == 0 {
		return common.NewError(common.ErrCodeExternalClassify, "Kết quả phân loại mâu thuẫn: businessEntityPresent nhưng không có businessNames", common.StatusBadGateway, nil)
	}
	return nil
}

// Package courtsvc - Mã hóa/giải mã payload của URL tải lệnh.
// Payload {cnr, orderNumber, orderDate} được serialize JSON rồi mã hóa base64 URL-safe,
// gắn vào query ?q= — phải đảo ngược được chính xác để audit/retry từ URL.
package courtsvc

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"case_harvest/internal/common"
)

// OrderPayload nội dung định danh một yêu cầu tải lệnh, nhúng trong fetch URL.
type OrderPayload struct {
	CNR         string `json:"cnr"`
	OrderNumber int    `json:"orderNumber"`
	OrderDate   string `json:"orderDate"` // YYYY-MM-DD
}

// EncodeOrderPayload serialize payload sang JSON rồi mã hóa base64 URL-safe (không padding).
func EncodeOrderPayload(p OrderPayload) (string, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return "", common.NewError(common.ErrCodeValidationFormat, "Không serialize được payload lệnh", common.StatusInternalServerError, err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// DecodeOrderPayload giải mã chuỗi q= ngược về payload gốc.
func DecodeOrderPayload(encoded string) (*OrderPayload, error) {
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, common.NewError(common.ErrCodeValidationFormat, "Payload lệnh không phải base64 URL-safe hợp lệ", common.StatusBadRequest, err)
	}
	var p OrderPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, common.NewError(common.ErrCodeValidationFormat, "Payload lệnh không phải JSON hợp lệ", common.StatusBadRequest, err)
	}
	return &p, nil
}

// BuildFetchURL dựng URL tải lệnh: baseURL + ?q=<payload đã mã hóa>.
func BuildFetchURL(baseURL string, p OrderPayload) (string, error) {
	encoded, err := EncodeOrderPayload(p)
	if err != nil {
		return "", err
	}
	sep := "?"
	if strings.Contains(baseURL, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%sq=%s", baseURL, sep, encoded), nil
}

// DecodeFetchURL tách và giải mã payload từ một fetch URL hoàn chỉnh.
func DecodeFetchURL(fetchURL string) (*OrderPayload, error) {
	parsed, err := url.Parse(fetchURL)
	if err != nil {
		return nil, common.NewError(common.ErrCodeValidationFormat, "Fetch URL không hợp lệ", common.StatusBadRequest, err)
	}
	q := parsed.Query().Get("q")
	if q == "" {
		return nil, common.NewError(common.ErrCodeValidationFormat, "Fetch URL thiếu tham số q", common.StatusBadRequest, nil)
	}
	return DecodeOrderPayload(q)
}

// Package courtsvc - Test mã hóa/giải mã payload URL tải lệnh (phải đảo ngược chính xác).
package courtsvc

import (
	"strings"
	"testing"
)

func TestOrderPayload_EncodeDecodeDaoNguoc(t *testing.T) {
	p := OrderPayload{
		CNR:         "DLWT010127152025",
		OrderNumber: 3,
		OrderDate:   "2025-06-15",
	}

	encoded, err := EncodeOrderPayload(p)
	if err != nil {
		t.Fatalf("EncodeOrderPayload lỗi: %v", err)
	}
	if strings.ContainsAny(encoded, "+/=") {
		t.Errorf("Payload phải là base64 URL-safe không padding, got %s", encoded)
	}

	decoded, err := DecodeOrderPayload(encoded)
	if err != nil {
		t.Fatalf("DecodeOrderPayload lỗi: %v", err)
	}
	if *decoded != p {
		t.Errorf("Payload giải mã không khớp: got %+v, want %+v", *decoded, p)
	}
}

func TestDecodeOrderPayload_ChuoiRac(t *testing.T) {
	if _, err := DecodeOrderPayload("!!!không-phải-base64!!!"); err == nil {
		t.Error("Chuỗi không phải base64 phải trả lỗi")
	}
}

func TestBuildFetchURL_VaDaoNguoc(t *testing.T) {
	p := OrderPayload{CNR: "DLCT010000072024", OrderNumber: 1, OrderDate: "2024-01-02"}

	fetchURL, err := BuildFetchURL("https://delhicourts.nic.in/orders/download", p)
	if err != nil {
		t.Fatalf("BuildFetchURL lỗi: %v", err)
	}
	if !strings.Contains(fetchURL, "?q=") {
		t.Errorf("URL phải chứa ?q=, got %s", fetchURL)
	}

	decoded, err := DecodeFetchURL(fetchURL)
	if err != nil {
		t.Fatalf("DecodeFetchURL lỗi: %v", err)
	}
	if *decoded != p {
		t.Errorf("Payload từ URL không khớp: got %+v, want %+v", *decoded, p)
	}
}

func TestBuildFetchURL_BaseURLDaCoQuery(t *testing.T) {
	p := OrderPayload{CNR: "DLWT010127152025", OrderNumber: 2, OrderDate: "2025-03-01"}

	fetchURL, err := BuildFetchURL("https://delhicourts.nic.in/orders/download?lang=en", p)
	if err != nil {
		t.Fatalf("BuildFetchURL lỗi: %v", err)
	}
	if !strings.Contains(fetchURL, "&q=") {
		t.Errorf("Base URL đã có query thì nối bằng &, got %s", fetchURL)
	}

	decoded, err := DecodeFetchURL(fetchURL)
	if err != nil {
		t.Fatalf("DecodeFetchURL lỗi: %v", err)
	}
	if decoded.OrderNumber != 2 {
		t.Errorf("OrderNumber sai: got %d, want 2", decoded.OrderNumber)
	}
}

func TestDecodeFetchURL_ThieuThamSoQ(t *testing.T) {
	if _, err := DecodeFetchURL("https://delhicourts.nic.in/orders/download"); err == nil {
		t.Error("URL thiếu q= phải trả lỗi")
	}
}

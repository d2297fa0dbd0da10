// Package courtsvc - Test dựng định danh chuẩn (CNR) từ cấu hình quận.
package courtsvc

import (
	"testing"

	courtmodels "case_harvest/internal/api/court/models"
)

func TestBuildCanonicalCNR_DangChuan(t *testing.T) {
	district := &courtmodels.CourtDistrict{
		Code:              "WT",
		StatePrefix:       "DL",
		EstablishmentCode: "01",
		SerialWidth:       6,
	}

	cnr, padded := BuildCanonicalCNR(district, 12715, 2025)
	if cnr != "DLWT010127152025" {
		t.Errorf("CNR dạng chuẩn sai: got %s, want DLWT010127152025", cnr)
	}
	if padded != "012715" {
		t.Errorf("Serial pad 0 sai: got %s, want 012715", padded)
	}
}

func TestBuildCanonicalCNR_PadSerialNgan(t *testing.T) {
	district := &courtmodels.CourtDistrict{
		Code:              "CT",
		StatePrefix:       "DL",
		EstablishmentCode: "01",
		SerialWidth:       6,
	}

	cnr, padded := BuildCanonicalCNR(district, 7, 2024)
	if padded != "000007" {
		t.Errorf("Serial 7 phải pad thành 000007, got %s", padded)
	}
	if cnr != "DLCT010000072024" {
		t.Errorf("CNR sai: got %s, want DLCT010000072024", cnr)
	}
}

func TestBuildCanonicalCNR_SerialDuChuSo(t *testing.T) {
	// Serial đã đủ (hoặc vượt) width thì giữ nguyên, không cắt bớt
	district := &courtmodels.CourtDistrict{
		Code:              "WT",
		StatePrefix:       "DL",
		EstablishmentCode: "01",
		SerialWidth:       4,
	}

	_, padded := BuildCanonicalCNR(district, 123456, 2025)
	if padded != "123456" {
		t.Errorf("Serial vượt width không được cắt: got %s, want 123456", padded)
	}
}

// Package classifier - Test kiểm tra kết quả phân loại tại boundary.
package classifier

import (
	"testing"
)

func TestValidateResult_KetQuaRong(t *testing.T) {
	if err := validateResult(&Result{}); err == nil {
		t.Error("Kết quả phân loại rỗng phải bị loại")
	}
}

func TestValidateResult_AdjournedByMauThuan(t *testing.T) {
	r := &Result{
		EventSummary: "Phiên xử tiếp tục",
		AdjournedBy:  "petitioner",
		Adjourned:    false,
	}
	if err := validateResult(r); err == nil {
		t.Error("adjournedBy khi adjourned = false phải bị loại")
	}
}

func TestValidateResult_BusinessPresentThieuTen(t *testing.T) {
	r := &Result{
		EventSummary:          "Doanh nghiệp là bị đơn",
		BusinessEntityPresent: true,
	}
	if err := validateResult(r); err == nil {
		t.Error("businessEntityPresent không kèm businessNames phải bị loại")
	}
}

func TestValidateResult_HopLe(t *testing.T) {
	r := &Result{
		CaseTitle:             "Sharma vs State",
		EventSummary:          "Hoãn phiên theo yêu cầu nguyên đơn",
		Adjourned:             true,
		AdjournedBy:           "petitioner",
		BusinessEntityPresent: true,
		BusinessNames:         []string{"Sharma Trading Co"},
	}
	if err := validateResult(r); err != nil {
		t.Errorf("Kết quả hợp lệ không được bị loại: %v", err)
	}
}

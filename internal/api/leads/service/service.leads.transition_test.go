// Package leadsvc - Test nấc thang trạng thái lead và chuẩn hóa tên dedup.
package leadsvc

import (
	"testing"

	leadmodels "case_harvest/internal/api/leads/models"
)

func TestValidateLeadTransition_TienMotNac(t *testing.T) {
	steps := [][2]string{
		{leadmodels.LeadStatusPending, leadmodels.LeadStatusEnriched},
		{leadmodels.LeadStatusEnriched, leadmodels.LeadStatusContacted},
		{leadmodels.LeadStatusContacted, leadmodels.LeadStatusQualified},
	}
	for _, s := range steps {
		if err := ValidateLeadTransition(s[0], s[1]); err != nil {
			t.Errorf("Chuyển %s → %s phải hợp lệ, got %v", s[0], s[1], err)
		}
	}
}

func TestValidateLeadTransition_NhayCoc(t *testing.T) {
	if err := ValidateLeadTransition(leadmodels.LeadStatusPending, leadmodels.LeadStatusContacted); err == nil {
		t.Error("Nhảy cóc pending → contacted phải bị từ chối")
	}
}

func TestValidateLeadTransition_Lui(t *testing.T) {
	if err := ValidateLeadTransition(leadmodels.LeadStatusContacted, leadmodels.LeadStatusEnriched); err == nil {
		t.Error("Lùi contacted → enriched phải bị từ chối")
	}
}

func TestValidateLeadTransition_TerminalChiTuQualified(t *testing.T) {
	if err := ValidateLeadTransition(leadmodels.LeadStatusQualified, leadmodels.LeadStatusWon); err != nil {
		t.Errorf("qualified → won phải hợp lệ, got %v", err)
	}
	if err := ValidateLeadTransition(leadmodels.LeadStatusQualified, leadmodels.LeadStatusLost); err != nil {
		t.Errorf("qualified → lost phải hợp lệ, got %v", err)
	}
	if err := ValidateLeadTransition(leadmodels.LeadStatusPending, leadmodels.LeadStatusWon); err == nil {
		t.Error("pending → won phải bị từ chối (won chỉ đến từ qualified)")
	}
}

func TestValidateLeadTransition_TerminalVinhVien(t *testing.T) {
	if err := ValidateLeadTransition(leadmodels.LeadStatusWon, leadmodels.LeadStatusPending); err == nil {
		t.Error("won là trạng thái cuối, mọi chuyển tiếp phải bị từ chối")
	}
	if err := ValidateLeadTransition(leadmodels.LeadStatusLost, leadmodels.LeadStatusQualified); err == nil {
		t.Error("lost là trạng thái cuối, mọi chuyển tiếp phải bị từ chối")
	}
}

func TestValidateLeadTransition_TrangThaiLa(t *testing.T) {
	if err := ValidateLeadTransition("archived", leadmodels.LeadStatusEnriched); err == nil {
		t.Error("Trạng thái nguồn lạ phải bị từ chối")
	}
	if err := ValidateLeadTransition(leadmodels.LeadStatusPending, "archived"); err == nil {
		t.Error("Trạng thái đích lạ phải bị từ chối")
	}
}

func TestNormalizeLeadName(t *testing.T) {
	got := NormalizeLeadName("  Sharma   Trading\tCo  ")
	if got != "sharma trading co" {
		t.Errorf("Chuẩn hóa tên sai: got %q, want %q", got, "sharma trading co")
	}
	if NormalizeLeadName("ACME Pvt Ltd") != NormalizeLeadName("acme  pvt ltd") {
		t.Error("Hai cách viết của cùng một tên phải cho cùng khóa dedup")
	}
}

// Package courtsvc - Test dựng narrative tổng hợp hồ sơ.
package courtsvc

import (
	"strings"
	"testing"

	courtmodels "case_harvest/internal/api/court/models"
)

func TestBuildOverview_CoTieuDe(t *testing.T) {
	courtCase := &courtmodels.CourtCase{CNR: "DLWT010127152025"}
	summary := &courtmodels.CourtCaseSummary{
		OrdersIncluded: 3,
		Adjournments:   courtmodels.SummaryAdjournments{Petitioner: 1, Court: 1},
		PendingActions: []string{"Nộp bản khai bổ sung"},
		Timeline: []courtmodels.SummaryTimelineEntry{
			{OrderDate: "2025-05-01", OrderNumber: 1, Event: "Thụ lý hồ sơ"},
			{OrderDate: "2025-06-15", OrderNumber: 3, Event: "Hoãn phiên theo yêu cầu nguyên đơn"},
		},
	}
	metadata := []courtmodels.CourtOrderMetadata{
		{CaseTitle: "Sharma vs State", CaseType: "Civil Suit"},
	}

	overview := buildOverview(courtCase, summary, metadata)

	if !strings.Contains(overview, "Sharma vs State") {
		t.Errorf("Narrative phải chứa tiêu đề vụ án, got %q", overview)
	}
	if !strings.Contains(overview, "DLWT010127152025") {
		t.Errorf("Narrative phải chứa CNR, got %q", overview)
	}
	if !strings.Contains(overview, "Hoãn phiên 2 lần") {
		t.Errorf("Narrative phải đếm đủ số lần hoãn, got %q", overview)
	}
	if !strings.Contains(overview, "Hoãn phiên theo yêu cầu nguyên đơn") {
		t.Errorf("Narrative phải nêu sự kiện gần nhất, got %q", overview)
	}
}

func TestBuildOverview_KhongMetadata(t *testing.T) {
	courtCase := &courtmodels.CourtCase{CNR: "DLCT010000072024"}
	summary := &courtmodels.CourtCaseSummary{OrdersIncluded: 0}

	overview := buildOverview(courtCase, summary, nil)

	if !strings.Contains(overview, "Hồ sơ DLCT010000072024") {
		t.Errorf("Thiếu tiêu đề thì narrative mở đầu bằng CNR, got %q", overview)
	}
	if strings.Contains(overview, "Hoãn phiên") {
		t.Errorf("Không có hoãn phiên thì narrative không nhắc đến, got %q", overview)
	}
}

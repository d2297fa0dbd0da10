// Package courtsvc - Test dựng tổ hợp ngày/số lệnh cho batch compose.
package courtsvc

import (
	"testing"
)

func TestExpandDates_DaySequence(t *testing.T) {
	dates, err := expandDates("2025-06-28", 5)
	if err != nil {
		t.Fatalf("expandDates lỗi: %v", err)
	}
	if len(dates) != 5 {
		t.Fatalf("Số ngày sai: got %d, want 5", len(dates))
	}
	want := []string{"2025-06-28", "2025-06-29", "2025-06-30", "2025-07-01", "2025-07-02"}
	for i, d := range want {
		if dates[i] != d {
			t.Errorf("Ngày thứ %d sai: got %s, want %s (phải liên tục qua ranh giới tháng)", i, dates[i], d)
		}
	}
}

func TestExpandDates_MotNgay(t *testing.T) {
	dates, err := expandDates("2025-01-01", 1)
	if err != nil {
		t.Fatalf("expandDates lỗi: %v", err)
	}
	if len(dates) != 1 || dates[0] != "2025-01-01" {
		t.Errorf("dayCount=1 phải trả đúng ngày bắt đầu, got %v", dates)
	}
}

func TestExpandDates_DinhDangSai(t *testing.T) {
	if _, err := expandDates("28/06/2025", 3); err == nil {
		t.Error("Ngày không phải YYYY-MM-DD phải trả lỗi")
	}
}

func TestDedupOrderNumbers_GiuThuTu(t *testing.T) {
	result := dedupOrderNumbers([]int{3, 1, 3, 2, 1, 5})
	want := []int{3, 1, 2, 5}
	if len(result) != len(want) {
		t.Fatalf("Số phần tử sau dedup sai: got %v, want %v", result, want)
	}
	for i := range want {
		if result[i] != want[i] {
			t.Errorf("Dedup phải giữ thứ tự xuất hiện: got %v, want %v", result, want)
			break
		}
	}
}

// Package models - Test trạng thái terminal của job.
package models

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProcessingJob_IsTerminal(t *testing.T) {
	assert.False(t, (&ProcessingJob{Status: JobStatusPending}).IsTerminal(), "pending chưa phải terminal")
	assert.False(t, (&ProcessingJob{Status: JobStatusProcessing}).IsTerminal(), "processing chưa phải terminal")
	assert.True(t, (&ProcessingJob{Status: JobStatusCompleted}).IsTerminal(), "completed là terminal")
	assert.True(t, (&ProcessingJob{Status: JobStatusFailed}).IsTerminal(), "failed là terminal")
}

func TestProcessingJob_ClaimTokenKhongLoRaJSON(t *testing.T) {
	// ClaimToken chỉ dùng nội bộ để phân xử claim, không được trả về client
	job := ProcessingJob{Kind: JobKindFetch, ClaimToken: "secret"}
	assert.Equal(t, "-", jsonTagOf(t, job, "ClaimToken"))
}

func jsonTagOf(t *testing.T, v interface{}, field string) string {
	t.Helper()
	f, ok := reflect.TypeOf(v).FieldByName(field)
	if !ok {
		t.Fatalf("không tìm thấy field %s", field)
	}
	return f.Tag.Get("json")
}

// Package models - ProcessingJob thuộc domain Jobs (jobs_processing).
// Một bản ghi cho mỗi lượt chạy một stage của pipeline.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các loại job — mỗi loại ứng với một stage của pipeline.
const (
	JobKindFetch    = "fetch"
	JobKindExtract  = "extract"
	JobKindClassify = "classify"
	JobKindEnrich   = "enrich"
)

// Trạng thái job: pending → processing → {completed | failed}. Terminal là vĩnh viễn.
const (
	JobStatusPending    = "pending"
	JobStatusProcessing = "processing"
	JobStatusCompleted  = "completed"
	JobStatusFailed     = "failed"
)

// ActiveKeyRunning giá trị activeKey khi job còn non-terminal.
// Unique compound (kind, activeKey) là chốt "mỗi loại tối đa một job đang chạy":
// hai start() đồng thời cùng kind chỉ upsert được một document.
// Khi job về terminal, activeKey được gán bằng chính id của job để nhả chốt
// mà vẫn giữ được ràng buộc unique trên các bản ghi lịch sử.
const ActiveKeyRunning = "active"

// ProcessingJob bản ghi một lượt chạy stage (jobs_processing).
// Chỉ Job Engine được ghi khi đang chạy; client chỉ poll đọc.
type ProcessingJob struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	Kind      string `json:"kind" bson:"kind" index:"single:1,compound:job_kind_active_unique"`
	ActiveKey string `json:"-" bson:"activeKey" index:"compound:job_kind_active_unique"`
	Status    string `json:"status" bson:"status" index:"single:1"`

	// ClaimToken phân biệt "vừa tạo" với "đã tồn tại" sau FindOneAndUpdate upsert:
	// token của response khớp token gửi lên nghĩa là lượt gọi này giành được chốt.
	ClaimToken string `json:"-" bson:"claimToken"`

	// Bộ đếm tiến độ — luôn thỏa successful + failed ≤ processed ≤ total,
	// cập nhật nguyên tử ($inc) từng item để poll đọc được snapshot nhất quán.
	TotalItems      int `json:"totalItems" bson:"totalItems"`
	ProcessedItems  int `json:"processedItems" bson:"processedItems"`
	SuccessfulItems int `json:"successfulItems" bson:"successfulItems"`
	FailedItems     int `json:"failedItems" bson:"failedItems"`

	// Cleared: client đã bỏ theo dõi job (không hủy công việc đang chạy)
	Cleared bool `json:"cleared" bson:"cleared"`

	StartedAt   int64 `json:"startedAt,omitempty" bson:"startedAt,omitempty"`
	CompletedAt int64 `json:"completedAt,omitempty" bson:"completedAt,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt" index:"single:1"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt" index:"single:1"`
}

// IsTerminal cho biết job đã về trạng thái cuối chưa.
func (j *ProcessingJob) IsTerminal() bool {
	return j.Status == JobStatusCompleted || j.Status == JobStatusFailed
}

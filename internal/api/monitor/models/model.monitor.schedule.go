// Package models - MonitorSchedule thuộc domain Monitor (monitor_schedules).
// Lịch theo dõi một hồ sơ sau ngày triệu tập: cửa sổ 30 ngày, máy trạng thái một chiều.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Máy trạng thái lịch theo dõi: scheduled → active → {order_found | expired}.
// order_found và expired là terminal — lịch không bao giờ kích hoạt lại cho cùng triggerDate.
const (
	ScheduleStatusScheduled  = "scheduled"
	ScheduleStatusActive     = "active"
	ScheduleStatusOrderFound = "order_found"
	ScheduleStatusExpired    = "expired"
)

// MonitorSchedule lịch theo dõi hồ sơ (monitor_schedules), duy nhất theo (caseId, triggerDate).
type MonitorSchedule struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	CaseID primitive.ObjectID `json:"caseId" bson:"caseId" index:"single:1,compound:monitor_schedule_case_trigger_unique"`
	CNR    string             `json:"cnr" bson:"cnr"`

	TriggerDate int64 `json:"triggerDate" bson:"triggerDate" index:"compound:monitor_schedule_case_trigger_unique"` // Unix ms — ngày triệu tập kích hoạt
	WindowStart int64 `json:"windowStart" bson:"windowStart"`                                                       // = triggerDate
	WindowEnd   int64 `json:"windowEnd" bson:"windowEnd" index:"single:1"`                                          // = triggerDate + cửa sổ cấu hình (mặc định 30 ngày)

	Status     string `json:"status" bson:"status" index:"single:1"`
	IsActive   bool   `json:"isActive" bson:"isActive" index:"single:1"`
	OrderFound bool   `json:"orderFound" bson:"orderFound"`

	TotalChecks   int   `json:"totalChecks" bson:"totalChecks"`
	LastCheckedAt int64 `json:"lastCheckedAt,omitempty" bson:"lastCheckedAt,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt" index:"single:1"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt" index:"single:1"`
}

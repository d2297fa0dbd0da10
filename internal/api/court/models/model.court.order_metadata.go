// Package models - CourtOrderMetadata thuộc domain Court (court_order_metadata).
// Kết quả phân loại 1-1 với một CourtOrder; ghi đè toàn bộ khi phân loại lại.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Bên gây hoãn phiên — suy ra từ metadata phân loại.
const (
	AdjournedByPetitioner = "petitioner"
	AdjournedByRespondent = "respondent"
	AdjournedByCourt      = "court"
)

// CourtOrderMetadata lưu metadata có cấu trúc trích từ văn bản lệnh (court_order_metadata).
// Chỉ stage Classification tạo; bất biến sau khi ghi — re-classify thay wholesale, không merge.
type CourtOrderMetadata struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	OrderID primitive.ObjectID `json:"orderId" bson:"orderId" index:"single:1,unique"`
	CaseID  primitive.ObjectID `json:"caseId" bson:"caseId" index:"single:1"`
	CNR     string             `json:"cnr" bson:"cnr"`

	// Trường phân loại chính
	CaseTitle     string   `json:"caseTitle,omitempty" bson:"caseTitle,omitempty"`
	CaseType      string   `json:"caseType,omitempty" bson:"caseType,omitempty"`
	CaseCategory  string   `json:"caseCategory,omitempty" bson:"caseCategory,omitempty"`
	PartyNames    []string `json:"partyNames,omitempty" bson:"partyNames,omitempty"`
	AdvocateNames []string `json:"advocateNames,omitempty" bson:"advocateNames,omitempty"`

	// Ngày phiên xử (Unix ms) — nextHearingDate trong tương lai sẽ kích hoạt tạo lịch theo dõi
	HearingDate     int64 `json:"hearingDate,omitempty" bson:"hearingDate,omitempty"`
	NextHearingDate int64 `json:"nextHearingDate,omitempty" bson:"nextHearingDate,omitempty"`

	// Cờ phân loại
	FreshCaseAssignment   bool   `json:"freshCaseAssignment" bson:"freshCaseAssignment"`
	BusinessEntityPresent bool   `json:"businessEntityPresent" bson:"businessEntityPresent"`
	NotablePersonPresent  bool   `json:"notablePersonPresent" bson:"notablePersonPresent"`
	Adjourned             bool   `json:"adjourned" bson:"adjourned"`
	AdjournedBy           string `json:"adjournedBy,omitempty" bson:"adjournedBy,omitempty"` // petitioner | respondent | court

	// Thực thể phát hiện được — nguồn cho leads
	BusinessNames           []string `json:"businessNames,omitempty" bson:"businessNames,omitempty"`
	BusinessRegistrationIds []string `json:"businessRegistrationIds,omitempty" bson:"businessRegistrationIds,omitempty"` // Song song với businessNames; phần tử rỗng nếu không có
	PersonNames             []string `json:"personNames,omitempty" bson:"personNames,omitempty"`

	// Hành động còn treo rút từ cờ phân loại (vd: "nộp bản tự khai")
	PendingActions []string `json:"pendingActions,omitempty" bson:"pendingActions,omitempty"`

	// Tóm tắt sự kiện của lệnh — một dòng cho timeline
	EventSummary string `json:"eventSummary,omitempty" bson:"eventSummary,omitempty"`
	Significance string `json:"significance,omitempty" bson:"significance,omitempty"` // high | normal | low

	CreatedAt int64 `json:"createdAt" bson:"createdAt" index:"single:1"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt" index:"single:1"`
}

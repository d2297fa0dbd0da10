// Package models - CourtCaseSummary thuộc domain Court (court_case_summaries).
// Bản tổng hợp một hồ sơ: timeline, đếm hoãn phiên, hành động treo, narrative.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SummaryTimelineEntry một sự kiện trong timeline hồ sơ, dựng từ một lệnh đã phân loại.
type SummaryTimelineEntry struct {
	OrderDate    string `json:"orderDate" bson:"orderDate"` // YYYY-MM-DD
	OrderNumber  int    `json:"orderNumber" bson:"orderNumber"`
	Event        string `json:"event" bson:"event"`
	ActingParty  string `json:"actingParty,omitempty" bson:"actingParty,omitempty"` // petitioner | respondent | court
	Significance string `json:"significance,omitempty" bson:"significance,omitempty"`
}

// SummaryAdjournments đếm số lần hoãn phiên theo bên gây hoãn.
type SummaryAdjournments struct {
	Petitioner int `json:"petitioner" bson:"petitioner"`
	Respondent int `json:"respondent" bson:"respondent"`
	Court      int `json:"court" bson:"court"`
}

// CourtCaseSummary bản tổng hợp hồ sơ (court_case_summaries), một bản ghi mỗi case.
// Luôn recompute toàn bộ khi biên dịch lại — thay wholesale, không cập nhật từng phần.
type CourtCaseSummary struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	CaseID primitive.ObjectID `json:"caseId" bson:"caseId" index:"single:1,unique"`
	CNR    string             `json:"cnr" bson:"cnr"`

	Timeline       []SummaryTimelineEntry `json:"timeline" bson:"timeline"`
	Adjournments   SummaryAdjournments    `json:"adjournments" bson:"adjournments"`
	PendingActions []string               `json:"pendingActions,omitempty" bson:"pendingActions,omitempty"`
	Overview       string                 `json:"overview,omitempty" bson:"overview,omitempty"`

	OrdersIncluded int   `json:"ordersIncluded" bson:"ordersIncluded"` // Số lệnh đã phân loại đưa vào bản tổng hợp
	LastCompiledAt int64 `json:"lastCompiledAt" bson:"lastCompiledAt"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt" index:"single:1"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt" index:"single:1"`
}

// Package models - BusinessEntity thuộc domain Leads (leads_businesses).
// Doanh nghiệp phát hiện từ metadata phân loại; trạng thái enrichment chỉ tiến, không lùi.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Nấc thang trạng thái lead: pending → enriched → contacted → qualified → {won | lost}.
// Pipeline chỉ tự động chuyển pending → enriched; các nấc sau yêu cầu gọi chuyển trạng thái tường minh.
const (
	LeadStatusPending   = "pending"
	LeadStatusEnriched  = "enriched"
	LeadStatusContacted = "contacted"
	LeadStatusQualified = "qualified"
	LeadStatusWon       = "won"
	LeadStatusLost      = "lost"
)

// BusinessEntity lưu doanh nghiệp phát hiện từ hồ sơ (leads_businesses).
// Dedup: registrationId khi có; fallback (normalizedName, caseId) — chấp nhận khả năng
// sinh bản ghi gần trùng khi registry không cấp mã đăng ký.
type BusinessEntity struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	Name           string             `json:"name" bson:"name"`
	NormalizedName string             `json:"normalizedName" bson:"normalizedName" index:"single:1,compound:lead_business_name_case_unique"`
	RegistrationID string             `json:"registrationId,omitempty" bson:"registrationId,omitempty" index:"single,unique,sparse"`
	CaseID         primitive.ObjectID `json:"caseId" bson:"caseId" index:"single:1,compound:lead_business_name_case_unique"`
	CNR            string             `json:"cnr" bson:"cnr"`

	EnrichmentStatus string `json:"enrichmentStatus" bson:"enrichmentStatus" index:"single:1"`

	// Trường liên hệ điền bởi stage Enrichment
	ContactEmail   string `json:"contactEmail,omitempty" bson:"contactEmail,omitempty"`
	ContactPhone   string `json:"contactPhone,omitempty" bson:"contactPhone,omitempty"`
	ContactAddress string `json:"contactAddress,omitempty" bson:"contactAddress,omitempty"`
	Website        string `json:"website,omitempty" bson:"website,omitempty"`

	EnrichedAt int64 `json:"enrichedAt,omitempty" bson:"enrichedAt,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt" index:"single:1"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt" index:"single:1"`
}

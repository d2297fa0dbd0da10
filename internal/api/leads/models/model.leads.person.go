// Package models - PersonLead thuộc domain Leads (leads_persons).
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PersonLead lưu cá nhân đáng chú ý phát hiện từ hồ sơ (leads_persons).
// Dedup theo (normalizedName, caseId).
type PersonLead struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	Name           string             `json:"name" bson:"name"`
	NormalizedName string             `json:"normalizedName" bson:"normalizedName" index:"single:1,compound:lead_person_name_case_unique"`
	CaseID         primitive.ObjectID `json:"caseId" bson:"caseId" index:"single:1,compound:lead_person_name_case_unique"`
	CNR            string             `json:"cnr" bson:"cnr"`
	Role           string             `json:"role,omitempty" bson:"role,omitempty"` // petitioner | respondent | advocate

	EnrichmentStatus string `json:"enrichmentStatus" bson:"enrichmentStatus" index:"single:1"`

	ContactEmail string `json:"contactEmail,omitempty" bson:"contactEmail,omitempty"`
	ContactPhone string `json:"contactPhone,omitempty" bson:"contactPhone,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt" index:"single:1"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt" index:"single:1"`
}

// Package dto - DTO cho domain Leads.
package dto

// LeadTransitionInput yêu cầu chuyển trạng thái lead theo nấc thang.
type LeadTransitionInput struct {
	Status string `json:"status" validate:"required,oneof=pending enriched contacted qualified won lost"`
}

// Package dto - DTO cho domain Court (case).
package dto

// CourtCaseCreateInput dữ liệu tạo một định danh hồ sơ đơn lẻ (ngoài luồng generate batch).
type CourtCaseCreateInput struct {
	CNR          string `json:"cnr" validate:"required,cnr"`
	DistrictCode string `json:"districtCode" validate:"required"`
	Serial       int64  `json:"serial" validate:"required,min=1"`
	PaddedSerial string `json:"paddedSerial" validate:"required"`
	Year         int    `json:"year" validate:"required,min=2000,max=2100"`
	Validity     string `json:"validity,omitempty" validate:"omitempty,oneof=unknown valid invalid"`
}

// CourtCaseUpdateInput dữ liệu cập nhật — chỉ validity được phép đổi sau khi tạo.
type CourtCaseUpdateInput struct {
	Validity string `json:"validity,omitempty" validate:"omitempty,oneof=unknown valid invalid"`
}

// GenerateCasesInput yêu cầu sinh batch định danh từ dải serial liên tục.
type GenerateCasesInput struct {
	DistrictCode string `json:"districtCode" validate:"required"`
	SerialFrom   int64  `json:"serialFrom" validate:"required,min=1"`
	SerialTo     int64  `json:"serialTo" validate:"required,min=1"`
	Year         int    `json:"year" validate:"required,min=2000,max=2100"`
}

// GenerateCasesResponse kết quả sinh batch: createdCount + existingCount = requestedCount.
type GenerateCasesResponse struct {
	RequestedCount int      `json:"requestedCount"`
	CreatedCount   int      `json:"createdCount"`
	ExistingCount  int      `json:"existingCount"`
	CaseIds        []string `json:"caseIds"` // Toàn bộ handle (đã có + mới tạo) để chain sang compose
	CNRs           []string `json:"cnrs"`
}

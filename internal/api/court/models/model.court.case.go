// Package models - CourtCase thuộc domain Court (court_cases).
// Mỗi bản ghi là một định danh hồ sơ (CNR) sinh theo batch từ dải serial.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tình trạng hợp lệ của CNR — chỉ xác định sau khi đối chiếu registry.
const (
	CaseValidityUnknown = "unknown"
	CaseValidityValid   = "valid"
	CaseValidityInvalid = "invalid"
)

// CourtCase lưu một định danh hồ sơ vụ án (court_cases).
// Bất biến sau khi tạo, trừ validity và orderCount (đếm ngược số order đã gắn).
type CourtCase struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	CNR          string `json:"cnr" bson:"cnr" index:"single:1,unique"` // Chuỗi canonical: statePrefix + districtCode + establishmentCode + paddedSerial + year
	DistrictCode string `json:"districtCode" bson:"districtCode" index:"single:1"`
	Serial       int64  `json:"serial" bson:"serial"`
	PaddedSerial string `json:"paddedSerial" bson:"paddedSerial"` // Serial đã pad 0 theo serialWidth của quận
	Year         int    `json:"year" bson:"year" index:"single:1"`

	Validity   string `json:"validity" bson:"validity" index:"single:1"` // unknown | valid | invalid
	OrderCount int    `json:"orderCount" bson:"orderCount"`              // Số OrderRequest đã gắn vào case này

	CreatedAt int64 `json:"createdAt" bson:"createdAt" index:"single:1"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt" index:"single:1"`
}

// Package models - CourtDistrict thuộc domain Court (court_districts).
// Dữ liệu tham chiếu: cấu hình quận/tòa để dựng định danh hồ sơ (CNR) và URL tải lệnh.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CourtDistrict cấu hình một quận/tòa trong hệ thống đăng bạ (court_districts).
// Bản ghi tham chiếu, seed từ cấu hình; pipeline chỉ đọc.
type CourtDistrict struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	Code              string `json:"code" bson:"code" index:"single:1,unique"` // Mã quận (vd: WT)
	Name              string `json:"name,omitempty" bson:"name,omitempty"`
	StatePrefix       string `json:"statePrefix" bson:"statePrefix"`             // Tiền tố bang (vd: DL)
	EstablishmentCode string `json:"establishmentCode" bson:"establishmentCode"` // Mã establishment (vd: 01)
	BaseURL           string `json:"baseUrl" bson:"baseUrl"`                     // Endpoint gốc của registry cho quận này
	SerialWidth       int    `json:"serialWidth" bson:"serialWidth"`             // Số chữ số bắt buộc của serial khi pad 0

	CreatedAt int64 `json:"createdAt" bson:"createdAt" index:"single:1"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt" index:"single:1"`
}

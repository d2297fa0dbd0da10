// Package models - CourtOrder thuộc domain Court (court_orders).
// Mỗi bản ghi là một yêu cầu tải lệnh/quyết định: (case, số lệnh, ngày) duy nhất.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CourtOrder lưu một yêu cầu tải văn bản lệnh (court_orders).
// Ba cờ documentFetched/textExtracted/classified chỉ tiến, không lùi:
// textExtracted yêu cầu documentFetched, classified yêu cầu textExtracted.
type CourtOrder struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	CaseID      primitive.ObjectID `json:"caseId" bson:"caseId" index:"single:1,compound:court_order_case_number_date_unique"`
	CNR         string             `json:"cnr" bson:"cnr" index:"single:1"` // Denormalize để dựng lại payload mà không cần join
	OrderNumber int                `json:"orderNumber" bson:"orderNumber" index:"compound:court_order_case_number_date_unique"`
	OrderDate   string             `json:"orderDate" bson:"orderDate" index:"compound:court_order_case_number_date_unique"` // YYYY-MM-DD

	FetchURL string `json:"fetchUrl" bson:"fetchUrl"` // baseUrl + ?q=<payload mã hóa đảo ngược được>

	// Tiến trình pipeline
	DocumentFetched bool `json:"documentFetched" bson:"documentFetched" index:"single:1"`
	TextExtracted   bool `json:"textExtracted" bson:"textExtracted" index:"single:1"`
	Classified      bool `json:"classified" bson:"classified" index:"single:1"`

	// Kết quả stage fetch
	DocumentLocation string `json:"documentLocation,omitempty" bson:"documentLocation,omitempty"` // Vị trí lưu file (opaque)
	DocumentSize     int64  `json:"documentSize,omitempty" bson:"documentSize,omitempty"`         // Kích thước bytes

	// Kết quả stage extract
	ExtractedText string `json:"extractedText,omitempty" bson:"extractedText,omitempty"`

	// Lý do thất bại gần nhất của item (chỉ để vận hành, job chỉ công bố số đếm)
	LastFailure string `json:"lastFailure,omitempty" bson:"lastFailure,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt" index:"single:1"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt" index:"single:1"`
}

// Package dto - DTO cho domain Court (order).
package dto

// CourtOrderCreateInput dữ liệu tạo một yêu cầu tải lệnh đơn lẻ.
type CourtOrderCreateInput struct {
	CaseId      string `json:"caseId" validate:"required" transform:"str_objectid,map=CaseID"`
	CNR         string `json:"cnr" validate:"required,cnr"`
	OrderNumber int    `json:"orderNumber" validate:"required,min=1"`
	OrderDate   string `json:"orderDate" validate:"required,datetime=2006-01-02"`
	FetchURL    string `json:"fetchUrl" validate:"required,url"`
}

// CourtOrderUpdateInput dữ liệu cập nhật cờ tiến trình (pipeline nội bộ dùng trực tiếp service,
// input này chỉ phục vụ thao tác vận hành).
type CourtOrderUpdateInput struct {
	DocumentFetched *bool  `json:"documentFetched,omitempty"`
	TextExtracted   *bool  `json:"textExtracted,omitempty"`
	Classified      *bool  `json:"classified,omitempty"`
	LastFailure     string `json:"lastFailure,omitempty"`
}

// ComposeOrdersInput yêu cầu dựng batch yêu cầu tải lệnh từ tích 3 chiều case × ngày × số lệnh.
// Khoảng ngày cho dưới dạng ngày bắt đầu + số ngày (tối đa 30); orderNumbers tối đa 10 số phân biệt.
type ComposeOrdersInput struct {
	CNRs         []string `json:"cnrs" validate:"required,min=1,dive,cnr"`
	DateFrom     string   `json:"dateFrom" validate:"required,datetime=2006-01-02"`
	DayCount     int      `json:"dayCount" validate:"required,min=1,max=30"`
	OrderNumbers []int    `json:"orderNumbers" validate:"required,min=1,max=10,dive,min=1"`
}

// ComposeOrdersResponse kết quả dựng batch.
type ComposeOrdersResponse struct {
	TotalProduct  int      `json:"totalProduct"` // |cases| × |dates| × |orderNumbers|
	CreatedCount  int      `json:"createdCount"`
	ExistingCount int      `json:"existingCount"`
	OrderIds      []string `json:"orderIds"` // Handle các request mới tạo
}

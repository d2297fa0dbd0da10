// Package courthdl - Handler metadata phân loại của lệnh (court_order_metadata).
package courthdl

import (
	"fmt"

	basehdl "case_harvest/internal/api/base/handler"
	courtmodels "case_harvest/internal/api/court/models"
	courtsvc "case_harvest/internal/api/court/service"
)

// CourtOrderMetadataHandler xử lý API đọc metadata — chỉ stage Classification được ghi.
type CourtOrderMetadataHandler struct {
	*basehdl.BaseHandler[courtmodels.CourtOrderMetadata, courtmodels.CourtOrderMetadata, courtmodels.CourtOrderMetadata]
	MetadataService *courtsvc.CourtOrderMetadataService
}

// NewCourtOrderMetadataHandler tạo CourtOrderMetadataHandler mới.
func NewCourtOrderMetadataHandler() (*CourtOrderMetadataHandler, error) {
	svc, err := courtsvc.NewCourtOrderMetadataService()
	if err != nil {
		return nil, fmt.Errorf("tạo CourtOrderMetadataService: %w", err)
	}
	return &CourtOrderMetadataHandler{
		BaseHandler:     basehdl.NewBaseHandler[courtmodels.CourtOrderMetadata, courtmodels.CourtOrderMetadata, courtmodels.CourtOrderMetadata](svc),
		MetadataService: svc,
	}, nil
}

// Package courthdl - Handler dữ liệu tham chiếu quận/tòa (court_districts).
package courthdl

import (
	"fmt"

	basehdl "case_harvest/internal/api/base/handler"
	courtmodels "case_harvest/internal/api/court/models"
	courtsvc "case_harvest/internal/api/court/service"
)

// CourtDistrictHandler xử lý API cấu hình quận/tòa — chỉ CRUD, không logic riêng.
type CourtDistrictHandler struct {
	*basehdl.BaseHandler[courtmodels.CourtDistrict, courtmodels.CourtDistrict, courtmodels.CourtDistrict]
	DistrictService *courtsvc.CourtDistrictService
}

// NewCourtDistrictHandler tạo CourtDistrictHandler mới.
func NewCourtDistrictHandler() (*CourtDistrictHandler, error) {
	svc, err := courtsvc.NewCourtDistrictService()
	if err != nil {
		return nil, fmt.Errorf("tạo CourtDistrictService: %w", err)
	}
	return &CourtDistrictHandler{
		BaseHandler:     basehdl.NewBaseHandler[courtmodels.CourtDistrict, courtmodels.CourtDistrict, courtmodels.CourtDistrict](svc),
		DistrictService: svc,
	}, nil
}

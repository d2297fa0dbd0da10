// Package courthdl - Handler định danh hồ sơ (court_cases).
package courthdl

import (
	"fmt"

	basehdl "case_harvest/internal/api/base/handler"
	courtdto "case_harvest/internal/api/court/dto"
	courtmodels "case_harvest/internal/api/court/models"
	courtsvc "case_harvest/internal/api/court/service"
	"case_harvest/internal/common"
	"case_harvest/internal/logger"

	"github.com/gofiber/fiber/v3"
)

// CourtCaseHandler xử lý API định danh hồ sơ: CRUD cơ bản + sinh batch.
type CourtCaseHandler struct {
	*basehdl.BaseHandler[courtmodels.CourtCase, courtdto.CourtCaseCreateInput, courtdto.CourtCaseUpdateInput]
	CaseService *courtsvc.CourtCaseService
}

// NewCourtCaseHandler tạo CourtCaseHandler mới.
func NewCourtCaseHandler() (*CourtCaseHandler, error) {
	svc, err := courtsvc.NewCourtCaseService()
	if err != nil {
		return nil, fmt.Errorf("tạo CourtCaseService: %w", err)
	}
	return &CourtCaseHandler{
		BaseHandler: basehdl.NewBaseHandler[courtmodels.CourtCase, courtdto.CourtCaseCreateInput, courtdto.CourtCaseUpdateInput](svc),
		CaseService: svc,
	}, nil
}

// HandleGenerate xử lý POST /courts/cases/generate — sinh batch định danh từ dải serial.
// Dải vượt cap 100 bị từ chối trước mọi ghi (LimitExceeded kèm số yêu cầu và cap).
func (h *CourtCaseHandler) HandleGenerate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input courtdto.GenerateCasesInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Dữ liệu gửi lên không đúng định dạng JSON. Chi tiết: %v", err),
				common.StatusBadRequest,
				err,
			))
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		result, err := h.CaseService.GenerateBatch(c.Context(), &input)
		if err == nil {
			logger.LogAction("generate_cases", c, map[string]interface{}{
				"districtCode": input.DistrictCode,
				"serialFrom":   input.SerialFrom,
				"serialTo":     input.SerialTo,
				"year":         input.Year,
				"created":      result.CreatedCount,
			})
		}
		h.HandleResponse(c, result, err)
		return nil
	})
}

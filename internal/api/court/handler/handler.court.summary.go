// Package courthdl - Handler bản tổng hợp hồ sơ (court_case_summaries).
package courthdl

import (
	"fmt"

	basehdl "case_harvest/internal/api/base/handler"
	courtmodels "case_harvest/internal/api/court/models"
	courtsvc "case_harvest/internal/api/court/service"
	"case_harvest/internal/common"
	"case_harvest/internal/logger"
	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CourtCaseSummaryHandler xử lý API biên dịch và đọc bản tổng hợp hồ sơ.
// Bản tổng hợp chỉ được ghi qua compile (recompute toàn bộ), nên CRUD gắn vào là read-only.
type CourtCaseSummaryHandler struct {
	*basehdl.BaseHandler[courtmodels.CourtCaseSummary, courtmodels.CourtCaseSummary, courtmodels.CourtCaseSummary]
	SummaryService *courtsvc.CourtCaseSummaryService
}

// NewCourtCaseSummaryHandler tạo CourtCaseSummaryHandler mới.
func NewCourtCaseSummaryHandler() (*CourtCaseSummaryHandler, error) {
	svc, err := courtsvc.NewCourtCaseSummaryService()
	if err != nil {
		return nil, fmt.Errorf("tạo CourtCaseSummaryService: %w", err)
	}
	return &CourtCaseSummaryHandler{
		BaseHandler:    basehdl.NewBaseHandler[courtmodels.CourtCaseSummary, courtmodels.CourtCaseSummary, courtmodels.CourtCaseSummary](svc),
		SummaryService: svc,
	}, nil
}

// HandleCompile xử lý POST /courts/cases/:id/summary/compile — recompute toàn bộ bản tổng hợp.
func (h *CourtCaseSummaryHandler) HandleCompile(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		caseID, err := primitive.ObjectIDFromHex(c.Params("id"))
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput, "ID case không hợp lệ", common.StatusBadRequest, err,
			))
			return nil
		}
		summary, err := h.SummaryService.Compile(c.Context(), caseID)
		if err == nil {
			logger.LogAction("compile_summary", c, map[string]interface{}{
				"caseId": caseID.Hex(),
			})
		}
		h.HandleResponse(c, summary, err)
		return nil
	})
}

// HandleGetByCase xử lý GET /courts/cases/:id/summary — đọc bản tổng hợp hiện có.
func (h *CourtCaseSummaryHandler) HandleGetByCase(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		caseID, err := primitive.ObjectIDFromHex(c.Params("id"))
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput, "ID case không hợp lệ", common.StatusBadRequest, err,
			))
			return nil
		}
		summary, err := h.SummaryService.GetByCase(c.Context(), caseID)
		h.HandleResponse(c, summary, err)
		return nil
	})
}

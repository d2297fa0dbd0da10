// Package leadhdl - Handler doanh nghiệp lead (leads_businesses).
package leadhdl

import (
	"fmt"

	basehdl "case_harvest/internal/api/base/handler"
	leaddto "case_harvest/internal/api/leads/dto"
	leadmodels "case_harvest/internal/api/leads/models"
	leadsvc "case_harvest/internal/api/leads/service"
	"case_harvest/internal/common"
	"case_harvest/internal/logger"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BusinessEntityHandler xử lý API doanh nghiệp lead: đọc + chuyển trạng thái tường minh.
type BusinessEntityHandler struct {
	*basehdl.BaseHandler[leadmodels.BusinessEntity, leadmodels.BusinessEntity, leadmodels.BusinessEntity]
	BusinessService *leadsvc.BusinessEntityService
}

// NewBusinessEntityHandler tạo BusinessEntityHandler mới.
func NewBusinessEntityHandler() (*BusinessEntityHandler, error) {
	svc, err := leadsvc.NewBusinessEntityService()
	if err != nil {
		return nil, fmt.Errorf("tạo BusinessEntityService: %w", err)
	}
	return &BusinessEntityHandler{
		BaseHandler:     basehdl.NewBaseHandler[leadmodels.BusinessEntity, leadmodels.BusinessEntity, leadmodels.BusinessEntity](svc),
		BusinessService: svc,
	}, nil
}

// HandleTransition xử lý POST /leads/businesses/:id/status — chuyển trạng thái theo nấc thang.
func (h *BusinessEntityHandler) HandleTransition(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := primitive.ObjectIDFromHex(c.Params("id"))
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput, "ID lead không hợp lệ", common.StatusBadRequest, err,
			))
			return nil
		}
		var input leaddto.LeadTransitionInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat, "Dữ liệu gửi lên không đúng định dạng JSON", common.StatusBadRequest, err,
			))
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		entity, err := h.BusinessService.Transition(c.Context(), id, input.Status)
		if err == nil {
			logger.LogCRUD("transition", "lead_business", id.Hex(), c, map[string]interface{}{
				"to": input.Status,
			})
		}
		h.HandleResponse(c, entity, err)
		return nil
	})
}

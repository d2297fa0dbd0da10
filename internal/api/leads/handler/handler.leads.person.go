// Package leadhdl - Handler cá nhân lead (leads_persons).
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

// PersonLeadHandler xử lý API cá nhân lead: đọc + chuyển trạng thái tường minh.
type PersonLeadHandler struct {
	*basehdl.BaseHandler[leadmodels.PersonLead, leadmodels.PersonLead, leadmodels.PersonLead]
	PersonService *leadsvc.PersonLeadService
}

// NewPersonLeadHandler tạo PersonLeadHandler mới.
func NewPersonLeadHandler() (*PersonLeadHandler, error) {
	svc, err := leadsvc.NewPersonLeadService()
	if err != nil {
		return nil, fmt.Errorf("tạo PersonLeadService: %w", err)
	}
	return &PersonLeadHandler{
		BaseHandler:   basehdl.NewBaseHandler[leadmodels.PersonLead, leadmodels.PersonLead, leadmodels.PersonLead](svc),
		PersonService: svc,
	}, nil
}

// HandleTransition xử lý POST /leads/persons/:id/status — chuyển trạng thái theo nấc thang.
func (h *PersonLeadHandler) HandleTransition(c fiber.Ctx) error {
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

		lead, err := h.PersonService.Transition(c.Context(), id, input.Status)
		if err == nil {
			logger.LogCRUD("transition", "lead_person", id.Hex(), c, map[string]interface{}{
				"to": input.Status,
			})
		}
		h.HandleResponse(c, lead, err)
		return nil
	})
}

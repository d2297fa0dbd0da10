// Package courthdl - Handler yêu cầu tải lệnh (court_orders).
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

// CourtOrderHandler xử lý API yêu cầu tải lệnh: CRUD cơ bản + compose batch.
type CourtOrderHandler struct {
	*basehdl.BaseHandler[courtmodels.CourtOrder, courtdto.CourtOrderCreateInput, courtdto.CourtOrderUpdateInput]
	OrderService *courtsvc.CourtOrderService
}

// NewCourtOrderHandler tạo CourtOrderHandler mới.
func NewCourtOrderHandler() (*CourtOrderHandler, error) {
	svc, err := courtsvc.NewCourtOrderService()
	if err != nil {
		return nil, fmt.Errorf("tạo CourtOrderService: %w", err)
	}
	return &CourtOrderHandler{
		BaseHandler:  basehdl.NewBaseHandler[courtmodels.CourtOrder, courtdto.CourtOrderCreateInput, courtdto.CourtOrderUpdateInput](svc),
		OrderService: svc,
	}, nil
}

// HandleCompose xử lý POST /courts/orders/compose — dựng batch yêu cầu tải
// từ tích case × ngày × số lệnh. Tích vượt 1000 bị từ chối trước mọi ghi.
func (h *CourtOrderHandler) HandleCompose(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input courtdto.ComposeOrdersInput
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

		result, err := h.OrderService.ComposeBatch(c.Context(), &input)
		if err == nil {
			logger.LogAction("compose_orders", c, map[string]interface{}{
				"cnrs":         len(input.CNRs),
				"dayCount":     input.DayCount,
				"orderNumbers": len(input.OrderNumbers),
				"created":      result.CreatedCount,
			})
		}
		h.HandleResponse(c, result, err)
		return nil
	})
}

// HandleDecodePayload xử lý GET /courts/orders/decode-payload?q=... — giải mã payload
// từ URL tải lệnh để audit/retry. Chứng minh encoding đảo ngược được chính xác.
func (h *CourtOrderHandler) HandleDecodePayload(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		q := c.Query("q")
		if q == "" {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput, "Thiếu tham số q", common.StatusBadRequest, nil,
			))
			return nil
		}
		payload, err := courtsvc.DecodeOrderPayload(q)
		h.HandleResponse(c, payload, err)
		return nil
	})
}

// Package monitorhdl - Handler lịch theo dõi hồ sơ (monitor_schedules).
package monitorhdl

import (
	"fmt"
	"time"

	basehdl "case_harvest/internal/api/base/handler"
	monitormodels "case_harvest/internal/api/monitor/models"
	monitorsvc "case_harvest/internal/api/monitor/service"
	"case_harvest/internal/logger"

	"github.com/gofiber/fiber/v3"
)

// MonitorScheduleHandler xử lý API lịch theo dõi: đọc + kích hoạt sweep thủ công.
type MonitorScheduleHandler struct {
	*basehdl.BaseHandler[monitormodels.MonitorSchedule, monitormodels.MonitorSchedule, monitormodels.MonitorSchedule]
	ScheduleService *monitorsvc.MonitorScheduleService
}

// NewMonitorScheduleHandler tạo MonitorScheduleHandler mới.
func NewMonitorScheduleHandler() (*MonitorScheduleHandler, error) {
	svc, err := monitorsvc.NewMonitorScheduleService()
	if err != nil {
		return nil, fmt.Errorf("tạo MonitorScheduleService: %w", err)
	}
	return &MonitorScheduleHandler{
		BaseHandler:     basehdl.NewBaseHandler[monitormodels.MonitorSchedule, monitormodels.MonitorSchedule, monitormodels.MonitorSchedule](svc),
		ScheduleService: svc,
	}, nil
}

// HandleRunCheck xử lý POST /monitor/run-check — chạy một lượt sweep ngay lập tức
// (ngoài chu kỳ của worker nền). Idempotent: sweep lặp trong ngày không đổi trạng thái.
func (h *MonitorScheduleHandler) HandleRunCheck(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		result, err := h.ScheduleService.RunCheck(c.Context(), time.Now())
		if err == nil {
			logger.LogAction("monitor_run_check", c, map[string]interface{}{
				"activated": result.Activated,
				"checked":   result.Checked,
				"found":     result.Found,
				"expired":   result.Expired,
			})
		}
		h.HandleResponse(c, result, err)
		return nil
	})
}

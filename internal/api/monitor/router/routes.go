// Package router đăng ký các route thuộc domain Monitor: schedules, run-check.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"case_harvest/internal/api/middleware"
	monitorhdl "case_harvest/internal/api/monitor/handler"
	apirouter "case_harvest/internal/api/router"
)

// Register đăng ký tất cả route Monitor lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	scheduleHandler, err := monitorhdl.NewMonitorScheduleHandler()
	if err != nil {
		return fmt.Errorf("tạo MonitorScheduleHandler: %w", err)
	}

	auditWrite := []fiber.Handler{middleware.RequestAuditMiddleware()}

	// Lịch tạo bởi pipeline (classify) và worker nền; API chỉ đọc
	r.RegisterCRUDRoutes(v1, "/monitor/schedules", scheduleHandler, apirouter.ReadOnlyConfig)

	// POST /monitor/run-check — sweep thủ công ngoài chu kỳ worker
	apirouter.RegisterRouteWithMiddleware(v1, "/monitor", "POST", "/run-check", auditWrite, scheduleHandler.HandleRunCheck)

	return nil
}

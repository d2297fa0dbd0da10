// Package router đăng ký các route thuộc domain Jobs: start, status, clear tracking.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	jobhdl "case_harvest/internal/api/jobs/handler"
	"case_harvest/internal/api/middleware"
	apirouter "case_harvest/internal/api/router"
)

// Register đăng ký tất cả route Jobs lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	jobHandler, err := jobhdl.NewProcessingJobHandler()
	if err != nil {
		return fmt.Errorf("tạo ProcessingJobHandler: %w", err)
	}

	auditWrite := []fiber.Handler{middleware.RequestAuditMiddleware()}

	// Lịch sử job chỉ đọc — engine là nơi duy nhất ghi vòng đời
	r.RegisterCRUDRoutes(v1, "/jobs/records", jobHandler, apirouter.ReadOnlyConfig)

	// POST /jobs/:kind/start — khởi động một lượt chạy stage
	apirouter.RegisterRouteWithMiddleware(v1, "/jobs", "POST", "/:kind/start", auditWrite, jobHandler.HandleStart)

	// GET /jobs/:id/status — poll tiến độ
	apirouter.RegisterRouteWithMiddleware(v1, "/jobs", "GET", "/:id/status", nil, jobHandler.HandleGetStatus)

	// POST /jobs/:id/clear — tách view của client khỏi job
	apirouter.RegisterRouteWithMiddleware(v1, "/jobs", "POST", "/:id/clear", auditWrite, jobHandler.HandleClearTracking)

	return nil
}

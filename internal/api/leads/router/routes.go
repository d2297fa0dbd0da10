// Package router đăng ký các route thuộc domain Leads: businesses, persons.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	leadhdl "case_harvest/internal/api/leads/handler"
	"case_harvest/internal/api/middleware"
	apirouter "case_harvest/internal/api/router"
)

// Register đăng ký tất cả route Leads lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	businessHandler, err := leadhdl.NewBusinessEntityHandler()
	if err != nil {
		return fmt.Errorf("tạo BusinessEntityHandler: %w", err)
	}
	personHandler, err := leadhdl.NewPersonLeadHandler()
	if err != nil {
		return fmt.Errorf("tạo PersonLeadHandler: %w", err)
	}

	auditWrite := []fiber.Handler{middleware.RequestAuditMiddleware()}

	// Leads sinh bởi pipeline; API chỉ đọc + chuyển trạng thái tường minh
	r.RegisterCRUDRoutes(v1, "/leads/businesses", businessHandler, apirouter.ReadOnlyConfig)
	apirouter.RegisterRouteWithMiddleware(v1, "/leads/businesses", "POST", "/:id/status", auditWrite, businessHandler.HandleTransition)

	r.RegisterCRUDRoutes(v1, "/leads/persons", personHandler, apirouter.ReadOnlyConfig)
	apirouter.RegisterRouteWithMiddleware(v1, "/leads/persons", "POST", "/:id/status", auditWrite, personHandler.HandleTransition)

	return nil
}

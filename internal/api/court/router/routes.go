// Package router đăng ký các route thuộc domain Court: districts, cases, orders, metadata, summaries.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	courthdl "case_harvest/internal/api/court/handler"
	"case_harvest/internal/api/middleware"
	apirouter "case_harvest/internal/api/router"
)

// Register đăng ký tất cả route Court lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	districtHandler, err := courthdl.NewCourtDistrictHandler()
	if err != nil {
		return fmt.Errorf("tạo CourtDistrictHandler: %w", err)
	}
	caseHandler, err := courthdl.NewCourtCaseHandler()
	if err != nil {
		return fmt.Errorf("tạo CourtCaseHandler: %w", err)
	}
	orderHandler, err := courthdl.NewCourtOrderHandler()
	if err != nil {
		return fmt.Errorf("tạo CourtOrderHandler: %w", err)
	}
	metadataHandler, err := courthdl.NewCourtOrderMetadataHandler()
	if err != nil {
		return fmt.Errorf("tạo CourtOrderMetadataHandler: %w", err)
	}
	summaryHandler, err := courthdl.NewCourtCaseSummaryHandler()
	if err != nil {
		return fmt.Errorf("tạo CourtCaseSummaryHandler: %w", err)
	}

	auditWrite := []fiber.Handler{middleware.RequestAuditMiddleware()}

	// Districts: dữ liệu tham chiếu, quản trị được chỉnh sửa đầy đủ
	r.RegisterCRUDRoutes(v1, "/courts/districts", districtHandler, apirouter.ReadWriteConfig)

	// Cases: sinh qua generate; dữ liệu harvest không sửa/xóa qua API
	r.RegisterCRUDRoutes(v1, "/courts/cases", caseHandler, apirouter.AppendOnlyConfig)
	// POST /courts/cases/generate — sinh batch định danh từ dải serial
	apirouter.RegisterRouteWithMiddleware(v1, "/courts/cases", "POST", "/generate", auditWrite, caseHandler.HandleGenerate)

	// POST /courts/cases/:id/summary/compile — recompute toàn bộ bản tổng hợp
	apirouter.RegisterRouteWithMiddleware(v1, "/courts/cases", "POST", "/:id/summary/compile", auditWrite, summaryHandler.HandleCompile)
	// GET /courts/cases/:id/summary
	apirouter.RegisterRouteWithMiddleware(v1, "/courts/cases", "GET", "/:id/summary", nil, summaryHandler.HandleGetByCase)

	// Orders: dựng qua compose; cờ tiến trình do pipeline ghi
	r.RegisterCRUDRoutes(v1, "/courts/orders", orderHandler, apirouter.AppendOnlyConfig)
	// POST /courts/orders/compose — dựng batch yêu cầu tải lệnh
	apirouter.RegisterRouteWithMiddleware(v1, "/courts/orders", "POST", "/compose", auditWrite, orderHandler.HandleCompose)
	// GET /courts/orders/decode-payload?q=... — giải mã payload từ URL để audit
	apirouter.RegisterRouteWithMiddleware(v1, "/courts/orders", "GET", "/decode-payload", nil, orderHandler.HandleDecodePayload)

	// Metadata và summaries: chỉ đọc, pipeline là nguồn ghi duy nhất
	r.RegisterCRUDRoutes(v1, "/courts/order-metadata", metadataHandler, apirouter.ReadOnlyConfig)
	r.RegisterCRUDRoutes(v1, "/courts/case-summaries", summaryHandler, apirouter.ReadOnlyConfig)

	return nil
}

package middleware

import (
	"case_harvest/internal/logger"

	"github.com/gofiber/fiber/v3"
)

// RequestAuditMiddleware ghi audit log cho các thao tác ghi dữ liệu (insert/update/delete/upsert).
// Log được ghi qua audit channel trước khi handler chạy, kèm requestId để trace.
func RequestAuditMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		logger.LogAction("request", c, map[string]interface{}{
			"body_size": len(c.Body()),
		})
		return c.Next()
	}
}

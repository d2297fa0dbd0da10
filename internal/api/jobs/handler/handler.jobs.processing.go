// Package jobhdl - Handler Job Engine: start stage, poll trạng thái, clear tracking.
package jobhdl

import (
	"fmt"

	basehdl "case_harvest/internal/api/base/handler"
	jobmodels "case_harvest/internal/api/jobs/models"
	jobsvc "case_harvest/internal/api/jobs/service"
	"case_harvest/internal/common"
	"case_harvest/internal/logger"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProcessingJobHandler xử lý API job pipeline. CRUD chỉ đọc — vòng đời job
// do engine quản lý, client chỉ start / poll / clear.
type ProcessingJobHandler struct {
	*basehdl.BaseHandler[jobmodels.ProcessingJob, jobmodels.ProcessingJob, jobmodels.ProcessingJob]
	Engine *jobsvc.JobEngine
}

// NewProcessingJobHandler tạo ProcessingJobHandler mới.
func NewProcessingJobHandler() (*ProcessingJobHandler, error) {
	svc, err := jobsvc.NewProcessingJobService()
	if err != nil {
		return nil, fmt.Errorf("tạo ProcessingJobService: %w", err)
	}
	engine, err := jobsvc.NewJobEngine()
	if err != nil {
		return nil, fmt.Errorf("tạo JobEngine: %w", err)
	}
	return &ProcessingJobHandler{
		BaseHandler: basehdl.NewBaseHandler[jobmodels.ProcessingJob, jobmodels.ProcessingJob, jobmodels.ProcessingJob](svc),
		Engine:      engine,
	}, nil
}

// HandleStart xử lý POST /jobs/:kind/start — khởi động một lượt chạy stage.
// Kind đang có job non-terminal thì trả về job hiện hữu với alreadyRunning=true.
func (h *ProcessingJobHandler) HandleStart(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		kind := c.Params("kind")

		result, err := h.Engine.Start(c.Context(), kind)
		if err == nil {
			logger.LogJob("start", kind, result.JobID, c, map[string]interface{}{
				"alreadyRunning": result.AlreadyRunning,
				"totalItems":     result.TotalItems,
			})
		}
		h.HandleResponse(c, result, err)
		return nil
	})
}

// HandleGetStatus xử lý GET /jobs/:id/status — snapshot tiến độ của job.
func (h *ProcessingJobHandler) HandleGetStatus(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		jobID, err := primitive.ObjectIDFromHex(c.Params("id"))
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				"ID job không hợp lệ", common.StatusBadRequest, err))
			return nil
		}

		job, err := h.Engine.GetStatus(c.Context(), jobID)
		h.HandleResponse(c, job, err)
		return nil
	})
}

// HandleClearTracking xử lý POST /jobs/:id/clear — tách view của client khỏi job.
// Công việc đang bay vẫn chạy đến cùng, chỉ cờ cleared được set.
func (h *ProcessingJobHandler) HandleClearTracking(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		jobID, err := primitive.ObjectIDFromHex(c.Params("id"))
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				"ID job không hợp lệ", common.StatusBadRequest, err))
			return nil
		}

		job, err := h.Engine.ClearTracking(c.Context(), jobID)
		if err == nil {
			logger.LogJob("clear_tracking", job.Kind, jobID.Hex(), c, nil)
		}
		h.HandleResponse(c, job, err)
		return nil
	})
}

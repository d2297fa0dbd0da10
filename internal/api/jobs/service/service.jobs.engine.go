// Package jobsvc - Job Engine: runner generic theo kind, worker pool giới hạn
// song song, cô lập lỗi từng item, bộ đếm tiến độ poll được.
package jobsvc

import (
	"context"
	"time"

	jobmodels "case_harvest/internal/api/jobs/models"
	"case_harvest/internal/common"
	"case_harvest/internal/global"
	"case_harvest/internal/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StageItem một đơn vị công việc của stage — mỗi runner tự định nghĩa kiểu thật.
type StageItem interface{}

// StageRunner hợp đồng của một stage pipeline với Job Engine.
type StageRunner interface {
	// Kind trả về loại job của stage (fetch | extract | classify | enrich).
	Kind() string
	// CollectItems gom các item đủ điều kiện vào stage (query trạng thái trong store).
	CollectItems(ctx context.Context) ([]StageItem, error)
	// ProcessItem xử lý một item; lỗi chỉ tính vào failedItems, không hủy batch.
	ProcessItem(ctx context.Context, item StageItem) error
}

// StartResult kết quả start(): alreadyRunning = true nghĩa là gắn vào job đang chạy sẵn
// thay vì tạo lượt chạy thứ hai.
type StartResult struct {
	JobID          string `json:"jobId"`
	Kind           string `json:"kind"`
	AlreadyRunning bool   `json:"alreadyRunning"`
	TotalItems     int    `json:"totalItems"`
}

// JobEngine chạy các stage pipeline dưới dạng task pool trong process.
// Các kind khác nhau chạy song song tự do; trong một job, item chạy song song
// tối đa concurrency worker (mặc định 5 — giữ lịch sự với rate limit của registry).
type JobEngine struct {
	jobService  *ProcessingJobService
	runners     map[string]StageRunner
	concurrency int
}

// NewJobEngine tạo engine và đăng ký bộ runner cho cả 4 stage.
func NewJobEngine() (*JobEngine, error) {
	jobService, err := NewProcessingJobService()
	if err != nil {
		return nil, err
	}

	concurrency := 5
	if global.ServerConfig != nil && global.ServerConfig.JobConcurrency > 0 {
		concurrency = global.ServerConfig.JobConcurrency
	}

	engine := &JobEngine{
		jobService:  jobService,
		runners:     make(map[string]StageRunner),
		concurrency: concurrency,
	}

	fetchStage, err := NewFetchStage()
	if err != nil {
		return nil, err
	}
	extractStage, err := NewExtractStage()
	if err != nil {
		return nil, err
	}
	classifyStage, err := NewClassifyStage()
	if err != nil {
		return nil, err
	}
	enrichStage, err := NewEnrichStage()
	if err != nil {
		return nil, err
	}
	for _, runner := range []StageRunner{fetchStage, extractStage, classifyStage, enrichStage} {
		engine.runners[runner.Kind()] = runner
	}

	return engine, nil
}

// Start khởi động một lượt chạy stage theo kind.
// Nếu đã có job non-terminal của kind đó, trả về id job hiện hữu với alreadyRunning=true —
// race giữa hai start() đồng thời được phân xử bởi claim nguyên tử, không bao giờ
// sinh hai job cùng kind.
func (e *JobEngine) Start(ctx context.Context, kind string) (*StartResult, error) {
	runner, ok := e.runners[kind]
	if !ok {
		return nil, common.NewError(common.ErrCodeValidationInput,
			"Loại job không hợp lệ: "+kind, common.StatusBadRequest, nil)
	}

	items, err := runner.CollectItems(ctx)
	if err != nil {
		return nil, err
	}

	job, alreadyRunning, err := e.jobService.Claim(ctx, kind, len(items))
	if err != nil {
		return nil, err
	}
	result := &StartResult{
		JobID:          job.ID.Hex(),
		Kind:           kind,
		AlreadyRunning: alreadyRunning,
		TotalItems:     job.TotalItems,
	}
	if alreadyRunning {
		return result, nil
	}

	if err := e.jobService.MarkProcessing(ctx, job.ID); err != nil {
		return nil, err
	}

	// Chạy nền, tách khỏi request context: clear tracking không hủy công việc đang bay,
	// job mồ côi vẫn chạy đến cùng (ngữ nghĩa yếu có chủ đích).
	go e.runJob(context.Background(), runner, job.ID, items)

	return result, nil
}

// runJob chạy toàn bộ item qua worker pool giới hạn song song rồi đưa job về terminal.
// Job completed kể cả khi có item fail — không stage nào coi item fail là fatal cho cả job.
func (e *JobEngine) runJob(ctx context.Context, runner StageRunner, jobID primitive.ObjectID, items []StageItem) {
	log := logger.GetPipelineLogger()

	defer func() {
		if r := recover(); r != nil {
			log.WithFields(map[string]interface{}{
				"jobId": jobID.Hex(),
				"kind":  runner.Kind(),
				"panic": r,
			}).Error("⚙️ [JOB] Panic khi chạy job, đưa job về failed")
			// Ghi nốt phần item chưa xử lý là failed để job terminal vẫn thỏa processed = total
			if err := e.jobService.FailRemainder(ctx, jobID); err != nil {
				log.WithError(err).Error("⚙️ [JOB] Không ghi được phần item còn lại sau panic")
			}
			if err := e.jobService.Release(ctx, jobID, jobmodels.JobStatusFailed); err != nil {
				log.WithError(err).Error("⚙️ [JOB] Không nhả được chốt job sau panic")
			}
		}
	}()

	log.WithFields(map[string]interface{}{
		"jobId":       jobID.Hex(),
		"kind":        runner.Kind(),
		"totalItems":  len(items),
		"concurrency": e.concurrency,
	}).Info("⚙️ [JOB] Bắt đầu chạy job")
	startedAt := time.Now()

	sem := make(chan struct{}, e.concurrency)
	done := make(chan bool, len(items))

	for _, item := range items {
		sem <- struct{}{}
		go func(item StageItem) {
			defer func() { <-sem }()
			success := true
			func() {
				defer func() {
					if r := recover(); r != nil {
						log.WithFields(map[string]interface{}{
							"jobId": jobID.Hex(),
							"kind":  runner.Kind(),
							"panic": r,
						}).Error("⚙️ [JOB] Panic khi xử lý item, tính là failed")
						success = false
					}
				}()
				if err := runner.ProcessItem(ctx, item); err != nil {
					success = false
				}
			}()
			if err := e.jobService.RecordItem(ctx, jobID, success); err != nil {
				log.WithError(err).WithFields(map[string]interface{}{
					"jobId": jobID.Hex(),
				}).Error("⚙️ [JOB] Không ghi được tiến độ item")
			}
			done <- success
		}(item)
	}

	successful, failed := 0, 0
	for range items {
		if <-done {
			successful++
		} else {
			failed++
		}
	}

	if err := e.jobService.Release(ctx, jobID, jobmodels.JobStatusCompleted); err != nil {
		log.WithError(err).WithFields(map[string]interface{}{
			"jobId": jobID.Hex(),
		}).Error("⚙️ [JOB] Không nhả được chốt job")
		return
	}

	log.WithFields(map[string]interface{}{
		"jobId":      jobID.Hex(),
		"kind":       runner.Kind(),
		"successful": successful,
		"failed":     failed,
		"duration":   time.Since(startedAt).String(),
	}).Info("⚙️ [JOB] Job hoàn tất")
}

// GetStatus trả về snapshot job — an toàn cho poll đồng thời, không chặn công việc đang bay.
func (e *JobEngine) GetStatus(ctx context.Context, jobID primitive.ObjectID) (*jobmodels.ProcessingJob, error) {
	job, err := e.jobService.FindOneById(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// ClearTracking tách view của client khỏi job (xem ProcessingJobService.ClearTracking).
func (e *JobEngine) ClearTracking(ctx context.Context, jobID primitive.ObjectID) (*jobmodels.ProcessingJob, error) {
	return e.jobService.ClearTracking(ctx, jobID)
}

// Package jobsvc - Service bản ghi job (jobs_processing): claim nguyên tử,
// bộ đếm tiến độ, nhả chốt khi terminal.
package jobsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	basesvc "case_harvest/internal/api/base/service"
	jobmodels "case_harvest/internal/api/jobs/models"
	"case_harvest/internal/common"
	"case_harvest/internal/global"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProcessingJobService quản lý bản ghi job.
type ProcessingJobService struct {
	*basesvc.BaseServiceMongoImpl[jobmodels.ProcessingJob]
}

// NewProcessingJobService tạo ProcessingJobService mới.
func NewProcessingJobService() (*ProcessingJobService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.ProcessingJobs)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.ProcessingJobs, common.ErrNotFound)
	}
	return &ProcessingJobService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[jobmodels.ProcessingJob](coll),
	}, nil
}

// Claim giành chốt "một job non-terminal mỗi kind" bằng một FindOneAndUpdate upsert
// trên khóa unique (kind, activeKey): hai start() đua nhau chỉ một bên tạo được document.
// Trả về job + alreadyRunning=true nếu document đã tồn tại (claimToken không khớp).
func (s *ProcessingJobService) Claim(ctx context.Context, kind string, totalItems int) (*jobmodels.ProcessingJob, bool, error) {
	token := uuid.NewString()
	now := time.Now().UnixMilli()

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	job, err := s.FindOneAndUpdate(ctx,
		bson.M{"kind": kind, "activeKey": jobmodels.ActiveKeyRunning},
		&basesvc.UpdateData{
			SetOnInsert: map[string]interface{}{
				"status":          jobmodels.JobStatusPending,
				"claimToken":      token,
				"totalItems":      totalItems,
				"processedItems":  0,
				"successfulItems": 0,
				"failedItems":     0,
				"cleared":         false,
				"createdAt":       now,
			},
		},
		opts,
	)
	if err != nil {
		return nil, false, err
	}
	alreadyRunning := job.ClaimToken != token
	return &job, alreadyRunning, nil
}

// MarkProcessing chuyển job pending → processing và ghi startedAt.
func (s *ProcessingJobService) MarkProcessing(ctx context.Context, jobID primitive.ObjectID) error {
	_, err := s.UpdateOne(ctx,
		bson.M{"_id": jobID, "status": jobmodels.JobStatusPending},
		&basesvc.UpdateData{Set: map[string]interface{}{
			"status":    jobmodels.JobStatusProcessing,
			"startedAt": time.Now().UnixMilli(),
		}},
		nil,
	)
	return err
}

// RecordItem ghi kết quả một item bằng $inc nguyên tử — nhiều worker hoàn tất
// đồng thời không làm mất cập nhật, poll luôn đọc được snapshot nhất quán.
func (s *ProcessingJobService) RecordItem(ctx context.Context, jobID primitive.ObjectID, success bool) error {
	inc := map[string]interface{}{"processedItems": 1}
	if success {
		inc["successfulItems"] = 1
	} else {
		inc["failedItems"] = 1
	}
	_, err := s.UpdateOne(ctx, bson.M{"_id": jobID}, &basesvc.UpdateData{Inc: inc}, nil)
	return err
}

// FailRemainder ghi nốt phần item chưa kịp xử lý là failed, giữ bất biến
// processed = total khi job về terminal ở nhánh panic của engine.
// Filter điều kiện trên processedItems hiện tại để không đếm đúp khi một worker
// vừa ghi tiến độ chen ngang; đua thì đọc lại với phần dư nhỏ hơn.
func (s *ProcessingJobService) FailRemainder(ctx context.Context, jobID primitive.ObjectID) error {
	for attempt := 0; attempt < 3; attempt++ {
		job, err := s.FindOneById(ctx, jobID)
		if err != nil {
			return err
		}
		remainder := job.TotalItems - job.ProcessedItems
		if remainder <= 0 {
			return nil
		}
		_, err = s.UpdateOne(ctx,
			bson.M{"_id": jobID, "processedItems": job.ProcessedItems},
			&basesvc.UpdateData{Inc: map[string]interface{}{
				"processedItems": remainder,
				"failedItems":    remainder,
			}},
			nil,
		)
		if err == nil {
			return nil
		}
		if !errors.Is(err, common.ErrNotFound) {
			return err
		}
	}
	return common.ErrInvalidState
}

// Release đưa job về terminal và nhả chốt: activeKey gán bằng id của job
// để kind này có thể start job mới mà lịch sử vẫn thỏa unique (kind, activeKey).
// Job item fail vẫn completed — chỉ stage coi mọi failure là fatal mới dùng failed.
func (s *ProcessingJobService) Release(ctx context.Context, jobID primitive.ObjectID, status string) error {
	if status != jobmodels.JobStatusCompleted && status != jobmodels.JobStatusFailed {
		return common.ErrInvalidState
	}
	_, err := s.UpdateOne(ctx,
		bson.M{"_id": jobID, "activeKey": jobmodels.ActiveKeyRunning},
		&basesvc.UpdateData{Set: map[string]interface{}{
			"status":      status,
			"activeKey":   jobID.Hex(),
			"completedAt": time.Now().UnixMilli(),
		}},
		nil,
	)
	return err
}

// ClearTracking đánh dấu client đã bỏ theo dõi job. Không hủy công việc đang chạy,
// không rollback tiến độ — chỉ tách view của client khỏi job.
func (s *ProcessingJobService) ClearTracking(ctx context.Context, jobID primitive.ObjectID) (*jobmodels.ProcessingJob, error) {
	job, err := s.UpdateOne(ctx, bson.M{"_id": jobID}, &basesvc.UpdateData{
		Set: map[string]interface{}{"cleared": true},
	}, nil)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

package jobsvc

import (
	"context"
	"testing"

	basesvc "case_harvest/internal/api/base/service"
	jobmodels "case_harvest/internal/api/jobs/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func newTestJobService(mt *mtest.T) *ProcessingJobService {
	return &ProcessingJobService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[jobmodels.ProcessingJob](mt.Coll),
	}
}

// MarkProcessing filter theo {_id, status: "pending"} rồi đổi status — update
// áp dụng thành công không được báo lỗi (trước đây lỗi này chặn luôn goroutine
// chạy job, job kẹt non-terminal giữ chốt activeKey của kind vĩnh viễn).
func TestMarkProcessing_UpdateApDungKhongBaoLoi(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("pending sang processing", func(mt *mtest.T) {
		svc := newTestJobService(mt)
		id := primitive.NewObjectID()

		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: id},
			{Key: "kind", Value: jobmodels.JobKindFetch},
			{Key: "status", Value: jobmodels.JobStatusProcessing},
		}}))

		if err := svc.MarkProcessing(context.Background(), id); err != nil {
			mt.Errorf("MarkProcessing trả lỗi dù update đã áp dụng: %v", err)
		}
	})
}

// Release filter theo {_id, activeKey: "active"} rồi re-key activeKey —
// hoàn tất job bình thường không được báo lỗi.
func TestRelease_HoanTatBinhThuongKhongBaoLoi(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("nhả chốt khi completed", func(mt *mtest.T) {
		svc := newTestJobService(mt)
		id := primitive.NewObjectID()

		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: id},
			{Key: "kind", Value: jobmodels.JobKindFetch},
			{Key: "status", Value: jobmodels.JobStatusCompleted},
			{Key: "activeKey", Value: id.Hex()},
		}}))

		if err := svc.Release(context.Background(), id, jobmodels.JobStatusCompleted); err != nil {
			mt.Errorf("Release trả lỗi dù update đã áp dụng: %v", err)
		}
	})

	mt.Run("status không terminal bị từ chối", func(mt *mtest.T) {
		svc := newTestJobService(mt)
		if err := svc.Release(context.Background(), primitive.NewObjectID(), jobmodels.JobStatusProcessing); err == nil {
			mt.Errorf("Release với status không terminal phải trả lỗi")
		}
	})
}

// FailRemainder ghi nốt phần item chưa xử lý là failed để job terminal
// vẫn thỏa processed = total sau panic.
func TestFailRemainder_GhiNotPhanConLai(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("job 10 item mới xử lý 7", func(mt *mtest.T) {
		svc := newTestJobService(mt)
		id := primitive.NewObjectID()

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "case_harvest.jobs_processing", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: id},
				{Key: "kind", Value: jobmodels.JobKindFetch},
				{Key: "totalItems", Value: 10},
				{Key: "processedItems", Value: 7},
				{Key: "successfulItems", Value: 5},
				{Key: "failedItems", Value: 2},
			}),
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
				{Key: "_id", Value: id},
				{Key: "totalItems", Value: 10},
				{Key: "processedItems", Value: 10},
				{Key: "failedItems", Value: 5},
			}}),
		)

		if err := svc.FailRemainder(context.Background(), id); err != nil {
			mt.Fatalf("FailRemainder trả lỗi: %v", err)
		}

		if evt := mt.GetStartedEvent(); evt == nil || evt.CommandName != "find" {
			mt.Fatalf("Muốn lệnh find đọc tiến độ hiện tại trước, nhận %+v", evt)
		}
		evt := mt.GetStartedEvent()
		if evt == nil || evt.CommandName != "findAndModify" {
			mt.Fatalf("Muốn lệnh findAndModify ghi phần dư, nhận %+v", evt)
		}
		if got := evt.Command.Lookup("update", "$inc", "processedItems").AsInt64(); got != 3 {
			mt.Errorf("$inc processedItems = %d, muốn 3 (phần dư 10 - 7)", got)
		}
		if got := evt.Command.Lookup("update", "$inc", "failedItems").AsInt64(); got != 3 {
			mt.Errorf("$inc failedItems = %d, muốn 3 (phần dư tính là failed)", got)
		}
	})

	mt.Run("đã xử lý đủ thì không ghi gì", func(mt *mtest.T) {
		svc := newTestJobService(mt)
		id := primitive.NewObjectID()

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "case_harvest.jobs_processing", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: id},
				{Key: "totalItems", Value: 4},
				{Key: "processedItems", Value: 4},
			}),
		)

		if err := svc.FailRemainder(context.Background(), id); err != nil {
			mt.Fatalf("FailRemainder trả lỗi: %v", err)
		}
		if evt := mt.GetStartedEvent(); evt == nil || evt.CommandName != "find" {
			mt.Fatalf("Muốn lệnh find đọc tiến độ, nhận %+v", evt)
		}
		if extra := mt.GetStartedEvent(); extra != nil {
			mt.Errorf("Không còn phần dư thì không được ghi thêm, nhận lệnh %s", extra.CommandName)
		}
	})
}

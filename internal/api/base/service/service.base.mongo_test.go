package basesvc

import (
	"context"
	"errors"
	"testing"

	"case_harvest/internal/common"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

// mongoTestDoc model tối giản cho các test chạy trên mock deployment.
type mongoTestDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Status         string             `bson:"status,omitempty"`
	AdjournedBy    string             `bson:"adjournedBy,omitempty"`
	PendingActions []string           `bson:"pendingActions,omitempty"`
	CreatedAt      int64              `bson:"createdAt,omitempty"`
	UpdatedAt      int64              `bson:"updatedAt,omitempty"`
}

// Filter điều kiện trên chính field được update (vd {_id, status: "pending"} →
// set status = "processing") phải trả về document mới trong MỘT round-trip,
// không đọc lại bằng filter gốc sau khi ghi.
func TestUpdateOne_FilterTuVoHieuVanTraDocumentMoi(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("filter điều kiện trên field bị thay đổi", func(mt *mtest.T) {
		svc := NewBaseServiceMongo[mongoTestDoc](mt.Coll)
		id := primitive.NewObjectID()

		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: id},
			{Key: "status", Value: "processing"},
		}}))

		updated, err := svc.UpdateOne(context.Background(),
			bson.M{"_id": id, "status": "pending"},
			&UpdateData{Set: map[string]interface{}{"status": "processing"}},
			nil,
		)
		if err != nil {
			mt.Fatalf("UpdateOne với filter điều kiện trên status trả lỗi: %v", err)
		}
		if updated.Status != "processing" {
			mt.Errorf("Status sau update = %q, muốn %q", updated.Status, "processing")
		}

		evt := mt.GetStartedEvent()
		if evt == nil || evt.CommandName != "findAndModify" {
			mt.Fatalf("Muốn một lệnh findAndModify duy nhất, nhận %+v", evt)
		}
		if extra := mt.GetStartedEvent(); extra != nil {
			mt.Errorf("Không được có round-trip đọc lại sau update, nhận thêm lệnh %s", extra.CommandName)
		}
	})

	mt.Run("không khớp filter trả ErrNotFound", func(mt *mtest.T) {
		svc := NewBaseServiceMongo[mongoTestDoc](mt.Coll)

		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		_, err := svc.UpdateOne(context.Background(),
			bson.M{"_id": primitive.NewObjectID()},
			&UpdateData{Set: map[string]interface{}{"status": "processing"}},
			nil,
		)
		if !errors.Is(err, common.ErrNotFound) {
			mt.Errorf("Muốn ErrNotFound khi filter không khớp document nào, nhận %v", err)
		}
	})
}

// ReplaceWholesale phải gửi document thay thế KHÔNG chứa các field đã về zero
// trong dữ liệu mới (khác $set merge), và giữ nguyên createdAt của bản cũ.
func TestReplaceWholesale_GhiDeNguyenDocument(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("field về zero bị xóa, createdAt giữ nguyên", func(mt *mtest.T) {
		svc := NewBaseServiceMongo[mongoTestDoc](mt.Coll)
		id := primitive.NewObjectID()

		// Bản cũ còn adjournedBy và pendingActions; dữ liệu mới không có hai field này
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "case_harvest.test", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: id},
				{Key: "status", Value: "classified"},
				{Key: "adjournedBy", Value: "respondent"},
				{Key: "pendingActions", Value: bson.A{"nộp bản tự khai"}},
				{Key: "createdAt", Value: int64(1111)},
			}),
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
				{Key: "_id", Value: id},
				{Key: "status", Value: "classified"},
				{Key: "createdAt", Value: int64(1111)},
			}}),
		)

		_, err := svc.ReplaceWholesale(context.Background(), bson.M{"_id": id}, mongoTestDoc{Status: "classified"})
		if err != nil {
			mt.Fatalf("ReplaceWholesale trả lỗi: %v", err)
		}

		if evt := mt.GetStartedEvent(); evt == nil || evt.CommandName != "find" {
			mt.Fatalf("Muốn lệnh find đọc createdAt bản cũ trước, nhận %+v", evt)
		}
		evt := mt.GetStartedEvent()
		if evt == nil || evt.CommandName != "findAndModify" {
			mt.Fatalf("Muốn lệnh findAndModify thay document, nhận %+v", evt)
		}

		replacement := evt.Command.Lookup("update").Document()
		if _, lookupErr := replacement.LookupErr("adjournedBy"); lookupErr == nil {
			mt.Errorf("Document thay thế vẫn còn adjournedBy — field đã về zero phải bị xóa khỏi bản lưu")
		}
		if _, lookupErr := replacement.LookupErr("pendingActions"); lookupErr == nil {
			mt.Errorf("Document thay thế vẫn còn pendingActions — field đã về zero phải bị xóa khỏi bản lưu")
		}
		if got := replacement.Lookup("createdAt").AsInt64(); got != 1111 {
			mt.Errorf("createdAt sau replace = %d, muốn giữ nguyên 1111", got)
		}
		if _, lookupErr := replacement.LookupErr("updatedAt"); lookupErr != nil {
			mt.Errorf("Document thay thế thiếu updatedAt")
		}
	})
}

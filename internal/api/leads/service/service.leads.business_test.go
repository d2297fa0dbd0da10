package leadsvc

import (
	"context"
	"testing"

	basesvc "case_harvest/internal/api/base/service"
	leadmodels "case_harvest/internal/api/leads/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

// MarkEnriched filter theo {_id, enrichmentStatus: "pending"} rồi đổi sang
// "enriched" — enrichment thành công không được báo lỗi (lỗi ở đây làm stage
// enrich đếm nhầm item thành công vào failedItems).
func TestMarkEnriched_ThanhCongKhongBaoLoi(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("pending sang enriched", func(mt *mtest.T) {
		svc := &BusinessEntityService{
			BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[leadmodels.BusinessEntity](mt.Coll),
		}
		id := primitive.NewObjectID()

		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: id},
			{Key: "name", Value: "Sharma Trading Co"},
			{Key: "enrichmentStatus", Value: leadmodels.LeadStatusEnriched},
			{Key: "contactEmail", Value: "contact@sharmatrading.in"},
		}}))

		err := svc.MarkEnriched(context.Background(), id,
			"contact@sharmatrading.in", "+911100000000", "Delhi", "https://sharmatrading.in")
		if err != nil {
			mt.Errorf("MarkEnriched trả lỗi dù update đã áp dụng: %v", err)
		}

		evt := mt.GetStartedEvent()
		if evt == nil || evt.CommandName != "findAndModify" {
			mt.Fatalf("Muốn một lệnh findAndModify duy nhất, nhận %+v", evt)
		}
		if extra := mt.GetStartedEvent(); extra != nil {
			mt.Errorf("Không được có round-trip đọc lại sau update, nhận thêm lệnh %s", extra.CommandName)
		}
	})
}

// Transition filter lạc quan theo trạng thái hiện tại — chuyển nấc hợp lệ
// trả về bản ghi mới, không báo lỗi.
func TestTransition_ChuyenNacHopLeTraBanGhiMoi(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("enriched sang contacted", func(mt *mtest.T) {
		svc := &BusinessEntityService{
			BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[leadmodels.BusinessEntity](mt.Coll),
		}
		id := primitive.NewObjectID()

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "case_harvest.leads_businesses", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: id},
				{Key: "name", Value: "Sharma Trading Co"},
				{Key: "enrichmentStatus", Value: leadmodels.LeadStatusEnriched},
			}),
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
				{Key: "_id", Value: id},
				{Key: "name", Value: "Sharma Trading Co"},
				{Key: "enrichmentStatus", Value: leadmodels.LeadStatusContacted},
			}}),
		)

		updated, err := svc.Transition(context.Background(), id, leadmodels.LeadStatusContacted)
		if err != nil {
			mt.Fatalf("Transition hợp lệ trả lỗi: %v", err)
		}
		if updated.EnrichmentStatus != leadmodels.LeadStatusContacted {
			mt.Errorf("Trạng thái sau transition = %q, muốn %q", updated.EnrichmentStatus, leadmodels.LeadStatusContacted)
		}
	})
}

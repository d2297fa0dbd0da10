// Package courtsvc - Test các mức trần nghiệp vụ: vi phạm bị từ chối toàn bộ
// trước mọi truy cập store, lỗi kèm số lượng yêu cầu và mức trần.
package courtsvc

import (
	"context"
	"errors"
	"fmt"
	"testing"

	basesvc "case_harvest/internal/api/base/service"
	courtdto "case_harvest/internal/api/court/dto"
	courtmodels "case_harvest/internal/api/court/models"
	"case_harvest/internal/common"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

// limitDetailOf rút LimitDetail từ lỗi vượt giới hạn.
func limitDetailOf(t *testing.T, err error) common.LimitDetail {
	t.Helper()
	var e *common.Error
	if !errors.As(err, &e) {
		t.Fatalf("Lỗi không phải *common.Error: %v", err)
	}
	detail, ok := e.Details.(common.LimitDetail)
	if !ok {
		t.Fatalf("Details không phải LimitDetail: %#v", e.Details)
	}
	return detail
}

func TestGenerateBatch_DaiSerialVuotTran(t *testing.T) {
	// Cap kiểm tra trước mọi truy cập store — service zero-value là đủ
	svc := &CourtCaseService{}

	_, err := svc.GenerateBatch(context.Background(), &courtdto.GenerateCasesInput{
		DistrictCode: "WT",
		SerialFrom:   1,
		SerialTo:     200,
		Year:         2025,
	})
	if err == nil {
		t.Fatal("Dải 200 serial phải bị từ chối")
	}
	if !common.IsLimitExceeded(err) {
		t.Fatalf("Muốn lỗi vượt giới hạn, nhận %v", err)
	}
	detail := limitDetailOf(t, err)
	if detail.Requested != 200 || detail.Limit != MaxIdentifiersPerRequest {
		t.Errorf("LimitDetail = %+v, muốn requested 200 / limit %d", detail, MaxIdentifiersPerRequest)
	}
}

func TestGenerateBatch_SerialToNhoHonSerialFrom(t *testing.T) {
	svc := &CourtCaseService{}

	_, err := svc.GenerateBatch(context.Background(), &courtdto.GenerateCasesInput{
		DistrictCode: "WT",
		SerialFrom:   100,
		SerialTo:     50,
		Year:         2025,
	})
	if err == nil {
		t.Fatal("serialTo < serialFrom phải bị từ chối")
	}
	if common.IsLimitExceeded(err) {
		t.Errorf("Dải ngược là lỗi validation, không phải lỗi vượt giới hạn: %v", err)
	}
}

func TestComposeBatch_SoNgayVuotTran(t *testing.T) {
	svc := &CourtOrderService{}

	_, err := svc.ComposeBatch(context.Background(), &courtdto.ComposeOrdersInput{
		CNRs:         []string{"DLWT010127152025"},
		DateFrom:     "2025-06-01",
		DayCount:     31,
		OrderNumbers: []int{1},
	})
	if !common.IsLimitExceeded(err) {
		t.Fatalf("31 ngày phải trả lỗi vượt giới hạn, nhận %v", err)
	}
	detail := limitDetailOf(t, err)
	if detail.Requested != 31 || detail.Limit != MaxDaysPerBatch {
		t.Errorf("LimitDetail = %+v, muốn requested 31 / limit %d", detail, MaxDaysPerBatch)
	}
}

func TestComposeBatch_SoLenhPhanBietVuotTran(t *testing.T) {
	svc := &CourtOrderService{}

	// 11 số lệnh phân biệt — trùng lặp đã bị loại trước khi so với mức trần
	numbers := make([]int, 0, 22)
	for n := 1; n <= 11; n++ {
		numbers = append(numbers, n, n)
	}
	_, err := svc.ComposeBatch(context.Background(), &courtdto.ComposeOrdersInput{
		CNRs:         []string{"DLWT010127152025"},
		DateFrom:     "2025-06-01",
		DayCount:     1,
		OrderNumbers: numbers,
	})
	if !common.IsLimitExceeded(err) {
		t.Fatalf("11 số lệnh phân biệt phải trả lỗi vượt giới hạn, nhận %v", err)
	}
	detail := limitDetailOf(t, err)
	if detail.Requested != 11 || detail.Limit != MaxOrderNumbersPerBatch {
		t.Errorf("LimitDetail = %+v, muốn requested 11 / limit %d", detail, MaxOrderNumbersPerBatch)
	}
}

// Tích |cases| × |dates| × |orderNumbers| vượt 1000 phải bị từ chối sau truy vấn
// case nhưng TRƯỚC mọi ghi — không lệnh insert nào được gửi đi.
func TestComposeBatch_TichVuotTranKhongGhi(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("6 case × 30 ngày × 10 số lệnh = 1800", func(mt *mtest.T) {
		caseSvc := &CourtCaseService{
			BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[courtmodels.CourtCase](mt.Coll),
		}
		orderSvc := &CourtOrderService{
			BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[courtmodels.CourtOrder](mt.Coll),
			caseService:          caseSvc,
		}

		cnrs := make([]string, 0, 6)
		caseDocs := make([]bson.D, 0, 6)
		for i := 0; i < 6; i++ {
			cnr := fmt.Sprintf("DLWT01%06d2025", 12715+i)
			cnrs = append(cnrs, cnr)
			caseDocs = append(caseDocs, bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "cnr", Value: cnr},
				{Key: "districtCode", Value: "WT"},
			})
		}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "case_harvest.court_cases", mtest.FirstBatch, caseDocs...))

		orderNumbers := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
		_, err := orderSvc.ComposeBatch(context.Background(), &courtdto.ComposeOrdersInput{
			CNRs:         cnrs,
			DateFrom:     "2025-06-01",
			DayCount:     30,
			OrderNumbers: orderNumbers,
		})
		if !common.IsLimitExceeded(err) {
			mt.Fatalf("Tích 1800 phải trả lỗi vượt giới hạn, nhận %v", err)
		}
		detail := limitDetailOf(mt.T, err)
		if detail.Requested != 1800 || detail.Limit != MaxRequestsPerBatch {
			mt.Errorf("LimitDetail = %+v, muốn requested 1800 / limit %d", detail, MaxRequestsPerBatch)
		}

		if evt := mt.GetStartedEvent(); evt == nil || evt.CommandName != "find" {
			mt.Fatalf("Muốn đúng một lệnh find đọc case, nhận %+v", evt)
		}
		if extra := mt.GetStartedEvent(); extra != nil {
			mt.Errorf("Không lệnh nào được gửi sau khi vượt trần, nhận %s", extra.CommandName)
		}
	})
}

// Package courtsvc - Service yêu cầu tải lệnh (court_orders).
// Dựng batch request từ tích case × ngày × số lệnh, dedup theo triple duy nhất.
package courtsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	basesvc "case_harvest/internal/api/base/service"
	courtdto "case_harvest/internal/api/court/dto"
	courtmodels "case_harvest/internal/api/court/models"
	"case_harvest/internal/common"
	"case_harvest/internal/global"
	"case_harvest/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Giới hạn của một batch compose.
const (
	MaxRequestsPerBatch     = 1000 // Tích tối đa |cases| × |dates| × |orderNumbers|
	MaxDaysPerBatch         = 30
	MaxOrderNumbersPerBatch = 10
)

// CourtOrderService xử lý logic yêu cầu tải lệnh.
type CourtOrderService struct {
	*basesvc.BaseServiceMongoImpl[courtmodels.CourtOrder]
	caseService     *CourtCaseService
	districtService *CourtDistrictService
}

// NewCourtOrderService tạo CourtOrderService mới.
func NewCourtOrderService() (*CourtOrderService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.CourtOrders)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.CourtOrders, common.ErrNotFound)
	}
	caseService, err := NewCourtCaseService()
	if err != nil {
		return nil, err
	}
	districtService, err := NewCourtDistrictService()
	if err != nil {
		return nil, err
	}
	return &CourtOrderService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[courtmodels.CourtOrder](coll),
		caseService:          caseService,
		districtService:      districtService,
	}, nil
}

// expandDates dựng danh sách ngày YYYY-MM-DD liên tục từ dateFrom, dayCount ngày.
func expandDates(dateFrom string, dayCount int) ([]string, error) {
	start, err := time.Parse("2006-01-02", dateFrom)
	if err != nil {
		return nil, common.NewError(common.ErrCodeValidationFormat, "dateFrom phải có định dạng YYYY-MM-DD", common.StatusBadRequest, err)
	}
	dates := make([]string, 0, dayCount)
	for i := 0; i < dayCount; i++ {
		dates = append(dates, start.AddDate(0, 0, i).Format("2006-01-02"))
	}
	return dates, nil
}

// dedupOrderNumbers loại số lệnh trùng, giữ thứ tự xuất hiện.
func dedupOrderNumbers(numbers []int) []int {
	seen := make(map[int]bool, len(numbers))
	result := make([]int, 0, len(numbers))
	for _, n := range numbers {
		if !seen[n] {
			seen[n] = true
			result = append(result, n)
		}
	}
	return result
}

// ComposeBatch dựng batch yêu cầu tải lệnh từ tích 3 chiều.
// Kiểm tra cap TRƯỚC mọi ghi (check-then-act nguyên tử trên cả batch):
// tích vượt 1000 → LimitExceeded, không ghi dòng nào.
// Dedup triple (caseId, orderNumber, orderDate) bằng một truy vấn batch, chỉ insert phần bù.
func (s *CourtOrderService) ComposeBatch(ctx context.Context, input *courtdto.ComposeOrdersInput) (*courtdto.ComposeOrdersResponse, error) {
	if input.DayCount > MaxDaysPerBatch {
		return nil, common.NewLimitExceededError(
			fmt.Sprintf("Khoảng ngày %d vượt giới hạn %d ngày", input.DayCount, MaxDaysPerBatch),
			input.DayCount, MaxDaysPerBatch,
		)
	}
	orderNumbers := dedupOrderNumbers(input.OrderNumbers)
	if len(orderNumbers) > MaxOrderNumbersPerBatch {
		return nil, common.NewLimitExceededError(
			fmt.Sprintf("Số lượng số lệnh phân biệt %d vượt giới hạn %d", len(orderNumbers), MaxOrderNumbersPerBatch),
			len(orderNumbers), MaxOrderNumbersPerBatch,
		)
	}

	cases, err := s.caseService.FindByCNRs(ctx, input.CNRs)
	if err != nil {
		return nil, err
	}
	if len(cases) == 0 {
		return nil, common.ErrNotFound
	}

	product := len(cases) * input.DayCount * len(orderNumbers)
	if product > MaxRequestsPerBatch {
		return nil, common.NewLimitExceededError(
			fmt.Sprintf("Tích %d case × %d ngày × %d số lệnh = %d request, vượt giới hạn %d mỗi batch",
				len(cases), input.DayCount, len(orderNumbers), product, MaxRequestsPerBatch),
			product, MaxRequestsPerBatch,
		)
	}

	dates, err := expandDates(input.DateFrom, input.DayCount)
	if err != nil {
		return nil, err
	}

	// Base URL lấy theo quận của từng case; cache để không truy vấn lặp
	districtByCode := make(map[string]*courtmodels.CourtDistrict)
	for _, c := range cases {
		if _, ok := districtByCode[c.DistrictCode]; ok {
			continue
		}
		d, err := s.districtService.FindByCode(ctx, c.DistrictCode)
		if err != nil {
			return nil, err
		}
		districtByCode[c.DistrictCode] = d
	}

	// Một truy vấn batch kiểm tra các triple đã tồn tại
	caseIDs := make([]primitive.ObjectID, 0, len(cases))
	for _, c := range cases {
		caseIDs = append(caseIDs, c.ID)
	}
	existing, err := s.Find(ctx, bson.M{
		"caseId":      bson.M{"$in": caseIDs},
		"orderNumber": bson.M{"$in": orderNumbers},
		"orderDate":   bson.M{"$in": dates},
	}, nil)
	if err != nil {
		return nil, err
	}
	tripleKey := func(caseID primitive.ObjectID, orderNumber int, orderDate string) string {
		return fmt.Sprintf("%s|%d|%s", caseID.Hex(), orderNumber, orderDate)
	}
	existingTriples := make(map[string]bool, len(existing))
	for _, o := range existing {
		existingTriples[tripleKey(o.CaseID, o.OrderNumber, o.OrderDate)] = true
	}

	toInsert := make([]courtmodels.CourtOrder, 0, product)
	createdPerCase := make(map[primitive.ObjectID]int)
	for _, c := range cases {
		district := districtByCode[c.DistrictCode]
		for _, date := range dates {
			for _, orderNumber := range orderNumbers {
				if existingTriples[tripleKey(c.ID, orderNumber, date)] {
					continue
				}
				fetchURL, err := BuildFetchURL(district.BaseURL, OrderPayload{
					CNR:         c.CNR,
					OrderNumber: orderNumber,
					OrderDate:   date,
				})
				if err != nil {
					return nil, err
				}
				toInsert = append(toInsert, courtmodels.CourtOrder{
					CaseID:      c.ID,
					CNR:         c.CNR,
					OrderNumber: orderNumber,
					OrderDate:   date,
					FetchURL:    fetchURL,
				})
				createdPerCase[c.ID]++
			}
		}
	}

	var inserted []courtmodels.CourtOrder
	if len(toInsert) > 0 {
		inserted, err = s.InsertMany(ctx, toInsert)
		if err != nil {
			return nil, err
		}
		for caseID, count := range createdPerCase {
			if err := s.caseService.IncrementOrderCount(ctx, caseID, count); err != nil {
				logger.GetErrorLogger().WithError(err).WithFields(map[string]interface{}{
					"caseId": caseID.Hex(),
				}).Warn("Không cập nhật được orderCount của case")
			}
		}
	}

	resp := &courtdto.ComposeOrdersResponse{
		TotalProduct:  product,
		CreatedCount:  len(inserted),
		ExistingCount: len(existingTriples),
		OrderIds:      make([]string, 0, len(inserted)),
	}
	for _, o := range inserted {
		resp.OrderIds = append(resp.OrderIds, o.ID.Hex())
	}

	logger.GetPipelineLogger().WithFields(map[string]interface{}{
		"cases":        len(cases),
		"dates":        len(dates),
		"orderNumbers": len(orderNumbers),
		"product":      product,
		"created":      resp.CreatedCount,
		"existing":     resp.ExistingCount,
	}).Info("🧾 [COMPOSE] Đã dựng batch yêu cầu tải lệnh")

	return resp, nil
}

// CreateForMonitoring tạo một OrderRequest phát hiện bởi Monitoring Scheduler (tái nhập pipeline ở stage fetch).
// Idempotent theo triple duy nhất: nếu đã tồn tại trả về bản ghi cũ với created=false.
func (s *CourtOrderService) CreateForMonitoring(ctx context.Context, courtCase *courtmodels.CourtCase, orderNumber int, orderDate string) (*courtmodels.CourtOrder, bool, error) {
	existing, err := s.FindOne(ctx, bson.M{
		"caseId":      courtCase.ID,
		"orderNumber": orderNumber,
		"orderDate":   orderDate,
	}, nil)
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, false, err
	}

	district, err := s.districtService.FindByCode(ctx, courtCase.DistrictCode)
	if err != nil {
		return nil, false, err
	}
	fetchURL, err := BuildFetchURL(district.BaseURL, OrderPayload{
		CNR:         courtCase.CNR,
		OrderNumber: orderNumber,
		OrderDate:   orderDate,
	})
	if err != nil {
		return nil, false, err
	}
	created, err := s.InsertOne(ctx, courtmodels.CourtOrder{
		CaseID:      courtCase.ID,
		CNR:         courtCase.CNR,
		OrderNumber: orderNumber,
		OrderDate:   orderDate,
		FetchURL:    fetchURL,
	})
	if err != nil {
		return nil, false, err
	}
	if err := s.caseService.IncrementOrderCount(ctx, courtCase.ID, 1); err != nil {
		logger.GetErrorLogger().WithError(err).Warn("Không cập nhật được orderCount của case")
	}
	return &created, true, nil
}

// MarkFetched ghi kết quả stage fetch: vị trí file, kích thước, documentFetched = true.
func (s *CourtOrderService) MarkFetched(ctx context.Context, orderID primitive.ObjectID, location string, size int64) error {
	_, err := s.UpdateOne(ctx, bson.M{"_id": orderID}, &basesvc.UpdateData{
		Set: map[string]interface{}{
			"documentFetched":  true,
			"documentLocation": location,
			"documentSize":     size,
		},
		Unset: map[string]interface{}{"lastFailure": ""},
	}, nil)
	return err
}

// MarkExtracted ghi kết quả stage extract. Bất biến thứ tự stage: yêu cầu documentFetched = true.
func (s *CourtOrderService) MarkExtracted(ctx context.Context, orderID primitive.ObjectID, text string) error {
	_, err := s.UpdateOne(ctx, bson.M{"_id": orderID, "documentFetched": true}, &basesvc.UpdateData{
		Set: map[string]interface{}{
			"textExtracted": true,
			"extractedText": text,
		},
		Unset: map[string]interface{}{"lastFailure": ""},
	}, nil)
	return err
}

// MarkClassified đánh dấu lệnh đã phân loại. Bất biến thứ tự stage: yêu cầu textExtracted = true.
func (s *CourtOrderService) MarkClassified(ctx context.Context, orderID primitive.ObjectID) error {
	_, err := s.UpdateOne(ctx, bson.M{"_id": orderID, "textExtracted": true}, &basesvc.UpdateData{
		Set:   map[string]interface{}{"classified": true},
		Unset: map[string]interface{}{"lastFailure": ""},
	}, nil)
	return err
}

// MarkItemFailure lưu lý do thất bại gần nhất của item (chỉ phục vụ vận hành).
func (s *CourtOrderService) MarkItemFailure(ctx context.Context, orderID primitive.ObjectID, reason string) {
	if _, err := s.UpdateOne(ctx, bson.M{"_id": orderID}, &basesvc.UpdateData{
		Set: map[string]interface{}{"lastFailure": reason},
	}, nil); err != nil {
		logger.GetErrorLogger().WithError(err).WithFields(map[string]interface{}{
			"orderId": orderID.Hex(),
		}).Debug("Không lưu được lastFailure")
	}
}

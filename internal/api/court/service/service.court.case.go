// Package courtsvc - Service định danh hồ sơ (court_cases).
// Sinh batch CNR từ dải serial, dedup theo chuỗi canonical.
package courtsvc

import (
	"context"
	"fmt"

	basesvc "case_harvest/internal/api/base/service"
	courtdto "case_harvest/internal/api/court/dto"
	courtmodels "case_harvest/internal/api/court/models"
	"case_harvest/internal/common"
	"case_harvest/internal/global"
	"case_harvest/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxIdentifiersPerRequest giới hạn số định danh sinh trong một lần gọi.
const MaxIdentifiersPerRequest = 100

// CourtCaseService xử lý logic định danh hồ sơ.
type CourtCaseService struct {
	*basesvc.BaseServiceMongoImpl[courtmodels.CourtCase]
	districtService *CourtDistrictService
}

// NewCourtCaseService tạo CourtCaseService mới.
func NewCourtCaseService() (*CourtCaseService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.CourtCases)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.CourtCases, common.ErrNotFound)
	}
	districtService, err := NewCourtDistrictService()
	if err != nil {
		return nil, err
	}
	return &CourtCaseService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[courtmodels.CourtCase](coll),
		districtService:      districtService,
	}, nil
}

// BuildCanonicalCNR dựng chuỗi canonical: statePrefix + districtCode + establishmentCode + paddedSerial + year.
// Serial pad 0 theo serialWidth của quận (vd: width 6, serial 12715 → 012715).
func BuildCanonicalCNR(district *courtmodels.CourtDistrict, serial int64, year int) (cnr string, paddedSerial string) {
	paddedSerial = fmt.Sprintf("%0*d", district.SerialWidth, serial)
	cnr = fmt.Sprintf("%s%s%s%s%d", district.StatePrefix, district.Code, district.EstablishmentCode, paddedSerial, year)
	return cnr, paddedSerial
}

// GenerateBatch sinh định danh cho dải serial [serialFrom, serialTo] của một quận.
// Kiểm tra cap trước mọi ghi: dải vượt 100 → LimitExceeded, không ghi dòng nào.
// Dedup bằng một truy vấn $in duy nhất trên cnr, chỉ insert phần bù;
// trả về toàn bộ handle (đã có + mới) để caller chain sang compose.
func (s *CourtCaseService) GenerateBatch(ctx context.Context, input *courtdto.GenerateCasesInput) (*courtdto.GenerateCasesResponse, error) {
	if input.SerialTo < input.SerialFrom {
		return nil, common.NewError(common.ErrCodeValidationInput, "serialTo phải lớn hơn hoặc bằng serialFrom", common.StatusBadRequest, nil)
	}
	requested := int(input.SerialTo - input.SerialFrom + 1)
	if requested > MaxIdentifiersPerRequest {
		return nil, common.NewLimitExceededError(
			fmt.Sprintf("Dải serial yêu cầu %d định danh, vượt giới hạn %d mỗi lần gọi", requested, MaxIdentifiersPerRequest),
			requested, MaxIdentifiersPerRequest,
		)
	}

	district, err := s.districtService.FindByCode(ctx, input.DistrictCode)
	if err != nil {
		return nil, err
	}

	// Dựng toàn bộ candidate trước, giữ thứ tự serial tăng dần
	candidates := make([]courtmodels.CourtCase, 0, requested)
	cnrs := make([]string, 0, requested)
	for serial := input.SerialFrom; serial <= input.SerialTo; serial++ {
		cnr, padded := BuildCanonicalCNR(district, serial, input.Year)
		candidates = append(candidates, courtmodels.CourtCase{
			CNR:          cnr,
			DistrictCode: district.Code,
			Serial:       serial,
			PaddedSerial: padded,
			Year:         input.Year,
			Validity:     courtmodels.CaseValidityUnknown,
		})
		cnrs = append(cnrs, cnr)
	}

	// Một truy vấn batch duy nhất kiểm tra candidate nào đã tồn tại
	existing, err := s.Find(ctx, bson.M{"cnr": bson.M{"$in": cnrs}}, nil)
	if err != nil {
		return nil, err
	}
	existingByCNR := make(map[string]courtmodels.CourtCase, len(existing))
	for _, c := range existing {
		existingByCNR[c.CNR] = c
	}

	toInsert := make([]courtmodels.CourtCase, 0, requested-len(existing))
	for _, c := range candidates {
		if _, ok := existingByCNR[c.CNR]; !ok {
			toInsert = append(toInsert, c)
		}
	}

	var inserted []courtmodels.CourtCase
	if len(toInsert) > 0 {
		inserted, err = s.InsertMany(ctx, toInsert)
		if err != nil {
			return nil, err
		}
	}
	insertedByCNR := make(map[string]courtmodels.CourtCase, len(inserted))
	for _, c := range inserted {
		insertedByCNR[c.CNR] = c
	}

	resp := &courtdto.GenerateCasesResponse{
		RequestedCount: requested,
		CreatedCount:   len(inserted),
		ExistingCount:  len(existing),
		CaseIds:        make([]string, 0, requested),
		CNRs:           cnrs,
	}
	for _, cnr := range cnrs {
		if c, ok := existingByCNR[cnr]; ok {
			resp.CaseIds = append(resp.CaseIds, c.ID.Hex())
		} else if c, ok := insertedByCNR[cnr]; ok {
			resp.CaseIds = append(resp.CaseIds, c.ID.Hex())
		}
	}

	logger.GetPipelineLogger().WithFields(map[string]interface{}{
		"districtCode": input.DistrictCode,
		"year":         input.Year,
		"requested":    requested,
		"created":      resp.CreatedCount,
		"existing":     resp.ExistingCount,
	}).Info("🧾 [GENERATE] Đã sinh batch định danh hồ sơ")

	return resp, nil
}

// FindByCNRs trả về các case khớp danh sách CNR (một truy vấn $in).
func (s *CourtCaseService) FindByCNRs(ctx context.Context, cnrs []string) ([]courtmodels.CourtCase, error) {
	return s.Find(ctx, bson.M{"cnr": bson.M{"$in": cnrs}}, nil)
}

// IncrementOrderCount tăng orderCount của case thêm delta (đếm ngược số order đã gắn).
func (s *CourtCaseService) IncrementOrderCount(ctx context.Context, caseID primitive.ObjectID, delta int) error {
	_, err := s.UpdateOne(ctx, bson.M{"_id": caseID}, &basesvc.UpdateData{
		Inc: map[string]interface{}{"orderCount": delta},
	}, nil)
	return err
}

// SetValidity cập nhật validity sau khi đối chiếu registry.
func (s *CourtCaseService) SetValidity(ctx context.Context, caseID primitive.ObjectID, validity string) error {
	switch validity {
	case courtmodels.CaseValidityValid, courtmodels.CaseValidityInvalid, courtmodels.CaseValidityUnknown:
	default:
		return common.ErrInvalidState
	}
	_, err := s.UpdateOne(ctx, bson.M{"_id": caseID}, &basesvc.UpdateData{
		Set: map[string]interface{}{"validity": validity},
	}, nil)
	return err
}

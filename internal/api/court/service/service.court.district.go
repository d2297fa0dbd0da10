// Package courtsvc - Service dữ liệu tham chiếu quận/tòa (court_districts).
package courtsvc

import (
	"context"
	"fmt"

	basesvc "case_harvest/internal/api/base/service"
	courtmodels "case_harvest/internal/api/court/models"
	"case_harvest/internal/common"
	"case_harvest/internal/global"

	"go.mongodb.org/mongo-driver/bson"
)

// CourtDistrictService quản lý cấu hình quận/tòa.
type CourtDistrictService struct {
	*basesvc.BaseServiceMongoImpl[courtmodels.CourtDistrict]
}

// NewCourtDistrictService tạo CourtDistrictService mới.
func NewCourtDistrictService() (*CourtDistrictService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.CourtDistricts)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.CourtDistricts, common.ErrNotFound)
	}
	return &CourtDistrictService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[courtmodels.CourtDistrict](coll),
	}, nil
}

// FindByCode tìm quận theo mã. Trả common.ErrNotFound nếu chưa được seed.
func (s *CourtDistrictService) FindByCode(ctx context.Context, code string) (*courtmodels.CourtDistrict, error) {
	district, err := s.FindOne(ctx, bson.M{"code": code}, nil)
	if err != nil {
		return nil, err
	}
	return &district, nil
}

// SeedDefaults upsert danh sách quận mặc định vào court_districts (idempotent theo code).
// Gọi lúc khởi động từ InitDefaultData.
func (s *CourtDistrictService) SeedDefaults(ctx context.Context, districts []courtmodels.CourtDistrict) (int, error) {
	seeded := 0
	for _, d := range districts {
		if _, err := s.Upsert(ctx, bson.M{"code": d.Code}, d); err != nil {
			return seeded, err
		}
		seeded++
	}
	return seeded, nil
}

// Package courtsvc - Service metadata phân loại của lệnh (court_order_metadata).
package courtsvc

import (
	"context"
	"fmt"

	basesvc "case_harvest/internal/api/base/service"
	courtmodels "case_harvest/internal/api/court/models"
	"case_harvest/internal/common"
	"case_harvest/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CourtOrderMetadataService quản lý metadata 1-1 với lệnh đã phân loại.
type CourtOrderMetadataService struct {
	*basesvc.BaseServiceMongoImpl[courtmodels.CourtOrderMetadata]
}

// NewCourtOrderMetadataService tạo CourtOrderMetadataService mới.
func NewCourtOrderMetadataService() (*CourtOrderMetadataService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.CourtOrderMetadata)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.CourtOrderMetadata, common.ErrNotFound)
	}
	return &CourtOrderMetadataService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[courtmodels.CourtOrderMetadata](coll),
	}, nil
}

// ReplaceForOrder thay wholesale metadata theo orderId — re-classify ghi đè NGUYÊN document,
// field đã về zero trong kết quả mới (vd adjournedBy bị bỏ, pendingActions rỗng) không được
// giữ lại từ bản cũ.
func (s *CourtOrderMetadataService) ReplaceForOrder(ctx context.Context, metadata courtmodels.CourtOrderMetadata) (*courtmodels.CourtOrderMetadata, error) {
	saved, err := s.ReplaceWholesale(ctx, bson.M{"orderId": metadata.OrderID}, metadata)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// FindByCase trả về toàn bộ metadata của một case.
func (s *CourtOrderMetadataService) FindByCase(ctx context.Context, caseID primitive.ObjectID) ([]courtmodels.CourtOrderMetadata, error) {
	return s.Find(ctx, bson.M{"caseId": caseID}, nil)
}

// FindByOrder trả về metadata của một lệnh (nếu đã phân loại).
func (s *CourtOrderMetadataService) FindByOrder(ctx context.Context, orderID primitive.ObjectID) (*courtmodels.CourtOrderMetadata, error) {
	metadata, err := s.FindOne(ctx, bson.M{"orderId": orderID}, nil)
	if err != nil {
		return nil, err
	}
	return &metadata, nil
}

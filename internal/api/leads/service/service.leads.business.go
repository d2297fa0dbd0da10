// Package leadsvc - Service doanh nghiệp lead (leads_businesses).
package leadsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	basesvc "case_harvest/internal/api/base/service"
	leadmodels "case_harvest/internal/api/leads/models"
	"case_harvest/internal/common"
	"case_harvest/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BusinessEntityService xử lý logic doanh nghiệp lead.
type BusinessEntityService struct {
	*basesvc.BaseServiceMongoImpl[leadmodels.BusinessEntity]
}

// NewBusinessEntityService tạo BusinessEntityService mới.
func NewBusinessEntityService() (*BusinessEntityService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.LeadBusinesses)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.LeadBusinesses, common.ErrNotFound)
	}
	return &BusinessEntityService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[leadmodels.BusinessEntity](coll),
	}, nil
}

// UpsertFromClassification upsert doanh nghiệp phát hiện bởi stage Classification.
// Khóa dedup: registrationId khi có, fallback (normalizedName, caseId).
// Idempotent: bản ghi đã tồn tại giữ nguyên trạng thái enrichment hiện tại.
func (s *BusinessEntityService) UpsertFromClassification(ctx context.Context, name, registrationID string, caseID primitive.ObjectID, cnr string) (*leadmodels.BusinessEntity, error) {
	normalized := NormalizeLeadName(name)
	if normalized == "" {
		return nil, common.ErrInvalidInput
	}

	var filter bson.M
	if registrationID != "" {
		filter = bson.M{"registrationId": registrationID}
	} else {
		filter = bson.M{"normalizedName": normalized, "caseId": caseID}
	}

	existing, err := s.FindOne(ctx, filter, nil)
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	created, err := s.InsertOne(ctx, leadmodels.BusinessEntity{
		Name:             name,
		NormalizedName:   normalized,
		RegistrationID:   registrationID,
		CaseID:           caseID,
		CNR:              cnr,
		EnrichmentStatus: leadmodels.LeadStatusPending,
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// FindPending trả về các doanh nghiệp chờ enrichment (input của stage Enrichment).
func (s *BusinessEntityService) FindPending(ctx context.Context) ([]leadmodels.BusinessEntity, error) {
	return s.Find(ctx, bson.M{"enrichmentStatus": leadmodels.LeadStatusPending}, nil)
}

// MarkEnriched ghi kết quả enrichment và chuyển pending → enriched.
// Thất bại enrichment để nguyên pending (retry được), không gọi hàm này.
func (s *BusinessEntityService) MarkEnriched(ctx context.Context, id primitive.ObjectID, email, phone, address, website string) error {
	_, err := s.UpdateOne(ctx, bson.M{"_id": id, "enrichmentStatus": leadmodels.LeadStatusPending}, &basesvc.UpdateData{
		Set: map[string]interface{}{
			"enrichmentStatus": leadmodels.LeadStatusEnriched,
			"contactEmail":     email,
			"contactPhone":     phone,
			"contactAddress":   address,
			"website":          website,
			"enrichedAt":       time.Now().UnixMilli(),
		},
	}, nil)
	return err
}

// Transition chuyển trạng thái tường minh theo nấc thang lead.
func (s *BusinessEntityService) Transition(ctx context.Context, id primitive.ObjectID, to string) (*leadmodels.BusinessEntity, error) {
	entity, err := s.FindOneById(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ValidateLeadTransition(entity.EnrichmentStatus, to); err != nil {
		return nil, err
	}
	updated, err := s.UpdateOne(ctx, bson.M{"_id": id, "enrichmentStatus": entity.EnrichmentStatus}, &basesvc.UpdateData{
		Set: map[string]interface{}{"enrichmentStatus": to},
	}, nil)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

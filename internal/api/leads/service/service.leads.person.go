// Package leadsvc - Service cá nhân lead (leads_persons).
package leadsvc

import (
	"context"
	"errors"
	"fmt"

	basesvc "case_harvest/internal/api/base/service"
	leadmodels "case_harvest/internal/api/leads/models"
	"case_harvest/internal/common"
	"case_harvest/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PersonLeadService xử lý logic cá nhân lead.
type PersonLeadService struct {
	*basesvc.BaseServiceMongoImpl[leadmodels.PersonLead]
}

// NewPersonLeadService tạo PersonLeadService mới.
func NewPersonLeadService() (*PersonLeadService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.LeadPersons)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.LeadPersons, common.ErrNotFound)
	}
	return &PersonLeadService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[leadmodels.PersonLead](coll),
	}, nil
}

// UpsertFromClassification upsert cá nhân phát hiện bởi stage Classification.
// Khóa dedup: (normalizedName, caseId). Idempotent với bản ghi đã tồn tại.
func (s *PersonLeadService) UpsertFromClassification(ctx context.Context, name, role string, caseID primitive.ObjectID, cnr string) (*leadmodels.PersonLead, error) {
	normalized := NormalizeLeadName(name)
	if normalized == "" {
		return nil, common.ErrInvalidInput
	}

	existing, err := s.FindOne(ctx, bson.M{"normalizedName": normalized, "caseId": caseID}, nil)
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	created, err := s.InsertOne(ctx, leadmodels.PersonLead{
		Name:             name,
		NormalizedName:   normalized,
		CaseID:           caseID,
		CNR:              cnr,
		Role:             role,
		EnrichmentStatus: leadmodels.LeadStatusPending,
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Transition chuyển trạng thái tường minh theo nấc thang lead.
func (s *PersonLeadService) Transition(ctx context.Context, id primitive.ObjectID, to string) (*leadmodels.PersonLead, error) {
	lead, err := s.FindOneById(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ValidateLeadTransition(lead.EnrichmentStatus, to); err != nil {
		return nil, err
	}
	updated, err := s.UpdateOne(ctx, bson.M{"_id": id, "enrichmentStatus": lead.EnrichmentStatus}, &basesvc.UpdateData{
		Set: map[string]interface{}{"enrichmentStatus": to},
	}, nil)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Package jobsvc - Stage Lead Enrichment: tra cứu thông tin liên hệ cho lead doanh nghiệp.
package jobsvc

import (
	"context"

	jobmodels "case_harvest/internal/api/jobs/models"
	leadmodels "case_harvest/internal/api/leads/models"
	leadsvc "case_harvest/internal/api/leads/service"
	"case_harvest/internal/common"
	"case_harvest/internal/enrichment"
	"case_harvest/internal/global"
)

// EnrichStage làm giàu các lead doanh nghiệp đang pending.
type EnrichStage struct {
	businessService  *leadsvc.BusinessEntityService
	enrichmentClient *enrichment.Client
}

// NewEnrichStage tạo EnrichStage mới.
func NewEnrichStage() (*EnrichStage, error) {
	businessService, err := leadsvc.NewBusinessEntityService()
	if err != nil {
		return nil, err
	}
	return &EnrichStage{
		businessService:  businessService,
		enrichmentClient: enrichment.NewClient(global.ServerConfig),
	}, nil
}

// Kind trả về loại job của stage.
func (st *EnrichStage) Kind() string { return jobmodels.JobKindEnrich }

// CollectItems gom các lead doanh nghiệp chưa làm giàu.
func (st *EnrichStage) CollectItems(ctx context.Context) ([]StageItem, error) {
	leads, err := st.businessService.FindPending(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]StageItem, 0, len(leads))
	for _, l := range leads {
		items = append(items, l)
	}
	return items, nil
}

// ProcessItem tra cứu một lead; thất bại thì để nguyên pending cho lượt chạy sau.
func (st *EnrichStage) ProcessItem(ctx context.Context, item StageItem) error {
	lead, ok := item.(leadmodels.BusinessEntity)
	if !ok {
		return common.ErrInvalidInput
	}

	result, err := st.enrichmentClient.Lookup(ctx, lead.Name, lead.RegistrationID)
	if err != nil {
		return err
	}

	return st.businessService.MarkEnriched(ctx, lead.ID,
		result.ContactEmail, result.ContactPhone, result.ContactAddress, result.Website)
}

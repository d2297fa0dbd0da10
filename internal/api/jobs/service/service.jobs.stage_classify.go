// Package jobsvc - Stage Classification: gọi classifier trên văn bản lệnh,
// ghi metadata, sinh lead và đặt lịch theo dõi phiên kế tiếp.
package jobsvc

import (
	"context"
	"time"

	courtmodels "case_harvest/internal/api/court/models"
	courtsvc "case_harvest/internal/api/court/service"
	jobmodels "case_harvest/internal/api/jobs/models"
	leadsvc "case_harvest/internal/api/leads/service"
	monitorsvc "case_harvest/internal/api/monitor/service"
	"case_harvest/internal/classifier"
	"case_harvest/internal/common"
	"case_harvest/internal/global"
	"case_harvest/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
)

// ClassifyStage phân loại các order đã có văn bản trích xuất.
type ClassifyStage struct {
	orderService     *courtsvc.CourtOrderService
	metadataService  *courtsvc.CourtOrderMetadataService
	businessService  *leadsvc.BusinessEntityService
	personService    *leadsvc.PersonLeadService
	scheduleService  *monitorsvc.MonitorScheduleService
	classifierClient *classifier.Client
}

// NewClassifyStage tạo ClassifyStage mới.
func NewClassifyStage() (*ClassifyStage, error) {
	orderService, err := courtsvc.NewCourtOrderService()
	if err != nil {
		return nil, err
	}
	metadataService, err := courtsvc.NewCourtOrderMetadataService()
	if err != nil {
		return nil, err
	}
	businessService, err := leadsvc.NewBusinessEntityService()
	if err != nil {
		return nil, err
	}
	personService, err := leadsvc.NewPersonLeadService()
	if err != nil {
		return nil, err
	}
	scheduleService, err := monitorsvc.NewMonitorScheduleService()
	if err != nil {
		return nil, err
	}
	return &ClassifyStage{
		orderService:     orderService,
		metadataService:  metadataService,
		businessService:  businessService,
		personService:    personService,
		scheduleService:  scheduleService,
		classifierClient: classifier.NewClient(global.ServerConfig),
	}, nil
}

// Kind trả về loại job của stage.
func (st *ClassifyStage) Kind() string { return jobmodels.JobKindClassify }

// CollectItems gom các order đã trích xuất văn bản nhưng chưa phân loại.
func (st *ClassifyStage) CollectItems(ctx context.Context) ([]StageItem, error) {
	orders, err := st.orderService.Find(ctx, bson.M{
		"textExtracted": true,
		"classified":    false,
	}, nil)
	if err != nil {
		return nil, err
	}
	items := make([]StageItem, 0, len(orders))
	for _, o := range orders {
		items = append(items, o)
	}
	return items, nil
}

// ProcessItem phân loại một order: gọi classifier, thay thế metadata của order
// (ghi lại toàn bộ, không merge), upsert lead doanh nghiệp / cá nhân, và nếu
// bản lệnh báo phiên điều trần kế tiếp trong tương lai thì đặt lịch theo dõi.
func (st *ClassifyStage) ProcessItem(ctx context.Context, item StageItem) error {
	order, ok := item.(courtmodels.CourtOrder)
	if !ok {
		return common.ErrInvalidInput
	}

	log := logger.GetPipelineLogger()

	result, err := st.classifierClient.Classify(ctx, order.ExtractedText, "")
	if err != nil {
		st.orderService.MarkItemFailure(ctx, order.ID, "phân loại thất bại: "+err.Error())
		return err
	}

	metadata := courtmodels.CourtOrderMetadata{
		OrderID:                 order.ID,
		CaseID:                  order.CaseID,
		CNR:                     order.CNR,
		CaseTitle:               result.CaseTitle,
		CaseType:                result.CaseType,
		CaseCategory:            result.CaseCategory,
		PartyNames:              result.PartyNames,
		AdvocateNames:           result.AdvocateNames,
		HearingDate:             result.HearingDate,
		NextHearingDate:         result.NextHearingDate,
		FreshCaseAssignment:     result.FreshCaseAssignment,
		BusinessEntityPresent:   result.BusinessEntityPresent,
		NotablePersonPresent:    result.NotablePersonPresent,
		Adjourned:               result.Adjourned,
		AdjournedBy:             result.AdjournedBy,
		BusinessNames:           result.BusinessNames,
		BusinessRegistrationIds: result.BusinessRegistrationIds,
		PersonNames:             result.PersonNames,
		PendingActions:          result.PendingActions,
		EventSummary:            result.EventSummary,
		Significance:            result.Significance,
	}
	if _, err := st.metadataService.ReplaceForOrder(ctx, metadata); err != nil {
		st.orderService.MarkItemFailure(ctx, order.ID, "lưu metadata thất bại: "+err.Error())
		return err
	}

	// Lead doanh nghiệp: businessRegistrationIds song song với businessNames,
	// thiếu phần tử thì coi như không có mã đăng ký.
	for i, name := range result.BusinessNames {
		registrationID := ""
		if i < len(result.BusinessRegistrationIds) {
			registrationID = result.BusinessRegistrationIds[i]
		}
		if _, err := st.businessService.UpsertFromClassification(ctx, name, registrationID, order.CaseID, order.CNR); err != nil {
			log.WithError(err).WithFields(map[string]interface{}{
				"orderId":  order.ID.Hex(),
				"business": name,
			}).Warn("🏷️ [CLASSIFY] Không upsert được lead doanh nghiệp")
		}
	}
	for _, name := range result.PersonNames {
		if _, err := st.personService.UpsertFromClassification(ctx, name, "", order.CaseID, order.CNR); err != nil {
			log.WithError(err).WithFields(map[string]interface{}{
				"orderId": order.ID.Hex(),
				"person":  name,
			}).Warn("🏷️ [CLASSIFY] Không upsert được lead cá nhân")
		}
	}

	// Lịch theo dõi chỉ đặt cho phiên điều trần trong tương lai.
	if result.NextHearingDate > time.Now().UnixMilli() {
		if _, _, err := st.scheduleService.CreateForHearing(ctx, order.CaseID, order.CNR, result.NextHearingDate); err != nil {
			log.WithError(err).WithFields(map[string]interface{}{
				"orderId": order.ID.Hex(),
				"cnr":     order.CNR,
			}).Warn("🏷️ [CLASSIFY] Không đặt được lịch theo dõi phiên kế tiếp")
		}
	}

	return st.orderService.MarkClassified(ctx, order.ID)
}

// Package courtsvc - Bộ biên dịch bản tổng hợp hồ sơ (court_case_summaries).
// Luôn recompute toàn bộ từ orders + metadata của case — ưu tiên đúng hơn là nhanh.
package courtsvc

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	basesvc "case_harvest/internal/api/base/service"
	courtmodels "case_harvest/internal/api/court/models"
	"case_harvest/internal/common"
	"case_harvest/internal/global"
	"case_harvest/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CourtCaseSummaryService biên dịch và phục vụ bản tổng hợp hồ sơ.
type CourtCaseSummaryService struct {
	*basesvc.BaseServiceMongoImpl[courtmodels.CourtCaseSummary]
	caseService     *CourtCaseService
	orderService    *CourtOrderService
	metadataService *CourtOrderMetadataService
}

// NewCourtCaseSummaryService tạo CourtCaseSummaryService mới.
func NewCourtCaseSummaryService() (*CourtCaseSummaryService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.CourtCaseSummaries)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.CourtCaseSummaries, common.ErrNotFound)
	}
	caseService, err := NewCourtCaseService()
	if err != nil {
		return nil, err
	}
	orderService, err := NewCourtOrderService()
	if err != nil {
		return nil, err
	}
	metadataService, err := NewCourtOrderMetadataService()
	if err != nil {
		return nil, err
	}
	return &CourtCaseSummaryService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[courtmodels.CourtCaseSummary](coll),
		caseService:          caseService,
		orderService:         orderService,
		metadataService:      metadataService,
	}, nil
}

// Compile recompute toàn bộ bản tổng hợp của một case từ các lệnh đã phân loại,
// rồi thay wholesale document theo caseId. Không có biên dịch tăng dần.
func (s *CourtCaseSummaryService) Compile(ctx context.Context, caseID primitive.ObjectID) (*courtmodels.CourtCaseSummary, error) {
	courtCase, err := s.caseService.FindOneById(ctx, caseID)
	if err != nil {
		return nil, err
	}

	// Toàn bộ lệnh đã phân loại của case, sắp theo ngày rồi số lệnh
	findOpts := options.Find().SetSort(bson.D{{Key: "orderDate", Value: 1}, {Key: "orderNumber", Value: 1}})
	orders, err := s.orderService.Find(ctx, bson.M{"caseId": caseID, "classified": true}, findOpts)
	if err != nil {
		return nil, err
	}
	metadataList, err := s.metadataService.FindByCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	metadataByOrder := make(map[primitive.ObjectID]courtmodels.CourtOrderMetadata, len(metadataList))
	for _, m := range metadataList {
		metadataByOrder[m.OrderID] = m
	}

	summary := courtmodels.CourtCaseSummary{
		CaseID:         caseID,
		CNR:            courtCase.CNR,
		Timeline:       make([]courtmodels.SummaryTimelineEntry, 0, len(orders)),
		PendingActions: []string{},
		OrdersIncluded: len(orders),
		LastCompiledAt: time.Now().UnixMilli(),
	}

	pendingSeen := make(map[string]bool)
	for _, order := range orders {
		metadata, ok := metadataByOrder[order.ID]
		if !ok {
			continue
		}

		event := metadata.EventSummary
		if event == "" {
			event = fmt.Sprintf("Lệnh số %d ngày %s", order.OrderNumber, order.OrderDate)
		}
		summary.Timeline = append(summary.Timeline, courtmodels.SummaryTimelineEntry{
			OrderDate:    order.OrderDate,
			OrderNumber:  order.OrderNumber,
			Event:        event,
			ActingParty:  metadata.AdjournedBy,
			Significance: metadata.Significance,
		})

		if metadata.Adjourned {
			switch metadata.AdjournedBy {
			case courtmodels.AdjournedByPetitioner:
				summary.Adjournments.Petitioner++
			case courtmodels.AdjournedByRespondent:
				summary.Adjournments.Respondent++
			default:
				summary.Adjournments.Court++
			}
		}

		for _, action := range metadata.PendingActions {
			if action != "" && !pendingSeen[action] {
				pendingSeen[action] = true
				summary.PendingActions = append(summary.PendingActions, action)
			}
		}
	}
	sort.Strings(summary.PendingActions)

	summary.Overview = buildOverview(&courtCase, &summary, metadataList)

	// Thay NGUYÊN document: recompile xóa cả các field đã về zero (vd pendingActions
	// rỗng sau khi mọi hành động treo được giải quyết), không merge với bản cũ
	saved, err := s.ReplaceWholesale(ctx, bson.M{"caseId": caseID}, summary)
	if err != nil {
		return nil, err
	}

	logger.GetPipelineLogger().WithFields(map[string]interface{}{
		"caseId":         caseID.Hex(),
		"cnr":            courtCase.CNR,
		"ordersIncluded": summary.OrdersIncluded,
	}).Info("📋 [SUMMARY] Đã biên dịch lại bản tổng hợp hồ sơ")

	return &saved, nil
}

// GetByCase trả về bản tổng hợp hiện có của case; ErrNotFound nếu chưa từng biên dịch.
func (s *CourtCaseSummaryService) GetByCase(ctx context.Context, caseID primitive.ObjectID) (*courtmodels.CourtCaseSummary, error) {
	summary, err := s.FindOne(ctx, bson.M{"caseId": caseID}, nil)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// buildOverview dựng narrative từ dữ liệu đã tổng hợp.
func buildOverview(courtCase *courtmodels.CourtCase, summary *courtmodels.CourtCaseSummary, metadataList []courtmodels.CourtOrderMetadata) string {
	var b strings.Builder

	title := ""
	caseType := ""
	for _, m := range metadataList {
		if title == "" && m.CaseTitle != "" {
			title = m.CaseTitle
		}
		if caseType == "" && m.CaseType != "" {
			caseType = m.CaseType
		}
	}

	if title != "" {
		fmt.Fprintf(&b, "%s (%s)", title, courtCase.CNR)
	} else {
		fmt.Fprintf(&b, "Hồ sơ %s", courtCase.CNR)
	}
	if caseType != "" {
		fmt.Fprintf(&b, ", loại %s", caseType)
	}
	fmt.Fprintf(&b, ". Đã xử lý %d lệnh.", summary.OrdersIncluded)

	totalAdjournments := summary.Adjournments.Petitioner + summary.Adjournments.Respondent + summary.Adjournments.Court
	if totalAdjournments > 0 {
		fmt.Fprintf(&b, " Hoãn phiên %d lần (nguyên đơn %d, bị đơn %d, tòa %d).",
			totalAdjournments, summary.Adjournments.Petitioner, summary.Adjournments.Respondent, summary.Adjournments.Court)
	}
	if len(summary.PendingActions) > 0 {
		fmt.Fprintf(&b, " Còn %d hành động treo: %s.", len(summary.PendingActions), strings.Join(summary.PendingActions, "; "))
	}
	if len(summary.Timeline) > 0 {
		last := summary.Timeline[len(summary.Timeline)-1]
		fmt.Fprintf(&b, " Sự kiện gần nhất ngày %s: %s", last.OrderDate, last.Event)
	}

	return b.String()
}

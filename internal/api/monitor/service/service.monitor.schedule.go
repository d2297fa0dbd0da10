// Package monitorsvc - Service lịch theo dõi hồ sơ (monitor_schedules).
// Sweep runCheck idempotent: chạy lại trong cùng ngày không đổi trạng thái là no-op.
package monitorsvc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	basesvc "case_harvest/internal/api/base/service"
	courtsvc "case_harvest/internal/api/court/service"
	monitormodels "case_harvest/internal/api/monitor/models"
	"case_harvest/internal/common"
	"case_harvest/internal/global"
	"case_harvest/internal/logger"
	"case_harvest/internal/notify"
	"case_harvest/internal/proxy"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// pdfMagic 4 byte đầu của một file PDF thật.
var pdfMagic = []byte("%PDF")

// RunCheckResult kết quả một lượt sweep.
type RunCheckResult struct {
	Activated int `json:"activated"` // scheduled → active
	Checked   int `json:"checked"`   // Số lịch active đã probe registry
	Found     int `json:"found"`     // Số lịch phát hiện lệnh mới (terminal — order_found)
	Expired   int `json:"expired"`   // Số lịch hết cửa sổ (terminal — expired)
}

// MonitorScheduleService quản lý vòng đời lịch theo dõi.
type MonitorScheduleService struct {
	*basesvc.BaseServiceMongoImpl[monitormodels.MonitorSchedule]
	caseService     *courtsvc.CourtCaseService
	orderService    *courtsvc.CourtOrderService
	districtService *courtsvc.CourtDistrictService
	proxyClient     *proxy.Client
	mailer          *notify.Mailer
	windowDays      int
}

// NewMonitorScheduleService tạo MonitorScheduleService mới.
func NewMonitorScheduleService() (*MonitorScheduleService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.MonitorSchedules)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.MonitorSchedules, common.ErrNotFound)
	}
	caseService, err := courtsvc.NewCourtCaseService()
	if err != nil {
		return nil, err
	}
	orderService, err := courtsvc.NewCourtOrderService()
	if err != nil {
		return nil, err
	}
	districtService, err := courtsvc.NewCourtDistrictService()
	if err != nil {
		return nil, err
	}
	windowDays := 30
	if global.ServerConfig != nil && global.ServerConfig.MonitorWindow > 0 {
		windowDays = global.ServerConfig.MonitorWindow
	}
	return &MonitorScheduleService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[monitormodels.MonitorSchedule](coll),
		caseService:          caseService,
		orderService:         orderService,
		districtService:      districtService,
		proxyClient:          proxy.NewClient(global.ServerConfig),
		mailer:               notify.NewMailer(global.ServerConfig),
		windowDays:           windowDays,
	}, nil
}

// CreateForHearing tạo lịch theo dõi khi biết ngày triệu tập kế tiếp trong tương lai.
// Idempotent theo (caseId, triggerDate): lịch đã tồn tại — kể cả đã terminal — giữ nguyên,
// không bao giờ kích hoạt lại.
func (s *MonitorScheduleService) CreateForHearing(ctx context.Context, caseID primitive.ObjectID, cnr string, triggerDate int64) (*monitormodels.MonitorSchedule, bool, error) {
	existing, err := s.FindOne(ctx, bson.M{"caseId": caseID, "triggerDate": triggerDate}, nil)
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, false, err
	}

	windowEnd := time.UnixMilli(triggerDate).AddDate(0, 0, s.windowDays).UnixMilli()
	created, err := s.InsertOne(ctx, monitormodels.MonitorSchedule{
		CaseID:      caseID,
		CNR:         cnr,
		TriggerDate: triggerDate,
		WindowStart: triggerDate,
		WindowEnd:   windowEnd,
		Status:      monitormodels.ScheduleStatusScheduled,
		IsActive:    true,
	})
	if err != nil {
		return nil, false, err
	}

	logger.GetPipelineLogger().WithFields(map[string]interface{}{
		"caseId":      caseID.Hex(),
		"cnr":         cnr,
		"triggerDate": time.UnixMilli(triggerDate).Format("2006-01-02"),
		"windowDays":  s.windowDays,
	}).Info("⏰ [MONITOR] Đã tạo lịch theo dõi hồ sơ")

	return &created, true, nil
}

// RunCheck quét toàn bộ lịch theo thời điểm now:
//  1. scheduled có triggerDate đã tới → active
//  2. active đã quá windowEnd → expired (terminal)
//  3. active còn trong cửa sổ → probe registry; thấy lệnh mới → tạo OrderRequest
//     (tái nhập pipeline ở fetch), order_found (terminal)
func (s *MonitorScheduleService) RunCheck(ctx context.Context, now time.Time) (*RunCheckResult, error) {
	log := logger.GetPipelineLogger()
	nowMs := now.UnixMilli()
	result := &RunCheckResult{}

	// 1. Kích hoạt lịch đã tới ngày triệu tập
	activated, err := s.UpdateMany(ctx,
		bson.M{"status": monitormodels.ScheduleStatusScheduled, "triggerDate": bson.M{"$lte": nowMs}},
		&basesvc.UpdateData{Set: map[string]interface{}{"status": monitormodels.ScheduleStatusActive}},
		nil,
	)
	if err != nil {
		return nil, err
	}
	result.Activated = int(activated)

	// 2. Hết cửa sổ → expired, gửi alert
	expiring, err := s.Find(ctx, bson.M{
		"status":    monitormodels.ScheduleStatusActive,
		"windowEnd": bson.M{"$lt": nowMs},
	}, nil)
	if err != nil {
		return nil, err
	}
	for _, schedule := range expiring {
		if _, err := s.UpdateOne(ctx, bson.M{"_id": schedule.ID, "status": monitormodels.ScheduleStatusActive}, &basesvc.UpdateData{
			Set: map[string]interface{}{
				"status":   monitormodels.ScheduleStatusExpired,
				"isActive": false,
			},
		}, nil); err != nil {
			log.WithError(err).WithFields(map[string]interface{}{
				"scheduleId": schedule.ID.Hex(),
			}).Warn("⏰ [MONITOR] Không chuyển được lịch sang expired")
			continue
		}
		result.Expired++
		subject, body := notify.ScheduleExpiredAlert(schedule.CNR,
			time.UnixMilli(schedule.TriggerDate).Format("2006-01-02"), schedule.TotalChecks)
		_ = s.mailer.SendAlert(subject, body)
	}

	// 3. Probe các lịch active còn trong cửa sổ
	active, err := s.Find(ctx, bson.M{
		"status":      monitormodels.ScheduleStatusActive,
		"windowStart": bson.M{"$lte": nowMs},
		"windowEnd":   bson.M{"$gte": nowMs},
	}, nil)
	if err != nil {
		return nil, err
	}
	for _, schedule := range active {
		result.Checked++
		found, err := s.checkSchedule(ctx, &schedule, now)
		if err != nil {
			log.WithError(err).WithFields(map[string]interface{}{
				"scheduleId": schedule.ID.Hex(),
				"cnr":        schedule.CNR,
			}).Warn("⏰ [MONITOR] Probe registry thất bại, giữ lịch active để quét lần sau")
			continue
		}
		if found {
			result.Found++
		}
	}

	if result.Activated > 0 || result.Found > 0 || result.Expired > 0 {
		log.WithFields(map[string]interface{}{
			"activated": result.Activated,
			"checked":   result.Checked,
			"found":     result.Found,
			"expired":   result.Expired,
		}).Info("⏰ [MONITOR] Hoàn tất lượt sweep lịch theo dõi")
	}

	return result, nil
}

// checkSchedule probe registry xem có lệnh mới cho case không.
// Candidate là lệnh kế tiếp (orderCount + 1) tại ngày probe; response PDF thật = lệnh đã công bố.
// Luôn tăng totalChecks; chỉ khi thấy lệnh mới chuyển terminal order_found.
func (s *MonitorScheduleService) checkSchedule(ctx context.Context, schedule *monitormodels.MonitorSchedule, now time.Time) (bool, error) {
	if _, err := s.UpdateOne(ctx, bson.M{"_id": schedule.ID}, &basesvc.UpdateData{
		Set: map[string]interface{}{"lastCheckedAt": now.UnixMilli()},
		Inc: map[string]interface{}{"totalChecks": 1},
	}, nil); err != nil {
		return false, err
	}

	courtCase, err := s.caseService.FindOneById(ctx, schedule.CaseID)
	if err != nil {
		return false, err
	}
	district, err := s.districtService.FindByCode(ctx, courtCase.DistrictCode)
	if err != nil {
		return false, err
	}

	probeDate := now.Format("2006-01-02")
	candidateNumber := courtCase.OrderCount + 1
	probeURL, err := courtsvc.BuildFetchURL(district.BaseURL, courtsvc.OrderPayload{
		CNR:         courtCase.CNR,
		OrderNumber: candidateNumber,
		OrderDate:   probeDate,
	})
	if err != nil {
		return false, err
	}

	body, err := s.proxyClient.Fetch(ctx, probeURL)
	if err != nil {
		return false, err
	}
	if !bytes.HasPrefix(body, pdfMagic) {
		// Registry trả trang "không có lệnh" — không phải lỗi, chỉ là chưa có gì mới
		return false, nil
	}

	order, created, err := s.orderService.CreateForMonitoring(ctx, &courtCase, candidateNumber, probeDate)
	if err != nil {
		return false, err
	}

	// orderFound là terminal: isActive không bao giờ bật lại cho lịch này
	if _, err := s.UpdateOne(ctx, bson.M{"_id": schedule.ID, "status": monitormodels.ScheduleStatusActive}, &basesvc.UpdateData{
		Set: map[string]interface{}{
			"status":     monitormodels.ScheduleStatusOrderFound,
			"isActive":   false,
			"orderFound": true,
		},
	}, nil); err != nil {
		return false, err
	}

	logger.GetPipelineLogger().WithFields(map[string]interface{}{
		"scheduleId":  schedule.ID.Hex(),
		"cnr":         courtCase.CNR,
		"orderId":     order.ID.Hex(),
		"orderNumber": candidateNumber,
		"orderDate":   probeDate,
		"newRequest":  created,
	}).Info("⏰ [MONITOR] Phát hiện lệnh mới, đã tạo yêu cầu tải")

	subject, alertBody := notify.OrderFoundAlert(courtCase.CNR, candidateNumber, probeDate)
	_ = s.mailer.SendAlert(subject, alertBody)

	return true, nil
}

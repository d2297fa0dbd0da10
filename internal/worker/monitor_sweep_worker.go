package worker

import (
	"context"
	"time"

	monitorsvc "case_harvest/internal/api/monitor/service"
	"case_harvest/internal/logger"
)

// MonitorSweepWorker worker quét lịch theo dõi: kích hoạt lịch tới ngày triệu tập,
// probe registry cho lịch active trong cửa sổ, đóng lịch hết hạn.
// Chạy định kỳ (mặc định 1 giờ).
type MonitorSweepWorker struct {
	scheduleService *monitorsvc.MonitorScheduleService
	interval        time.Duration // Khoảng thời gian giữa các lần quét
}

// NewMonitorSweepWorker tạo mới MonitorSweepWorker.
// Tham số:
//   - interval: Khoảng thời gian giữa các lần quét (mặc định: 1 giờ)
func NewMonitorSweepWorker(interval time.Duration) (*MonitorSweepWorker, error) {
	scheduleService, err := monitorsvc.NewMonitorScheduleService()
	if err != nil {
		return nil, err
	}
	if interval < time.Minute {
		interval = time.Hour
	}
	return &MonitorSweepWorker{
		scheduleService: scheduleService,
		interval:        interval,
	}, nil
}

// Start chạy worker trong vòng lặp: mỗi interval gọi một lượt RunCheck trên toàn bộ lịch.
func (w *MonitorSweepWorker) Start(ctx context.Context) {
	log := logger.GetAppLogger()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.WithFields(map[string]interface{}{
		"interval": w.interval.String(),
	}).Info("⏰ [MONITOR_SWEEP] Starting Monitor Sweep Worker...")

	for {
		select {
		case <-ctx.Done():
			log.Info("⏰ [MONITOR_SWEEP] Monitor Sweep Worker stopped")
			return
		case <-ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						log.WithFields(map[string]interface{}{
							"panic": r,
						}).Error("⏰ [MONITOR_SWEEP] Panic khi quét lịch theo dõi, sẽ tiếp tục ở lần chạy tiếp theo")
					}
				}()

				result, err := w.scheduleService.RunCheck(ctx, time.Now())
				if err != nil {
					log.WithError(err).Error("⏰ [MONITOR_SWEEP] Lỗi quét lịch theo dõi")
					return
				}

				if result.Activated > 0 || result.Checked > 0 || result.Expired > 0 {
					log.WithFields(map[string]interface{}{
						"activated": result.Activated,
						"checked":   result.Checked,
						"found":     result.Found,
						"expired":   result.Expired,
					}).Info("⏰ [MONITOR_SWEEP] Đã quét lịch theo dõi")
				}
			}()
		}
	}
}

// Package notify - Gửi email alert vận hành (phát hiện lệnh mới, lịch theo dõi hết hạn).
package notify

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"case_harvest/config"
	"case_harvest/internal/logger"
)

// Mailer gửi alert qua SMTP. Tắt được qua cấu hình (ALERTS_ENABLED).
type Mailer struct {
	enabled    bool
	host       string
	port       int
	user       string
	password   string
	from       string
	recipients []string
}

// NewMailer tạo Mailer từ cấu hình server.
func NewMailer(cfg *config.Configuration) *Mailer {
	return &Mailer{
		enabled:    cfg.AlertsEnabled,
		host:       cfg.SMTPHost,
		port:       cfg.SMTPPort,
		user:       cfg.SMTPUser,
		password:   cfg.SMTPPassword,
		from:       cfg.AlertFrom,
		recipients: cfg.AlertRecipients(),
	}
}

// SendAlert gửi một alert tới toàn bộ danh sách nhận.
// Khi alerts tắt hoặc chưa cấu hình người nhận, chỉ log và bỏ qua.
func (m *Mailer) SendAlert(subject, htmlBody string) error {
	log := logger.GetAppLogger()

	if !m.enabled || len(m.recipients) == 0 {
		log.WithFields(map[string]interface{}{
			"subject": subject,
		}).Debug("📧 [ALERT] Alerts đang tắt, bỏ qua email")
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.recipients...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	dialer := gomail.NewDialer(m.host, m.port, m.user, m.password)
	if err := dialer.DialAndSend(msg); err != nil {
		log.WithError(err).WithFields(map[string]interface{}{
			"subject": subject,
		}).Error("📧 [ALERT] Gửi email alert thất bại")
		return err
	}

	log.WithFields(map[string]interface{}{
		"subject":    subject,
		"recipients": len(m.recipients),
	}).Info("📧 [ALERT] Đã gửi email alert")
	return nil
}

// OrderFoundAlert dựng nội dung alert khi phát hiện lệnh mới qua lịch theo dõi.
func OrderFoundAlert(cnr string, orderNumber int, orderDate string) (subject, body string) {
	subject = fmt.Sprintf("[CaseHarvest] Phát hiện lệnh mới cho hồ sơ %s", cnr)
	body = fmt.Sprintf(
		`<p>Lịch theo dõi vừa phát hiện lệnh mới:</p>
<ul>
<li>Hồ sơ: <b>%s</b></li>
<li>Số lệnh: <b>%d</b></li>
<li>Ngày: <b>%s</b></li>
</ul>
<p>Yêu cầu tải đã được tạo và sẽ vào pipeline ở stage fetch.</p>`,
		cnr, orderNumber, orderDate)
	return subject, body
}

// ScheduleExpiredAlert dựng nội dung alert khi cửa sổ theo dõi hết hạn mà không thấy lệnh mới.
func ScheduleExpiredAlert(cnr string, triggerDate string, totalChecks int) (subject, body string) {
	subject = fmt.Sprintf("[CaseHarvest] Cửa sổ theo dõi hồ sơ %s đã hết hạn", cnr)
	body = fmt.Sprintf(
		`<p>Cửa sổ theo dõi đã đóng mà không phát hiện lệnh mới:</p>
<ul>
<li>Hồ sơ: <b>%s</b></li>
<li>Ngày triệu tập kích hoạt: <b>%s</b></li>
<li>Số lần kiểm tra: <b>%d</b></li>
</ul>`,
		cnr, triggerDate, totalChecks)
	return subject, body
}

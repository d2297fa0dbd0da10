package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration chứa thông tin tĩnh cần thiết để chạy ứng dụng.
// Bao gồm thông tin cơ sở dữ liệu, proxy thu thập, các service phân tích và job engine.
type Configuration struct {
	InitMode bool   `env:"INITMODE" envDefault:"false"`     // Chế độ khởi tạo (seed dữ liệu quận/huyện tòa án)
	Env      string `env:"GO_ENV" envDefault:"development"` // Môi trường chạy
	Version  string `env:"APP_VERSION" envDefault:"dev"`    // Phiên bản build (set khi deploy)
	Address  string `env:"ADDRESS" envDefault:":8080"`      // Địa chỉ server

	// MongoDB
	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI,required"`          // URL kết nối cơ sở dữ liệu
	MongoDB_DBName        string `env:"MONGODB_DBNAME" envDefault:"case_harvest"` // Tên cơ sở dữ liệu

	// CORS / rate limit
	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"`               // Các origins được phép (phân cách bởi dấu phẩy, * = tất cả)
	CORS_AllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"` // Cho phép gửi credentials
	RateLimit_Max         int    `env:"RATE_LIMIT_MAX" envDefault:"100"`           // Số request tối đa trong window (0 = disable rate limit)
	RateLimit_Window      int    `env:"RATE_LIMIT_WINDOW" envDefault:"60"`         // Thời gian window (giây)
	RateLimit_Enabled     bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`      // Bật/tắt rate limiting

	// Proxy thu thập tài liệu (scraping gateway)
	ProxyAPIURL      string `env:"PROXY_API_URL" envDefault:"https://api.zenrows.com/v1/"` // Endpoint của proxy gateway
	ProxyAPIKey      string `env:"PROXY_API_KEY"`                                          // API key của proxy gateway
	ProxyCountry     string `env:"PROXY_COUNTRY" envDefault:"in"`                          // Mã quốc gia proxy exit node
	ProxyPremium     bool   `env:"PROXY_PREMIUM" envDefault:"true"`                        // Dùng premium (residential) proxy
	FetchTimeoutSecs int    `env:"FETCH_TIMEOUT_SECS" envDefault:"60"`                     // Timeout tải tài liệu (giây)
	AllowedDomains   string `env:"ALLOWED_DOMAINS" envDefault:"delhicourts.nic.in"`        // Danh sách domain được phép tải (phân cách bởi dấu phẩy)

	// Các service phân tích tài liệu
	ExtractorAPIURL  string `env:"EXTRACTOR_API_URL"`  // Endpoint service trích xuất text từ PDF
	ClassifierAPIURL string `env:"CLASSIFIER_API_URL"` // Endpoint service phân loại lệnh tòa
	EnrichmentAPIURL string `env:"ENRICHMENT_API_URL"` // Endpoint service enrich thông tin doanh nghiệp

	// Job engine
	JobConcurrency  int `env:"JOB_CONCURRENCY" envDefault:"5"`          // Số worker xử lý item song song cho mỗi job
	MonitorInterval int `env:"MONITOR_INTERVAL_SECS" envDefault:"3600"` // Chu kỳ quét lịch theo dõi (giây)
	MonitorWindow   int `env:"MONITOR_WINDOW_DAYS" envDefault:"30"`     // Cửa sổ theo dõi sau ngày triệu tập (ngày)

	// Document storage
	DocumentStoreDir string `env:"DOCUMENT_STORE_DIR" envDefault:"./data/documents"` // Thư mục lưu tài liệu PDF đã tải

	// Email alert (SMTP)
	SMTPHost      string `env:"SMTP_HOST"`                         // SMTP server host
	SMTPPort      int    `env:"SMTP_PORT" envDefault:"587"`        // SMTP server port
	SMTPUser      string `env:"SMTP_USER"`                         // SMTP username
	SMTPPassword  string `env:"SMTP_PASSWORD"`                     // SMTP password
	AlertFrom     string `env:"ALERT_FROM"`                        // Địa chỉ gửi alert
	AlertTo       string `env:"ALERT_TO"`                          // Danh sách địa chỉ nhận alert (phân cách bởi dấu phẩy)
	AlertsEnabled bool   `env:"ALERTS_ENABLED" envDefault:"false"` // Bật/tắt gửi alert qua email

	// TLS/HTTPS Configuration
	EnableTLS   bool   `env:"ENABLE_TLS" envDefault:"false"` // Bật HTTPS
	TLSCertFile string `env:"TLS_CERT_FILE"`                 // Đường dẫn đến file certificate (.crt hoặc .pem)
	TLSKeyFile  string `env:"TLS_KEY_FILE"`                  // Đường dẫn đến file private key (.key)
}

// AllowedDomainList trả về danh sách domain được phép tải tài liệu (đã trim khoảng trắng).
func (c *Configuration) AllowedDomainList() []string {
	parts := strings.Split(c.AllowedDomains, ",")
	domains := make([]string, 0, len(parts))
	for _, p := range parts {
		if d := strings.TrimSpace(p); d != "" {
			domains = append(domains, d)
		}
	}
	return domains
}

// AlertRecipients trả về danh sách địa chỉ nhận alert.
func (c *Configuration) AlertRecipients() []string {
	parts := strings.Split(c.AlertTo, ",")
	recipients := make([]string, 0, len(parts))
	for _, p := range parts {
		if r := strings.TrimSpace(p); r != "" {
			recipients = append(recipients, r)
		}
	}
	return recipients
}

// getEnvPath trả về đường dẫn đến file env dựa trên môi trường
func getEnvPath() string {
	// Mặc định sử dụng môi trường development
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Tìm thư mục config
	currentDir, err := os.Getwd()
	if err != nil {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không thể lấy được thư mục hiện tại: %v\n", err)
		return ""
	}

	// Tìm thư mục config/env
	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			// Tìm thấy thư mục config/env
			envPath := filepath.Join(envDir, fmt.Sprintf("%s.env", env))
			return envPath
		}

		// Đi lên thư mục cha
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig sẽ đọc dữ liệu cấu hình từ file env được cung cấp
func NewConfig(files ...string) *Configuration {
	envPath := getEnvPath()
	if envPath == "" {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không tìm thấy thư mục config/env\n")
		return nil
	}

	err := godotenv.Load(envPath)
	if err != nil {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không thể load file env tại %s: %v\n", envPath, err)
		return nil
	}

	cfg := Configuration{}
	err = env.Parse(&cfg)
	if err != nil {
		fmt.Printf("Lỗi khi parse config: %+v\n", err)
		return nil
	}

	return &cfg
}

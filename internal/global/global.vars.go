package global

import (
	"case_harvest/config"
	"case_harvest/internal/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB_CollectionName chứa tên các collection trong MongoDB
type MongoDB_CollectionName struct {
	CourtDistricts     string // Tên collection cho tòa án quận (dữ liệu tham chiếu)
	CourtCases         string // Tên collection cho định danh hồ sơ vụ án (CNR)
	CourtOrders        string // Tên collection cho yêu cầu tải lệnh/quyết định
	CourtOrderMetadata string // Tên collection cho metadata phân loại của lệnh
	CourtCaseSummaries string // Tên collection cho bản tổng hợp hồ sơ vụ án
	ProcessingJobs     string // Tên collection cho các job xử lý theo stage
	MonitorSchedules   string // Tên collection cho lịch theo dõi hồ sơ
	LeadBusinesses     string // Tên collection cho doanh nghiệp phát hiện từ hồ sơ
	LeadPersons        string // Tên collection cho cá nhân phát hiện từ hồ sơ
}

// Các biến toàn cục
var Validate *validator.Validate                                           // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client                                          // Phiên kết nối tới MongoDB
var ServerConfig *config.Configuration                                     // Cấu hình của server
var MongoDB_ColNames MongoDB_CollectionName = *new(MongoDB_CollectionName) // Tên các collection

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
var RegistryDatabase = registry.NewRegistry[*mongo.Database]()      // Registry chứa các databases

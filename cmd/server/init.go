package main

import (
	"context"

	"case_harvest/config"
	courtmodels "case_harvest/internal/api/court/models"
	jobmodels "case_harvest/internal/api/jobs/models"
	leadmodels "case_harvest/internal/api/leads/models"
	monitormodels "case_harvest/internal/api/monitor/models"
	"case_harvest/internal/database"
	"case_harvest/internal/global"

	"github.com/sirupsen/logrus"
)

// Hàm khởi tạo các biến toàn cục
func InitGlobal() {
	initColNames()         // Khởi tạo tên các collection trong database
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
}

// Hàm khởi tạo tên các collection trong database
func initColNames() {
	// Dữ liệu registry tòa án (tiền tố court_)
	global.MongoDB_ColNames.CourtDistricts = "court_districts"
	global.MongoDB_ColNames.CourtCases = "court_cases"
	global.MongoDB_ColNames.CourtOrders = "court_orders"
	global.MongoDB_ColNames.CourtOrderMetadata = "court_order_metadata"
	global.MongoDB_ColNames.CourtCaseSummaries = "court_case_summaries"

	// Pipeline xử lý
	global.MongoDB_ColNames.ProcessingJobs = "jobs_processing"
	global.MongoDB_ColNames.MonitorSchedules = "monitor_schedules"

	// Lead trích từ hồ sơ (tiền tố leads_)
	global.MongoDB_ColNames.LeadBusinesses = "leads_businesses"
	global.MongoDB_ColNames.LeadPersons = "leads_persons"

	logrus.Info("Initialized collection names") // Ghi log thông báo đã khởi tạo tên các collection
}

// Hàm khởi tạo validator (dùng global.InitValidator để đăng ký custom validators: cnr, ...)
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator") // Ghi log thông báo đã khởi tạo validator
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	global.ServerConfig = config.NewConfig()
	if global.ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil") // Ghi log lỗi nếu khởi tạo cấu hình thất bại
	}
	logrus.Info("Initialized server config") // Ghi log thông báo đã khởi tạo cấu hình server
}

// Hàm khởi tạo kết nối database
func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err) // Ghi log lỗi nếu kết nối database thất bại
	}
	logrus.Info("Connected to MongoDB") // Ghi log thông báo đã kết nối database thành công

	// Khởi tạo các db và collections nếu chưa có
	database.EnsureDatabaseAndCollections(global.MongoDB_Session)
	logrus.Info("Ensured database and collections") // Ghi log thông báo đã đảm bảo database và các collection

	// Khơi tạo các index cho các collection
	dbName := global.ServerConfig.MongoDB_DBName
	db := global.MongoDB_Session.Database(dbName)
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.CourtDistricts), courtmodels.CourtDistrict{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.CourtCases), courtmodels.CourtCase{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.CourtOrders), courtmodels.CourtOrder{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.CourtOrderMetadata), courtmodels.CourtOrderMetadata{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.CourtCaseSummaries), courtmodels.CourtCaseSummary{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.ProcessingJobs), jobmodels.ProcessingJob{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.MonitorSchedules), monitormodels.MonitorSchedule{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.LeadBusinesses), leadmodels.BusinessEntity{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.LeadPersons), leadmodels.PersonLead{})
}

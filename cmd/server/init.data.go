package main

import (
	"context"

	courtmodels "case_harvest/internal/api/court/models"
	courtsvc "case_harvest/internal/api/court/service"
	"case_harvest/internal/logger"
)

// defaultDistricts danh sách quận/tòa mặc định của registry Delhi.
// Seed idempotent theo code — chạy lại không ghi đè chỉnh sửa thủ công ngoài các field seed.
var defaultDistricts = []courtmodels.CourtDistrict{
	{
		Code:              "WT",
		Name:              "West Tis Hazari",
		StatePrefix:       "DL",
		EstablishmentCode: "01",
		BaseURL:           "https://delhicourts.nic.in/orders/download",
		SerialWidth:       6,
	},
	{
		Code:              "CT",
		Name:              "Central Tis Hazari",
		StatePrefix:       "DL",
		EstablishmentCode: "01",
		BaseURL:           "https://delhicourts.nic.in/orders/download",
		SerialWidth:       6,
	},
	{
		Code:              "ST",
		Name:              "Saket",
		StatePrefix:       "DL",
		EstablishmentCode: "01",
		BaseURL:           "https://delhicourts.nic.in/orders/download",
		SerialWidth:       6,
	},
}

func InitDefaultData() {
	log := logger.GetAppLogger()
	log.Info("🔄 [INIT] Starting InitDefaultData...")

	districtService, err := courtsvc.NewCourtDistrictService()
	if err != nil {
		log.Fatalf("Failed to initialize district service: %v", err)
	}

	// Seed cấu hình quận/tòa (dữ liệu tham chiếu — pipeline không chạy được nếu thiếu)
	log.Info("🔄 [INIT] Step 1: Seeding court districts...")
	seeded, err := districtService.SeedDefaults(context.TODO(), defaultDistricts)
	if err != nil {
		log.WithError(err).Error("❌ [INIT] Step 1: Failed to seed court districts")
		log.Fatalf("Failed to seed court districts: %v", err)
	}
	log.Infof("✅ [INIT] Step 1: Court districts seeded (%d districts)", seeded)

	log.Info("✅ [INIT] InitDefaultData completed successfully")
}

package main

import (
	"case_harvest/config"
	"case_harvest/internal/global"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

func InitRegistry() {

	logrus.Info("Initialized registry") // Ghi log thông báo đã khởi tạo registry

	// Khởi tạo registry và đăng ký các collections
	err := InitCollections(global.MongoDB_Session, global.ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to initialize collections: %v", err)
	}
	logrus.Info("Initialized collection registry")
}

// InitCollections khởi tạo và đăng ký các collections MongoDB
func InitCollections(client *mongo.Client, cfg *config.Configuration) error {
	db := client.Database(cfg.MongoDB_DBName)
	colNames := []string{
		global.MongoDB_ColNames.CourtDistricts,
		global.MongoDB_ColNames.CourtCases,
		global.MongoDB_ColNames.CourtOrders,
		global.MongoDB_ColNames.CourtOrderMetadata,
		global.MongoDB_ColNames.CourtCaseSummaries,
		global.MongoDB_ColNames.ProcessingJobs,
		global.MongoDB_ColNames.MonitorSchedules,
		global.MongoDB_ColNames.LeadBusinesses,
		global.MongoDB_ColNames.LeadPersons,
	}

	for _, name := range colNames {
		registered, err := global.RegistryCollections.Register(name, db.Collection(name))
		if err != nil {
			logrus.Errorf("Failed to register collection %s: %v", name, err)
			return err
		}

		if registered {
			logrus.Infof("Collection %s registered successfully", name)
		} else {
			logrus.Errorf("Collection %s already registered", name)
		}

	}

	return nil
}

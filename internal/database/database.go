package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kubotasumire/fatigue-detection-web-spp/internal/config"
	logging "github.com/kubotasumire/fatigue-detection-web-spp/internal/logging"
	"github.com/kubotasumire/fatigue-detection-web-spp/internal/models"
)

var DB *gorm.DB

func Init(log *zap.Logger) {
	var err error
	dbConf := config.Conf.Database
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		dbConf.Host, dbConf.User, dbConf.Password, dbConf.DBName, dbConf.Port)

	// Route GORM's logging through zap
	gormLogger := logging.NewGormZapLogger(log)
	gormLogger.LogLevel = logger.Warn

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})

	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	log.Info("Database connection established successfully.")
	runMigrations(log)
}

func runMigrations(log *zap.Logger) {
	// GORM's AutoMigrate will create tables, columns, and foreign keys.
	// It will NOT create custom indexes, so we handle that separately.
	err := DB.AutoMigrate(
		&models.SessionRecord{},
		&models.SampleRecord{},
		&models.ResponseRecord{},
	)
	if err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}
	log.Info("Database migrations completed successfully.")

	samplesIndex := `CREATE INDEX IF NOT EXISTS idx_sample_records_session_time ON sample_records (session_id, timestamp ASC);`
	if err := DB.Exec(samplesIndex).Error; err != nil {
		log.Fatal("Failed to create custom index on sample records", zap.Error(err))
	}
	log.Info("Custom indexes ensured successfully.")
}

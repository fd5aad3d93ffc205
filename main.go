package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/kubotasumire/fatigue-detection-web-spp/internal/config"
	"github.com/kubotasumire/fatigue-detection-web-spp/internal/database"
	logger "github.com/kubotasumire/fatigue-detection-web-spp/internal/logging"
	"github.com/kubotasumire/fatigue-detection-web-spp/internal/models"
	"github.com/kubotasumire/fatigue-detection-web-spp/internal/persistence"
	"github.com/kubotasumire/fatigue-detection-web-spp/internal/router"
	"github.com/kubotasumire/fatigue-detection-web-spp/internal/service"
	"github.com/kubotasumire/fatigue-detection-web-spp/internal/store"
)

func main() {
	// Initialize Logger
	log, err := logger.Init()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	// Initialize Configuration
	if err := config.Init(log); err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	// The relational store is only needed when it is the chosen sink.
	if config.Conf.Persistence.Driver == "postgres" {
		database.Init(log)
	}

	// Load quiz bank at startup
	bank, err := models.LoadQuizBank(config.Conf.Quiz.File)
	if err != nil {
		log.Fatal("Failed to load quiz bank", zap.Error(err))
	}

	sink, err := persistence.New(log)
	if err != nil {
		log.Fatal("Failed to configure persistence sink", zap.Error(err))
	}

	sessions := store.New(log)
	sessions.StartJanitor(context.Background(),
		config.Conf.Session.SweepInterval,
		config.Conf.Session.IdleTimeout,
		config.Conf.Session.Retention,
	)

	svc := service.New(sessions, sink, log)

	// Setup router, passing the logger to it
	r := router.Setup(log, svc, bank)

	// Start the Gin server
	port := ":" + config.Conf.Server.Port
	log.Info("Server listening on http://localhost" + port)
	if err := r.Run(port); err != nil {
		log.Fatal("Failed to run Gin server", zap.Error(err))
	}
}

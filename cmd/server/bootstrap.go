package main

import (
	"github.com/ledgerline/firmdesk/backend/internal/config"
	"github.com/ledgerline/firmdesk/backend/internal/handlers"
	"github.com/ledgerline/firmdesk/backend/internal/models"
	"github.com/ledgerline/firmdesk/backend/internal/services"
	"github.com/ledgerline/firmdesk/backend/internal/utils"
	"github.com/ledgerline/firmdesk/backend/pkg/logger"
)

// appServices holds all initialized services and handlers needed by the application.
type appServices struct {
	reminderService *services.ReminderService
	taskQueue       services.TaskQueue
	worker          *services.Worker
	authHandler     *handlers.AuthHandler
}

// bootstrap initializes all application dependencies: database, services, schedulers.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	// Initialize database
	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto migrate database
	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	// Seed default data
	if err := models.SeedDefaultData(); err != nil {
		logger.Warn().Err(err).Msg("Failed to seed default data")
	}

	// Initialize audit recorder (writes events and feeds the SSE hub)
	services.InitAuditRecorder(models.GetDB())

	// Initialize deadline reminder pipeline
	holidayService := services.NewHolidayService()
	mailerService := services.NewMailerService(cfg.SMTP)
	taskQueue := services.InitTaskQueue(cfg)
	reminderService := services.NewReminderService(
		models.GetDB(), cfg.Reminders, holidayService, mailerService, taskQueue)
	if syncQueue, ok := taskQueue.(*services.SyncQueue); ok {
		syncQueue.SetProcessor(reminderService.Deliver)
	}

	// Start async worker if Redis is enabled
	var worker *services.Worker
	if cfg.Redis.Enabled {
		worker = services.InitWorker(&cfg.Redis)
		if worker != nil {
			worker.SetProcessor(reminderService.Deliver)
			worker.Start()
		}
	}

	reminderService.StartScheduler()

	// Create default admin user
	authHandler := handlers.NewAuthHandler(models.GetDB(), cfg)
	if err := authHandler.CreateAdminIfNotExists(); err != nil {
		logger.Warn().Err(err).Msg("Failed to create admin user")
	}

	return &appServices{
		reminderService: reminderService,
		taskQueue:       taskQueue,
		worker:          worker,
		authHandler:     authHandler,
	}
}

// shutdown gracefully stops all services.
func (s *appServices) shutdown() {
	s.reminderService.StopScheduler()
	logger.Info().Msg("Reminder scheduler stopped")

	if s.worker != nil {
		s.worker.Stop()
	}
	if s.taskQueue != nil {
		s.taskQueue.Close()
	}
}

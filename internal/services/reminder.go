package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/ledgerline/firmdesk/backend/internal/config"
	"github.com/ledgerline/firmdesk/backend/internal/models"
	"github.com/ledgerline/firmdesk/backend/pkg/logger"
)

// ReminderService scans for compulsory forms whose deadline is approaching
// and enqueues a reminder for every client who has not submitted yet.
// Reminders are skipped on non-business days.
type ReminderService struct {
	db            *gorm.DB
	cfg           config.ReminderConfig
	holiday       *HolidayService
	mailer        *MailerService
	queue         TaskQueue
	cronScheduler *cron.Cron
}

func NewReminderService(db *gorm.DB, cfg config.ReminderConfig, holiday *HolidayService, mailer *MailerService, queue TaskQueue) *ReminderService {
	return &ReminderService{
		db:      db,
		cfg:     cfg,
		holiday: holiday,
		mailer:  mailer,
		queue:   queue,
	}
}

func (s *ReminderService) StartScheduler() {
	if !s.cfg.Enabled {
		logger.Info().Msg("[Reminder] Scheduler disabled")
		return
	}

	s.cronScheduler = cron.New()

	spec := s.cfg.CronSpec
	if spec == "" {
		spec = "0 8 * * *"
	}

	_, err := s.cronScheduler.AddFunc(spec, func() {
		if err := s.RunScan(time.Now()); err != nil {
			logger.Errorf("[Reminder] Scan failed: %v", err)
		}
	})
	if err != nil {
		logger.Errorf("[Reminder] Failed to add cron job: %v", err)
		return
	}

	s.cronScheduler.Start()
	logger.Infof("[Reminder] Scheduler started (cron: %s)", spec)
}

func (s *ReminderService) StopScheduler() {
	if s.cronScheduler != nil {
		s.cronScheduler.Stop()
	}
}

// RunScan enqueues one reminder per (form, client) pair where the form is a
// sent compulsory form with a deadline inside the configured window and the
// client has not submitted. Runs on business days only.
func (s *ReminderService) RunScan(now time.Time) error {
	if !s.holiday.IsBusinessDay(now, s.cfg.CountryCode) {
		logger.Debug().Msg("[Reminder] Skipping scan, not a business day")
		return nil
	}

	windowEnd := now.AddDate(0, 0, s.cfg.WindowDays)

	var forms []models.Form
	if err := s.db.
		Where("status = ? AND is_compulsory = ? AND deadline IS NOT NULL", models.FormStatusSent, true).
		Where("deadline >= ? AND deadline <= ?", now, windowEnd).
		Find(&forms).Error; err != nil {
		return fmt.Errorf("load forms due for reminder: %w", err)
	}

	if len(forms) == 0 {
		return nil
	}

	var clients []models.User
	if err := s.db.
		Where("role = ? AND is_active = ?", models.RoleClient, true).
		Find(&clients).Error; err != nil {
		return fmt.Errorf("load clients: %w", err)
	}

	submissionService := NewSubmissionService(s.db)
	enqueued := 0

	for _, form := range forms {
		for _, client := range clients {
			has, err := submissionService.HasSubmission(form.ID, client.ID)
			if err != nil {
				logger.Warn().Err(err).
					Uint("form_id", form.ID).
					Uint("user_id", client.ID).
					Msg("[Reminder] Submission lookup failed, skipping")
				continue
			}
			if has {
				continue
			}

			task := &ReminderTask{
				FormID:    form.ID,
				FormTitle: form.Title,
				UserID:    client.ID,
				Username:  client.Username,
				Email:     client.Email,
				Deadline:  form.Deadline.Format(time.RFC3339),
			}
			if err := s.queue.Enqueue(task); err != nil {
				logger.Warn().Err(err).
					Uint("form_id", form.ID).
					Uint("user_id", client.ID).
					Msg("[Reminder] Enqueue failed")
				continue
			}
			enqueued++
		}
	}

	logger.Infof("[Reminder] Scan complete: %d forms in window, %d reminders enqueued", len(forms), enqueued)
	return nil
}

// Deliver sends one reminder. Used as the queue processor.
func (s *ReminderService) Deliver(ctx context.Context, task *ReminderTask) error {
	deadline, err := time.Parse(time.RFC3339, task.Deadline)
	if err != nil {
		return fmt.Errorf("parse deadline: %w", err)
	}

	subject := fmt.Sprintf("Reminder: %s due %s", task.FormTitle, deadline.Format("02 Jan 2006"))
	body := fmt.Sprintf(
		"Hello %s,\n\nThe form %q is due on %s and we have not received your submission yet.\nPlease log in and complete it before the deadline.\n\nFirmDesk",
		task.Username, task.FormTitle, deadline.Format("02 Jan 2006"),
	)

	if task.Email == "" {
		logger.Warn().Uint("user_id", task.UserID).Msg("[Reminder] Client has no email, skipping delivery")
		return nil
	}

	if err := s.mailer.Send(task.Email, subject, body); err != nil {
		return err
	}

	RecordAudit(nil, "system", "reminders.send",
		fmt.Sprintf("Reminder sent to %s for form %q", task.Username, task.FormTitle),
		"", "", map[string]interface{}{
			"form_id": task.FormID,
			"user_id": task.UserID,
		})

	return nil
}

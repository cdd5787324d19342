package services

import (
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ledgerline/firmdesk/backend/internal/models"
	"github.com/ledgerline/firmdesk/backend/pkg/response"
)

// newStoreDB opens a fresh in-memory database with the tables these
// tests touch.
func newStoreDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Form{},
		&models.Submission{},
		&models.DashboardConfig{},
		&models.AuditEvent{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func createStoreUser(t *testing.T, db *gorm.DB, role string) *models.User {
	t.Helper()
	user := &models.User{Username: "user-" + role, Role: role, IsActive: true}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func TestSetComponentEnabled_UnknownKeyWritesNothing(t *testing.T) {
	db := newStoreDB(t)
	svc := NewDashboardService(db)
	user := createStoreUser(t, db, models.RoleClient)

	// "users" exists in the admin catalog but not the client one.
	_, err := svc.SetComponentEnabled(user.ID, &SetComponentRequest{ComponentKey: "users", Enabled: true})
	if err == nil {
		t.Fatal("expected error for out-of-catalog component key, got nil")
	}
	var appErr *response.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *response.AppError, got %T", err)
	}
	if appErr.HTTPStatus != 422 {
		t.Errorf("HTTPStatus = %d, expected 422", appErr.HTTPStatus)
	}

	// The rejection must not materialize a config document.
	var count int64
	db.Model(&models.DashboardConfig{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 0 {
		t.Errorf("dashboard config rows = %d, expected 0 after rejected toggle", count)
	}
}

func TestReorderTabs_LastCallWins(t *testing.T) {
	db := newStoreDB(t)
	svc := NewDashboardService(db)
	user := createStoreUser(t, db, models.RoleClient)

	// Client default tabs: dashboard, forms, payments, chat.
	first := &ReorderTabsRequest{Tabs: []models.DashboardTab{
		{Key: "chat", Label: "Assistant"},
		{Key: "payments", Label: "Payments"},
		{Key: "forms", Label: "My Forms"},
		{Key: "dashboard", Label: "Dashboard"},
	}}
	if _, err := svc.ReorderTabs(user.ID, first); err != nil {
		t.Fatalf("first ReorderTabs failed: %v", err)
	}

	second := &ReorderTabsRequest{Tabs: []models.DashboardTab{
		{Key: "forms", Label: "My Forms"},
		{Key: "dashboard", Label: "Dashboard"},
		{Key: "chat", Label: "Assistant"},
		{Key: "payments", Label: "Payments"},
	}}
	if _, err := svc.ReorderTabs(user.ID, second); err != nil {
		t.Fatalf("second ReorderTabs failed: %v", err)
	}

	cfg, err := svc.GetConfig(user.ID)
	if err != nil {
		t.Fatalf("GetConfig failed: %v", err)
	}
	if len(cfg.Tabs) != len(second.Tabs) {
		t.Fatalf("tab count = %d, expected %d", len(cfg.Tabs), len(second.Tabs))
	}
	for i, tab := range second.Tabs {
		if cfg.Tabs[i].Key != tab.Key {
			t.Errorf("tabs[%d].Key = %q, expected %q", i, cfg.Tabs[i].Key, tab.Key)
		}
	}
}

func TestClearAll_RemovesAllEvents(t *testing.T) {
	db := newStoreDB(t)
	svc := NewAuditService(db)

	for i := 0; i < 3; i++ {
		event := &models.AuditEvent{
			ActorName: "admin",
			Action:    "forms.create",
			Message:   "admin POST /api/forms ok",
			CreatedAt: time.Now(),
		}
		if err := db.Create(event).Error; err != nil {
			t.Fatalf("failed to seed audit event: %v", err)
		}
	}

	deleted, err := svc.ClearAll()
	if err != nil {
		t.Fatalf("ClearAll failed: %v", err)
	}
	if deleted != 3 {
		t.Errorf("deleted = %d, expected 3", deleted)
	}

	var remaining int64
	db.Model(&models.AuditEvent{}).Count(&remaining)
	if remaining != 0 {
		t.Errorf("remaining events = %d, expected 0 after ClearAll", remaining)
	}
}

func TestRender_DeletedFormYieldsNotFound(t *testing.T) {
	db := newStoreDB(t)
	svc := NewSubmissionService(db)

	form := &models.Form{
		Title:  "Quarterly GST Return",
		Status: models.FormStatusSent,
		Fields: models.FieldList{
			{ID: "f1", Type: models.FieldTypeText, Label: "GSTIN", Required: true},
		},
	}
	if err := db.Create(form).Error; err != nil {
		t.Fatalf("failed to create form: %v", err)
	}
	submission := &models.Submission{
		FormID:      form.ID,
		UserID:      1,
		Responses:   models.ResponseList{{FieldID: "f1", Value: "27AAPFU0939F1ZV"}},
		Status:      "pending",
		SubmittedAt: time.Now(),
	}
	if err := db.Create(submission).Error; err != nil {
		t.Fatalf("failed to create submission: %v", err)
	}

	if _, err := svc.Render(submission.ID); err != nil {
		t.Fatalf("Render before form delete failed: %v", err)
	}

	if err := db.Delete(&models.Form{}, form.ID).Error; err != nil {
		t.Fatalf("failed to delete form: %v", err)
	}

	_, err := svc.Render(submission.ID)
	var appErr *response.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *response.AppError after form delete, got %v", err)
	}
	if appErr.HTTPStatus != 404 {
		t.Errorf("HTTPStatus = %d, expected 404", appErr.HTTPStatus)
	}
}

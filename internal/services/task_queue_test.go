package services

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestTaskTypeReminder_Constant(t *testing.T) {
	if TaskTypeReminder != "reminder:deliver" {
		t.Errorf("TaskTypeReminder = %q, expected %q", TaskTypeReminder, "reminder:deliver")
	}
}

func TestReminderTask_Structure(t *testing.T) {
	task := ReminderTask{
		FormID:    3,
		FormTitle: "Quarterly GST Return",
		UserID:    12,
		Username:  "acct1",
		Email:     "acct1@example.com",
		Deadline:  "2026-09-30T00:00:00Z",
	}

	if task.FormID != 3 {
		t.Errorf("FormID = %d, expected 3", task.FormID)
	}
	if task.FormTitle != "Quarterly GST Return" {
		t.Errorf("FormTitle = %q, expected %q", task.FormTitle, "Quarterly GST Return")
	}
	if task.UserID != 12 {
		t.Errorf("UserID = %d, expected 12", task.UserID)
	}
	if task.Email != "acct1@example.com" {
		t.Errorf("Email = %q, expected %q", task.Email, "acct1@example.com")
	}
}

func TestSyncQueue_IsNotAsync(t *testing.T) {
	q := NewSyncQueue()
	if q.IsAsync() {
		t.Error("SyncQueue.IsAsync() should be false")
	}
}

func TestSyncQueue_ProcessesEnqueuedTask(t *testing.T) {
	q := NewSyncQueue()

	var mu sync.Mutex
	var got *ReminderTask
	done := make(chan struct{})

	q.SetProcessor(func(ctx context.Context, task *ReminderTask) error {
		mu.Lock()
		got = task
		mu.Unlock()
		close(done)
		return nil
	})

	if err := q.Enqueue(&ReminderTask{FormID: 5, UserID: 9}); err != nil {
		t.Fatalf("Enqueue() error = %v", err)
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("processor was not invoked")
	}

	mu.Lock()
	defer mu.Unlock()
	if got.FormID != 5 || got.UserID != 9 {
		t.Errorf("processed task = %+v, expected FormID 5 UserID 9", got)
	}
}

func TestSyncQueue_NoProcessorDropsTask(t *testing.T) {
	q := NewSyncQueue()

	// Without a processor the task is dropped, not an error
	if err := q.Enqueue(&ReminderTask{FormID: 1}); err != nil {
		t.Errorf("Enqueue() error = %v, expected nil", err)
	}
}

func TestSyncQueue_CloseIsNoop(t *testing.T) {
	q := NewSyncQueue()
	if err := q.Close(); err != nil {
		t.Errorf("Close() error = %v, expected nil", err)
	}
}

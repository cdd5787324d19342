package services

import (
	"testing"
)

func TestRecordAudit_SafeWithoutInit(t *testing.T) {
	old := auditDB
	auditDB = nil
	defer func() { auditDB = old }()

	// Must be a silent no-op, never a panic
	RecordAudit(nil, "system", "forms.create", "test message", "", "", nil)
}

func TestAuditListRequest_Defaults(t *testing.T) {
	req := &AuditListRequest{}

	if req.Page != 0 {
		t.Errorf("default Page should be 0, got %d", req.Page)
	}
	if req.PageSize != 0 {
		t.Errorf("default PageSize should be 0, got %d", req.PageSize)
	}
	if req.ActorID != nil {
		t.Error("default ActorID should be nil")
	}
}

func TestAuditListRequest_ConjunctiveFilters(t *testing.T) {
	actorID := uint(7)
	req := &AuditListRequest{
		Page:      2,
		PageSize:  50,
		Action:    "forms.update",
		ActorID:   &actorID,
		StartDate: "2026-01-01",
		EndDate:   "2026-06-30",
		Search:    "gst",
	}

	if req.Action != "forms.update" {
		t.Errorf("Action = %q, expected %q", req.Action, "forms.update")
	}
	if req.ActorID == nil || *req.ActorID != 7 {
		t.Error("ActorID should be 7")
	}
	if req.Search != "gst" {
		t.Errorf("Search = %q, expected %q", req.Search, "gst")
	}
}

func TestAuditListResponse_Structure(t *testing.T) {
	resp := &AuditListResponse{
		Total:    120,
		Page:     3,
		PageSize: 20,
		Items:    nil,
	}

	if resp.Total != 120 {
		t.Errorf("Total = %d, expected 120", resp.Total)
	}
	if resp.Page != 3 {
		t.Errorf("Page = %d, expected 3", resp.Page)
	}
	if resp.PageSize != 20 {
		t.Errorf("PageSize = %d, expected 20", resp.PageSize)
	}
}

package services

import (
	"testing"

	"github.com/ledgerline/firmdesk/backend/internal/models"
)

func invoiceFields() models.FieldList {
	return models.FieldList{
		{ID: "f1", Type: models.FieldTypeText, Label: "Client Name", Required: true},
		{ID: "f2", Type: models.FieldTypeText, Label: "Amount", Required: true},
		{ID: "f3", Type: models.FieldTypeFile, Label: "Receipt", Required: true},
		{ID: "f4", Type: models.FieldTypeText, Label: "Notes", Required: false},
	}
}

func TestMissingRequiredFields_CollectsAll(t *testing.T) {
	responses := []ResponseInput{
		{FieldID: "f1", Value: "Acme Traders"},
	}

	missing := MissingRequiredFields(invoiceFields(), responses)

	if len(missing) != 2 {
		t.Fatalf("len(missing) = %d, expected 2", len(missing))
	}
	if missing[0] != "Amount" {
		t.Errorf("missing[0] = %q, expected %q", missing[0], "Amount")
	}
	if missing[1] != "Receipt" {
		t.Errorf("missing[1] = %q, expected %q", missing[1], "Receipt")
	}
}

func TestMissingRequiredFields_BlankCountsAsMissing(t *testing.T) {
	responses := []ResponseInput{
		{FieldID: "f1", Value: "Acme Traders"},
		{FieldID: "f2", Value: "   "},
		{FieldID: "f3", Value: "uploads/receipt.pdf"},
	}

	missing := MissingRequiredFields(invoiceFields(), responses)

	if len(missing) != 1 {
		t.Fatalf("len(missing) = %d, expected 1", len(missing))
	}
	if missing[0] != "Amount" {
		t.Errorf("missing[0] = %q, expected %q", missing[0], "Amount")
	}
}

func TestMissingRequiredFields_CompleteSubmission(t *testing.T) {
	responses := []ResponseInput{
		{FieldID: "f1", Value: "Acme Traders"},
		{FieldID: "f2", Value: "1200.50"},
		{FieldID: "f3", Value: "uploads/receipt.pdf"},
	}

	missing := MissingRequiredFields(invoiceFields(), responses)

	if len(missing) != 0 {
		t.Errorf("len(missing) = %d, expected 0", len(missing))
	}
}

func TestMissingRequiredFields_OptionalMayBeOmitted(t *testing.T) {
	fields := models.FieldList{
		{ID: "f1", Type: models.FieldTypeText, Label: "Notes", Required: false},
	}

	missing := MissingRequiredFields(fields, nil)

	if len(missing) != 0 {
		t.Errorf("len(missing) = %d, expected 0", len(missing))
	}
}

func TestRenderResponses_OmitsRemovedFields(t *testing.T) {
	// "f2" was removed from the form after the submission was filed
	fields := models.FieldList{
		{ID: "f1", Type: models.FieldTypeText, Label: "Client Name"},
		{ID: "f3", Type: models.FieldTypeDropdown, Label: "Quarter"},
	}
	responses := models.ResponseList{
		{FieldID: "f1", Value: "Acme Traders"},
		{FieldID: "f2", Value: "stale answer"},
		{FieldID: "f3", Value: "Q2"},
	}

	rendered := RenderResponses(fields, responses)

	if len(rendered) != 2 {
		t.Fatalf("len(rendered) = %d, expected 2", len(rendered))
	}
	if rendered[0].FieldID != "f1" || rendered[0].Value != "Acme Traders" {
		t.Errorf("rendered[0] = %+v, expected f1/Acme Traders", rendered[0])
	}
	if rendered[1].FieldID != "f3" || rendered[1].Label != "Quarter" {
		t.Errorf("rendered[1] = %+v, expected f3/Quarter", rendered[1])
	}
}

func TestRenderResponses_CarriesCurrentLabelAndType(t *testing.T) {
	// The label was edited after submission; rendering uses the current one
	fields := models.FieldList{
		{ID: "f1", Type: models.FieldTypeText, Label: "Registered Client Name"},
	}
	responses := models.ResponseList{
		{FieldID: "f1", Value: "Acme Traders"},
	}

	rendered := RenderResponses(fields, responses)

	if len(rendered) != 1 {
		t.Fatalf("len(rendered) = %d, expected 1", len(rendered))
	}
	if rendered[0].Label != "Registered Client Name" {
		t.Errorf("Label = %q, expected %q", rendered[0].Label, "Registered Client Name")
	}
	if rendered[0].Type != models.FieldTypeText {
		t.Errorf("Type = %q, expected %q", rendered[0].Type, models.FieldTypeText)
	}
}

func TestRenderResponses_AllFieldsRemoved(t *testing.T) {
	responses := models.ResponseList{
		{FieldID: "gone1", Value: "a"},
		{FieldID: "gone2", Value: "b"},
	}

	rendered := RenderResponses(models.FieldList{}, responses)

	if len(rendered) != 0 {
		t.Errorf("len(rendered) = %d, expected 0", len(rendered))
	}
}

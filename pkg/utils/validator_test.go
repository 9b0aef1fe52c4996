package utils

import (
	"strings"
	"testing"
)

type sampleRequest struct {
	Name     string `validate:"required,min=3"`
	Capacity int    `validate:"min=1"`
	ID       string `validate:"omitempty,uuid4"`
}

func TestValidateStruct(t *testing.T) {
	if errs := ValidateStruct(&sampleRequest{Name: "Hall A", Capacity: 10}); len(errs) != 0 {
		t.Errorf("unexpected errors: %v", errs)
	}

	errs := ValidateStruct(&sampleRequest{Name: "", Capacity: 0, ID: "not-a-uuid"})
	if len(errs) != 3 {
		t.Fatalf("errors = %d, want 3: %v", len(errs), errs)
	}
	if errs["Name"] != "This field is required" {
		t.Errorf("Name message = %q", errs["Name"])
	}
	if errs["Capacity"] != "Minimum is 1" {
		t.Errorf("Capacity message = %q", errs["Capacity"])
	}
	if errs["ID"] != "Must be a valid UUID" {
		t.Errorf("ID message = %q", errs["ID"])
	}
}

func TestFormatValidationErrors(t *testing.T) {
	msg := FormatValidationErrors(map[string]string{"Name": "This field is required"})
	if msg != "Name: This field is required" {
		t.Errorf("msg = %q", msg)
	}

	msg = FormatValidationErrors(map[string]string{
		"Name":     "This field is required",
		"Capacity": "Minimum is 1",
	})
	if !strings.Contains(msg, "Name: This field is required") || !strings.Contains(msg, "Capacity: Minimum is 1") {
		t.Errorf("msg = %q, missing a field", msg)
	}
	if !strings.Contains(msg, "; ") {
		t.Errorf("msg = %q, fields not joined", msg)
	}
}

package task

import (
	"strings"
	"testing"
)

func TestValidateTitle(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		wantErr bool
	}{
		{"valid title", "Buy milk", false},
		{"empty title", "", true},
		{"max length accepted", strings.Repeat("a", 200), false},
		{"over max rejected", strings.Repeat("a", 201), true},
		{"multibyte counted as runes", strings.Repeat("ä", 200), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := validateTitle(tc.title)
			if tc.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if err != nil && err.Kind != KindValidation {
				t.Errorf("expected kind %q, got %q", KindValidation, err.Kind)
			}
		})
	}
}

func TestValidateDescription(t *testing.T) {
	if err := validateDescription(strings.Repeat("a", 2000)); err != nil {
		t.Errorf("max-length description rejected: %v", err)
	}
	err := validateDescription(strings.Repeat("a", 2001))
	if err == nil {
		t.Fatal("expected error for over-long description")
	}
	if err.Field != "description" {
		t.Errorf("expected field %q, got %q", "description", err.Field)
	}
}

func TestParseEnumFields(t *testing.T) {
	for _, valid := range []string{"open", "doing", "done"} {
		if _, err := parseStatusField(valid); err != nil {
			t.Errorf("status %q rejected: %v", valid, err)
		}
	}
	for _, invalid := range []string{"", "Open", "closed", "OPEN"} {
		if _, err := parseStatusField(invalid); err == nil {
			t.Errorf("status %q accepted, expected rejection", invalid)
		}
	}

	for _, valid := range []string{"low", "normal", "high"} {
		if _, err := parsePriorityField(valid); err != nil {
			t.Errorf("priority %q rejected: %v", valid, err)
		}
	}
	for _, invalid := range []string{"", "urgent", "High"} {
		if _, err := parsePriorityField(invalid); err == nil {
			t.Errorf("priority %q accepted, expected rejection", invalid)
		}
	}
}

func TestValidatePagination(t *testing.T) {
	tests := []struct {
		name    string
		page    int32
		size    int32
		wantErr bool
	}{
		{"first page", 1, 20, false},
		{"max size", 1, 100, false},
		{"min size", 5, 1, false},
		{"page zero", 0, 20, true},
		{"negative page", -1, 20, true},
		{"size zero", 1, 0, true},
		{"size over max", 1, 101, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := validatePagination(tc.page, tc.size)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if err.Kind != KindInvalidArgument {
					t.Errorf("expected kind %q, got %q", KindInvalidArgument, err.Kind)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

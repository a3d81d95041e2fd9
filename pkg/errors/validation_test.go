package errors

import (
	"strings"
	"testing"
)

func TestValidateXref(t *testing.T) {
	tests := []struct {
		name    string
		xref    string
		wantErr bool
	}{
		{"simple individual", "I1", false},
		{"family record", "F12", false},
		{"with underscore", "IND_42", false},
		{"empty", "", true},
		{"with delimiters", "@I1@", true},
		{"path traversal", "../I1", true},
		{"too long", strings.Repeat("I", 65), true},
		{"leading dash", "-I1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateXref(tt.xref)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateXref(%q) error = %v, wantErr %v", tt.xref, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidXref) {
				t.Errorf("ValidateXref(%q) code = %v, want %v", tt.xref, GetCode(err), ErrCodeInvalidXref)
			}
		})
	}
}

func TestValidateThemeName(t *testing.T) {
	tests := []struct {
		name    string
		theme   string
		wantErr bool
	}{
		{"simple", "webtrees", false},
		{"with dash", "clouds-dark", false},
		{"empty", "", true},
		{"traversal", "../themes/x", true},
		{"backslash", `a\b`, true},
		{"too long", strings.Repeat("t", 129), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateThemeName(tt.theme)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateThemeName(%q) error = %v, wantErr %v", tt.theme, err, tt.wantErr)
			}
		})
	}
}

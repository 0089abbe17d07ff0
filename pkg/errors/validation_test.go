package errors

import (
	"strings"
	"testing"
)

func TestValidateLabel(t *testing.T) {
	tests := []struct {
		name    string
		label   string
		wantErr bool
	}{
		{"simple", "A", false},
		{"url-ish", "https://example.com/page", false},
		{"unicode", "seite-ä", false},
		{"empty", "", true},
		{"newline", "a\nb", true},
		{"null byte", "a\x00b", true},
		{"tab", "a\tb", true},
		{"too long", strings.Repeat("x", 257), true},
		{"max length", strings.Repeat("x", 256), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLabel(tt.label)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLabel(%q) error = %v, wantErr %v", tt.label, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidLabel) {
				t.Errorf("error code = %v, want INVALID_LABEL", GetCode(err))
			}
		})
	}
}

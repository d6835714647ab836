package errors

import (
	"testing"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "toy1", false},
		{"valid with dash", "my-graph", false},
		{"valid with underscore", "my_graph", false},
		{"valid with dot", "sars.cov2", false},
		{"valid with space", "B.1.1.7 lineage", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 300)), true},
		{"path traversal ..", "foo/../bar", true},
		{"path traversal //", "foo//bar", true},
		{"null byte", "foo\x00bar", true},
		{"backslash", "foo\\bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
		{"carriage return", "foo\rbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateLabel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "A", false},
		{"valid hybrid tag", "x#H1", false},
		{"valid synthetic", "NODE_3", false},
		{"valid with dots", "B.1.617.2", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 300)), true},
		{"control char", "A\x01B", true},
		{"newline", "A\nB", true},
		{"tab", "A\tB", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLabel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLabel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"https", "https://example.com/path", false},
		{"http", "http://example.com/path", false},

		{"empty", "", true},
		{"ftp", "ftp://example.com", true},
		{"file", "file:///etc/passwd", true},
		{"javascript", "javascript:alert(1)", true},
		{"no scheme", "example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidationErrorCodes(t *testing.T) {
	if err := ValidateName(""); GetCode(err) != ErrCodeInvalidName {
		t.Errorf("ValidateName code = %v, want %v", GetCode(err), ErrCodeInvalidName)
	}
	if err := ValidateLabel(""); GetCode(err) != ErrCodeInvalidGraph {
		t.Errorf("ValidateLabel code = %v, want %v", GetCode(err), ErrCodeInvalidGraph)
	}
	if err := ValidateURL(""); GetCode(err) != ErrCodeInvalidInput {
		t.Errorf("ValidateURL code = %v, want %v", GetCode(err), ErrCodeInvalidInput)
	}
}

package document_type

import "testing"

func TestParseType(t *testing.T) {
	tests := []struct {
		input    string
		expected Type
	}{
		{"contract", Contract},
		{"Contract", Contract},
		{"RESUME", Resume},
		{"resume", Resume},
		{"generic", Generic},
		{"report", Generic},
		{"Report", Generic},
		{"", Generic},
		{"  resume  ", Resume},
		{"invoice", Generic},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseType(tt.input); got != tt.expected {
				t.Errorf("ParseType(%q) = %s, expected %s", tt.input, got, tt.expected)
			}
		})
	}
}

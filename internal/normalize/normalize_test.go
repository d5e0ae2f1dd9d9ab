package normalize

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "simple words",
			input:    "Rio de Janeiro",
			expected: []string{"rio", "de", "janeiro"},
		},
		{
			name:     "diacritics folded",
			input:    "Río de Janeiro",
			expected: []string{"rio", "de", "janeiro"},
		},
		{
			name:     "punctuation stripped",
			input:    "san-francisco, CA!",
			expected: []string{"san", "francisco", "ca"},
		},
		{
			name:     "misspelling preserved verbatim",
			input:    "sna francicso",
			expected: []string{"sna", "francicso"},
		},
		{
			name:     "empty string",
			input:    "",
			expected: nil,
		},
		{
			name:     "only punctuation",
			input:    "...",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestJoin(t *testing.T) {
	if got := Join([]string{"rio", "de", "janeiro"}); got != "rio de janeiro" {
		t.Errorf("Join = %q, want %q", got, "rio de janeiro")
	}
}

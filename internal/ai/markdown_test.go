package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripMarkdownFences(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{"bare json untouched", `{"title": "Pagar la renta"}`, `{"title": "Pagar la renta"}`},
		{"json fence", "```json\n{\"title\": \"Pagar la renta\"}\n```", `{"title": "Pagar la renta"}`},
		{"plain fence", "```\n[1, 2, 3]\n```", "[1, 2, 3]"},
		{"surrounding whitespace", "  \n```json\n{}\n```\n  ", "{}"},
		{"fence without newlines", "```json{}```", "{}"},
		{"unterminated fence", "```json\n{\"a\": 1}", `{"a": 1}`},
		{"empty", "", ""},
		{"only fences", "```json\n```", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripMarkdownFences(tt.in))
		})
	}
}

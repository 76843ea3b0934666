package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorHelpers(t *testing.T) {
	tests := []struct {
		name  string
		fn    func(string) string
		input string
	}{
		{"Primary", Primary, "09:00"},
		{"Error", Error, "check-out before check-in"},
		{"Warning", Warning, "be careful"},
		{"Info", Info, "2025-06-18"},
		{"Silent", Silent, "rest day"},
		{"Success", Success, "checked in"},
		{"Bold", Bold, "2025年第25周"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.fn(tt.input)
			assert.NotEmpty(t, result)
			assert.Contains(t, result, tt.input)
		})
	}
}

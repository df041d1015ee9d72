package protocols

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindRelevantProtocol(t *testing.T) {
	tests := []struct {
		name         string
		message      string
		wantContains []string
		wantEmpty    bool
	}{
		{
			name:         "single condition",
			message:      "I woke up with a terrible headache",
			wantContains: []string{"Headache Management Protocol"},
		},
		{
			name:         "case insensitive",
			message:      "I Have A FEVER",
			wantContains: []string{"Fever Management Protocol"},
		},
		{
			name:         "refund policy",
			message:      "how do I get a refund?",
			wantContains: []string{"Refund Policy"},
		},
		{
			name:         "privacy policy",
			message:      "what happens to my data",
			wantContains: []string{"General Policies"},
		},
		{
			name:      "no match",
			message:   "hello there",
			wantEmpty: true,
		},
		{
			name:      "empty message",
			message:   "",
			wantEmpty: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindRelevantProtocol(tt.message)
			if tt.wantEmpty {
				assert.Empty(t, got)
				return
			}
			for _, want := range tt.wantContains {
				assert.Contains(t, got, want)
			}
		})
	}
}

func TestFindRelevantProtocol_MultipleMatchesInTableOrder(t *testing.T) {
	got := FindRelevantProtocol("I have a bad headache and fever")

	require.Contains(t, got, "Fever Management Protocol")
	require.Contains(t, got, "Headache Management Protocol")
	assert.Contains(t, got, divider)

	// Fever precedes headache in the table, so its block must come first.
	feverIdx := strings.Index(got, "Fever Management Protocol")
	headacheIdx := strings.Index(got, "Headache Management Protocol")
	assert.Less(t, feverIdx, headacheIdx)
}

func TestFindRelevantProtocol_PolicyBeforeMedical(t *testing.T) {
	got := FindRelevantProtocol("I want a refund, also I have a cough")

	refundIdx := strings.Index(got, "Refund Policy")
	coldIdx := strings.Index(got, "Cold & Flu Management Protocol")
	require.GreaterOrEqual(t, refundIdx, 0)
	require.GreaterOrEqual(t, coldIdx, 0)
	assert.Less(t, refundIdx, coldIdx)
}

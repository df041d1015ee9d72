package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curelink/disha/pkg/model"
)

func TestExtractMemories(t *testing.T) {
	tests := []struct {
		name     string
		userText string
		want     []Candidate
	}{
		{
			name:     "medical diagnosis",
			userText: "I was diagnosed with hypertension last year",
			want: []Candidate{
				{Content: "I was diagnosed with hypertension last year", MemoryType: model.MemoryTypeMedical, Importance: 0.9},
			},
		},
		{
			name:     "medication",
			userText: "I'm on a new medication for my blood pressure",
			want: []Candidate{
				{Content: "I'm on a new medication for my blood pressure", MemoryType: model.MemoryTypeMedical, Importance: 0.85},
			},
		},
		{
			name:     "preference",
			userText: "I prefer walking over running",
			want: []Candidate{
				{Content: "I prefer walking over running", MemoryType: model.MemoryTypePreference, Importance: 0.6},
			},
		},
		{
			name:     "fact via age",
			userText: "i am 42 years old",
			want: []Candidate{
				{Content: "i am 42 years old", MemoryType: model.MemoryTypeFact, Importance: 0.7},
			},
		},
		{
			name:     "multiple fact patterns yield one candidate",
			userText: "My name is Ravi and I live in Pune",
			want: []Candidate{
				{Content: "My name is Ravi and I live in Pune", MemoryType: model.MemoryTypeFact, Importance: 0.7},
			},
		},
		{
			name:     "no rules match",
			userText: "what should I eat for breakfast?",
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractMemories(tt.userText, "sounds good!", &model.User{ID: "u1"})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractMemories_IndependentRulesStack(t *testing.T) {
	text := "My name is Asha and I have diabetes and I'm taking metformin"
	got := ExtractMemories(text, "", &model.User{ID: "u1"})

	require.Len(t, got, 3)

	byType := map[model.MemoryType][]Candidate{}
	for _, candidate := range got {
		assert.Equal(t, text, candidate.Content)
		byType[candidate.MemoryType] = append(byType[candidate.MemoryType], candidate)
	}

	require.Len(t, byType[model.MemoryTypeMedical], 2)
	assert.Equal(t, 0.9, byType[model.MemoryTypeMedical][0].Importance)
	assert.Equal(t, 0.85, byType[model.MemoryTypeMedical][1].Importance)

	require.Len(t, byType[model.MemoryTypeFact], 1)
	assert.Equal(t, 0.7, byType[model.MemoryTypeFact][0].Importance)
}

// Package memory extracts and retrieves long-term user memories and
// keeps the user profile in sync with what the user discloses in chat.
package memory

import (
	"regexp"
	"strings"

	"github.com/curelink/disha/pkg/model"
)

// Candidate is a proposed memory produced by the extractor. Content is
// always the full user utterance, not an extracted fragment.
type Candidate struct {
	Content    string
	MemoryType model.MemoryType
	Importance float64
}

var medicalKeywords = []string{
	"diagnosed with",
	"have diabetes",
	"have hypertension",
	"have asthma",
	"suffer from",
	"condition",
}

var medicationKeywords = []string{
	"taking",
	"medication",
	"medicine",
	"pill",
	"prescription",
	"drug",
}

var preferenceKeywords = []string{
	"i prefer",
	"i like",
	"i don't like",
	"i hate",
	"my favorite",
	"i enjoy",
}

// factPatterns yield at most one candidate, first match wins.
var factPatterns = []*regexp.Regexp{
	regexp.MustCompile(`i am (\d+) years? old`),
	regexp.MustCompile(`my name is (\w+)`),
	regexp.MustCompile(`i work as`),
	regexp.MustCompile(`i live in`),
	regexp.MustCompile(`my job`),
}

func anyKeyword(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

// ExtractMemories scans a single user utterance against the rule sets
// and proposes zero or more candidate memories. The four rules are
// independent, so one utterance can emit up to four candidates. The
// assistant text and user profile are accepted for future rules but
// currently unused. Pure function, no side effects.
func ExtractMemories(userText, assistantText string, user *model.User) []Candidate {
	var candidates []Candidate
	textLower := strings.ToLower(userText)

	if anyKeyword(textLower, medicalKeywords) {
		candidates = append(candidates, Candidate{
			Content:    userText,
			MemoryType: model.MemoryTypeMedical,
			Importance: 0.9,
		})
	}

	if anyKeyword(textLower, medicationKeywords) {
		candidates = append(candidates, Candidate{
			Content:    userText,
			MemoryType: model.MemoryTypeMedical,
			Importance: 0.85,
		})
	}

	if anyKeyword(textLower, preferenceKeywords) {
		candidates = append(candidates, Candidate{
			Content:    userText,
			MemoryType: model.MemoryTypePreference,
			Importance: 0.6,
		})
	}

	for _, pattern := range factPatterns {
		if pattern.MatchString(textLower) {
			candidates = append(candidates, Candidate{
				Content:    userText,
				MemoryType: model.MemoryTypeFact,
				Importance: 0.7,
			})
			break
		}
	}

	return candidates
}

package memory

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/curelink/disha/pkg/helpers"
	"github.com/curelink/disha/pkg/model"
)

var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`my name is (\w+)`),
	regexp.MustCompile(`i'm (\w+)`),
	regexp.MustCompile(`i am (\w+)`),
	regexp.MustCompile(`call me (\w+)`),
}

var agePatterns = []*regexp.Regexp{
	regexp.MustCompile(`i am (\d+) years? old`),
	regexp.MustCompile(`i'm (\d+)`),
	regexp.MustCompile(`(\d+) years? old`),
}

var malePhrases = []string{"i'm male", "i am male", "i'm a man"}

var femalePhrases = []string{"i'm female", "i am female", "i'm a woman"}

// UpdateProfileFromMessage scans a user message for name, age and
// gender disclosures and fills any still-empty profile fields in place.
// Fields are first-write-wins: a set field is never overwritten.
// Returns true when anything changed; the caller owns persistence.
func UpdateProfileFromMessage(user *model.User, message string) bool {
	messageLower := strings.ToLower(message)
	updated := false

	if helpers.Deref(user.Name) == "" {
		for _, pattern := range namePatterns {
			match := pattern.FindStringSubmatch(messageLower)
			if match == nil {
				continue
			}
			user.Name = helpers.Ptr(capitalize(match[1]))
			updated = true
			break
		}
	}

	if helpers.Deref(user.Age) == "" {
		for _, pattern := range agePatterns {
			match := pattern.FindStringSubmatch(messageLower)
			if match == nil {
				continue
			}
			age, err := strconv.Atoi(match[1])
			if err == nil && age >= 1 && age <= 120 {
				user.Age = helpers.Ptr(match[1])
				updated = true
				break
			}
		}
	}

	if helpers.Deref(user.Gender) == "" {
		if anyKeyword(messageLower, malePhrases) {
			user.Gender = helpers.Ptr("male")
			updated = true
		} else if anyKeyword(messageLower, femalePhrases) {
			user.Gender = helpers.Ptr("female")
			updated = true
		}
	}

	return updated
}

func capitalize(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}

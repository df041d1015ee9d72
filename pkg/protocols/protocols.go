// Package protocols is the static advisory knowledge base for common
// health conditions. Lookup is keyword containment over the message
// text; matching blocks are concatenated in table order.
package protocols

import "strings"

// Protocol pairs a condition's trigger keywords with its advisory block.
type Protocol struct {
	Name     string
	Keywords []string
	Text     string
}

const divider = "\n\n---\n\n"

// policyKeywords trigger the always-available policy blocks. Checked
// before the medical table so policy text leads the injection.
var refundKeywords = []string{"refund", "cancel", "money back", "subscription"}

var policyKeywords = []string{"policy", "privacy", "data", "security"}

// medicalProtocols is ordered; matches contribute their block in this order.
var medicalProtocols = []Protocol{
	{
		Name:     "fever",
		Keywords: []string{"fever", "temperature", "hot", "burning up", "chills", "feverish"},
		Text:     feverProtocol,
	},
	{
		Name:     "stomach_ache",
		Keywords: []string{"stomach ache", "stomach pain", "abdominal pain", "belly pain", "tummy ache", "cramps", "nausea"},
		Text:     stomachAcheProtocol,
	},
	{
		Name:     "headache",
		Keywords: []string{"headache", "head pain", "migraine", "head hurts", "throbbing head"},
		Text:     headacheProtocol,
	},
	{
		Name:     "cold_flu",
		Keywords: []string{"cold", "flu", "cough", "sneeze", "runny nose", "congestion", "sore throat"},
		Text:     coldFluProtocol,
	},
	{
		Name:     "general_wellness",
		Keywords: []string{"wellness", "healthy", "prevention", "lifestyle", "fitness"},
		Text:     generalWellnessProtocol,
	},
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

// FindRelevantProtocol returns every advisory block whose keywords appear
// in the message, joined by a visible divider. Empty string when nothing
// matches. Deterministic and side-effect free.
func FindRelevantProtocol(message string) string {
	messageLower := strings.ToLower(message)
	var relevant []string

	if containsAny(messageLower, refundKeywords) {
		relevant = append(relevant, refundPolicy)
	}
	if containsAny(messageLower, policyKeywords) {
		relevant = append(relevant, generalPolicies)
	}

	for _, protocol := range medicalProtocols {
		if containsAny(messageLower, protocol.Keywords) {
			relevant = append(relevant, protocol.Text)
		}
	}

	if len(relevant) == 0 {
		return ""
	}
	return strings.Join(relevant, divider)
}

package prompts

import (
	"bytes"
	_ "embed"
	"strings"
	"text/template"

	"github.com/curelink/disha/pkg/helpers"
	"github.com/curelink/disha/pkg/model"
)

//go:embed templates/health_coach_system_prompt.tmpl
var healthCoachSystemPromptTemplate string

type HealthCoachSystemPrompt struct {
	Name              string
	Age               string
	Gender            string
	MedicalConditions string
	Medications       string
	Allergies         string
	Memories          []string
	Protocols         string
}

// HasUserInfo reports whether any profile field would render.
func (p HealthCoachSystemPrompt) HasUserInfo() bool {
	return p.Name != "" || p.Age != "" || p.Gender != "" ||
		p.MedicalConditions != "" || p.Medications != "" || p.Allergies != ""
}

// NewHealthCoachSystemPrompt assembles prompt data from the user's
// profile, selected memories and matched protocol text.
func NewHealthCoachSystemPrompt(user *model.User, memories []*model.Memory, protocolText string) HealthCoachSystemPrompt {
	data := HealthCoachSystemPrompt{
		Protocols: protocolText,
	}
	if user != nil {
		data.Name = helpers.Deref(user.Name)
		data.Age = helpers.Deref(user.Age)
		data.Gender = helpers.Deref(user.Gender)
		data.MedicalConditions = strings.Join(user.MedicalConditions, ", ")
		data.Medications = strings.Join(user.Medications, ", ")
		data.Allergies = strings.Join(user.Allergies, ", ")
	}
	for _, memory := range memories {
		data.Memories = append(data.Memories, memory.Content)
	}
	return data
}

func BuildHealthCoachSystemPrompt(data HealthCoachSystemPrompt) (string, error) {
	systemPromptTmpl := template.Must(template.New("health_coach_system_prompt").Parse(healthCoachSystemPromptTemplate))
	var buf bytes.Buffer
	if err := systemPromptTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

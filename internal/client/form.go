package client

import (
	"strings"

	"hiremind-backend/internal/generate"
)

// ExperienceLevels are the choices offered by the form; empty means unspecified.
var ExperienceLevels = []string{"Entry Level", "Mid Level", "Senior Level", "Executive Level"}

// Form holds the user's input between submissions.
type Form struct {
	Name            string        `json:"name"`
	JobTitle        string        `json:"jobTitle"`
	Skills          string        `json:"skills"`
	ExperienceLevel string        `json:"experienceLevel,omitempty"`
	JobDescription  string        `json:"jobDescription,omitempty"`
	Tone            generate.Tone `json:"tone"`
	Type            generate.Type `json:"type,omitempty"`
}

// NewForm returns an empty form with the default tone selected.
func NewForm() Form {
	return Form{Tone: generate.ToneFormal}
}

// Ready reports whether every field required before submitting is filled.
func (f Form) Ready() bool {
	for _, v := range []string{f.Name, f.JobTitle, f.Skills, string(f.Tone)} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

// Request builds the relay request for the chosen document type.
func (f Form) Request(t generate.Type) generate.Request {
	return generate.Request{
		Name:            f.Name,
		JobTitle:        f.JobTitle,
		Skills:          f.Skills,
		ExperienceLevel: f.ExperienceLevel,
		JobDescription:  f.JobDescription,
		Tone:            f.Tone,
		Type:            t,
	}
}

package generate

import "encoding/json"

// Type selects which document the relay asks the model for.
type Type string

const (
	TypeResume      Type = "resume"
	TypeCoverLetter Type = "cover-letter"
)

// Valid reports whether t is a supported generation type.
func (t Type) Valid() bool {
	_, ok := promptBuilders[t]
	return ok
}

// Tone is the writing style requested by the user.
type Tone string

const (
	ToneFormal     Tone = "Formal"
	ToneFriendly   Tone = "Friendly"
	ToneConfident  Tone = "Confident"
	ToneMinimalist Tone = "Minimalist"
)

// Tones lists the tones offered by the form, in display order.
func Tones() []Tone {
	return []Tone{ToneFormal, ToneFriendly, ToneConfident, ToneMinimalist}
}

// Request is the body accepted by POST /api/generate.
type Request struct {
	Name            string `json:"name"`
	JobTitle        string `json:"jobTitle"`
	Skills          string `json:"skills"`
	ExperienceLevel string `json:"experienceLevel,omitempty"`
	JobDescription  string `json:"jobDescription,omitempty"`
	Tone            Tone   `json:"tone"`
	Type            Type   `json:"type"`
}

// Metadata carries the provider's model name and token accounting.
type Metadata struct {
	Model string          `json:"model"`
	Usage json.RawMessage `json:"usage,omitempty"`
}

// Result is the success body of POST /api/generate.
type Result struct {
	Success  bool     `json:"success"`
	Content  string   `json:"content"`
	Type     Type     `json:"type"`
	Metadata Metadata `json:"metadata"`
}

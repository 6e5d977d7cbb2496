package generate

import (
	"fmt"
	"strings"
)

type promptBuilder func(Request) string

var promptBuilders = map[Type]promptBuilder{
	TypeResume:      resumePrompt,
	TypeCoverLetter: coverLetterPrompt,
}

// BuildPrompt renders the model instruction for req. It is pure and
// deterministic; an unknown type is a ValidationError.
func BuildPrompt(req Request) (string, error) {
	build, ok := promptBuilders[req.Type]
	if !ok {
		return "", &ValidationError{Message: MsgInvalidType}
	}
	return build(req), nil
}

// profileBlock renders the user details shared by every variant. The job
// description line is left blank when absent. Present values are used verbatim.
func profileBlock(req Request, jobDescriptionLabel string) string {
	experience := req.ExperienceLevel
	if experience == "" {
		experience = "Not specified"
	}
	jd := ""
	if req.JobDescription != "" {
		jd = fmt.Sprintf("%s: %s", jobDescriptionLabel, req.JobDescription)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", req.Name)
	fmt.Fprintf(&b, "Job Title: %s\n", req.JobTitle)
	fmt.Fprintf(&b, "Skills: %s\n", req.Skills)
	fmt.Fprintf(&b, "Experience Level: %s\n", experience)
	b.WriteString(jd + "\n")
	fmt.Fprintf(&b, "Tone: %s", req.Tone)
	return b.String()
}

func resumePrompt(req Request) string {
	return "You are an expert resume writer. Based on the following user data, generate a professional resume:\n\n" +
		profileBlock(req, "Target Job Description") + "\n\n" +
		"Generate a complete, professional resume with the following sections:\n" +
		"1. Professional Summary (2-3 sentences)\n" +
		"2. Core Skills (bullet points)\n" +
		"3. Professional Experience (if experience level provided, create relevant examples)\n" +
		"4. Education (create appropriate education background)\n\n" +
		fmt.Sprintf("Format the output as a clean, professional resume. Use %s tone throughout.", strings.ToLower(string(req.Tone)))
}

func coverLetterPrompt(req Request) string {
	return "You are an expert cover letter writer. Based on the following user data, generate a professional cover letter:\n\n" +
		profileBlock(req, "Job Description") + "\n\n" +
		"Generate a complete, professional cover letter that:\n" +
		"1. Opens with a strong introduction\n" +
		"2. Highlights relevant skills and experience\n" +
		"3. Shows enthusiasm for the role\n" +
		"4. Closes with a call to action\n" +
		fmt.Sprintf("5. Uses %s tone throughout\n\n", strings.ToLower(string(req.Tone))) +
		"Format as a proper business letter."
}

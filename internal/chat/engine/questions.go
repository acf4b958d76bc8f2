package engine

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"boekhoud_backend/internal/chat/intent"
)

//go:embed questions.yaml
var questionsYAML []byte

type intentQuestions struct {
	Priority  []string          `yaml:"priority"`
	Questions map[string]string `yaml:"questions"`
}

type catalogFile struct {
	Intents  map[string]intentQuestions `yaml:"intents"`
	Fallback string                     `yaml:"fallback"`
}

// Catalog selects the next follow-up question for an incomplete draft.
type Catalog struct {
	file catalogFile
}

// LoadCatalog parses the embedded question catalog.
func LoadCatalog() (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(questionsYAML, &file); err != nil {
		return nil, fmt.Errorf("parse question catalog: %w", err)
	}
	if file.Fallback == "" {
		return nil, fmt.Errorf("question catalog has no fallback question")
	}
	return &Catalog{file: file}, nil
}

// Next picks the field to ask about and its question text. Missing
// fields win over invalid ones; within each group the intent's priority
// list decides. Invalid fields get their question re-asked with the
// reason appended.
func (c *Catalog) Next(it intent.Intent, v Validation) (field, question string) {
	spec := c.file.Intents[string(it)]

	if f, ok := firstByPriority(spec.Priority, v.Missing); ok {
		return f, c.questionFor(spec, f)
	}
	if len(v.Missing) > 0 {
		f := v.Missing[0]
		return f, c.questionFor(spec, f)
	}

	invalidFields := make([]string, len(v.Invalid))
	for i, issue := range v.Invalid {
		invalidFields[i] = issue.Field
	}
	if f, ok := firstByPriority(spec.Priority, invalidFields); ok {
		return f, c.questionFor(spec, f) + " (" + reasonFor(v.Invalid, f) + ")"
	}
	if len(v.Invalid) > 0 {
		issue := v.Invalid[0]
		return issue.Field, c.questionFor(spec, issue.Field) + " (" + issue.Reason + ")"
	}

	return "", c.file.Fallback
}

func (c *Catalog) questionFor(spec intentQuestions, field string) string {
	if q, ok := spec.Questions[field]; ok {
		return q
	}
	return c.file.Fallback
}

func firstByPriority(priority, fields []string) (string, bool) {
	for _, p := range priority {
		for _, f := range fields {
			if f == p {
				return p, true
			}
		}
	}
	return "", false
}

func reasonFor(issues []FieldIssue, field string) string {
	for _, issue := range issues {
		if issue.Field == field {
			return issue.Reason
		}
	}
	return ""
}

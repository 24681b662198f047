package model

import (
	"leetcode_tracker/internal/common"
	"strings"
	"time"
)

const (
	MinCognitiveLoad = 1
	MaxCognitiveLoad = 5
)

// EarliestDateSolved is the lower bound accepted for Problem.DateSolved.
var EarliestDateSolved = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every rule a Problem breaks. It unwraps to common.ErrValidation.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error {
	return common.ErrValidation
}

func (e *ValidationError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// Validate checks the entry rules for a new problem record. It returns nil or a *ValidationError.
func (p *Problem) Validate() error {
	verr := &ValidationError{}

	if strings.TrimSpace(p.ProblemID) == "" {
		verr.add("problemId", "Problem ID is required")
	}
	if strings.TrimSpace(p.ProblemTitle) == "" {
		verr.add("problemTitle", "Problem title is required")
	}
	if strings.TrimSpace(p.ProblemURL) == "" {
		verr.add("problemUrl", "Problem URL is required")
	}
	if !p.Difficulty.Valid() {
		verr.add("difficulty", "Difficulty must be one of Easy, Medium, Hard, Super Hard")
	}
	if strings.TrimSpace(p.Language) == "" {
		verr.add("language", "Language is required")
	}
	if p.TimeTaken < 1 {
		verr.add("timeTaken", "Time taken must be greater than 0")
	}
	if p.Attempts < 1 {
		verr.add("attempts", "Attempts must be greater than 0")
	}
	if p.CognitiveLoad < MinCognitiveLoad || p.CognitiveLoad > MaxCognitiveLoad {
		verr.add("cognitiveLoad", "Cognitive load must be between 1 and 5")
	}
	if !p.Status.Valid() {
		verr.add("status", "Status must be one of Solved, Attempted, Skipped")
	}
	if !hasTag(p.Tags) {
		verr.add("tags", "At least one tag is required")
	}
	if p.DateSolved.Before(EarliestDateSolved) {
		verr.add("dateSolved", "Date must be valid")
	}

	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

func hasTag(tags []string) bool {
	for _, t := range tags {
		if strings.TrimSpace(t) != "" {
			return true
		}
	}
	return false
}

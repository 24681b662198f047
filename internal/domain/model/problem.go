package model

import (
	"encoding/json"
	"fmt"
	"time"
)

type ProblemDifficulty string
type ProblemStatus string

const (
	DifficultyEasy      ProblemDifficulty = "Easy"
	DifficultyMedium    ProblemDifficulty = "Medium"
	DifficultyHard      ProblemDifficulty = "Hard"
	DifficultySuperHard ProblemDifficulty = "Super Hard"

	StatusSolved    ProblemStatus = "Solved"
	StatusAttempted ProblemStatus = "Attempted"
	StatusSkipped   ProblemStatus = "Skipped"
)

var (
	Difficulties = []ProblemDifficulty{DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultySuperHard}
	Statuses     = []ProblemStatus{StatusSolved, StatusAttempted, StatusSkipped}
)

func (d ProblemDifficulty) Valid() bool {
	for _, known := range Difficulties {
		if d == known {
			return true
		}
	}
	return false
}

func (s ProblemStatus) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Problem is one practice-session record. Records are replaced, never edited in place.
type Problem struct {
	ID            string            `json:"id,omitempty"` // Assigned by the server
	ProblemID     string            `json:"problemId"`    // Source identifier, e.g. "LC-001"
	ProblemTitle  string            `json:"problemTitle"`
	ProblemURL    string            `json:"problemUrl"`
	UserID        string            `json:"userId"`
	Difficulty    ProblemDifficulty `json:"difficulty"`
	Language      string            `json:"language"`
	Attempts      int               `json:"attempts"`
	Tags          []string          `json:"tags"`
	Status        ProblemStatus     `json:"status"`
	TimeTaken     int               `json:"timeTaken"` // Minutes
	CognitiveLoad int               `json:"cognitiveLoad"`
	DateSolved    time.Time         `json:"dateSolved"`
	Notes         string            `json:"notes,omitempty"`
}

// Clone returns a copy that shares no memory with p.
func (p Problem) Clone() Problem {
	if p.Tags != nil {
		p.Tags = append([]string(nil), p.Tags...)
	}
	return p
}

// DateOnlyLayout is the date-only form accepted for dateSolved besides RFC 3339.
const DateOnlyLayout = "2006-01-02"

// UnmarshalJSON accepts dateSolved either as an RFC 3339 timestamp or as a bare
// date, which is read as midnight UTC.
func (p *Problem) UnmarshalJSON(data []byte) error {
	type plain Problem
	aux := struct {
		*plain
		DateSolved *string `json:"dateSolved"`
	}{plain: (*plain)(p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.DateSolved == nil || *aux.DateSolved == "" {
		p.DateSolved = time.Time{}
		return nil
	}

	raw := *aux.DateSolved
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		p.DateSolved = t
		return nil
	}
	t, err := time.Parse(DateOnlyLayout, raw)
	if err != nil {
		return fmt.Errorf("dateSolved %q: want RFC 3339 or YYYY-MM-DD", raw)
	}
	p.DateSolved = t
	return nil
}

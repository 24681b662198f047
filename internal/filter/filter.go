// Package filter derives the displayed subset of a problem collection.
// Everything here is pure: inputs are never modified and order is preserved.
package filter

import (
	"leetcode_tracker/internal/domain/model"
	"strconv"
	"strings"
)

const (
	All         = "all"
	OverFiveMin = "5+"
)

// Criteria is the filter configuration held by the view. "all" disables a criterion;
// an empty SearchQuery disables the search.
type Criteria struct {
	Status      string
	Difficulty  string
	Tag         string
	TimeTaken   string // "all", "1".."5" or "5+"
	SearchQuery string
}

// Defaults returns criteria that keep every record.
func Defaults() Criteria {
	return Criteria{Status: All, Difficulty: All, Tag: All, TimeTaken: All}
}

// Predicate reports whether a record is kept.
type Predicate func(p *model.Problem) bool

// Predicates returns one predicate per active criterion, in application order.
func (c Criteria) Predicates() []Predicate {
	var preds []Predicate

	if q := strings.TrimSpace(c.SearchQuery); q != "" {
		preds = append(preds, Search(q))
	}
	if active(c.Status) {
		preds = append(preds, StatusIs(model.ProblemStatus(c.Status)))
	}
	if active(c.Difficulty) {
		preds = append(preds, DifficultyIs(model.ProblemDifficulty(c.Difficulty)))
	}
	if active(c.Tag) {
		preds = append(preds, HasTag(c.Tag))
	}
	if active(c.TimeTaken) {
		preds = append(preds, TimeTakenMatches(c.TimeTaken))
	}
	return preds
}

// Apply returns the records that satisfy every active criterion, in collection order.
// The result is a new slice; with no active criterion it is a copy of problems.
func Apply(problems []model.Problem, c Criteria) []model.Problem {
	preds := c.Predicates()

	out := make([]model.Problem, 0, len(problems))
	for i := range problems {
		if matchAll(&problems[i], preds) {
			out = append(out, problems[i])
		}
	}
	return out
}

func matchAll(p *model.Problem, preds []Predicate) bool {
	for _, pred := range preds {
		if !pred(p) {
			return false
		}
	}
	return true
}

func active(v string) bool {
	return v != "" && v != All
}

// Search matches query case-insensitively against title, tags, difficulty and problem id.
func Search(query string) Predicate {
	q := strings.ToLower(strings.TrimSpace(query))
	return func(p *model.Problem) bool {
		if contains(p.ProblemTitle, q) || contains(string(p.Difficulty), q) || contains(p.ProblemID, q) {
			return true
		}
		for _, tag := range p.Tags {
			if contains(tag, q) {
				return true
			}
		}
		return false
	}
}

func contains(field, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(field), lowerQuery)
}

func StatusIs(status model.ProblemStatus) Predicate {
	return func(p *model.Problem) bool { return p.Status == status }
}

func DifficultyIs(difficulty model.ProblemDifficulty) Predicate {
	return func(p *model.Problem) bool { return p.Difficulty == difficulty }
}

// HasTag matches records carrying tag exactly.
func HasTag(tag string) Predicate {
	return func(p *model.Problem) bool {
		for _, t := range p.Tags {
			if t == tag {
				return true
			}
		}
		return false
	}
}

// TimeTakenMatches handles "5+" (strictly more than five minutes) and exact minute
// values. A value that is neither matches nothing.
func TimeTakenMatches(value string) Predicate {
	if value == OverFiveMin {
		return func(p *model.Problem) bool { return p.TimeTaken > 5 }
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return func(*model.Problem) bool { return false }
	}
	return func(p *model.Problem) bool { return p.TimeTaken == minutes }
}

package filter_test

import (
	"leetcode_tracker/internal/domain/model"
	"leetcode_tracker/internal/filter"
	"reflect"
	"strings"
	"testing"
)

func sample() []model.Problem {
	return []model.Problem{
		{ID: "1", ProblemID: "LC-001", ProblemTitle: "Two Sum", Difficulty: model.DifficultyEasy, Status: model.StatusSolved, TimeTaken: 2, Tags: []string{"array", "hash-table"}},
		{ID: "2", ProblemID: "LC-561", ProblemTitle: "Array Partition", Difficulty: model.DifficultyEasy, Status: model.StatusAttempted, TimeTaken: 5, Tags: []string{"greedy", "sorting"}},
		{ID: "3", ProblemID: "LC-042", ProblemTitle: "Trapping Rain Water", Difficulty: model.DifficultyHard, Status: model.StatusSolved, TimeTaken: 7, Tags: []string{"two-pointers", "stack"}},
		{ID: "4", ProblemID: "LC-139", ProblemTitle: "Word Break", Difficulty: model.DifficultyMedium, Status: model.StatusSkipped, TimeTaken: 3, Tags: []string{"dynamic-programming", "array"}},
		{ID: "5", ProblemID: "CF-1000", ProblemTitle: "Segment Beats", Difficulty: model.DifficultySuperHard, Status: model.StatusAttempted, TimeTaken: 45, Tags: []string{"segment-tree"}},
	}
}

func ids(problems []model.Problem) []string {
	out := make([]string, 0, len(problems))
	for _, p := range problems {
		out = append(out, p.ID)
	}
	return out
}

func TestApply_DefaultsKeepEverythingInOrder(t *testing.T) {
	t.Parallel()

	problems := sample()
	for _, c := range []filter.Criteria{filter.Defaults(), {}, {SearchQuery: "   ", Status: "all"}} {
		got := filter.Apply(problems, c)
		if !reflect.DeepEqual(got, problems) {
			t.Errorf("Apply(%+v) = %v, want the full collection", c, ids(got))
		}
	}
}

func TestApply_SingleCriterion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		c    filter.Criteria
		want []string
	}{
		{"status", filter.Criteria{Status: "Solved"}, []string{"1", "3"}},
		{"difficulty", filter.Criteria{Difficulty: "Easy"}, []string{"1", "2"}},
		{"super hard", filter.Criteria{Difficulty: "Super Hard"}, []string{"5"}},
		{"tag exact", filter.Criteria{Tag: "array"}, []string{"1", "4"}},
		{"tag is not a substring match", filter.Criteria{Tag: "arr"}, []string{}},
		{"time exact", filter.Criteria{TimeTaken: "3"}, []string{"4"}},
		{"time five is exact", filter.Criteria{TimeTaken: "5"}, []string{"2"}},
		{"time over five", filter.Criteria{TimeTaken: "5+"}, []string{"3", "5"}},
		{"time unparsable", filter.Criteria{TimeTaken: "soon"}, []string{}},
		{"search title case-insensitive", filter.Criteria{SearchQuery: "two sum"}, []string{"1"}},
		{"search problem id", filter.Criteria{SearchQuery: "lc-04"}, []string{"3"}},
		{"search difficulty", filter.Criteria{SearchQuery: "HARD"}, []string{"3", "5"}},
		{"search tag substring", filter.Criteria{SearchQuery: "pointer"}, []string{"3"}},
		{"search trims", filter.Criteria{SearchQuery: "  word  "}, []string{"4"}},
		{"search no hit", filter.Criteria{SearchQuery: "graph"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ids(filter.Apply(sample(), tt.c))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Apply(%+v) = %v, want %v", tt.c, got, tt.want)
			}
		})
	}
}

func TestApply_SearchResultsMatchQuery(t *testing.T) {
	t.Parallel()

	for _, q := range []string{"a", "ar", "Easy", "lc", "tree", "e"} {
		kept := map[string]bool{}
		for _, p := range filter.Apply(sample(), filter.Criteria{SearchQuery: q}) {
			kept[p.ID] = true
		}

		lq := strings.ToLower(q)
		for _, p := range sample() {
			hit := strings.Contains(strings.ToLower(p.ProblemTitle), lq) ||
				strings.Contains(strings.ToLower(string(p.Difficulty)), lq) ||
				strings.Contains(strings.ToLower(p.ProblemID), lq)
			for _, tag := range p.Tags {
				hit = hit || strings.Contains(strings.ToLower(tag), lq)
			}
			if hit != kept[p.ID] {
				t.Errorf("query %q: problem %s kept=%v, matches=%v", q, p.ID, kept[p.ID], hit)
			}
		}
	}
}

func TestApply_IsConjunctive(t *testing.T) {
	t.Parallel()

	singles := []filter.Criteria{
		{Status: "Solved"},
		{Status: "Attempted"},
		{Difficulty: "Easy"},
		{Tag: "array"},
		{TimeTaken: "5+"},
		{TimeTaken: "2"},
		{SearchQuery: "a"},
	}

	merge := func(a, b filter.Criteria) filter.Criteria {
		if b.Status != "" {
			a.Status = b.Status
		}
		if b.Difficulty != "" {
			a.Difficulty = b.Difficulty
		}
		if b.Tag != "" {
			a.Tag = b.Tag
		}
		if b.TimeTaken != "" {
			a.TimeTaken = b.TimeTaken
		}
		if b.SearchQuery != "" {
			a.SearchQuery = b.SearchQuery
		}
		return a
	}

	sameField := func(a, b filter.Criteria) bool {
		return a.Status != "" && b.Status != "" || a.TimeTaken != "" && b.TimeTaken != ""
	}

	for i, a := range singles {
		for _, b := range singles[i+1:] {
			if sameField(a, b) {
				continue
			}
			combined := merge(a, b)

			inB := map[string]bool{}
			for _, p := range filter.Apply(sample(), b) {
				inB[p.ID] = true
			}
			want := []string{}
			for _, p := range filter.Apply(sample(), a) {
				if inB[p.ID] {
					want = append(want, p.ID)
				}
			}

			if got := ids(filter.Apply(sample(), combined)); !reflect.DeepEqual(got, want) {
				t.Errorf("Apply(%+v) = %v, want intersection %v", combined, got, want)
			}
		}
	}
}

func TestApply_SolvedOverFiveMinutes(t *testing.T) {
	t.Parallel()

	problems := []model.Problem{
		{ID: "a", TimeTaken: 2, Status: model.StatusSolved},
		{ID: "b", TimeTaken: 5, Status: model.StatusAttempted},
		{ID: "c", TimeTaken: 7, Status: model.StatusSolved},
	}

	got := filter.Apply(problems, filter.Criteria{Status: "Solved", TimeTaken: "5+", Difficulty: "all", Tag: "all"})
	if len(got) != 1 || got[0].ID != "c" {
		t.Errorf("Apply() = %v, want [c]", ids(got))
	}
}

func TestApply_SearchByTagOrTitle(t *testing.T) {
	t.Parallel()

	problems := []model.Problem{
		{ID: "tagged", ProblemTitle: "Contains Duplicate", Tags: []string{"array"}},
		{ID: "titled", ProblemTitle: "Array Partition", Tags: []string{"greedy"}},
		{ID: "neither", ProblemTitle: "Climbing Stairs", Tags: []string{"dynamic-programming"}},
	}

	got := ids(filter.Apply(problems, filter.Criteria{SearchQuery: "array"}))
	if !reflect.DeepEqual(got, []string{"tagged", "titled"}) {
		t.Errorf("Apply() = %v, want [tagged titled]", got)
	}
}

func TestApply_PureAndIdempotent(t *testing.T) {
	t.Parallel()

	problems := sample()
	before := sample()
	c := filter.Criteria{Difficulty: "Easy", SearchQuery: "a"}

	first := filter.Apply(problems, c)
	second := filter.Apply(problems, c)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated Apply differs: %v vs %v", ids(first), ids(second))
	}
	if !reflect.DeepEqual(problems, before) {
		t.Error("Apply mutated its input")
	}

	first[0].ProblemTitle = "changed"
	if problems[0].ProblemTitle != "Two Sum" {
		t.Error("result shares element storage with the input")
	}
}

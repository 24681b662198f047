package store

import (
	"context"
	"fmt"
	"leetcode_tracker/internal/client"
	"leetcode_tracker/internal/common"
	"leetcode_tracker/internal/domain/model"
	"leetcode_tracker/internal/platform/logging"
	"log/slog"
	"sync"
)

const missingTokenMessage = "Authentication token not found"

// ProblemAPI is the slice of the remote API the collection store needs.
type ProblemAPI interface {
	AddProblem(ctx context.Context, token string, problem model.Problem) (*model.Problem, error)
	ListProblems(ctx context.Context, token string) ([]model.Problem, error)
	ListTags(ctx context.Context, token string) ([]string, error)
}

// TokenSource yields the current session token, "" when there is none.
// *SessionStore implements it.
type TokenSource interface {
	Token() string
}

// CollectionState is a snapshot of the collection store.
type CollectionState struct {
	Problems []model.Problem
	Tags     []string
	Selected *model.Problem
	Loading  bool
	Error    string
}

// CollectionStore owns the user's problem records (in fetch/append order) and their tag
// vocabulary. The token is read once per call from the injected TokenSource.
type CollectionStore struct {
	api    ProblemAPI
	tokens TokenSource
	log    *slog.Logger

	mu    sync.RWMutex
	state CollectionState
}

func NewCollectionStore(api ProblemAPI, tokens TokenSource, logger *slog.Logger) *CollectionStore {
	if logger == nil {
		logger = logging.GetLogger("store.collection")
	}
	return &CollectionStore{api: api, tokens: tokens, log: logger}
}

// State returns a copy; callers may not mutate the store through it.
func (s *CollectionStore) State() CollectionState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := CollectionState{
		Problems: cloneProblems(s.state.Problems),
		Tags:     append([]string(nil), s.state.Tags...),
		Loading:  s.state.Loading,
		Error:    s.state.Error,
	}
	if s.state.Selected != nil {
		selected := s.state.Selected.Clone()
		snapshot.Selected = &selected
	}
	return snapshot
}

func (s *CollectionStore) update(fn func(st *CollectionState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
}

// token returns the current token or records the missing-token error.
func (s *CollectionStore) token() (string, error) {
	token := s.tokens.Token()
	if token == "" {
		s.update(func(st *CollectionState) { st.Error = missingTokenMessage })
		return "", common.ErrMissingAuthToken
	}

	s.update(func(st *CollectionState) {
		st.Loading = true
		st.Error = ""
	})
	return token, nil
}

func (s *CollectionStore) fail(err error, fallback string) {
	msg := client.Message(err, fallback)
	s.update(func(st *CollectionState) {
		st.Loading = false
		st.Error = msg
	})
}

// AddProblem stores a new record remotely and appends the server's copy to the collection.
func (s *CollectionStore) AddProblem(ctx context.Context, problem model.Problem) (*model.Problem, error) {
	token, err := s.token()
	if err != nil {
		return nil, fmt.Errorf("add problem: %w", err)
	}

	created, err := s.api.AddProblem(ctx, token, problem)
	if err != nil {
		s.log.WarnContext(ctx, "add problem failed", "problemId", problem.ProblemID, "error", err)
		s.fail(err, "Error adding problem")
		return nil, fmt.Errorf("add problem: %w", err)
	}

	s.update(func(st *CollectionState) {
		st.Problems = append(st.Problems, created.Clone())
		st.Loading = false
	})
	s.log.InfoContext(ctx, "problem added", "id", created.ID, "problemId", created.ProblemID)
	return created, nil
}

// GetProblems replaces the whole collection with the server's list. On failure the
// previous collection stays in place.
func (s *CollectionStore) GetProblems(ctx context.Context) ([]model.Problem, error) {
	token, err := s.token()
	if err != nil {
		return nil, fmt.Errorf("get problems: %w", err)
	}

	problems, err := s.api.ListProblems(ctx, token)
	if err != nil {
		s.log.WarnContext(ctx, "fetch problems failed", "error", err)
		s.fail(err, "Error fetching problems")
		return nil, fmt.Errorf("get problems: %w", err)
	}

	s.update(func(st *CollectionState) {
		st.Problems = cloneProblems(problems)
		st.Loading = false
	})
	s.log.DebugContext(ctx, "problems fetched", "count", len(problems))
	return problems, nil
}

// GetProblemsTags replaces the tag vocabulary with the server's list.
func (s *CollectionStore) GetProblemsTags(ctx context.Context) ([]string, error) {
	token, err := s.token()
	if err != nil {
		return nil, fmt.Errorf("get tags: %w", err)
	}

	tags, err := s.api.ListTags(ctx, token)
	if err != nil {
		s.log.WarnContext(ctx, "fetch tags failed", "error", err)
		s.fail(err, "Error fetching tags")
		return nil, fmt.Errorf("get tags: %w", err)
	}

	s.update(func(st *CollectionState) {
		st.Tags = append([]string(nil), tags...)
		st.Loading = false
	})
	return tags, nil
}

// SetSelectedProblem sets or clears (nil) the selected record.
func (s *CollectionStore) SetSelectedProblem(problem *model.Problem) {
	var selected *model.Problem
	if problem != nil {
		p := problem.Clone()
		selected = &p
	}
	s.update(func(st *CollectionState) { st.Selected = selected })
}

// cloneProblems copies records down to their tag slices, so the store never shares
// backing arrays with callers.
func cloneProblems(problems []model.Problem) []model.Problem {
	if problems == nil {
		return nil
	}
	out := make([]model.Problem, len(problems))
	for i := range problems {
		out[i] = problems[i].Clone()
	}
	return out
}

func (s *CollectionStore) ClearError() {
	s.update(func(st *CollectionState) { st.Error = "" })
}

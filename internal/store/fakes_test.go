package store_test

import (
	"context"
	"errors"
	"leetcode_tracker/internal/client"
	"leetcode_tracker/internal/domain/model"
	"leetcode_tracker/internal/platform/logging"
	"leetcode_tracker/internal/platform/tokenstore"
	"leetcode_tracker/internal/store"
	"net/http"
	"strconv"
	"sync"
)

var errTierDown = errors.New("tier down")

func rejected(op, msg string, kind error) error {
	return &client.RequestError{Op: op, StatusCode: http.StatusUnauthorized, Message: msg, Kind: kind}
}

// fakeAuthAPI implements store.AuthAPI.
type fakeAuthAPI struct {
	mu         sync.Mutex
	resp       *model.AuthResponse
	err        error
	validErr   error
	forgotErr  error
	calls      []string
	validated  []string
	block      chan struct{} // when set, Login waits on it
	loginEnter chan struct{}
}

func (f *fakeAuthAPI) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeAuthAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAuthAPI) Login(ctx context.Context, _, _ string) (*model.AuthResponse, error) {
	f.record("login")
	if f.block != nil {
		f.loginEnter <- struct{}{}
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.resp, f.err
}

func (f *fakeAuthAPI) Register(_ context.Context, _, _, _ string) (*model.AuthResponse, error) {
	f.record("register")
	return f.resp, f.err
}

func (f *fakeAuthAPI) ValidateToken(_ context.Context, token string) (*client.TokenStatus, error) {
	f.record("validate")
	f.mu.Lock()
	f.validated = append(f.validated, token)
	f.mu.Unlock()
	if f.validErr != nil {
		return nil, f.validErr
	}
	return &client.TokenStatus{Valid: true, UserID: "u1"}, nil
}

func (f *fakeAuthAPI) ForgotPassword(_ context.Context, _ string) error {
	f.record("forgot")
	return f.forgotErr
}

// fakeProblemAPI implements store.ProblemAPI.
type fakeProblemAPI struct {
	mu       sync.Mutex
	problems []model.Problem
	tags     []string
	err      error
	tokens   []string
	nextID   int
}

func (f *fakeProblemAPI) seen(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = append(f.tokens, token)
}

func (f *fakeProblemAPI) Tokens() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.tokens...)
}

func (f *fakeProblemAPI) AddProblem(_ context.Context, token string, p model.Problem) (*model.Problem, error) {
	f.seen(token)
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	f.nextID++
	p.ID = "srv-" + strconv.Itoa(f.nextID)
	f.mu.Unlock()
	return &p, nil
}

func (f *fakeProblemAPI) ListProblems(_ context.Context, token string) ([]model.Problem, error) {
	f.seen(token)
	if f.err != nil {
		return nil, f.err
	}
	return append([]model.Problem(nil), f.problems...), nil
}

func (f *fakeProblemAPI) ListTags(_ context.Context, token string) ([]string, error) {
	f.seen(token)
	if f.err != nil {
		return nil, f.err
	}
	return append([]string(nil), f.tags...), nil
}

// staticToken implements store.TokenSource.
type staticToken string

func (s staticToken) Token() string { return string(s) }

// brokenTier fails every operation.
type brokenTier struct{}

func (brokenTier) Get(context.Context) (string, bool, error) { return "", false, errTierDown }
func (brokenTier) Set(context.Context, string) error         { return errTierDown }
func (brokenTier) Remove(context.Context) error              { return errTierDown }

type tiers struct {
	durable *tokenstore.MemoryTier
	session *tokenstore.MemoryTier
}

func (tr tiers) get(tier *tokenstore.MemoryTier) string {
	token, _, _ := tier.Get(context.Background())
	return token
}

func newSessionStore(api store.AuthAPI) (*store.SessionStore, tiers) {
	tr := tiers{durable: tokenstore.NewMemoryTier(), session: tokenstore.NewMemoryTier()}
	policy := tokenstore.NewPolicy(tr.durable, tr.session)
	return store.NewSessionStore(api, policy, logging.Discard()), tr
}

var alice = &model.User{ID: "u1", Username: "alice", Email: "alice@example.com"}

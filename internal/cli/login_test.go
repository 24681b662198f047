package cli

import (
	"bytes"
	"context"
	"leetcode_tracker/internal/client"
	"leetcode_tracker/internal/platform/logging"
	"leetcode_tracker/internal/platform/tokenstore"
	"leetcode_tracker/internal/store"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// newBackend answers login and register with a token but no user record.
func newBackend(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	tokenOnly := func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token":"tok"}`))
	}
	mux.HandleFunc("/api/auth/login", tokenOnly)
	mux.HandleFunc("/api/auth/register", tokenOnly)
	mux.HandleFunc("/api/problems/all", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[]`))
	})
	mux.HandleFunc("/api/problems/tags", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[]`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestLoginWithoutUserRecord(t *testing.T) {
	t.Parallel()

	srv := newBackend(t)
	api := client.New(srv.URL, srv.Client(), 5*time.Second)
	policy := tokenstore.NewPolicy(tokenstore.NewMemoryTier(), tokenstore.NewMemoryTier())
	sessions := store.NewSessionStore(api, policy, logging.Discard())
	collection := store.NewCollectionStore(api, sessions, logging.Discard())

	out := &bytes.Buffer{}
	c := NewCLI(sessions, collection, nil, out)
	ctx := context.Background()

	if err := c.ExecuteCommand(ctx, []string{"login", "a@b.c", "pw"}); err != nil {
		t.Fatalf("login error = %v", err)
	}
	if !strings.Contains(out.String(), "Logged in as a@b.c") {
		t.Errorf("output = %q, want fallback to the email", out.String())
	}
	if st := sessions.State(); !st.IsAuthenticated || st.User != nil {
		t.Errorf("session = %+v, want authenticated without user", st)
	}
	if got := c.Prompt(); got != "tracker*> " {
		t.Errorf("Prompt() = %q", got)
	}

	out.Reset()
	if err := c.ExecuteCommand(ctx, []string{"register", "bob", "bob@example.com", "pw"}); err != nil {
		t.Fatalf("register error = %v", err)
	}
	if !strings.Contains(out.String(), "Welcome, bob") {
		t.Errorf("output = %q, want fallback to the username", out.String())
	}

	out.Reset()
	if err := c.ExecuteCommand(ctx, []string{"whoami"}); err != nil || !strings.Contains(out.String(), "user details unavailable") {
		t.Errorf("whoami = %q, %v", out.String(), err)
	}
}

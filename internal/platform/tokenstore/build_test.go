package tokenstore_test

import (
	"context"
	"leetcode_tracker/internal/platform/config"
	"leetcode_tracker/internal/platform/tokenstore"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func TestFromConfig(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mr := miniredis.RunT(t)

	tests := []struct {
		name    string
		cfg     config.Config
		wantErr bool
	}{
		{name: "file backend", cfg: config.Config{TokenBackend: config.TokenBackendFile, TokenDir: t.TempDir(), APIBaseURL: "http://localhost:8080"}},
		{name: "redis backend", cfg: config.Config{TokenBackend: config.TokenBackendRedis, RedisAddr: mr.Addr(), TokenRedisKeyBase: "t", APIBaseURL: "http://localhost:8080"}},
		{name: "unknown backend", cfg: config.Config{TokenBackend: "etcd"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			policy, closer, err := tokenstore.FromConfig(ctx, &tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("FromConfig() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("FromConfig() error = %v", err)
			}
			defer closer()

			if err := policy.Persist(ctx, "tok", true); err != nil {
				t.Fatalf("Persist() error = %v", err)
			}
			if got, ok, _ := policy.Read(ctx); !ok || got != "tok" {
				t.Errorf("Read() = %q, %v", got, ok)
			}
		})
	}
}

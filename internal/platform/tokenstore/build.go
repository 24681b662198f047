package tokenstore

import (
	"context"
	"fmt"
	"leetcode_tracker/internal/platform/config"
	"leetcode_tracker/internal/platform/kv"
)

// FromConfig builds the retention policy selected by cfg.TokenBackend.
// The returned closer releases any connection the tiers hold.
func FromConfig(ctx context.Context, cfg *config.Config) (*Policy, func() error, error) {
	switch cfg.TokenBackend {
	case config.TokenBackendFile, "":
		durable := NewFileTier(cfg.TokenDir, TokenFileName(cfg.APIBaseURL))
		return NewPolicy(durable, NewMemoryTier()), func() error { return nil }, nil

	case config.TokenBackendRedis:
		rdb, err := kv.ConnectRedis(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		base := cfg.TokenRedisKeyBase + ":" + TokenFileName(cfg.APIBaseURL)
		policy := NewPolicy(
			NewRedisTier(rdb, base+":durable", 0),
			NewRedisTier(rdb, base+":session", cfg.TokenSessionTTL),
		)
		return policy, rdb.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown token backend %q", cfg.TokenBackend)
	}
}

// Package tokenstore keeps the session token in one of two retention tiers:
// durable (survives restarts) and session-scoped.
package tokenstore

import (
	"context"
	"errors"
	"fmt"
)

// Tier is a single slot holding at most one token.
type Tier interface {
	// Get returns the stored token and whether one was present.
	Get(ctx context.Context) (string, bool, error)
	Set(ctx context.Context, token string) error
	// Remove deletes the token. Removing an empty slot is not an error.
	Remove(ctx context.Context) error
}

// Policy decides which tier a token goes to. It is the only writer of both tiers.
type Policy struct {
	Durable Tier
	Session Tier
}

func NewPolicy(durable, session Tier) *Policy {
	return &Policy{Durable: durable, Session: session}
}

// Persist writes token to the durable tier when durable is true, else to the session tier.
// The other tier is left untouched.
func (p *Policy) Persist(ctx context.Context, token string, durable bool) error {
	tier, name := p.Session, "session"
	if durable {
		tier, name = p.Durable, "durable"
	}
	if err := tier.Set(ctx, token); err != nil {
		return fmt.Errorf("persist token to %s tier: %w", name, err)
	}
	return nil
}

// Read returns the durable token if present, otherwise the session token.
func (p *Policy) Read(ctx context.Context) (string, bool, error) {
	token, ok, durableErr := p.Durable.Get(ctx)
	if durableErr == nil && ok && token != "" {
		return token, true, nil
	}

	token, ok, err := p.Session.Get(ctx)
	if err != nil {
		return "", false, errors.Join(wrapTier("durable", durableErr), wrapTier("session", err))
	}
	if ok && token != "" {
		return token, true, nil
	}
	if durableErr != nil {
		return "", false, wrapTier("durable", durableErr)
	}
	return "", false, nil
}

// Clear removes the token from both tiers, attempting both even if the first fails.
func (p *Policy) Clear(ctx context.Context) error {
	return errors.Join(
		wrapTier("durable", p.Durable.Remove(ctx)),
		wrapTier("session", p.Session.Remove(ctx)),
	)
}

func wrapTier(name string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s tier: %w", name, err)
}

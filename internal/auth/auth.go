// Package auth provides the admin capability check. The core never reads
// ambient session state; callers carry an explicit Context built at the
// boundary and the gate decides from that alone.
package auth

import (
	"crypto/subtle"

	"github.com/aishnaga/cookie-ordering-system-2026/internal/model"
)

// Context is the capability claim attached to a request.
type Context struct {
	Admin bool
}

// Gate checks capability claims for admin-gated operations.
type Gate struct {
	adminToken string
}

// NewGate returns a gate that grants the admin capability to bearers of
// the configured token. An empty token disables admin access entirely.
func NewGate(adminToken string) *Gate {
	return &Gate{adminToken: adminToken}
}

// ContextForToken builds the capability claim for a presented token.
func (g *Gate) ContextForToken(token string) Context {
	if g.adminToken == "" || token == "" {
		return Context{}
	}
	ok := subtle.ConstantTimeCompare([]byte(token), []byte(g.adminToken)) == 1
	return Context{Admin: ok}
}

// Check returns ErrUnauthorized unless ctx carries the admin capability.
func (g *Gate) Check(ctx Context) error {
	if !ctx.Admin {
		return model.ErrUnauthorized
	}
	return nil
}

// Package identity reads the caller identity forwarded by the upstream
// identity provider. Authentication itself happens upstream.
package identity

import (
	"context"
	"net/http"
	"strings"
)

const (
	HeaderUserID    = "X-User-ID"
	HeaderUserRole  = "X-User-Role"
	HeaderSessionID = "X-Session-ID"

	RoleAdmin = "admin"
)

type Principal struct {
	UserID    string
	Role      string
	SessionID string
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

func (p Principal) Authenticated() bool {
	return p.UserID != ""
}

type ctxKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// FromContext returns the request principal; the zero Principal is anonymous.
func FromContext(ctx context.Context) Principal {
	p, _ := ctx.Value(ctxKey{}).(Principal)
	return p
}

// FromRequest builds a Principal from the forwarded headers. The session id
// falls back to the user id when the provider sends none.
func FromRequest(r *http.Request) Principal {
	p := Principal{
		UserID:    strings.TrimSpace(r.Header.Get(HeaderUserID)),
		Role:      strings.ToLower(strings.TrimSpace(r.Header.Get(HeaderUserRole))),
		SessionID: strings.TrimSpace(r.Header.Get(HeaderSessionID)),
	}
	if p.SessionID == "" {
		p.SessionID = p.UserID
	}
	return p
}

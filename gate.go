package folio

import (
	"context"

	"github.com/eringen/folio/content"
)

// Gate decides whether the caller behind ctx is the authenticated owner.
// Every mutating service call consults it before touching storage.
type Gate interface {
	OwnerAuthenticated(ctx context.Context) bool
}

// GateFunc adapts a function to Gate.
type GateFunc func(ctx context.Context) bool

func (f GateFunc) OwnerAuthenticated(ctx context.Context) bool { return f(ctx) }

// ContextGate trusts the capabilities the session middleware stored in the
// request context.
var ContextGate Gate = GateFunc(func(ctx context.Context) bool {
	return content.CapabilitiesFrom(ctx).Owner
})

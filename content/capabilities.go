package content

import "context"

// Capabilities is what the current requester may do. Views receive it as an
// explicit argument; services read it from the request context.
type Capabilities struct {
	Owner bool
	// OwnerName is the display name of the signed-in owner, if any.
	OwnerName string
}

// Visitor is the capability set of an anonymous reader.
var Visitor = Capabilities{}

// CanEdit reports whether add/edit/delete affordances may be shown.
func (c Capabilities) CanEdit() bool { return c.Owner }

type capsKey struct{}

// WithCapabilities returns a copy of ctx carrying caps.
func WithCapabilities(ctx context.Context, caps Capabilities) context.Context {
	return context.WithValue(ctx, capsKey{}, caps)
}

// CapabilitiesFrom returns the capabilities stored in ctx, or Visitor.
func CapabilitiesFrom(ctx context.Context) Capabilities {
	caps, ok := ctx.Value(capsKey{}).(Capabilities)
	if !ok {
		return Visitor
	}
	return caps
}

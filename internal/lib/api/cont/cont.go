package cont

import (
	"context"

	"SchoolDesk/entity"
)

type contextKey string

const principalKey contextKey = "principal"

// PutPrincipal attaches the authenticated principal to the request context.
func PutPrincipal(ctx context.Context, p *entity.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// Principal returns the authenticated principal, or nil when the request
// never passed the authenticate middleware.
func Principal(ctx context.Context) *entity.Principal {
	p, _ := ctx.Value(principalKey).(*entity.Principal)
	return p
}

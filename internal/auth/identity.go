package auth

import (
	"context"

	"github.com/heartmarshall/regaudit-backend/internal/domain"
	"github.com/heartmarshall/regaudit-backend/pkg/ctxutil"
)

// RequesterFromCtx rebuilds the requester stored in ctx by the auth
// middleware. ok is false for anonymous requests. An unknown role is
// downgraded to user.
func RequesterFromCtx(ctx context.Context) (domain.Requester, bool) {
	id, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return domain.Requester{}, false
	}

	role := domain.UserRole(id.Role)
	if !role.IsValid() {
		role = domain.UserRoleUser
	}
	return domain.Requester{ID: id.UserID, Role: role}, true
}

// WithRequester stores r in ctx the way the auth middleware does.
func WithRequester(ctx context.Context, r domain.Requester) context.Context {
	return ctxutil.WithIdentity(ctx, ctxutil.Identity{UserID: r.ID, Role: string(r.Role)})
}

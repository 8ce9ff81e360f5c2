package common

import "context"

type ctxKey string

const identityKey ctxKey = "auth/identity"

// Role values carried in access tokens.
const (
	RoleCustomer = "customer"
	RoleStore    = "store"
	RoleAdmin    = "admin"
	RoleShipper  = "shipper"
)

// Identity is the authenticated caller.
type Identity struct {
	UserID string
	Role   string
}

// WithIdentity stores the authenticated caller on the provided context.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFrom extracts the authenticated caller from the context if present.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	if !ok || id.UserID == "" {
		return Identity{}, false
	}
	return id, true
}

// UserID extracts the authenticated user identifier from the context if present.
func UserID(ctx context.Context) (string, bool) {
	id, ok := IdentityFrom(ctx)
	if !ok {
		return "", false
	}
	return id.UserID, true
}

package handler

import "context"

// User is the authenticated principal, as far as permissions care.
type User interface {
	IsAuthenticated() bool
	IsStaff() bool
}

// AnonymousUser is the user of requests nobody authenticated.
type AnonymousUser struct{}

func (AnonymousUser) IsAuthenticated() bool { return false }
func (AnonymousUser) IsStaff() bool         { return false }

var userKey = NewContextKey("user")

// WithUser stores u in ctx. Authentication middleware calls it once the
// credentials check out.
func WithUser(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// UserFromContext returns the stored user, or AnonymousUser.
func UserFromContext(ctx context.Context) User {
	if u, ok := ContextValueOK[User](ctx, userKey); ok && u != nil {
		return u
	}
	return AnonymousUser{}
}

package handler

import "github.com/dmitrymomot/restkit/core"

// Permission decides whether a request may reach the handler.
type Permission interface {
	HasPermission(r *Request) bool
}

// PermissionFunc adapts a function to Permission.
type PermissionFunc func(r *Request) bool

func (f PermissionFunc) HasPermission(r *Request) bool { return f(r) }

var (
	// AllowAny grants every request.
	AllowAny Permission = PermissionFunc(func(*Request) bool { return true })

	// IsAuthenticated grants requests made by an authenticated user.
	IsAuthenticated Permission = PermissionFunc(func(r *Request) bool {
		return r.User().IsAuthenticated()
	})

	// IsAdminUser grants requests made by a staff user.
	IsAdminUser Permission = PermissionFunc(func(r *Request) bool {
		return r.User().IsStaff()
	})

	// IsAuthenticatedOrReadOnly grants safe methods to everyone and the rest
	// to authenticated users.
	IsAuthenticatedOrReadOnly Permission = PermissionFunc(func(r *Request) bool {
		return r.IsSafe() || r.User().IsAuthenticated()
	})
)

type messagePermission struct {
	Permission
	message string
}

func (p messagePermission) Message() string { return p.message }

// WithMessage makes a denial by p report message instead of the default.
func WithMessage(p Permission, message string) Permission {
	return messagePermission{Permission: p, message: message}
}

// CheckPermissions returns a core.ErrPermissionDenied error unless every
// permission grants r. The first denial wins.
func CheckPermissions(r *Request, perms ...Permission) error {
	for _, p := range perms {
		if p.HasPermission(r) {
			continue
		}
		if m, ok := p.(interface{ Message() string }); ok {
			return core.PermissionDenied(m.Message())
		}
		return core.ErrPermissionDenied
	}
	return nil
}

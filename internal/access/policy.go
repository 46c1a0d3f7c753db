// Package access decides who may call an endpoint.
package access

import "net/http"

// Policy is a permission rule evaluated per request
type Policy int

const (
	AllowAny Policy = iota
	AdminOrReadOnly
	AuthenticatedOrReadOnly
	Authenticated
	AdminOnly
	SuperuserOnly
	OwnerOrAdmin
)

func (p Policy) String() string {
	switch p {
	case AllowAny:
		return "allow_any"
	case AdminOrReadOnly:
		return "admin_or_read_only"
	case AuthenticatedOrReadOnly:
		return "authenticated_or_read_only"
	case Authenticated:
		return "authenticated"
	case AdminOnly:
		return "admin_only"
	case SuperuserOnly:
		return "superuser_only"
	case OwnerOrAdmin:
		return "owner_or_admin"
	}
	return "unknown"
}

// Decision is the result of evaluating a policy
type Decision int

const (
	Allow Decision = iota
	Unauthenticated
	Forbidden
)

// Status maps a denial to its HTTP status
func (d Decision) Status() int {
	switch d {
	case Unauthenticated:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	}
	return http.StatusOK
}

// Message is the error text for a denial
func (d Decision) Message() string {
	switch d {
	case Unauthenticated:
		return "Authentication credentials were not provided."
	case Forbidden:
		return "You do not have permission to perform this action."
	}
	return ""
}

// Actor is the caller as seen by policies; nil-safe zero value is anonymous
type Actor struct {
	UserID      uint
	IsStaff     bool
	IsSuperuser bool
}

// Authenticated reports whether a user is attached
func (a *Actor) Authenticated() bool {
	return a != nil && a.UserID != 0
}

func (a *Actor) staff() bool {
	return a.Authenticated() && (a.IsStaff || a.IsSuperuser)
}

// IsSafeMethod reports whether method only reads
func IsSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// Evaluate applies p to actor for method
// ownerID is only consulted by OwnerOrAdmin; 0 means no owner
func Evaluate(p Policy, actor *Actor, method string, ownerID uint) Decision {
	switch p {
	case AllowAny:
		return Allow
	case AdminOrReadOnly:
		if IsSafeMethod(method) {
			return Allow
		}
		return requireStaff(actor)
	case AuthenticatedOrReadOnly:
		if IsSafeMethod(method) || actor.Authenticated() {
			return Allow
		}
		return Unauthenticated
	case Authenticated:
		if actor.Authenticated() {
			return Allow
		}
		return Unauthenticated
	case AdminOnly:
		return requireStaff(actor)
	case SuperuserOnly:
		if !actor.Authenticated() {
			return Unauthenticated
		}
		if actor.IsSuperuser {
			return Allow
		}
		return Forbidden
	case OwnerOrAdmin:
		if IsSafeMethod(method) {
			return Allow
		}
		if !actor.Authenticated() {
			return Unauthenticated
		}
		if actor.staff() || (ownerID != 0 && ownerID == actor.UserID) {
			return Allow
		}
		return Forbidden
	}
	return Forbidden
}

func requireStaff(actor *Actor) Decision {
	if !actor.Authenticated() {
		return Unauthenticated
	}
	if actor.staff() {
		return Allow
	}
	return Forbidden
}

// Package guard decides whether a view may be shown for the current
// session state. Decisions are pure data so any shell (TUI today,
// something else tomorrow) can act on them, and so they are trivially
// testable without a UI mounted.
package guard

import "capital-portal/internal/store"

// Decision is the outcome of a guard check.
type Decision int

const (
	// Allow renders the requested view.
	Allow Decision = iota
	// Hold keeps the current view until the startup session check
	// resolves. Redirecting before it resolves would bounce a returning
	// user with a valid persisted token through the login screen.
	Hold
	// RedirectLogin sends an unauthenticated user to the sign-in view.
	// The caller should remember the requested destination so sign-in
	// can return there.
	RedirectLogin
	// RedirectHome sends a signed-in but unauthorized user to the home
	// view.
	RedirectHome
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case Hold:
		return "hold"
	case RedirectLogin:
		return "redirect-login"
	case RedirectHome:
		return "redirect-home"
	default:
		return "unknown"
	}
}

// SignedIn gates views that require any authenticated session.
func SignedIn(auth store.AuthState) Decision {
	if auth.InitialLoading {
		return Hold
	}
	if !auth.IsAuthenticated {
		return RedirectLogin
	}
	return Allow
}

// Admin gates views that require an administrator session. An
// unauthenticated visitor is sent to sign in; a signed-in non-admin is
// sent home rather than to the login screen, since signing in again
// would not help.
func Admin(auth store.AuthState) Decision {
	if auth.InitialLoading {
		return Hold
	}
	if !auth.IsAuthenticated {
		return RedirectLogin
	}
	if !auth.IsAdmin {
		return RedirectHome
	}
	return Allow
}

// Anonymous gates views meant for signed-out users (sign-in, register).
// A signed-in user is sent home instead of being shown a login form.
func Anonymous(auth store.AuthState) Decision {
	if auth.InitialLoading {
		return Hold
	}
	if auth.IsAuthenticated {
		return RedirectHome
	}
	return Allow
}

package guard

// Session is the slice of the session store a navigation decision needs.
type Session interface {
	Pending() bool
	Authenticated() bool
	IsAdmin() bool
}

// Decision is the outcome of evaluating a guarded navigation.
type Decision int

const (
	// Loading: session bootstrap has not finished; render a placeholder.
	Loading Decision = iota
	// RedirectLogin: unauthenticated; send the user to the login screen.
	RedirectLogin
	// RedirectHome: authenticated but not admin on an admin-only route.
	RedirectHome
	// Allow: admit the navigation.
	Allow
)

func (d Decision) String() string {
	switch d {
	case Loading:
		return "loading"
	case RedirectLogin:
		return "redirect-login"
	case RedirectHome:
		return "redirect-home"
	case Allow:
		return "allow"
	default:
		return "unknown"
	}
}

// Protect is the stateless predicate evaluated per navigation for routes
// that require an authenticated session.
func Protect(s Session) Decision {

	if s.Pending() {
		return Loading
	}

	if !s.Authenticated() {
		return RedirectLogin
	}

	return Allow
}

// ProtectAdmin additionally requires the admin flag, redirecting signed-in
// non-admins home.
func ProtectAdmin(s Session) Decision {

	if decision := Protect(s); decision != Allow {
		return decision
	}

	if !s.IsAdmin() {
		return RedirectHome
	}

	return Allow
}

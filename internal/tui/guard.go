// ABOUTME: Screen access rules based on session state
// ABOUTME: Decides redirects instead of letting screens render half-broken

package tui

// Requirement describes what session state a screen needs
type Requirement int

const (
	// RequireNone screens render for everyone
	RequireNone Requirement = iota
	// RequireAuth screens need a logged-in session
	RequireAuth
	// RequireAnon screens only make sense logged out
	RequireAnon
)

// requirements maps each screen to its session requirement. Evaluated at
// routing time, so a session expiring mid-flight redirects on the next
// navigation rather than crashing a render.
var requirements = map[Screen]Requirement{
	ScreenMenu:      RequireNone,
	ScreenBrowse:    RequireNone,
	ScreenDetail:    RequireNone,
	ScreenLogin:     RequireAnon,
	ScreenSignup:    RequireAnon,
	ScreenHire:      RequireAuth,
	ScreenPublish:   RequireAuth,
	ScreenDashboard: RequireAuth,
}

// Verdict is the outcome of a guard check
type Verdict int

const (
	// Allow lets the navigation through
	Allow Verdict = iota
	// RedirectLogin sends the user to the login screen first
	RedirectLogin
	// RedirectDashboard bounces an already-authenticated user to their dashboard
	RedirectDashboard
)

// CheckAccess evaluates the guard for a screen against the session state
func CheckAccess(screen Screen, loggedIn bool) Verdict {
	switch requirements[screen] {
	case RequireAuth:
		if !loggedIn {
			return RedirectLogin
		}
	case RequireAnon:
		if loggedIn {
			return RedirectDashboard
		}
	}
	return Allow
}

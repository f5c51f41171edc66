// ABOUTME: Tests for screen access rules
// ABOUTME: Covers every screen against both session states

package tui

import "testing"

func TestCheckAccess(t *testing.T) {
	tests := []struct {
		name     string
		screen   Screen
		loggedIn bool
		want     Verdict
	}{
		{"menu always allowed", ScreenMenu, false, Allow},
		{"browse without session", ScreenBrowse, false, Allow},
		{"browse with session", ScreenBrowse, true, Allow},
		{"detail without session", ScreenDetail, false, Allow},
		{"login while logged out", ScreenLogin, false, Allow},
		{"login while logged in", ScreenLogin, true, RedirectDashboard},
		{"signup while logged in", ScreenSignup, true, RedirectDashboard},
		{"hire while logged out", ScreenHire, false, RedirectLogin},
		{"hire while logged in", ScreenHire, true, Allow},
		{"publish while logged out", ScreenPublish, false, RedirectLogin},
		{"dashboard while logged out", ScreenDashboard, false, RedirectLogin},
		{"dashboard while logged in", ScreenDashboard, true, Allow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckAccess(tt.screen, tt.loggedIn); got != tt.want {
				t.Errorf("CheckAccess(%d, %v) = %d, want %d", tt.screen, tt.loggedIn, got, tt.want)
			}
		})
	}
}

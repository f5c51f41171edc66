// ABOUTME: Tests for the credential form validators and cancel behavior
// ABOUTME: Form field internals are exercised through the validator functions

package authform

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email   string
		wantErr bool
	}{
		{"reader@example.com", false},
		{"  reader@example.com  ", false},
		{"not-an-email", true},
		{"", true},
	}

	for _, tt := range tests {
		err := validateEmail(tt.email)
		if (err != nil) != tt.wantErr {
			t.Errorf("validateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if err := validatePassword("short"); err == nil {
		t.Error("expected error for a five-character password")
	}
	if err := validatePassword("longenough"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateRequired(t *testing.T) {
	v := validateRequired("username")
	if err := v("   "); err == nil {
		t.Error("expected error for blank value")
	}
	if err := v("olosko"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestEscCancels(t *testing.T) {
	f := New(ModeLogin)
	_, cmd := f.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected a command from esc")
	}
	if _, ok := cmd().(CancelledMsg); !ok {
		t.Fatalf("expected CancelledMsg, got %T", cmd())
	}
}

func TestSetErrorRearmsForm(t *testing.T) {
	f := New(ModeLogin)
	f.SetBusy()
	f.SetError("Invalid email or password.")
	if f.busy {
		t.Error("expected busy cleared after SetError")
	}
	if f.errText == "" {
		t.Error("expected error text retained for the next render")
	}
}

package prompt

import (
	"strings"
	"testing"
)

func TestTextInputModel_Enter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		value    string
		validate func(string) error
		wantDone bool
		wantErr  bool
	}{
		{"no validation", "", nil, true, false},
		{"valid", "fix parser", NotEmpty("commit message"), true, false},
		{"blank rejected", "   ", NotEmpty("commit message"), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := newTextInputModel("Message:", TextInputOptions{Validate: tt.validate})
			m.textInput.SetValue(tt.value)

			updated, cmd := m.Update(keyPress("enter"))
			um := updated.(textInputModel)

			if um.done != tt.wantDone {
				t.Errorf("done = %v, want %v", um.done, tt.wantDone)
			}
			if (um.err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", um.err, tt.wantErr)
			}
			if (cmd != nil) != tt.wantDone {
				t.Errorf("cmd nil = %v, want quit = %v", cmd == nil, tt.wantDone)
			}
		})
	}
}

func TestTextInputModel_ValidationErrorShown(t *testing.T) {
	t.Parallel()

	m := newTextInputModel("Message:", TextInputOptions{Validate: NotEmpty("commit message")})
	updated, _ := m.Update(keyPress("enter"))
	view := updated.(textInputModel).render()
	if !strings.Contains(view, "commit message must not be empty") {
		t.Errorf("expected validation error in view, got %q", view)
	}
}

func TestTextInputModel_Cancel(t *testing.T) {
	t.Parallel()

	for _, key := range []string{"esc", "ctrl+c"} {
		m := newTextInputModel("Message:", TextInputOptions{})
		updated, cmd := m.Update(keyPress(key))
		um := updated.(textInputModel)
		if !um.cancelled || !um.done || cmd == nil {
			t.Errorf("%s: cancelled=%v done=%v cmd=%v", key, um.cancelled, um.done, cmd != nil)
		}
	}
}

func TestNotEmpty(t *testing.T) {
	t.Parallel()

	v := NotEmpty("branch name")
	if err := v(""); err == nil || err.Error() != "branch name must not be empty" {
		t.Errorf("NotEmpty(\"\") = %v", err)
	}
	if err := v("main"); err != nil {
		t.Errorf("NotEmpty(main) = %v", err)
	}
}

package login

import "testing"

func TestPresent(t *testing.T) {
	testCases := map[string]struct {
		outcome Outcome
		text    string
		class   string
	}{
		"valid shows logged in with success style": {
			outcome: OutcomeValid,
			text:    "You are logged in",
			class:   StyleSuccess,
		},
		"invalid shows error message with error style": {
			outcome: OutcomeInvalid,
			text:    "Invalid username or password",
			class:   StyleError,
		},
		"empty shows prompt with error style": {
			outcome: OutcomeEmpty,
			text:    "Please enter both username and password",
			class:   StyleError,
		},
		"unknown outcome presents as blank": {
			outcome: Outcome("bogus"),
			text:    "",
			class:   StyleNone,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			got := Present(tc.outcome)
			if got.Text != tc.text {
				t.Errorf("Present(%q).Text = %q, want %q", tc.outcome, got.Text, tc.text)
			}
			if got.StyleClass != tc.class {
				t.Errorf("Present(%q).StyleClass = %q, want %q", tc.outcome, got.StyleClass, tc.class)
			}
		})
	}
}

// TestScenarioTable walks the full validate-then-present pipeline for
// the canonical fixture inputs.
func TestScenarioTable(t *testing.T) {
	v := NewValidator("user", "user")

	scenarios := []struct {
		username string
		password string
		text     string
		class    string
	}{
		{"user", "user", "You are logged in", StyleSuccess},
		{"wrong", "wrong", "Invalid username or password", StyleError},
		{"", "", "Please enter both username and password", StyleError},
		{"user", "", "Please enter both username and password", StyleError},
		{"User", "user", "Invalid username or password", StyleError},
	}

	for _, sc := range scenarios {
		display := Present(v.Evaluate(sc.username, sc.password))
		if display.Text != sc.text || display.StyleClass != sc.class {
			t.Errorf("(%q, %q): got (%q, %q), want (%q, %q)",
				sc.username, sc.password, display.Text, display.StyleClass, sc.text, sc.class)
		}
	}
}

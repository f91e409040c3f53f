package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/dstokesj/loginbench/internal/login"
)

func testHandlers(t *testing.T) *Handlers {
	t.Helper()
	return NewHandlers(login.NewValidator("user", "user"), zap.NewNop())
}

func TestLoginPageRendersAddressableElements(t *testing.T) {
	h := testHandlers(t)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	h.Login(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	body := w.Body.String()
	// The element addressing contract: form, both fields, submit control,
	// and the status region, each stably identifiable.
	for _, want := range []string{
		`id="login-form"`,
		`id="username"`,
		`id="password"`,
		`id="login-button"`,
		`id="status-message"`,
		`data-testid="login-form"`,
		`data-testid="username"`,
		`data-testid="password"`,
		`data-testid="login-button"`,
		`data-testid="status-message"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("login page missing %s", want)
		}
	}

	// Initial state: status region present but blank.
	if strings.Contains(body, login.MsgValid) || strings.Contains(body, login.MsgInvalid) || strings.Contains(body, login.MsgEmpty) {
		t.Error("initial page should not show any outcome message")
	}
}

func TestSubmitRendersOutcome(t *testing.T) {
	h := testHandlers(t)

	testCases := map[string]struct {
		form  string
		text  string
		class string
	}{
		"valid credentials": {
			form:  "username=user&password=user",
			text:  login.MsgValid,
			class: `class="success"`,
		},
		"invalid credentials": {
			form:  "username=wrong&password=wrong",
			text:  login.MsgInvalid,
			class: `class="error"`,
		},
		"missing password": {
			form:  "username=user&password=",
			text:  login.MsgEmpty,
			class: `class="error"`,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/", strings.NewReader(tc.form))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			w := httptest.NewRecorder()
			h.Submit(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", w.Code)
			}

			body := w.Body.String()
			if !strings.Contains(body, tc.text) {
				t.Errorf("body missing message %q", tc.text)
			}
			if !strings.Contains(body, tc.class) {
				t.Errorf("body missing style %s", tc.class)
			}
		})
	}
}

// TestSubmitEscapesUserInput verifies that a user-supplied username is
// escaped before being written back into the page.
func TestSubmitEscapesUserInput(t *testing.T) {
	h := testHandlers(t)

	req := httptest.NewRequest("POST", "/", strings.NewReader(`username=<script>alert(1)</script>&password=x`))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.Submit(w, req)

	body := w.Body.String()
	if strings.Contains(body, "<script>alert(1)</script>") {
		t.Error("user input reached the page unescaped")
	}
	if !strings.Contains(body, "&lt;script&gt;") {
		t.Error("expected escaped username to be repopulated")
	}
}

func TestAPILogin(t *testing.T) {
	h := testHandlers(t)

	testCases := map[string]struct {
		payload string
		outcome login.Outcome
		text    string
		class   string
	}{
		"valid credentials": {
			payload: `{"username":"user","password":"user"}`,
			outcome: login.OutcomeValid,
			text:    login.MsgValid,
			class:   login.StyleSuccess,
		},
		"wrong credentials": {
			payload: `{"username":"wrong","password":"wrong"}`,
			outcome: login.OutcomeInvalid,
			text:    login.MsgInvalid,
			class:   login.StyleError,
		},
		"case-sensitive comparison": {
			payload: `{"username":"User","password":"user"}`,
			outcome: login.OutcomeInvalid,
			text:    login.MsgInvalid,
			class:   login.StyleError,
		},
		"blank fields": {
			payload: `{"username":"","password":""}`,
			outcome: login.OutcomeEmpty,
			text:    login.MsgEmpty,
			class:   login.StyleError,
		},
		"whitespace-only fields": {
			payload: `{"username":"   ","password":"  "}`,
			outcome: login.OutcomeEmpty,
			text:    login.MsgEmpty,
			class:   login.StyleError,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/login", strings.NewReader(tc.payload))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			h.APILogin(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", w.Code)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q, want application/json", ct)
			}

			var resp struct {
				Outcome    login.Outcome `json:"outcome"`
				Text       string        `json:"text"`
				StyleClass string        `json:"styleClass"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}

			if resp.Outcome != tc.outcome {
				t.Errorf("outcome = %q, want %q", resp.Outcome, tc.outcome)
			}
			if resp.Text != tc.text {
				t.Errorf("text = %q, want %q", resp.Text, tc.text)
			}
			if resp.StyleClass != tc.class {
				t.Errorf("styleClass = %q, want %q", resp.StyleClass, tc.class)
			}
		})
	}
}

func TestAPILoginBadBody(t *testing.T) {
	h := testHandlers(t)

	req := httptest.NewRequest("POST", "/api/login", strings.NewReader("not json"))
	w := httptest.NewRecorder()
	h.APILogin(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

package harness

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/dstokesj/loginbench/internal/models"
)

var csrfField = regexp.MustCompile(`name="csrf_token" value="([^"]+)"`)

// FormDriver exercises the plain form-post path over HTTP, without a
// browser. It is the driver behind --no-browser mode and keeps scenario
// runs possible on hosts with no Chromium install.
type FormDriver struct {
	client *http.Client
}

func NewFormDriver(timeout time.Duration) (*FormDriver, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &FormDriver{
		client: &http.Client{Jar: jar, Timeout: timeout},
	}, nil
}

func (d *FormDriver) Run(ctx context.Context, baseURL string, sc models.Scenario) error {
	var (
		fields    = url.Values{}
		csrfToken string
		lastBody  string
	)

	for _, step := range sc.Steps {
		switch step.Action {
		case models.StepNavigate:
			target, err := resolveTarget(baseURL, step.Value)
			if err != nil {
				return err
			}
			body, err := d.get(ctx, target)
			if err != nil {
				return err
			}
			lastBody = body
			if m := csrfField.FindStringSubmatch(body); m != nil {
				csrfToken = m[1]
			}
		case models.StepFill:
			name := strings.TrimPrefix(step.Selector, "#")
			fields.Set(name, step.Value)
		case models.StepClick:
			if csrfToken != "" {
				fields.Set("csrf_token", csrfToken)
			}
			body, err := d.post(ctx, baseURL, fields)
			if err != nil {
				return err
			}
			lastBody = body
		default:
			return fmt.Errorf("unknown action: %s", step.Action)
		}
	}

	for _, a := range sc.Assertions {
		if err := assertBody(lastBody, a); err != nil {
			return err
		}
	}
	return nil
}

func (d *FormDriver) get(ctx context.Context, target string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", err
	}
	return d.do(req)
}

func (d *FormDriver) post(ctx context.Context, target string, fields url.Values) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(fields.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return d.do(req)
}

func (d *FormDriver) do(req *http.Request) (string, error) {
	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s %s: %w", req.Method, req.URL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s %s: status %d", req.Method, req.URL, resp.StatusCode)
	}
	return string(body), nil
}

// assertBody checks an assertion against the last rendered page. Matching is
// textual: the status region is located by its id and its rendered text and
// class attribute are compared.
func assertBody(body string, a models.Assertion) error {
	if body == "" {
		return fmt.Errorf("%s: no page rendered before assertion", a.Selector)
	}

	id := strings.TrimPrefix(a.Selector, "#")
	el := regexp.MustCompile(`(?s)<[^>]*id="` + regexp.QuoteMeta(id) + `"[^>]*>(.*?)</`)
	m := el.FindStringSubmatch(body)
	if m == nil {
		return fmt.Errorf("element not found: %s", a.Selector)
	}

	tag := m[0][:strings.Index(m[0], ">")+1]
	// The template entity-escapes rendered text; undo that before
	// comparing against the assertion's literal string.
	text := strings.TrimSpace(html.UnescapeString(m[1]))

	if a.Text != "" && text != a.Text {
		return fmt.Errorf("%s: text = %q, want %q", a.Selector, text, a.Text)
	}
	if a.Class != "" && !strings.Contains(tag, `class="`+a.Class+`"`) {
		return fmt.Errorf("%s: class %q not present", a.Selector, a.Class)
	}
	return nil
}

func (d *FormDriver) Close() error { return nil }

package harness

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/dstokesj/loginbench/internal/models"
)

// Driver executes a single scenario against a running page.
type Driver interface {
	Run(ctx context.Context, baseURL string, sc models.Scenario) error
	Close() error
}

// RodDriver drives a real Chromium instance over CDP.
type RodDriver struct {
	browser     *rod.Browser
	navTimeout  time.Duration
	pollTimeout time.Duration
}

// NewRodDriver launches a browser and connects to it.
func NewRodDriver(ctx context.Context, headless bool, navTimeout time.Duration) (*RodDriver, error) {
	controlURL, err := launcher.New().Headless(headless).Launch()
	if err != nil {
		return nil, fmt.Errorf("launch chrome: %w", err)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect to chrome: %w", err)
	}

	if navTimeout <= 0 {
		navTimeout = 30 * time.Second
	}
	return &RodDriver{
		browser:     browser,
		navTimeout:  navTimeout,
		pollTimeout: 5 * time.Second,
	}, nil
}

func (d *RodDriver) Run(ctx context.Context, baseURL string, sc models.Scenario) error {
	page, err := d.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return fmt.Errorf("open page: %w", err)
	}
	defer page.Close()
	page = page.Context(ctx)

	for _, step := range sc.Steps {
		if err := d.step(page, baseURL, step); err != nil {
			return err
		}
	}

	for _, a := range sc.Assertions {
		if err := d.assert(page, a); err != nil {
			return err
		}
	}
	return nil
}

func (d *RodDriver) step(page *rod.Page, baseURL string, step models.Step) error {
	switch step.Action {
	case models.StepNavigate:
		target, err := resolveTarget(baseURL, step.Value)
		if err != nil {
			return err
		}
		if err := page.Timeout(d.navTimeout).Navigate(target); err != nil {
			return fmt.Errorf("navigate %s: %w", target, err)
		}
		return page.Timeout(d.navTimeout).WaitLoad()
	case models.StepFill:
		el, err := page.Element(step.Selector)
		if err != nil {
			return fmt.Errorf("element not found: %s: %w", step.Selector, err)
		}
		return el.Input(step.Value)
	case models.StepClick:
		el, err := page.Element(step.Selector)
		if err != nil {
			return fmt.Errorf("element not found: %s: %w", step.Selector, err)
		}
		return el.Click(proto.InputMouseButtonLeft, 1)
	default:
		return fmt.Errorf("unknown action: %s", step.Action)
	}
}

// assert polls the target element until it matches or the poll window runs
// out. The status region updates asynchronously after a click, so a single
// read would race the page script.
func (d *RodDriver) assert(page *rod.Page, a models.Assertion) error {
	deadline := time.Now().Add(d.pollTimeout)
	var lastErr error

	for {
		lastErr = d.check(page, a)
		if lastErr == nil {
			return nil
		}
		if time.Now().After(deadline) {
			return lastErr
		}
		time.Sleep(100 * time.Millisecond)
	}
}

func (d *RodDriver) check(page *rod.Page, a models.Assertion) error {
	el, err := page.Timeout(d.pollTimeout).Element(a.Selector)
	if err != nil {
		return fmt.Errorf("element not found: %s: %w", a.Selector, err)
	}

	if a.Text != "" {
		text, err := el.Text()
		if err != nil {
			return fmt.Errorf("read text of %s: %w", a.Selector, err)
		}
		if strings.TrimSpace(text) != a.Text {
			return fmt.Errorf("%s: text = %q, want %q", a.Selector, strings.TrimSpace(text), a.Text)
		}
	}

	if a.Class != "" {
		attr, err := el.Attribute("class")
		if err != nil {
			return fmt.Errorf("read class of %s: %w", a.Selector, err)
		}
		if attr == nil || !hasClass(*attr, a.Class) {
			got := ""
			if attr != nil {
				got = *attr
			}
			return fmt.Errorf("%s: class = %q, want %q", a.Selector, got, a.Class)
		}
	}
	return nil
}

// resolveTarget resolves a navigate step's optional value (a path or a
// full URL) against the run's base URL. Empty means the base URL itself.
func resolveTarget(baseURL, value string) (string, error) {
	if value == "" {
		return baseURL, nil
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base URL %s: %w", baseURL, err)
	}
	ref, err := url.Parse(value)
	if err != nil {
		return "", fmt.Errorf("parse navigate target %q: %w", value, err)
	}
	return base.ResolveReference(ref).String(), nil
}

func hasClass(attr, class string) bool {
	for _, c := range strings.Fields(attr) {
		if c == class {
			return true
		}
	}
	return false
}

func (d *RodDriver) Close() error {
	return d.browser.Close()
}

package models

import (
	"fmt"
)

// StepAction represents the kind of browser interaction a step performs
type StepAction string

const (
	StepNavigate StepAction = "navigate"
	StepFill     StepAction = "fill"
	StepClick    StepAction = "click"
)

// Step is one typed interaction in a scenario. Selector addresses a
// page element by CSS selector; Value carries the text to type for fill
// steps, or an optional path/URL for navigate steps (empty means the
// target base URL).
type Step struct {
	Action   StepAction `json:"action"`
	Selector string     `json:"selector,omitempty"`
	Value    string     `json:"value,omitempty"`
}

// Validate checks that the step is executable
func (s *Step) Validate() error {
	switch s.Action {
	case StepNavigate:
		// Selector unused; Value optional.
	case StepFill:
		if s.Selector == "" {
			return fmt.Errorf("fill step requires a selector")
		}
	case StepClick:
		if s.Selector == "" {
			return fmt.Errorf("click step requires a selector")
		}
	default:
		return fmt.Errorf("invalid step action: %s", s.Action)
	}
	return nil
}

// Assertion is an expectation about a page element after the steps have
// run. Text, when set, must equal the element's visible text exactly;
// Class, when set, must appear among the element's class names.
type Assertion struct {
	Selector string `json:"selector"`
	Text     string `json:"text,omitempty"`
	Class    string `json:"class,omitempty"`
}

// Validate checks that the assertion is checkable
func (a *Assertion) Validate() error {
	if a.Selector == "" {
		return fmt.Errorf("assertion requires a selector")
	}
	if a.Text == "" && a.Class == "" {
		return fmt.Errorf("assertion requires text or class to check")
	}
	return nil
}

// Scenario is one user flow to run against the fixture page
type Scenario struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Steps       []Step      `json:"steps"`
	Assertions  []Assertion `json:"assertions"`
}

// Validate checks that the scenario can be executed and evaluated
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario name is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("scenario %q has no steps", s.Name)
	}
	for i, step := range s.Steps {
		if err := step.Validate(); err != nil {
			return fmt.Errorf("scenario %q step %d: %w", s.Name, i+1, err)
		}
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("scenario %q has no assertions", s.Name)
	}
	for i, a := range s.Assertions {
		if err := a.Validate(); err != nil {
			return fmt.Errorf("scenario %q assertion %d: %w", s.Name, i+1, err)
		}
	}
	return nil
}

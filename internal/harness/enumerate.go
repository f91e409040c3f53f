package harness

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"google.golang.org/genai"

	"github.com/dstokesj/loginbench/internal/models"
)

// DefaultDescription is used when no change description is supplied on the
// command line.
const DefaultDescription = "A login page with username and password fields. " +
	"Submitting the configured credential pair shows a success message; " +
	"any other pair shows an error; blank fields prompt for both values."

const systemPrompt = "You are a frontend testing expert. Analyze the described " +
	"change and identify testable user scenarios. Respond only with valid JSON."

var jsonFence = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")

// Enumerator produces test scenarios for a described frontend change.
type Enumerator interface {
	Enumerate(ctx context.Context, description string) ([]models.Scenario, error)
}

// GenAIEnumerator asks a Gemini model to enumerate scenarios.
type GenAIEnumerator struct {
	client *genai.Client
	model  string
}

// NewGenAIEnumerator creates an enumerator backed by the Gemini API.
func NewGenAIEnumerator(ctx context.Context, apiKey, model string) (*GenAIEnumerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GenAIEnumerator{client: client, model: model}, nil
}

func (e *GenAIEnumerator) Enumerate(ctx context.Context, description string) ([]models.Scenario, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(buildScenarioPrompt(description), genai.RoleUser),
	}

	resp, err := e.client.Models.GenerateContent(ctx, e.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
	})
	if err != nil {
		return nil, fmt.Errorf("generate scenarios: %w", err)
	}

	return ParseScenarios(resp.Text())
}

func buildScenarioPrompt(description string) string {
	var b strings.Builder
	b.WriteString("Identify user-facing test scenarios for the following frontend change.\n\n")
	b.WriteString("Change description:\n")
	b.WriteString(description)
	b.WriteString("\n\nThe page exposes these elements by CSS selector:\n")
	b.WriteString("  #login-form       the login form\n")
	b.WriteString("  #username         the username text input\n")
	b.WriteString("  #password         the password input\n")
	b.WriteString("  #login-button     the submit button\n")
	b.WriteString("  #status-message   the status region; its class becomes \"success\" or \"error\"\n")
	b.WriteString("\nRespond with a JSON object of the form:\n")
	b.WriteString(`{"scenarios": [{"name": "...", "description": "...",` + "\n")
	b.WriteString(`  "steps": [{"action": "navigate"}, {"action": "fill", "selector": "#username", "value": "..."}, {"action": "click", "selector": "#login-button"}],` + "\n")
	b.WriteString(`  "assertions": [{"selector": "#status-message", "text": "...", "class": "..."}]}]}` + "\n")
	b.WriteString("\nActions are limited to navigate, fill and click. Every scenario must end with at least one assertion.")
	return b.String()
}

// ParseScenarios extracts the scenario list from a model response. The
// response may wrap the JSON in a ```json fence or be bare JSON.
func ParseScenarios(raw string) ([]models.Scenario, error) {
	payload := strings.TrimSpace(raw)
	if m := jsonFence.FindStringSubmatch(payload); m != nil {
		payload = m[1]
	}

	var envelope struct {
		Scenarios []models.Scenario `json:"scenarios"`
	}
	if err := json.Unmarshal([]byte(payload), &envelope); err != nil {
		return nil, fmt.Errorf("parse scenarios: %w", err)
	}

	scenarios := make([]models.Scenario, 0, len(envelope.Scenarios))
	for _, sc := range envelope.Scenarios {
		if err := sc.Validate(); err != nil {
			return nil, fmt.Errorf("scenario %q: %w", sc.Name, err)
		}
		scenarios = append(scenarios, sc)
	}
	return scenarios, nil
}

// DefaultScenarios returns the built-in scenarios used when no enumerator is
// available or enumeration fails.
func DefaultScenarios(validUsername, validPassword string) []models.Scenario {
	return []models.Scenario{
		{
			Name:        "Successful login",
			Description: "User can login with valid credentials",
			Steps: []models.Step{
				{Action: models.StepNavigate},
				{Action: models.StepFill, Selector: "#username", Value: validUsername},
				{Action: models.StepFill, Selector: "#password", Value: validPassword},
				{Action: models.StepClick, Selector: "#login-button"},
			},
			Assertions: []models.Assertion{
				{Selector: "#status-message", Text: "You are logged in", Class: "success"},
			},
		},
		{
			Name:        "Failed login",
			Description: "User sees error with invalid credentials",
			Steps: []models.Step{
				{Action: models.StepNavigate},
				{Action: models.StepFill, Selector: "#username", Value: "wrong"},
				{Action: models.StepFill, Selector: "#password", Value: "wrong"},
				{Action: models.StepClick, Selector: "#login-button"},
			},
			Assertions: []models.Assertion{
				{Selector: "#status-message", Text: "Invalid username or password", Class: "error"},
			},
		},
		{
			Name:        "Empty fields",
			Description: "User is prompted when either field is blank",
			Steps: []models.Step{
				{Action: models.StepNavigate},
				{Action: models.StepClick, Selector: "#login-button"},
			},
			Assertions: []models.Assertion{
				{Selector: "#status-message", Text: "Please enter both username and password", Class: "error"},
			},
		},
	}
}

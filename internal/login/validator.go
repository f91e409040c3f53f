// Package login implements the credential validation core of the
// fixture: a pure classifier from a submitted username/password pair to
// an outcome, and the fixed mapping from outcomes to the status message
// shown on the page.
package login

import "strings"

// Outcome classifies a single submitted credential pair.
type Outcome string

const (
	// OutcomeEmpty means one or both fields were blank after trimming.
	OutcomeEmpty Outcome = "empty"
	// OutcomeInvalid means both fields were present but did not match
	// the configured valid pair.
	OutcomeInvalid Outcome = "invalid"
	// OutcomeValid means both trimmed fields matched the configured pair
	// exactly.
	OutcomeValid Outcome = "valid"
)

// Validator classifies credential pairs against a configured valid pair.
// Comparison is exact and case-sensitive; inputs are trimmed of leading
// and trailing whitespace before evaluation. A Validator holds no other
// state, so evaluation is idempotent.
type Validator struct {
	validUsername string
	validPassword string
}

// NewValidator creates a Validator for the given valid pair.
func NewValidator(validUsername, validPassword string) *Validator {
	return &Validator{
		validUsername: validUsername,
		validPassword: validPassword,
	}
}

// Evaluate classifies a submitted username/password pair. It is total
// over all string inputs and never fails: whitespace-only input counts
// as empty, and anything non-empty that isn't an exact match of the
// configured pair is invalid.
func (v *Validator) Evaluate(username, password string) Outcome {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)

	if username == "" || password == "" {
		return OutcomeEmpty
	}

	if username == v.validUsername && password == v.validPassword {
		return OutcomeValid
	}

	return OutcomeInvalid
}

package login

// Style classes applied to the status region. StyleNone is the initial
// state before any submission.
const (
	StyleNone    = ""
	StyleSuccess = "success"
	StyleError   = "error"
)

// Messages shown for each outcome. The mapping is fixed; automated
// drivers assert on these exact strings.
const (
	MsgEmpty   = "Please enter both username and password"
	MsgInvalid = "Invalid username or password"
	MsgValid   = "You are logged in"
)

// StatusDisplay is the rendered form of an outcome: the message shown
// in the status region and the style class applied to it.
type StatusDisplay struct {
	Text       string `json:"text"`
	StyleClass string `json:"styleClass"`
}

// Present maps an outcome to its displayed message and style class. An
// unrecognized outcome presents as the initial blank state.
func Present(o Outcome) StatusDisplay {
	switch o {
	case OutcomeValid:
		return StatusDisplay{Text: MsgValid, StyleClass: StyleSuccess}
	case OutcomeInvalid:
		return StatusDisplay{Text: MsgInvalid, StyleClass: StyleError}
	case OutcomeEmpty:
		return StatusDisplay{Text: MsgEmpty, StyleClass: StyleError}
	default:
		return StatusDisplay{}
	}
}

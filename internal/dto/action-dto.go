package dto

// Outcome classifies an action result for the transport layer. It is never
// serialized.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeInvalid
	OutcomeNotFound
	OutcomeFailed
	OutcomeUnexpected
)

// ActionResult is the uniform envelope of single-record actions: exactly one
// of Success or Error is set.
type ActionResult struct {
	Success   string        `json:"success,omitempty"`
	Error     string        `json:"error,omitempty"`
	Equipment *EquipmentDTO `json:"equipment,omitempty"`

	Outcome Outcome           `json:"-"`
	Fields  map[string]string `json:"-"`
}

func (r ActionResult) OK() bool { return r.Outcome == OutcomeOK }

type BatchDetails struct {
	Success int      `json:"success"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors"`
}

// BatchResult reports a bulk operation with per-row failures. Success is true
// when at least one row went through.
type BatchResult struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Details BatchDetails `json:"details"`
}

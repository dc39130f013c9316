package models

// ViolationCategory classifies which constraint family a violation came from
type ViolationCategory string

const (
	CategoryPhysical ViolationCategory = "physical"
	CategoryLogical  ViolationCategory = "logical"
	CategoryRange    ViolationCategory = "range"
	CategorySpeed    ViolationCategory = "speed"
	CategoryBreakout ViolationCategory = "breakout"
)

// Severity distinguishes blocking errors from advisory warnings
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// ConstraintViolation is one reportable constraint failure. A single
// malformed assignment may produce violations from several categories;
// callers must not assume at most one per port.
type ConstraintViolation struct {
	Category   ViolationCategory `json:"category"`
	Severity   Severity          `json:"severity"`
	Message    string            `json:"message"`
	Ports      []string          `json:"ports"`
	Suggestion string            `json:"suggestion,omitempty"`
}

// Affects reports whether the violation names the given port
func (v *ConstraintViolation) Affects(portID string) bool {
	for _, p := range v.Ports {
		if p == portID {
			return true
		}
	}
	return false
}

// ValidationResult is the full output of a validator pass. IsValid is true
// iff no violation carries error severity.
type ValidationResult struct {
	IsValid    bool                  `json:"is_valid"`
	Violations []ConstraintViolation `json:"violations"`
}

// AlternativeAssignment is a ranked remediation proposal for a rejected pin
type AlternativeAssignment struct {
	PortID     string         `json:"port_id"`
	Assignment PortAssignment `json:"assignment"`
	Rationale  string         `json:"rationale"`
	Confidence float64        `json:"confidence"`
}

// PinResult reports the outcome of a pin, assign, or unassign operation.
// On rejection Conflicts holds the blocking violations and Suggestions the
// ranked alternatives; on success Conflicts holds residual warnings only.
type PinResult struct {
	Success     bool                    `json:"success"`
	Assignment  *PortAssignment         `json:"assignment,omitempty"`
	Conflicts   []ConstraintViolation   `json:"conflicts,omitempty"`
	Suggestions []AlternativeAssignment `json:"suggestions,omitempty"`
}

// LockResult reports the outcome of a lock or unlock operation
type LockResult struct {
	Success    bool                  `json:"success"`
	Assignment *PortAssignment       `json:"assignment,omitempty"`
	Conflicts  []ConstraintViolation `json:"conflicts,omitempty"`
}

// PortPinOverrides is the snapshot handed to the automatic allocator so it
// knows which ports it must not touch
type PortPinOverrides struct {
	PinnedAssignments map[string]PortAssignment `json:"pinned_assignments"`
	LockedPorts       []string                  `json:"locked_ports"`
	Constraints       []ConstraintViolation     `json:"constraints,omitempty"`
}

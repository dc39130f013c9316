package models

import "time"

// OperationType names the mutation a PortOperation records
type OperationType string

const (
	OpPin      OperationType = "pin"
	OpUnpin    OperationType = "unpin"
	OpLock     OperationType = "lock"
	OpUnlock   OperationType = "unlock"
	OpAssign   OperationType = "assign"
	OpUnassign OperationType = "unassign"
)

// KnownOperationType reports whether t is one of the defined operation types
func KnownOperationType(t OperationType) bool {
	switch t {
	case OpPin, OpUnpin, OpLock, OpUnlock, OpAssign, OpUnassign:
		return true
	}
	return false
}

// PortOperation is an audit/undo record: full before and after snapshots of
// the target port. Timestamps serialize as RFC 3339 on the wire.
type PortOperation struct {
	ID        string         `json:"id"`
	Type      OperationType  `json:"type"`
	PortID    string         `json:"port_id"`
	Before    PortAssignment `json:"before"`
	After     PortAssignment `json:"after"`
	Timestamp time.Time      `json:"timestamp"`
}

// HistoryExport is the serialization envelope for an operation log
type HistoryExport struct {
	Operations   []PortOperation `json:"operations"`
	CurrentIndex int             `json:"currentIndex"`
	Version      string          `json:"version"`
}

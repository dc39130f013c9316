package engine

import (
	"encoding/json"

	"github.com/netfab/fabric-port-engine/internal/constants"
	"github.com/netfab/fabric-port-engine/pkg/models"
)

// HistoryManager is a bounded, linear undo/redo log of port operations.
// It only tracks the cursor and hands out snapshots; applying them back to
// an engine is the caller's job (see Engine.Undo / Engine.Redo).
type HistoryManager struct {
	operations []models.PortOperation
	cursor     int // index of the last applied operation, -1 when none
	limit      int
}

// NewHistoryManager creates a history bounded to limit entries; a
// non-positive limit falls back to the default
func NewHistoryManager(limit int) *HistoryManager {
	if limit <= 0 {
		limit = constants.DefaultHistoryLimit
	}
	return &HistoryManager{cursor: -1, limit: limit}
}

// AddOperation appends a new operation, truncating any redo tail left by
// prior undos and evicting the oldest entry once the bound is exceeded
func (h *HistoryManager) AddOperation(op models.PortOperation) {
	h.operations = h.operations[:h.cursor+1]
	h.operations = append(h.operations, op)

	if len(h.operations) > h.limit {
		h.operations = h.operations[1:]
	}
	h.cursor = len(h.operations) - 1
}

// CanUndo reports whether an operation is available to undo
func (h *HistoryManager) CanUndo() bool {
	return h.cursor >= 0
}

// CanRedo reports whether an undone operation is available to redo
func (h *HistoryManager) CanRedo() bool {
	return h.cursor < len(h.operations)-1
}

// Undo moves the cursor back and returns the operation whose Before
// snapshot the caller should reapply
func (h *HistoryManager) Undo() (models.PortOperation, bool) {
	if !h.CanUndo() {
		return models.PortOperation{}, false
	}
	op := h.operations[h.cursor]
	h.cursor--
	return op, true
}

// Redo moves the cursor forward and returns the operation whose After
// snapshot the caller should reapply
func (h *HistoryManager) Redo() (models.PortOperation, bool) {
	if !h.CanRedo() {
		return models.PortOperation{}, false
	}
	h.cursor++
	return h.operations[h.cursor], true
}

// Len returns the number of recorded operations
func (h *HistoryManager) Len() int {
	return len(h.operations)
}

// Operations returns a copy of the recorded operation list
func (h *HistoryManager) Operations() []models.PortOperation {
	out := make([]models.PortOperation, len(h.operations))
	copy(out, h.operations)
	return out
}

// Reset discards all recorded operations
func (h *HistoryManager) Reset() {
	h.operations = nil
	h.cursor = -1
}

// Export serializes the full operation list plus cursor position.
// Timestamps go out as RFC 3339 strings.
func (h *HistoryManager) Export() ([]byte, error) {
	return json.Marshal(models.HistoryExport{
		Operations:   h.Operations(),
		CurrentIndex: h.cursor,
		Version:      constants.HistoryExportVersion,
	})
}

// Import replaces the history from a previous export. It validates shape
// before touching state and fails closed: on any malformed input it
// returns false and leaves the prior state untouched.
func (h *HistoryManager) Import(data []byte) bool {
	var export models.HistoryExport
	if err := json.Unmarshal(data, &export); err != nil {
		return false
	}
	if export.Version != constants.HistoryExportVersion {
		return false
	}
	if export.CurrentIndex < -1 || export.CurrentIndex >= len(export.Operations) {
		return false
	}
	for _, op := range export.Operations {
		if op.PortID == "" || !models.KnownOperationType(op.Type) {
			return false
		}
	}

	ops := export.Operations
	if len(ops) > h.limit {
		drop := len(ops) - h.limit
		ops = ops[drop:]
		export.CurrentIndex -= drop
		if export.CurrentIndex < -1 {
			export.CurrentIndex = -1
		}
	}

	h.operations = ops
	h.cursor = export.CurrentIndex
	return true
}

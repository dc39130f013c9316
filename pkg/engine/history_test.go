package engine

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/netfab/fabric-port-engine/pkg/models"
)

func testOperation(n int) models.PortOperation {
	portID := fmt.Sprintf("%d", n)
	return models.PortOperation{
		ID:        fmt.Sprintf("op-%d", n),
		Type:      models.OpPin,
		PortID:    portID,
		Before:    models.Unassigned(portID),
		After:     models.PortAssignment{PortID: portID, Type: models.AssignmentServer, AssignedTo: fmt.Sprintf("server-%d", n)},
		Timestamp: time.Date(2026, 8, 24, 12, 0, n, 0, time.UTC),
	}
}

func TestHistoryAddAndCursor(t *testing.T) {
	h := NewHistoryManager(10)

	if h.CanUndo() {
		t.Error("fresh history should have nothing to undo")
	}
	if h.CanRedo() {
		t.Error("fresh history should have nothing to redo")
	}

	h.AddOperation(testOperation(1))
	h.AddOperation(testOperation(2))

	if h.Len() != 2 {
		t.Errorf("Len() = %d, expected 2", h.Len())
	}
	if !h.CanUndo() || h.CanRedo() {
		t.Error("cursor should sit at the newest operation")
	}
}

func TestHistoryUndoRedo(t *testing.T) {
	h := NewHistoryManager(10)
	h.AddOperation(testOperation(1))
	h.AddOperation(testOperation(2))

	op, ok := h.Undo()
	if !ok {
		t.Fatal("undo should succeed")
	}
	if op.PortID != "2" {
		t.Errorf("undo returned op for port %s, expected 2", op.PortID)
	}
	if !h.CanRedo() {
		t.Error("redo should be available after an undo")
	}

	op, ok = h.Redo()
	if !ok {
		t.Fatal("redo should succeed")
	}
	if op.PortID != "2" {
		t.Errorf("redo returned op for port %s, expected 2", op.PortID)
	}
	if h.CanRedo() {
		t.Error("nothing left to redo")
	}
}

func TestHistoryTruncatesRedoTailOnNewWrite(t *testing.T) {
	h := NewHistoryManager(10)
	h.AddOperation(testOperation(1))
	h.AddOperation(testOperation(2))
	h.AddOperation(testOperation(3))

	h.Undo()
	h.Undo()
	h.AddOperation(testOperation(4))

	if h.Len() != 2 {
		t.Fatalf("Len() = %d, expected 2 after truncation", h.Len())
	}

	ops := h.Operations()
	if ops[0].PortID != "1" || ops[1].PortID != "4" {
		t.Errorf("operations = [%s %s], expected [1 4]", ops[0].PortID, ops[1].PortID)
	}
	if h.CanRedo() {
		t.Error("truncation should discard the abandoned future")
	}
}

func TestHistoryBoundEviction(t *testing.T) {
	h := NewHistoryManager(3)

	for n := 1; n <= 5; n++ {
		h.AddOperation(testOperation(n))
	}

	if h.Len() != 3 {
		t.Fatalf("Len() = %d, expected bound of 3", h.Len())
	}

	ops := h.Operations()
	if ops[0].PortID != "3" {
		t.Errorf("oldest surviving op is for port %s, expected 3", ops[0].PortID)
	}
	if !h.CanUndo() || h.CanRedo() {
		t.Error("cursor should still sit at the newest operation")
	}
}

func TestHistoryExportImportRoundTrip(t *testing.T) {
	h := NewHistoryManager(10)
	h.AddOperation(testOperation(1))
	h.AddOperation(testOperation(2))
	h.Undo()

	data, err := h.Export()
	if err != nil {
		t.Fatalf("Export() failed: %v", err)
	}
	if !strings.Contains(string(data), `"version":"1.0"`) {
		t.Errorf("export should carry version 1.0: %s", data)
	}
	if !strings.Contains(string(data), "2026-08-24T12:00:01Z") {
		t.Errorf("timestamps should serialize as RFC 3339: %s", data)
	}

	restored := NewHistoryManager(10)
	if !restored.Import(data) {
		t.Fatal("Import() of a valid export should succeed")
	}

	if restored.Len() != 2 {
		t.Errorf("Len() = %d, expected 2", restored.Len())
	}
	if !restored.CanRedo() {
		t.Error("imported cursor should preserve the pending redo")
	}

	op, ok := restored.Redo()
	if !ok || op.PortID != "2" {
		t.Errorf("redo after import returned %v, %v, expected op for port 2", op.PortID, ok)
	}
}

func TestHistoryImportFailsClosed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not json", data: "not json at all"},
		{name: "wrong version", data: `{"operations":[],"currentIndex":-1,"version":"2.0"}`},
		{name: "cursor past end", data: `{"operations":[],"currentIndex":0,"version":"1.0"}`},
		{name: "cursor below floor", data: `{"operations":[],"currentIndex":-2,"version":"1.0"}`},
		{name: "unknown op type", data: `{"operations":[{"id":"x","type":"explode","port_id":"1","before":{"port_id":"1","type":"unused"},"after":{"port_id":"1","type":"unused"},"timestamp":"2026-08-24T12:00:00Z"}],"currentIndex":0,"version":"1.0"}`},
		{name: "missing port id", data: `{"operations":[{"id":"x","type":"pin","port_id":"","before":{"port_id":"1","type":"unused"},"after":{"port_id":"1","type":"unused"},"timestamp":"2026-08-24T12:00:00Z"}],"currentIndex":0,"version":"1.0"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHistoryManager(10)
			h.AddOperation(testOperation(1))

			if h.Import([]byte(tt.data)) {
				t.Fatal("malformed import should be rejected")
			}
			if h.Len() != 1 {
				t.Error("rejected import must leave prior state untouched")
			}
			if op, ok := h.Undo(); !ok || op.PortID != "1" {
				t.Error("prior operations should survive a rejected import")
			}
		})
	}
}

func TestHistoryImportRespectsBound(t *testing.T) {
	source := NewHistoryManager(10)
	for n := 1; n <= 6; n++ {
		source.AddOperation(testOperation(n))
	}
	data, err := source.Export()
	if err != nil {
		t.Fatalf("Export() failed: %v", err)
	}

	small := NewHistoryManager(3)
	if !small.Import(data) {
		t.Fatal("Import() should succeed")
	}
	if small.Len() != 3 {
		t.Errorf("Len() = %d, expected import clamped to the bound", small.Len())
	}
	if op, ok := small.Undo(); !ok || op.PortID != "6" {
		t.Errorf("newest operation should survive the clamp, got %v", op.PortID)
	}
}

func TestHistoryDefaultLimit(t *testing.T) {
	h := NewHistoryManager(0)

	for n := 1; n <= 60; n++ {
		h.AddOperation(testOperation(n))
	}
	if h.Len() != 50 {
		t.Errorf("Len() = %d, expected the default bound of 50", h.Len())
	}
}

package utils

import (
	"reflect"
	"testing"
)

func TestPortNumber(t *testing.T) {
	tests := []struct {
		name     string
		portID   string
		expected int
		wantErr  bool
	}{
		{name: "plain port", portID: "1", expected: 1},
		{name: "high plain port", portID: "52", expected: 52},
		{name: "breakout child", portID: "49-2", expected: 49},
		{name: "empty id", portID: "", wantErr: true},
		{name: "non-numeric", portID: "eth0", wantErr: true},
		{name: "zero port", portID: "0", wantErr: true},
		{name: "negative port", portID: "-3", wantErr: true},
		{name: "bad child index", portID: "49-x", wantErr: true},
		{name: "zero child index", portID: "49-0", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := PortNumber(tt.portID)
			if tt.wantErr {
				if err == nil {
					t.Errorf("PortNumber(%q) expected error, got %d", tt.portID, n)
				}
				return
			}
			if err != nil {
				t.Fatalf("PortNumber(%q) unexpected error: %v", tt.portID, err)
			}
			if n != tt.expected {
				t.Errorf("PortNumber(%q) = %d, expected %d", tt.portID, n, tt.expected)
			}
		})
	}
}

func TestChildIndex(t *testing.T) {
	if _, ok := ChildIndex("49"); ok {
		t.Error("ChildIndex(\"49\") should report not a child")
	}

	idx, ok := ChildIndex("49-3")
	if !ok || idx != 3 {
		t.Errorf("ChildIndex(\"49-3\") = %d, %v, expected 3, true", idx, ok)
	}
}

func TestBreakoutChildID(t *testing.T) {
	if got := BreakoutChildID("49", 1); got != "49-1" {
		t.Errorf("BreakoutChildID(49, 1) = %q, expected %q", got, "49-1")
	}
}

func TestSortPortIDs(t *testing.T) {
	ids := []string{"10", "2", "49-2", "49", "49-1", "1"}
	SortPortIDs(ids)

	expected := []string{"1", "2", "10", "49", "49-1", "49-2"}
	if !reflect.DeepEqual(ids, expected) {
		t.Errorf("SortPortIDs() = %v, expected %v", ids, expected)
	}
}

func TestDedupe(t *testing.T) {
	got := Dedupe([]string{"spine-2", "server-1", "spine-2", "", "server-1"})
	expected := []string{"server-1", "spine-2"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Dedupe() = %v, expected %v", got, expected)
	}
}

func TestContains(t *testing.T) {
	slice := []string{"49-1", "49-2"}
	if !Contains(slice, "49-1") {
		t.Error("Contains() should find 49-1")
	}
	if Contains(slice, "49-3") {
		t.Error("Contains() should not find 49-3")
	}
}

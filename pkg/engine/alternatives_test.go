package engine

import (
	"testing"

	"github.com/netfab/fabric-port-engine/pkg/models"
)

func TestGenerateAlternativesServerNeighbors(t *testing.T) {
	eng := newTestEngine(t)

	failed := models.PortAssignment{Type: models.AssignmentServer, AssignedTo: "server-a", Speed: "25G"}
	alternatives := eng.GenerateAlternatives("10", failed)

	if len(alternatives) != 4 {
		t.Fatalf("expected 4 neighbor proposals, got %d", len(alternatives))
	}

	// Priority order -1, +1, -2, +2 with confidence stepping down from 0.9
	expected := []struct {
		portID     string
		confidence float64
	}{
		{"9", 0.9},
		{"11", 0.8},
		{"8", 0.7},
		{"12", 0.6},
	}
	for i, want := range expected {
		got := alternatives[i]
		if got.PortID != want.portID {
			t.Errorf("alternative %d port = %s, expected %s", i, got.PortID, want.portID)
		}
		if got.Confidence != want.confidence {
			t.Errorf("alternative %d confidence = %f, expected %f", i, got.Confidence, want.confidence)
		}
		if got.Assignment.PortID != got.PortID {
			t.Errorf("alternative %d assignment targets %s, expected %s", i, got.Assignment.PortID, got.PortID)
		}
		if got.Assignment.AssignedTo != "server-a" {
			t.Errorf("alternative %d should keep the original occupant", i)
		}
	}
}

func TestGenerateAlternativesSkipsOccupiedPorts(t *testing.T) {
	eng := newTestEngine(t)

	eng.AssignPort("9", models.PortAssignment{Type: models.AssignmentServer, AssignedTo: "server-x", Speed: "25G"})
	eng.AssignPort("11", models.PortAssignment{Type: models.AssignmentServer, AssignedTo: "server-y", Speed: "25G"})

	failed := models.PortAssignment{Type: models.AssignmentServer, AssignedTo: "server-a", Speed: "25G"}
	alternatives := eng.GenerateAlternatives("10", failed)

	if len(alternatives) != 2 {
		t.Fatalf("expected 2 proposals with neighbors occupied, got %d", len(alternatives))
	}
	for _, alt := range alternatives {
		if alt.PortID == "9" || alt.PortID == "11" {
			t.Errorf("occupied port %s must not be proposed", alt.PortID)
		}
	}
}

func TestGenerateAlternativesClipsToAccessRange(t *testing.T) {
	eng := newTestEngine(t)

	failed := models.PortAssignment{Type: models.AssignmentServer, AssignedTo: "server-a", Speed: "25G"}
	alternatives := eng.GenerateAlternatives("1", failed)

	// Offsets -1 and -2 fall below the access range
	if len(alternatives) != 2 {
		t.Fatalf("expected 2 proposals at the range edge, got %d", len(alternatives))
	}
	if alternatives[0].PortID != "2" || alternatives[1].PortID != "3" {
		t.Errorf("edge proposals = %s, %s, expected 2, 3", alternatives[0].PortID, alternatives[1].PortID)
	}
}

func TestGenerateAlternativesBreakoutProposal(t *testing.T) {
	eng := newTestEngine(t)

	failed := models.PortAssignment{Type: models.AssignmentUplink, AssignedTo: "spine-1", Speed: "100G"}
	alternatives := eng.GenerateAlternatives("49", failed)

	if len(alternatives) != 1 {
		t.Fatalf("expected 1 breakout proposal, got %d", len(alternatives))
	}

	alt := alternatives[0]
	if alt.PortID == "49" {
		t.Error("breakout proposal must not repeat the failing port")
	}
	if alt.PortID != "49-1" {
		t.Errorf("breakout proposal port = %s, expected 49-1", alt.PortID)
	}
	if alt.Assignment.BreakoutParent != "49" {
		t.Errorf("breakout proposal parent = %s, expected 49", alt.Assignment.BreakoutParent)
	}
	if alt.Confidence != 0.85 {
		t.Errorf("breakout confidence = %f, expected 0.85", alt.Confidence)
	}
}

func TestGenerateAlternativesUplinkWithoutBreakout(t *testing.T) {
	eng := newTestEngine(t)

	failed := models.PortAssignment{Type: models.AssignmentUplink, AssignedTo: "spine-1", Speed: "100G"}
	if alternatives := eng.GenerateAlternatives("10", failed); len(alternatives) != 0 {
		t.Errorf("uplink on a non-breakout port should yield no proposals, got %d", len(alternatives))
	}
}

package models

import "testing"

func TestPortRange(t *testing.T) {
	r := PortRange{Start: 1, End: 48}

	if !r.Contains(1) || !r.Contains(48) {
		t.Error("Contains() should include both range endpoints")
	}
	if r.Contains(0) || r.Contains(49) {
		t.Error("Contains() should exclude numbers outside the range")
	}
	if r.String() != "1-48" {
		t.Errorf("String() = %q, expected %q", r.String(), "1-48")
	}
}

func TestProfileFor(t *testing.T) {
	profile, ok := ProfileFor("DS2000")
	if !ok {
		t.Fatal("ProfileFor(DS2000) should find the builtin profile")
	}

	if profile.PortCount != 52 {
		t.Errorf("PortCount = %d, expected 52", profile.PortCount)
	}
	if profile.AccessPorts.String() != "1-48" {
		t.Errorf("AccessPorts = %s, expected 1-48", profile.AccessPorts)
	}
	if profile.UplinkPorts.String() != "49-52" {
		t.Errorf("UplinkPorts = %s, expected 49-52", profile.UplinkPorts)
	}

	if _, ok := ProfileFor("DS9999"); ok {
		t.Error("ProfileFor(DS9999) should not find a profile")
	}
}

func TestExpectedSpeed(t *testing.T) {
	profile, _ := ProfileFor("DS2000")

	if got := profile.ExpectedSpeed(10); got != "25G" {
		t.Errorf("ExpectedSpeed(10) = %q, expected %q", got, "25G")
	}
	if got := profile.ExpectedSpeed(50); got != "100G" {
		t.Errorf("ExpectedSpeed(50) = %q, expected %q", got, "100G")
	}
}

func TestIsMCLAGMember(t *testing.T) {
	tests := []struct {
		name       string
		assignment PortAssignment
		expected   bool
	}{
		{
			name:       "explicit lag group",
			assignment: PortAssignment{PortID: "49", Type: AssignmentUplink, AssignedTo: "spine-1", LAGGroup: "peer-link"},
			expected:   true,
		},
		{
			name:       "substring heuristic",
			assignment: PortAssignment{PortID: "49", Type: AssignmentUplink, AssignedTo: "mclag-peer-1"},
			expected:   true,
		},
		{
			name:       "case-insensitive heuristic",
			assignment: PortAssignment{PortID: "49", Type: AssignmentUplink, AssignedTo: "MCLAG-peer-1"},
			expected:   true,
		},
		{
			name:       "plain uplink",
			assignment: PortAssignment{PortID: "49", Type: AssignmentUplink, AssignedTo: "spine-1"},
			expected:   false,
		},
		{
			name:       "unused port never a member",
			assignment: PortAssignment{PortID: "49", Type: AssignmentUnused, LAGGroup: "peer-link"},
			expected:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.assignment.IsMCLAGMember(); got != tt.expected {
				t.Errorf("IsMCLAGMember() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestMCLAGKey(t *testing.T) {
	withGroup := PortAssignment{AssignedTo: "mclag-peer", LAGGroup: "peer-link"}
	if withGroup.MCLAGKey() != "peer-link" {
		t.Errorf("MCLAGKey() = %q, expected explicit group to win", withGroup.MCLAGKey())
	}

	withoutGroup := PortAssignment{AssignedTo: "mclag-peer"}
	if withoutGroup.MCLAGKey() != "mclag-peer" {
		t.Errorf("MCLAGKey() = %q, expected assigned_to fallback", withoutGroup.MCLAGKey())
	}
}

func TestClone(t *testing.T) {
	original := PortAssignment{
		PortID:           "49",
		Type:             AssignmentUplink,
		AssignedTo:       "spine-1",
		BreakoutChildren: []string{"49-1", "49-2"},
	}

	clone := original.Clone()
	clone.BreakoutChildren[0] = "49-9"

	if original.BreakoutChildren[0] != "49-1" {
		t.Error("Clone() should deep-copy the breakout children slice")
	}
}

func TestUnassigned(t *testing.T) {
	a := Unassigned("7")

	if a.PortID != "7" {
		t.Errorf("PortID = %q, expected %q", a.PortID, "7")
	}
	if !a.IsUnused() {
		t.Error("Unassigned() should produce an unused assignment")
	}
	if a.Metadata.AssignedBy != ProvenanceAuto {
		t.Errorf("AssignedBy = %q, expected auto provenance", a.Metadata.AssignedBy)
	}
}

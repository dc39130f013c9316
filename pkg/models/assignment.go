package models

import (
	"strings"
	"time"

	"github.com/netfab/fabric-port-engine/internal/constants"
)

// AssignmentType describes what role a port currently serves
type AssignmentType string

const (
	AssignmentServer AssignmentType = "server"
	AssignmentUplink AssignmentType = "uplink"
	AssignmentUnused AssignmentType = "unused"
)

// Provenance records whether an assignment was computed or hand-placed
type Provenance string

const (
	ProvenanceAuto   Provenance = "auto"
	ProvenanceManual Provenance = "manual"
)

// AssignmentMetadata carries the provenance record for an assignment
type AssignmentMetadata struct {
	AssignedBy Provenance `yaml:"assigned_by,omitempty" json:"assigned_by,omitempty"`
	Timestamp  time.Time  `yaml:"timestamp,omitempty" json:"timestamp,omitempty"`
	Reason     string     `yaml:"reason,omitempty" json:"reason,omitempty"`
}

// PortAssignment is the state of one physical (or breakout child) port.
// Plain ports use small positive integers as ids ("1".."52"); breakout
// children use "<parent>-<index>" (e.g. "49-1").
type PortAssignment struct {
	PortID           string             `yaml:"port_id" json:"port_id" validate:"required"`
	Type             AssignmentType     `yaml:"type" json:"type" validate:"required,oneof=server uplink unused"`
	AssignedTo       string             `yaml:"assigned_to,omitempty" json:"assigned_to,omitempty"`
	Speed            string             `yaml:"speed,omitempty" json:"speed,omitempty"`
	Pinned           bool               `yaml:"pinned,omitempty" json:"pinned,omitempty"`
	Locked           bool               `yaml:"locked,omitempty" json:"locked,omitempty"`
	LAGGroup         string             `yaml:"lag_group,omitempty" json:"lag_group,omitempty"`
	BreakoutParent   string             `yaml:"breakout_parent,omitempty" json:"breakout_parent,omitempty"`
	BreakoutChildren []string           `yaml:"breakout_children,omitempty" json:"breakout_children,omitempty"`
	Metadata         AssignmentMetadata `yaml:"metadata,omitempty" json:"metadata"`
}

// IsUnused reports whether the port carries no assignment
func (p *PortAssignment) IsUnused() bool {
	return p.Type == AssignmentUnused
}

// IsBreakoutChild reports whether the port is a logical child of a breakout parent
func (p *PortAssignment) IsBreakoutChild() bool {
	return p.BreakoutParent != ""
}

// IsMCLAGMember reports whether the assignment participates in an MC-LAG
// pair. Membership is inferred from an explicit lag_group when present;
// otherwise it falls back to an "mclag" substring sniff on assigned_to,
// which is a compatibility heuristic and can misfire on free-form names.
func (p *PortAssignment) IsMCLAGMember() bool {
	if p.IsUnused() {
		return false
	}
	if p.LAGGroup != "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.AssignedTo), constants.MCLAGTag)
}

// MCLAGKey returns the identity that both members of an MC-LAG pair must share
func (p *PortAssignment) MCLAGKey() string {
	if p.LAGGroup != "" {
		return p.LAGGroup
	}
	return p.AssignedTo
}

// Clone returns a deep copy; the engine hands out copies so callers never
// alias its authoritative map
func (p *PortAssignment) Clone() PortAssignment {
	out := *p
	if p.BreakoutChildren != nil {
		out.BreakoutChildren = make([]string, len(p.BreakoutChildren))
		copy(out.BreakoutChildren, p.BreakoutChildren)
	}
	return out
}

// Unassigned returns the implicit state every physical port starts in
func Unassigned(portID string) PortAssignment {
	return PortAssignment{
		PortID: portID,
		Type:   AssignmentUnused,
		Metadata: AssignmentMetadata{
			AssignedBy: ProvenanceAuto,
		},
	}
}

package engine

import (
	"fmt"
	"strconv"

	"github.com/netfab/fabric-port-engine/internal/constants"
	"github.com/netfab/fabric-port-engine/pkg/models"
	"github.com/netfab/fabric-port-engine/pkg/utils"
)

// GenerateAlternatives proposes up to five remediations for a rejected
// assignment. Server assignments get the numerically nearest free access
// ports in fixed priority order; uplink assignments landing on a
// breakout-capable port get a breakout parent proposal. Every alternative
// targets a port different from the failing one.
func (e *Engine) GenerateAlternatives(portID string, failed models.PortAssignment) []models.AlternativeAssignment {
	var out []models.AlternativeAssignment

	switch failed.Type {
	case models.AssignmentServer:
		out = append(out, e.nearbyServerPorts(portID, failed)...)
	case models.AssignmentUplink:
		if e.profile.IsBreakoutCapable(portID) {
			out = append(out, e.breakoutProposal(portID, failed))
		}
	}

	if len(out) > constants.MaxAlternatives {
		out = out[:constants.MaxAlternatives]
	}
	return out
}

// nearbyServerPorts walks the neighbor offsets in priority order and
// proposes each free access port, confidence decreasing per step
func (e *Engine) nearbyServerPorts(portID string, failed models.PortAssignment) []models.AlternativeAssignment {
	n, err := utils.PortNumber(portID)
	if err != nil {
		n = e.profile.AccessPorts.Start
	}

	var out []models.AlternativeAssignment
	for step, offset := range constants.NeighborOffsets {
		candidate := n + offset
		if !e.profile.AccessPorts.Contains(candidate) {
			continue
		}

		id := strconv.Itoa(candidate)
		if id == portID || !e.portFree(id) {
			continue
		}

		alt := failed.Clone()
		alt.PortID = id
		alt.Speed = e.profile.AccessSpeed
		alt.Pinned = false
		alt.Locked = false

		out = append(out, models.AlternativeAssignment{
			PortID:     id,
			Assignment: alt,
			Rationale:  fmt.Sprintf("Port %s is the nearest free access port to %s", id, portID),
			Confidence: constants.NeighborBaseConfidence - float64(step)*constants.NeighborConfidenceStep,
		})
	}
	return out
}

// breakoutProposal suggests breaking the port out into deterministically
// named children and landing the uplink on the first child. Pinning a
// child makes the engine adopt it into the parent's breakout config, so
// the proposal is directly appliable.
func (e *Engine) breakoutProposal(portID string, failed models.PortAssignment) models.AlternativeAssignment {
	childID := utils.BreakoutChildID(portID, 1)

	alt := failed.Clone()
	alt.PortID = childID
	alt.BreakoutParent = portID
	alt.BreakoutChildren = nil
	alt.Pinned = false
	alt.Locked = false

	return models.AlternativeAssignment{
		PortID:     childID,
		Assignment: alt,
		Rationale:  fmt.Sprintf("Configure port %s as a breakout parent with %d logical children and land the uplink on %s", portID, constants.BreakoutChildCount, childID),
		Confidence: constants.BreakoutConfidence,
	}
}

// portFree reports whether a port exists, is unused, and carries neither a
// pin nor a lock
func (e *Engine) portFree(portID string) bool {
	a, ok := e.assignments[portID]
	if !ok {
		return false
	}
	return a.IsUnused() && !a.Pinned && !a.Locked
}

package engine

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/netfab/fabric-port-engine/internal/constants"
	"github.com/netfab/fabric-port-engine/pkg/models"
	"github.com/netfab/fabric-port-engine/pkg/utils"
)

// Engine owns the authoritative port assignment map for one switch and
// mediates every mutation through constraint validation. All methods are
// synchronous; expected failures come back as result values, never errors.
// The engine itself is not safe for concurrent mutation: a multi-threaded
// host must serialize calls into it.
type Engine struct {
	profile     models.SwitchProfile
	logger      *utils.Logger
	assignments map[string]models.PortAssignment
	pinned      map[string]bool
	locked      map[string]bool
	history     *HistoryManager
}

// NewEngine constructs an engine for a builtin switch model. A non-nil
// breakoutCapable list overrides the model's default breakout capability.
func NewEngine(model string, breakoutCapable []string, logger *utils.Logger) (*Engine, error) {
	profile, ok := models.ProfileFor(model)
	if !ok {
		return nil, fmt.Errorf("unknown switch model %q (known: %v)", model, models.Models())
	}
	if breakoutCapable != nil {
		profile.BreakoutCapable = breakoutCapable
	}
	return NewEngineWithProfile(profile, logger), nil
}

// NewEngineWithProfile constructs an engine around an explicit profile,
// typically one loaded from a YAML definition
func NewEngineWithProfile(profile models.SwitchProfile, logger *utils.Logger) *Engine {
	if logger == nil {
		logger = utils.NewLogger(false)
	}
	e := &Engine{
		profile: profile,
		logger:  logger,
		history: NewHistoryManager(constants.DefaultHistoryLimit),
	}
	e.initAssignments()
	return e
}

// initAssignments seeds every physical port as unused
func (e *Engine) initAssignments() {
	e.assignments = make(map[string]models.PortAssignment, e.profile.PortCount)
	e.pinned = make(map[string]bool)
	e.locked = make(map[string]bool)
	for n := 1; n <= e.profile.PortCount; n++ {
		id := strconv.Itoa(n)
		e.assignments[id] = models.Unassigned(id)
	}
}

// Profile returns the switch profile the engine was constructed with
func (e *Engine) Profile() models.SwitchProfile {
	return e.profile
}

// History exposes the operation log attached to this engine
func (e *Engine) History() *HistoryManager {
	return e.history
}

// Reset discards all assignments, pins, locks, and history
func (e *Engine) Reset() {
	e.initAssignments()
	e.history.Reset()
	e.logger.Debug("Engine state reset to all-unused")
}

// PinAssignment validates and commits a manual assignment for one port.
// On rejection the result carries the blocking violations plus up to five
// ranked alternatives; on success only residual warnings are returned.
func (e *Engine) PinAssignment(portID string, assignment models.PortAssignment) models.PinResult {
	assignment.PortID = portID

	candidate := e.candidateSet(portID, assignment)
	result := ValidateAll(candidate, e.profile)

	blocking := e.violationsFor(result.Violations, portID, assignment.BreakoutChildren, models.SeverityError)
	if len(blocking) > 0 {
		e.logger.Debug("Pin of port %s rejected with %d blocking violations", portID, len(blocking))
		return models.PinResult{
			Success:     false,
			Conflicts:   blocking,
			Suggestions: e.GenerateAlternatives(portID, assignment),
		}
	}

	assignment.Pinned = true
	assignment.Metadata.AssignedBy = models.ProvenanceManual
	assignment.Metadata.Timestamp = time.Now()

	before := e.current(portID)
	e.materializeChildren(portID, assignment)
	e.adoptIntoParent(portID, assignment)
	e.commit(assignment)
	e.recordOperation(models.OpPin, portID, before, assignment)

	committed := assignment.Clone()
	e.logger.Debug("Pinned port %s to %s", portID, assignment.AssignedTo)
	return models.PinResult{
		Success:    true,
		Assignment: &committed,
		Conflicts:  e.violationsFor(result.Violations, portID, assignment.BreakoutChildren, models.SeverityWarning),
	}
}

// UnpinAssignment clears the pin flag on a port while keeping the
// assignment itself in place
func (e *Engine) UnpinAssignment(portID string) models.PinResult {
	cur, ok := e.assignments[portID]
	if !ok {
		return failure(fmt.Sprintf("Unknown port %s", portID))
	}

	before := cur.Clone()
	cur.Pinned = false
	cur.Metadata.Timestamp = time.Now()
	e.commit(cur)
	e.recordOperation(models.OpUnpin, portID, before, cur)

	committed := cur.Clone()
	return models.PinResult{Success: true, Assignment: &committed}
}

// LockPort sets or clears the lock flag. Locking requires an existing
// non-unused assignment; unlocking an existing port always succeeds.
func (e *Engine) LockPort(portID string, locked bool) models.LockResult {
	cur, ok := e.assignments[portID]
	if !ok {
		return models.LockResult{
			Success: false,
			Conflicts: []models.ConstraintViolation{{
				Category: models.CategoryPhysical,
				Severity: models.SeverityError,
				Message:  fmt.Sprintf("Unknown port %s", portID),
				Ports:    []string{portID},
			}},
		}
	}

	if locked && cur.IsUnused() {
		return models.LockResult{
			Success: false,
			Conflicts: []models.ConstraintViolation{{
				Category:   models.CategoryLogical,
				Severity:   models.SeverityError,
				Message:    fmt.Sprintf("Cannot lock unassigned port %s", portID),
				Ports:      []string{portID},
				Suggestion: "Assign the port before locking it",
			}},
		}
	}

	before := cur.Clone()
	cur.Locked = locked
	cur.Metadata.Timestamp = time.Now()
	e.commit(cur)

	opType := models.OpLock
	if !locked {
		opType = models.OpUnlock
	}
	e.recordOperation(opType, portID, before, cur)

	committed := cur.Clone()
	return models.LockResult{Success: true, Assignment: &committed}
}

// AssignPort is the automatic allocator's entry point: same validation as
// a pin but with auto provenance, and it refuses to touch pinned or locked
// ports.
func (e *Engine) AssignPort(portID string, assignment models.PortAssignment) models.PinResult {
	if e.locked[portID] {
		return failure(fmt.Sprintf("Port %s is locked against automatic reassignment", portID))
	}
	if e.pinned[portID] {
		return failure(fmt.Sprintf("Port %s carries a manual pin", portID))
	}

	assignment.PortID = portID
	candidate := e.candidateSet(portID, assignment)
	result := ValidateAll(candidate, e.profile)

	blocking := e.violationsFor(result.Violations, portID, assignment.BreakoutChildren, models.SeverityError)
	if len(blocking) > 0 {
		return models.PinResult{
			Success:     false,
			Conflicts:   blocking,
			Suggestions: e.GenerateAlternatives(portID, assignment),
		}
	}

	assignment.Pinned = false
	assignment.Metadata.AssignedBy = models.ProvenanceAuto
	assignment.Metadata.Timestamp = time.Now()

	before := e.current(portID)
	e.materializeChildren(portID, assignment)
	e.adoptIntoParent(portID, assignment)
	e.commit(assignment)
	e.recordOperation(models.OpAssign, portID, before, assignment)

	committed := assignment.Clone()
	return models.PinResult{
		Success:    true,
		Assignment: &committed,
		Conflicts:  e.violationsFor(result.Violations, portID, assignment.BreakoutChildren, models.SeverityWarning),
	}
}

// UnassignPort reverts a port to unused. Locked ports are refused; a
// breakout parent retires its children with it.
func (e *Engine) UnassignPort(portID string) models.PinResult {
	cur, ok := e.assignments[portID]
	if !ok {
		return failure(fmt.Sprintf("Unknown port %s", portID))
	}
	if e.locked[portID] {
		return failure(fmt.Sprintf("Port %s is locked against automatic reassignment", portID))
	}

	before := cur.Clone()
	for _, childID := range cur.BreakoutChildren {
		if child, ok := e.assignments[childID]; ok {
			e.recordOperation(models.OpUnassign, childID, child, models.Unassigned(childID))
			delete(e.assignments, childID)
			delete(e.pinned, childID)
			delete(e.locked, childID)
		}
	}

	after := models.Unassigned(portID)
	after.Metadata.Timestamp = time.Now()
	e.commit(after)
	e.recordOperation(models.OpUnassign, portID, before, after)

	committed := after.Clone()
	return models.PinResult{Success: true, Assignment: &committed}
}

// ValidateConstraints validates an arbitrary candidate list without
// committing anything, for callers probing hypothetical states
func (e *Engine) ValidateConstraints(assignments []models.PortAssignment) []models.ConstraintViolation {
	return ValidateAll(assignments, e.profile).Violations
}

// GetOverrides snapshots the pinned and locked state for the automatic
// allocator, together with the committed set's current violations
func (e *Engine) GetOverrides() models.PortPinOverrides {
	pinned := make(map[string]models.PortAssignment)
	var lockedPorts []string

	for id, a := range e.assignments {
		if a.Pinned {
			pinned[id] = a.Clone()
		}
		if a.Locked {
			lockedPorts = append(lockedPorts, id)
		}
	}
	utils.SortPortIDs(lockedPorts)

	return models.PortPinOverrides{
		PinnedAssignments: pinned,
		LockedPorts:       lockedPorts,
		Constraints:       ValidateAll(e.Snapshot(), e.profile).Violations,
	}
}

// Snapshot returns an ordered copy of the committed assignment set
func (e *Engine) Snapshot() []models.PortAssignment {
	ids := make([]string, 0, len(e.assignments))
	for id := range e.assignments {
		ids = append(ids, id)
	}
	utils.SortPortIDs(ids)

	out := make([]models.PortAssignment, 0, len(ids))
	for _, id := range ids {
		a := e.assignments[id]
		out = append(out, a.Clone())
	}
	return out
}

// Undo steps the history cursor back and restores the operation's before
// snapshot. Returns false when there is nothing to undo.
func (e *Engine) Undo() (*models.PortOperation, bool) {
	op, ok := e.history.Undo()
	if !ok {
		return nil, false
	}
	e.apply(op.Before)
	return &op, true
}

// Redo steps the history cursor forward and reapplies the operation's
// after snapshot
func (e *Engine) Redo() (*models.PortOperation, bool) {
	op, ok := e.history.Redo()
	if !ok {
		return nil, false
	}
	e.apply(op.After)
	return &op, true
}

// apply writes an operation snapshot back into the committed map. Physical
// ports always exist, but a breakout child id only exists while its parent
// is broken out; a child snapshot in the implicit unused state marks the
// point where the entry was absent, so applying it removes the entry
// instead of writing a ghost.
func (e *Engine) apply(a models.PortAssignment) {
	if _, isChild := utils.ChildIndex(a.PortID); isChild &&
		a.IsUnused() && a.BreakoutParent == "" && !a.Pinned && !a.Locked {
		delete(e.assignments, a.PortID)
		delete(e.pinned, a.PortID)
		delete(e.locked, a.PortID)
		return
	}
	e.commit(a)
}

// candidateSet builds the hypothetical assignment list with portID replaced
// by the proposed assignment, including any breakout children the proposal
// introduces
func (e *Engine) candidateSet(portID string, assignment models.PortAssignment) []models.PortAssignment {
	out := make([]models.PortAssignment, 0, len(e.assignments)+len(assignment.BreakoutChildren)+1)
	present := make(map[string]bool, len(assignment.BreakoutChildren))

	for id, a := range e.assignments {
		if id == portID {
			continue
		}
		c := a.Clone()
		if id == assignment.BreakoutParent && !utils.Contains(c.BreakoutChildren, portID) {
			c.BreakoutChildren = append(c.BreakoutChildren, portID)
		}
		out = append(out, c)
		present[id] = true
	}
	out = append(out, assignment.Clone())

	for _, childID := range assignment.BreakoutChildren {
		if !present[childID] {
			child := models.Unassigned(childID)
			child.BreakoutParent = portID
			out = append(out, child)
		}
	}

	return out
}

// adoptIntoParent registers a breakout child in its parent's child list so
// the committed set stays symmetric when a child is assigned directly
func (e *Engine) adoptIntoParent(portID string, assignment models.PortAssignment) {
	if assignment.BreakoutParent == "" {
		return
	}
	parent, ok := e.assignments[assignment.BreakoutParent]
	if !ok || utils.Contains(parent.BreakoutChildren, portID) {
		return
	}
	before := parent.Clone()
	parent.BreakoutChildren = append(parent.BreakoutChildren, portID)
	e.recordOperation(models.OpAssign, parent.PortID, before, parent)
	e.commit(parent)
}

// materializeChildren creates unused child entries for a newly configured
// breakout parent so the committed set stays symmetric
func (e *Engine) materializeChildren(portID string, assignment models.PortAssignment) {
	for _, childID := range assignment.BreakoutChildren {
		if _, ok := e.assignments[childID]; ok {
			continue
		}
		child := models.Unassigned(childID)
		child.BreakoutParent = portID
		child.Metadata.Timestamp = time.Now()
		e.recordOperation(models.OpAssign, childID, models.Unassigned(childID), child)
		e.commit(child)
	}
}

// commit writes a snapshot into the authoritative map and keeps the pinned
// and locked index sets in sync
func (e *Engine) commit(a models.PortAssignment) {
	e.assignments[a.PortID] = a.Clone()

	if a.Pinned {
		e.pinned[a.PortID] = true
	} else {
		delete(e.pinned, a.PortID)
	}
	if a.Locked {
		e.locked[a.PortID] = true
	} else {
		delete(e.locked, a.PortID)
	}
}

// current returns the committed snapshot for a port, or the implicit
// unused state when the id has never been committed
func (e *Engine) current(portID string) models.PortAssignment {
	if a, ok := e.assignments[portID]; ok {
		return a.Clone()
	}
	return models.Unassigned(portID)
}

// recordOperation appends an audit record to the attached history
func (e *Engine) recordOperation(opType models.OperationType, portID string, before, after models.PortAssignment) {
	e.history.AddOperation(models.PortOperation{
		ID:        uuid.NewString(),
		Type:      opType,
		PortID:    portID,
		Before:    before.Clone(),
		After:     after.Clone(),
		Timestamp: time.Now(),
	})
}

// violationsFor filters violations down to those of one severity touching
// the port or any of its proposed breakout children
func (e *Engine) violationsFor(violations []models.ConstraintViolation, portID string, children []string, severity models.Severity) []models.ConstraintViolation {
	var out []models.ConstraintViolation
	for _, v := range violations {
		if v.Severity != severity {
			continue
		}
		if v.Affects(portID) {
			out = append(out, v)
			continue
		}
		for _, childID := range children {
			if v.Affects(childID) {
				out = append(out, v)
				break
			}
		}
	}
	return out
}

// failure builds a rejected result with a single logical conflict
func failure(message string) models.PinResult {
	return models.PinResult{
		Success: false,
		Conflicts: []models.ConstraintViolation{{
			Category: models.CategoryLogical,
			Severity: models.SeverityError,
			Message:  message,
		}},
	}
}

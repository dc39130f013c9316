package engine

import (
	"fmt"

	"github.com/netfab/fabric-port-engine/pkg/models"
	"github.com/netfab/fabric-port-engine/pkg/utils"
)

// ValidateAll runs every constraint category over a full assignment set and
// returns the complete violation list. Pure and deterministic: no partial
// validation, no dedup across categories, so a single malformed assignment
// may surface several violations. IsValid is true iff no violation carries
// error severity.
func ValidateAll(assignments []models.PortAssignment, profile models.SwitchProfile) models.ValidationResult {
	var violations []models.ConstraintViolation

	violations = append(violations, checkPhysical(assignments, profile)...)
	violations = append(violations, checkRanges(assignments, profile)...)
	violations = append(violations, checkSpeeds(assignments, profile)...)
	violations = append(violations, checkLogical(assignments)...)
	violations = append(violations, checkBreakout(assignments)...)

	isValid := true
	for _, v := range violations {
		if v.Severity == models.SeverityError {
			isValid = false
			break
		}
	}

	return models.ValidationResult{IsValid: isValid, Violations: violations}
}

// checkPhysical enforces uniqueness of port ids and that every id maps to a
// port that exists on the switch model
func checkPhysical(assignments []models.PortAssignment, profile models.SwitchProfile) []models.ConstraintViolation {
	var violations []models.ConstraintViolation

	seen := make(map[string]int, len(assignments))
	for _, a := range assignments {
		seen[a.PortID]++
	}
	reported := make(map[string]bool)

	for _, a := range assignments {
		if seen[a.PortID] > 1 && !reported[a.PortID] {
			reported[a.PortID] = true
			violations = append(violations, models.ConstraintViolation{
				Category: models.CategoryPhysical,
				Severity: models.SeverityError,
				Message:  fmt.Sprintf("Port %s is assigned multiple times", a.PortID),
				Ports:    []string{a.PortID},
			})
		}

		n, err := utils.PortNumber(a.PortID)
		if err != nil {
			violations = append(violations, models.ConstraintViolation{
				Category: models.CategoryPhysical,
				Severity: models.SeverityError,
				Message:  fmt.Sprintf("Port id %q is not a recognized port identifier", a.PortID),
				Ports:    []string{a.PortID},
			})
			continue
		}

		if n < 1 || n > profile.PortCount {
			violations = append(violations, models.ConstraintViolation{
				Category:   models.CategoryPhysical,
				Severity:   models.SeverityError,
				Message:    fmt.Sprintf("Port %s does not exist on the %s model", a.PortID, profile.Model),
				Ports:      []string{a.PortID},
				Suggestion: fmt.Sprintf("Valid ports are 1-%d", profile.PortCount),
			})
		}
	}

	return violations
}

// checkRanges enforces that each assignment type is permitted by the
// assignable range configured for its port number. Breakout children are
// exempt: their role is governed by the parent's breakout configuration.
func checkRanges(assignments []models.PortAssignment, profile models.SwitchProfile) []models.ConstraintViolation {
	var violations []models.ConstraintViolation

	for _, a := range assignments {
		if a.IsUnused() || a.IsBreakoutChild() {
			continue
		}

		n, err := utils.PortNumber(a.PortID)
		if err != nil {
			continue // already flagged by the physical check
		}

		switch a.Type {
		case models.AssignmentServer:
			if !profile.AccessPorts.Contains(n) {
				violations = append(violations, models.ConstraintViolation{
					Category:   models.CategoryRange,
					Severity:   models.SeverityError,
					Message:    fmt.Sprintf("Server assignment on port %s is outside access range %s and not allowed in any range", a.PortID, profile.AccessPorts),
					Ports:      []string{a.PortID},
					Suggestion: fmt.Sprintf("Move the server to a port in %s", profile.AccessPorts),
				})
			}
		case models.AssignmentUplink:
			if profile.AccessPorts.Contains(n) {
				violations = append(violations, models.ConstraintViolation{
					Category:   models.CategoryRange,
					Severity:   models.SeverityWarning,
					Message:    fmt.Sprintf("Uplink assignment on port %s sits inside access range %s", a.PortID, profile.AccessPorts),
					Ports:      []string{a.PortID},
					Suggestion: fmt.Sprintf("Uplinks normally occupy ports %s", profile.UplinkPorts),
				})
			}
		}
	}

	return violations
}

// checkSpeeds compares each port's speed against the model's expected band.
// A plain mismatch is a warning; an MC-LAG pair whose members disagree with
// each other is escalated to an error.
func checkSpeeds(assignments []models.PortAssignment, profile models.SwitchProfile) []models.ConstraintViolation {
	var violations []models.ConstraintViolation

	for _, a := range assignments {
		if a.IsUnused() || a.IsBreakoutChild() || a.Speed == "" {
			continue
		}

		n, err := utils.PortNumber(a.PortID)
		if err != nil {
			continue
		}

		expected := profile.ExpectedSpeed(n)
		if a.Speed != expected {
			violations = append(violations, models.ConstraintViolation{
				Category:   models.CategorySpeed,
				Severity:   models.SeverityWarning,
				Message:    fmt.Sprintf("Port %s is configured for %s where the %s model expects %s", a.PortID, a.Speed, profile.Model, expected),
				Ports:      []string{a.PortID},
				Suggestion: fmt.Sprintf("Use %s on port %s", expected, a.PortID),
			})
		}
	}

	for key, members := range mclagGroups(assignments) {
		speeds := make(map[string]bool)
		ports := make([]string, 0, len(members))
		for _, m := range members {
			speeds[m.Speed] = true
			ports = append(ports, m.PortID)
		}
		if len(speeds) > 1 {
			violations = append(violations, models.ConstraintViolation{
				Category:   models.CategorySpeed,
				Severity:   models.SeverityError,
				Message:    fmt.Sprintf("MC-LAG group %q has mismatched speeds across its member ports", key),
				Ports:      ports,
				Suggestion: "Configure both members of the pair with the same speed",
			})
		}
	}

	return violations
}

// checkLogical enforces MC-LAG pairing: every group must consist of exactly
// two ports carrying the identical peer identity
func checkLogical(assignments []models.PortAssignment) []models.ConstraintViolation {
	var violations []models.ConstraintViolation

	for key, members := range mclagGroups(assignments) {
		if len(members) == 2 {
			continue
		}
		ports := make([]string, 0, len(members))
		for _, m := range members {
			ports = append(ports, m.PortID)
		}
		violations = append(violations, models.ConstraintViolation{
			Category:   models.CategoryLogical,
			Severity:   models.SeverityError,
			Message:    fmt.Sprintf("MC-LAG group %q requires exactly two member ports, found %d", key, len(members)),
			Ports:      ports,
			Suggestion: "Add or remove member ports until the pair is complete",
		})
	}

	return violations
}

// mclagGroups buckets MC-LAG members by their shared identity. Membership
// detection falls back to an "mclag" substring sniff on assigned_to when no
// explicit lag_group is set; a heuristic kept for compatibility with
// existing fabric specifications.
func mclagGroups(assignments []models.PortAssignment) map[string][]models.PortAssignment {
	groups := make(map[string][]models.PortAssignment)
	for _, a := range assignments {
		if a.IsMCLAGMember() {
			groups[a.MCLAGKey()] = append(groups[a.MCLAGKey()], a)
		}
	}
	return groups
}

// checkBreakout enforces the two-level breakout tree: every child's parent
// must be present and list the child, and every parent's child list must be
// fully represented with matching back-references
func checkBreakout(assignments []models.PortAssignment) []models.ConstraintViolation {
	var violations []models.ConstraintViolation

	index := make(map[string]models.PortAssignment, len(assignments))
	for _, a := range assignments {
		index[a.PortID] = a
	}

	for _, a := range assignments {
		if a.BreakoutParent != "" {
			parent, ok := index[a.BreakoutParent]
			if !ok {
				violations = append(violations, models.ConstraintViolation{
					Category: models.CategoryBreakout,
					Severity: models.SeverityError,
					Message:  fmt.Sprintf("Breakout child %s has missing parent %s", a.PortID, a.BreakoutParent),
					Ports:    []string{a.PortID},
				})
			} else if !utils.Contains(parent.BreakoutChildren, a.PortID) {
				violations = append(violations, models.ConstraintViolation{
					Category: models.CategoryBreakout,
					Severity: models.SeverityError,
					Message:  fmt.Sprintf("Breakout parent %s does not list child %s", a.BreakoutParent, a.PortID),
					Ports:    []string{a.BreakoutParent, a.PortID},
				})
			}
		}

		for _, childID := range a.BreakoutChildren {
			child, ok := index[childID]
			if !ok {
				violations = append(violations, models.ConstraintViolation{
					Category: models.CategoryBreakout,
					Severity: models.SeverityError,
					Message:  fmt.Sprintf("Breakout parent %s is missing child %s", a.PortID, childID),
					Ports:    []string{a.PortID},
				})
				continue
			}
			if child.BreakoutParent != a.PortID {
				violations = append(violations, models.ConstraintViolation{
					Category: models.CategoryBreakout,
					Severity: models.SeverityError,
					Message:  fmt.Sprintf("Breakout child %s does not reference parent %s", childID, a.PortID),
					Ports:    []string{a.PortID, childID},
				})
			}
		}
	}

	return violations
}

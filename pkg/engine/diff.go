package engine

import (
	"github.com/netfab/fabric-port-engine/pkg/models"
	"github.com/netfab/fabric-port-engine/pkg/utils"
)

// ComputeDiff compares an automatic baseline set against a manual override
// set. Pure: neither input is mutated. Conflicts are whatever the manual
// set produces when validated on its own merits.
func ComputeDiff(auto, manual []models.PortAssignment, profile models.SwitchProfile) models.AssignmentDiff {
	manualByID := make(map[string]models.PortAssignment, len(manual))
	for _, m := range manual {
		manualByID[m.PortID] = m
	}

	var changed, freed int
	var affectedServers, affectedUplinks []string

	record := func(occupant string, t models.AssignmentType) {
		if occupant == "" {
			return
		}
		if t == models.AssignmentServer {
			affectedServers = append(affectedServers, occupant)
		} else if t == models.AssignmentUplink {
			affectedUplinks = append(affectedUplinks, occupant)
		}
	}

	for _, a := range auto {
		m, present := manualByID[a.PortID]
		if !present {
			freed++
			record(a.AssignedTo, a.Type)
			continue
		}
		if m.AssignedTo != a.AssignedTo {
			changed++
			record(a.AssignedTo, a.Type)
			record(m.AssignedTo, m.Type)
		}
	}

	return models.AssignmentDiff{
		AutoAssignments: cloneSet(auto),
		ManualOverrides: manualOverrides(manual),
		Conflicts:       ValidateAll(manual, profile).Violations,
		ImpactSummary: models.ImpactSummary{
			PortsChanged:     changed,
			PortsFreed:       freed,
			AffectedServers:  utils.Dedupe(affectedServers),
			AffectedUplinks:  utils.Dedupe(affectedUplinks),
			EfficiencyImpact: efficiencyImpact(auto, manual),
		},
	}
}

// efficiencyImpact is the percentage change in utilized (non-unused) port
// count from the automatic baseline to the manual set; zero when the
// baseline utilizes nothing
func efficiencyImpact(auto, manual []models.PortAssignment) float64 {
	autoUtil := utilization(auto)
	if autoUtil == 0 {
		return 0
	}
	manualUtil := utilization(manual)
	return float64(manualUtil-autoUtil) / float64(autoUtil) * 100
}

func utilization(assignments []models.PortAssignment) int {
	count := 0
	for _, a := range assignments {
		if !a.IsUnused() {
			count++
		}
	}
	return count
}

// manualOverrides picks the manual-set entries that represent operator
// intervention: pinned or carrying manual provenance
func manualOverrides(manual []models.PortAssignment) []models.PortAssignment {
	var out []models.PortAssignment
	for _, m := range manual {
		if m.Pinned || m.Metadata.AssignedBy == models.ProvenanceManual {
			out = append(out, m.Clone())
		}
	}
	return out
}

func cloneSet(assignments []models.PortAssignment) []models.PortAssignment {
	out := make([]models.PortAssignment, 0, len(assignments))
	for _, a := range assignments {
		out = append(out, a.Clone())
	}
	return out
}

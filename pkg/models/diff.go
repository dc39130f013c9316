package models

// ImpactSummary quantifies how far a manual set has drifted from the
// automatic baseline
type ImpactSummary struct {
	PortsChanged     int      `json:"ports_changed"`
	PortsFreed       int      `json:"ports_freed"`
	AffectedServers  []string `json:"affected_servers"`
	AffectedUplinks  []string `json:"affected_uplinks"`
	EfficiencyImpact float64  `json:"efficiency_impact"`
}

// AssignmentDiff is the structured comparison of an automatic baseline
// against a manual override set
type AssignmentDiff struct {
	AutoAssignments []PortAssignment      `json:"auto_assignments"`
	ManualOverrides []PortAssignment      `json:"manual_overrides"`
	Conflicts       []ConstraintViolation `json:"conflicts"`
	ImpactSummary   ImpactSummary         `json:"impact_summary"`
}

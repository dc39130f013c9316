package constants

// Engine defaults
const (
	DefaultHistoryLimit = 50
	DefaultSwitchModel  = "DS2000"
)

// Alternative generation tuning
const (
	MaxAlternatives        = 5
	BreakoutChildCount     = 4
	NeighborBaseConfidence = 0.9
	NeighborConfidenceStep = 0.1
	BreakoutConfidence     = 0.85
)

// NeighborOffsets is the priority order in which nearby ports are proposed
// when a server pin is rejected
var NeighborOffsets = []int{-1, +1, -2, +2}

// History serialization
const (
	HistoryExportVersion = "1.0"
)

// MCLAGTag is the assigned_to substring that marks MC-LAG membership when
// no explicit lag_group is carried
const MCLAGTag = "mclag"

package models

import "fmt"

// PortRange is an inclusive range of physical port numbers
type PortRange struct {
	Start int `yaml:"start" json:"start" validate:"required,min=1"`
	End   int `yaml:"end" json:"end" validate:"required,min=1"`
}

// Contains reports whether n falls inside the range
func (r PortRange) Contains(n int) bool {
	return n >= r.Start && n <= r.End
}

func (r PortRange) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// SwitchProfile describes the physical wiring constraints of a switch model
type SwitchProfile struct {
	Model           string    `yaml:"model" json:"model" validate:"required"`
	PortCount       int       `yaml:"port_count" json:"port_count" validate:"required,min=1"`
	AccessPorts     PortRange `yaml:"access_ports" json:"access_ports"`
	UplinkPorts     PortRange `yaml:"uplink_ports" json:"uplink_ports"`
	AccessSpeed     string    `yaml:"access_speed" json:"access_speed" validate:"required"`
	UplinkSpeed     string    `yaml:"uplink_speed" json:"uplink_speed" validate:"required"`
	BreakoutCapable []string  `yaml:"breakout_capable,omitempty" json:"breakout_capable,omitempty"`
}

// ExpectedSpeed returns the speed band the model expects for a port number
func (s SwitchProfile) ExpectedSpeed(portNum int) string {
	if s.UplinkPorts.Contains(portNum) {
		return s.UplinkSpeed
	}
	return s.AccessSpeed
}

// IsBreakoutCapable reports whether a port may be fanned out into children
func (s SwitchProfile) IsBreakoutCapable(portID string) bool {
	for _, id := range s.BreakoutCapable {
		if id == portID {
			return true
		}
	}
	return false
}

// builtinProfiles holds the switch models the engine knows out of the box.
// Additional models can be loaded from YAML through pkg/loader.
var builtinProfiles = map[string]SwitchProfile{
	"DS2000": {
		Model:           "DS2000",
		PortCount:       52,
		AccessPorts:     PortRange{Start: 1, End: 48},
		UplinkPorts:     PortRange{Start: 49, End: 52},
		AccessSpeed:     "25G",
		UplinkSpeed:     "100G",
		BreakoutCapable: []string{"49", "50", "51", "52"},
	},
	"DS3000": {
		Model:           "DS3000",
		PortCount:       32,
		AccessPorts:     PortRange{Start: 1, End: 24},
		UplinkPorts:     PortRange{Start: 25, End: 32},
		AccessSpeed:     "10G",
		UplinkSpeed:     "40G",
		BreakoutCapable: []string{"25", "26", "27", "28", "29", "30", "31", "32"},
	},
}

// ProfileFor looks up a builtin switch profile by model identifier
func ProfileFor(model string) (SwitchProfile, bool) {
	p, ok := builtinProfiles[model]
	return p, ok
}

// Models lists the builtin model identifiers
func Models() []string {
	out := make([]string, 0, len(builtinProfiles))
	for m := range builtinProfiles {
		out = append(out, m)
	}
	return out
}

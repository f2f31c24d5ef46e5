package enums

import "fmt"

// VolumeTierID identifies a monthly screening volume bracket.
type VolumeTierID string

const (
	VolumeTier1          VolumeTierID = "tier1"
	VolumeTier2          VolumeTierID = "tier2"
	VolumeTier3          VolumeTierID = "tier3"
	VolumeTierEnterprise VolumeTierID = "enterprise"
)

var validVolumeTierIDs = []VolumeTierID{
	VolumeTier1,
	VolumeTier2,
	VolumeTier3,
	VolumeTierEnterprise,
}

// String implements fmt.Stringer.
func (v VolumeTierID) String() string {
	return string(v)
}

// IsValid reports whether the value is a known VolumeTierID.
func (v VolumeTierID) IsValid() bool {
	for _, candidate := range validVolumeTierIDs {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseVolumeTierID converts raw input into a VolumeTierID.
func ParseVolumeTierID(value string) (VolumeTierID, error) {
	for _, candidate := range validVolumeTierIDs {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid volume tier %q", value)
}

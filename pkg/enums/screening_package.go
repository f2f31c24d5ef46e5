package enums

import "fmt"

// ScreeningPackageID identifies a bundle of applicant checks.
type ScreeningPackageID string

const (
	ScreeningPackageBasic    ScreeningPackageID = "basic"
	ScreeningPackageStandard ScreeningPackageID = "standard"
	ScreeningPackagePremium  ScreeningPackageID = "premium"
)

var validScreeningPackageIDs = []ScreeningPackageID{
	ScreeningPackageBasic,
	ScreeningPackageStandard,
	ScreeningPackagePremium,
}

// String implements fmt.Stringer.
func (p ScreeningPackageID) String() string {
	return string(p)
}

// IsValid reports whether the value is a known ScreeningPackageID.
func (p ScreeningPackageID) IsValid() bool {
	for _, candidate := range validScreeningPackageIDs {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseScreeningPackageID converts raw input into a ScreeningPackageID.
func ParseScreeningPackageID(value string) (ScreeningPackageID, error) {
	for _, candidate := range validScreeningPackageIDs {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid screening package %q", value)
}

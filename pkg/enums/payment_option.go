package enums

import "fmt"

// PaymentOptionID identifies who bears the screening cost.
type PaymentOptionID string

const (
	PaymentOptionTenantPays           PaymentOptionID = "tenant_pays"
	PaymentOptionLandlordPays         PaymentOptionID = "landlord_pays"
	PaymentOptionTenantPaysRefundable PaymentOptionID = "tenant_pays_refundable"
)

var validPaymentOptionIDs = []PaymentOptionID{
	PaymentOptionTenantPays,
	PaymentOptionLandlordPays,
	PaymentOptionTenantPaysRefundable,
}

// String implements fmt.Stringer.
func (p PaymentOptionID) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentOptionID.
func (p PaymentOptionID) IsValid() bool {
	for _, candidate := range validPaymentOptionIDs {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePaymentOptionID converts raw input into a PaymentOptionID.
func ParsePaymentOptionID(value string) (PaymentOptionID, error) {
	for _, candidate := range validPaymentOptionIDs {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment option %q", value)
}

// PaymentResponsibility is the party billed for a screening.
type PaymentResponsibility string

const (
	PaymentResponsibilityLandlord PaymentResponsibility = "landlord"
	PaymentResponsibilityTenant   PaymentResponsibility = "tenant"
)

// String implements fmt.Stringer.
func (p PaymentResponsibility) String() string {
	return string(p)
}

// ResponsibilityFor maps a payment option to the billed party. Only
// landlord_pays bills the landlord.
func ResponsibilityFor(option PaymentOptionID) PaymentResponsibility {
	if option == PaymentOptionLandlordPays {
		return PaymentResponsibilityLandlord
	}
	return PaymentResponsibilityTenant
}

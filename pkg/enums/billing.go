package enums

import "fmt"

// BillingPaymentMethod describes how a property owner settles screening invoices.
type BillingPaymentMethod string

const (
	BillingPaymentMethodCreditCard BillingPaymentMethod = "credit_card"
	BillingPaymentMethodACH        BillingPaymentMethod = "ach"
	BillingPaymentMethodInvoice    BillingPaymentMethod = "invoice"
)

var validBillingPaymentMethods = []BillingPaymentMethod{
	BillingPaymentMethodCreditCard,
	BillingPaymentMethodACH,
	BillingPaymentMethodInvoice,
}

// String implements fmt.Stringer.
func (b BillingPaymentMethod) String() string {
	return string(b)
}

// IsValid reports whether the value is a known BillingPaymentMethod.
func (b BillingPaymentMethod) IsValid() bool {
	for _, candidate := range validBillingPaymentMethods {
		if candidate == b {
			return true
		}
	}
	return false
}

// ParseBillingPaymentMethod converts raw input into a BillingPaymentMethod.
func ParseBillingPaymentMethod(value string) (BillingPaymentMethod, error) {
	for _, candidate := range validBillingPaymentMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid billing payment method %q", value)
}

// BillingCycle defines when screening charges are collected.
type BillingCycle string

const (
	BillingCyclePerScreening BillingCycle = "per_screening"
	BillingCycleMonthly      BillingCycle = "monthly"
	BillingCyclePrepaid      BillingCycle = "prepaid"
)

var validBillingCycles = []BillingCycle{
	BillingCyclePerScreening,
	BillingCycleMonthly,
	BillingCyclePrepaid,
}

// String implements fmt.Stringer.
func (b BillingCycle) String() string {
	return string(b)
}

// IsValid reports whether the value is a known BillingCycle.
func (b BillingCycle) IsValid() bool {
	for _, candidate := range validBillingCycles {
		if candidate == b {
			return true
		}
	}
	return false
}

// ParseBillingCycle converts raw input into a BillingCycle.
func ParseBillingCycle(value string) (BillingCycle, error) {
	for _, candidate := range validBillingCycles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid billing cycle %q", value)
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomPricing carries optional per-package price overrides.
type CustomPricing struct {
	Basic    *decimal.Decimal `json:"basic,omitempty"`
	Standard *decimal.Decimal `json:"standard,omitempty"`
	Premium  *decimal.Decimal `json:"premium,omitempty"`
}

type CalculateRequest struct {
	PackageID     string         `json:"packageId" validate:"required"`
	MonthlyVolume *int           `json:"monthlyVolume" validate:"required,gte=0"`
	PaymentOption string         `json:"paymentOption" validate:"required"`
	CustomPricing *CustomPricing `json:"customPricing,omitempty"`
}

type QuoteRequest struct {
	MonthlyVolume *int           `json:"monthlyVolume" validate:"required,gte=0"`
	PackageIDs    []string       `json:"packageIds" validate:"required,min=1,dive,required"`
	PaymentOption string         `json:"paymentOption" validate:"required"`
	CustomPricing *CustomPricing `json:"customPricing,omitempty"`
}

type Billing struct {
	PaymentMethod  string           `json:"paymentMethod,omitempty"`
	BillingCycle   string           `json:"billingCycle,omitempty"`
	AutoRecharge   bool             `json:"autoRecharge"`
	MinimumBalance *decimal.Decimal `json:"minimumBalance,omitempty"`
}

// ConfigurationRequest is the full record a property saves. UpdatedAt is
// accepted so clients can send back what they read, but it is ignored.
type ConfigurationRequest struct {
	PropertyID    string         `json:"propertyId" validate:"required,max=128"`
	PaymentOption string         `json:"paymentOption" validate:"required"`
	VolumeTier    string         `json:"volumeTier" validate:"required"`
	CustomPricing *CustomPricing `json:"customPricing,omitempty"`
	Billing       *Billing       `json:"billing,omitempty"`
	UpdatedAt     *time.Time     `json:"updatedAt,omitempty"`
}

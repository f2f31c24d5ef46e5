package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/keyhold-backend/pkg/enums"
)

// PricingTier is a monthly volume bracket.
type PricingTier struct {
	ID              enums.VolumeTierID `json:"id"`
	Name            string             `json:"name"`
	VolumeRange     string             `json:"volumeRange"`
	BasePrice       decimal.Decimal    `json:"basePrice"`
	IsCustom        bool               `json:"isCustom"`
	DiscountPercent decimal.Decimal    `json:"discountPercent"`
	// MaxVolume is the inclusive upper bound. Zero on custom tiers means unbounded.
	MaxVolume int      `json:"maxVolume,omitempty"`
	Features  []string `json:"features"`
}

// PaymentOption describes who bears the screening fee.
type PaymentOption struct {
	ID              enums.PaymentOptionID `json:"id"`
	Name            string                `json:"name"`
	Description     string                `json:"description"`
	Promo           *string               `json:"promo,omitempty"`
	Amount          *decimal.Decimal      `json:"amount,omitempty"`
	Refundable      bool                  `json:"refundable"`
	RefundCondition *string               `json:"refundCondition,omitempty"`
}

// ScreeningPackage is a bundle of background checks.
type ScreeningPackage struct {
	ID          enums.ScreeningPackageID `json:"id"`
	Name        string                   `json:"name"`
	BasePrice   decimal.Decimal          `json:"basePrice"`
	Checks      []string                 `json:"checks"`
	Recommended bool                     `json:"recommended"`
}

// CustomPricing overrides per-package base prices. Nil fields keep the catalog price.
type CustomPricing struct {
	Basic    *decimal.Decimal `json:"basic,omitempty"`
	Standard *decimal.Decimal `json:"standard,omitempty"`
	Premium  *decimal.Decimal `json:"premium,omitempty"`
}

// For returns the override for the package, if any.
func (c *CustomPricing) For(id enums.ScreeningPackageID) *decimal.Decimal {
	if c == nil {
		return nil
	}
	switch id {
	case enums.ScreeningPackageBasic:
		return c.Basic
	case enums.ScreeningPackageStandard:
		return c.Standard
	case enums.ScreeningPackagePremium:
		return c.Premium
	}
	return nil
}

// IsEmpty reports whether no override is set.
func (c *CustomPricing) IsEmpty() bool {
	return c == nil || (c.Basic == nil && c.Standard == nil && c.Premium == nil)
}

// BillingSettings holds how a property settles screening charges.
type BillingSettings struct {
	PaymentMethod  enums.BillingPaymentMethod `json:"paymentMethod"`
	BillingCycle   enums.BillingCycle         `json:"billingCycle"`
	AutoRecharge   bool                       `json:"autoRecharge"`
	MinimumBalance *decimal.Decimal           `json:"minimumBalance,omitempty"`
}

// PricingConfiguration is the stored pricing choice of a property.
type PricingConfiguration struct {
	PropertyID    string                `json:"propertyId"`
	PaymentOption enums.PaymentOptionID `json:"paymentOption"`
	VolumeTier    enums.VolumeTierID    `json:"volumeTier"`
	CustomPricing *CustomPricing        `json:"customPricing,omitempty"`
	Billing       BillingSettings       `json:"billing"`
	UpdatedAt     time.Time             `json:"updatedAt,omitempty"`
}

// ScreeningCost is the price breakdown of one package.
type ScreeningCost struct {
	PackageID             enums.ScreeningPackageID    `json:"packageId"`
	Tier                  enums.VolumeTierID          `json:"tier"`
	BasePrice             decimal.Decimal             `json:"basePrice"`
	VolumeDiscount        decimal.Decimal             `json:"volumeDiscount"`
	FinalPrice            decimal.Decimal             `json:"finalPrice"`
	PaymentResponsibility enums.PaymentResponsibility `json:"paymentResponsibility"`
	Refundable            bool                        `json:"refundable"`
}

// Quote aggregates several packages into a monthly projection.
type Quote struct {
	MonthlyVolume    int                   `json:"monthlyVolume"`
	Tier             enums.VolumeTierID    `json:"tier"`
	PaymentOption    enums.PaymentOptionID `json:"paymentOption"`
	Packages         []ScreeningCost       `json:"packages"`
	TotalMonthlyCost decimal.Decimal       `json:"totalMonthlyCost"`
	// AnnualSavings is nil on tier1.
	AnnualSavings *decimal.Decimal `json:"annualSavings,omitempty"`
}

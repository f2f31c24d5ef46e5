package dto

import "time"

type PricingTier struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	VolumeRange     string   `json:"volumeRange"`
	BasePrice       *float64 `json:"basePrice"`
	IsCustom        bool     `json:"isCustom"`
	DiscountPercent float64  `json:"discountPercent"`
	MaxVolume       *int     `json:"maxVolume"`
	Features        []string `json:"features"`
}

type PaymentOption struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Promo           *string  `json:"promo,omitempty"`
	Amount          *float64 `json:"amount,omitempty"`
	Refundable      bool     `json:"refundable"`
	RefundCondition *string  `json:"refundCondition,omitempty"`
}

type ScreeningPackage struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	BasePrice   float64  `json:"basePrice"`
	Checks      []string `json:"checks"`
	Recommended bool     `json:"recommended,omitempty"`
}

type ScreeningCost struct {
	PackageID             string  `json:"packageId"`
	Tier                  string  `json:"tier"`
	BasePrice             float64 `json:"basePrice"`
	VolumeDiscount        float64 `json:"volumeDiscount"`
	FinalPrice            float64 `json:"finalPrice"`
	PaymentResponsibility string  `json:"paymentResponsibility"`
	Refundable            bool    `json:"refundable"`
}

type Quote struct {
	MonthlyVolume    int             `json:"monthlyVolume"`
	Tier             string          `json:"tier"`
	PaymentOption    string          `json:"paymentOption"`
	Packages         []ScreeningCost `json:"packages"`
	TotalMonthlyCost float64         `json:"totalMonthlyCost"`
	AnnualSavings    *float64        `json:"annualSavings,omitempty"`
}

type CustomPrices struct {
	Basic    *float64 `json:"basic,omitempty"`
	Standard *float64 `json:"standard,omitempty"`
	Premium  *float64 `json:"premium,omitempty"`
}

type BillingSettings struct {
	PaymentMethod  string   `json:"paymentMethod"`
	BillingCycle   string   `json:"billingCycle"`
	AutoRecharge   bool     `json:"autoRecharge"`
	MinimumBalance *float64 `json:"minimumBalance,omitempty"`
}

type Configuration struct {
	PropertyID    string          `json:"propertyId"`
	PaymentOption string          `json:"paymentOption"`
	VolumeTier    string          `json:"volumeTier"`
	CustomPricing *CustomPrices   `json:"customPricing,omitempty"`
	Billing       BillingSettings `json:"billing"`
	UpdatedAt     *time.Time      `json:"updatedAt,omitempty"`
}

type SaveResult struct {
	Success bool `json:"success"`
}

package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/keyhold-backend/pkg/enums"
)

var (
	tiers = []PricingTier{
		{
			ID:              enums.VolumeTier1,
			Name:            "Starter",
			VolumeRange:     "1-10 applicants/month",
			BasePrice:       decimal.RequireFromString("35.00"),
			DiscountPercent: decimal.Zero,
			MaxVolume:       10,
			Features:        []string{"Standard screening package", "Email support", "48-hour turnaround"},
		},
		{
			ID:              enums.VolumeTier2,
			Name:            "Growth",
			VolumeRange:     "11-50 applicants/month",
			BasePrice:       decimal.RequireFromString("30.63"),
			DiscountPercent: decimal.RequireFromString("12.5"),
			MaxVolume:       50,
			Features:        []string{"12.5% volume discount", "Priority email support", "24-hour turnaround"},
		},
		{
			ID:              enums.VolumeTier3,
			Name:            "Professional",
			VolumeRange:     "51-100 applicants/month",
			BasePrice:       decimal.RequireFromString("26.25"),
			DiscountPercent: decimal.RequireFromString("25"),
			MaxVolume:       100,
			Features:        []string{"25% volume discount", "Phone support", "Same-day turnaround"},
		},
		{
			ID:              enums.VolumeTierEnterprise,
			Name:            "Enterprise",
			VolumeRange:     "100+ applicants/month",
			BasePrice:       decimal.Zero,
			IsCustom:        true,
			DiscountPercent: decimal.Zero,
			Features:        []string{"Negotiated pricing", "Dedicated account manager", "API access"},
		},
	}

	paymentOptions = []PaymentOption{
		{
			ID:          enums.PaymentOptionTenantPays,
			Name:        "Applicant Pays",
			Description: "Applicants pay the screening fee when they apply.",
			Promo:       strPtr("Free for property owners"),
		},
		{
			ID:          enums.PaymentOptionLandlordPays,
			Name:        "Owner Pays",
			Description: "The property owner covers the screening fee for every applicant.",
		},
		{
			ID:              enums.PaymentOptionTenantPaysRefundable,
			Name:            "Refundable Applicant Fee",
			Description:     "Applicants pay up front and are refunded once they sign a lease.",
			Refundable:      true,
			RefundCondition: strPtr("lease signing"),
		},
	}

	basicChecks    = []string{"Credit report", "Identity verification"}
	standardChecks = append(append([]string{}, basicChecks...), "Criminal background", "Eviction history")
	premiumChecks  = append(append([]string{}, standardChecks...), "Income verification", "Employment verification", "Rental history")

	packages = []ScreeningPackage{
		{
			ID:        enums.ScreeningPackageBasic,
			Name:      "Basic",
			BasePrice: decimal.RequireFromString("19.00"),
			Checks:    basicChecks,
		},
		{
			ID:          enums.ScreeningPackageStandard,
			Name:        "Standard",
			BasePrice:   decimal.RequireFromString("35.00"),
			Checks:      standardChecks,
			Recommended: true,
		},
		{
			ID:        enums.ScreeningPackagePremium,
			Name:      "Premium",
			BasePrice: decimal.RequireFromString("55.00"),
			Checks:    premiumChecks,
		},
	}
)

// PricingTiers returns a copy of the tier catalog ordered by volume.
func PricingTiers() []PricingTier {
	out := make([]PricingTier, len(tiers))
	for i, t := range tiers {
		t.Features = append([]string(nil), t.Features...)
		out[i] = t
	}
	return out
}

// PaymentOptions returns a copy of the payment option catalog.
func PaymentOptions() []PaymentOption {
	out := make([]PaymentOption, len(paymentOptions))
	for i, o := range paymentOptions {
		out[i] = clonePaymentOption(o)
	}
	return out
}

// ScreeningPackages returns a copy of the package catalog.
func ScreeningPackages() []ScreeningPackage {
	out := make([]ScreeningPackage, len(packages))
	for i, p := range packages {
		p.Checks = append([]string(nil), p.Checks...)
		out[i] = p
	}
	return out
}

// ResolveVolumeTier maps a monthly volume onto its bracket.
func ResolveVolumeTier(monthlyVolume int) PricingTier {
	for _, t := range tiers {
		if !t.IsCustom && monthlyVolume <= t.MaxVolume {
			return t
		}
	}
	return tiers[len(tiers)-1]
}

func findPackage(id enums.ScreeningPackageID) (ScreeningPackage, bool) {
	for _, p := range packages {
		if p.ID == id {
			return p, true
		}
	}
	return ScreeningPackage{}, false
}

func findPaymentOption(id enums.PaymentOptionID) (PaymentOption, bool) {
	for _, o := range paymentOptions {
		if o.ID == id {
			return clonePaymentOption(o), true
		}
	}
	return PaymentOption{}, false
}

func clonePaymentOption(o PaymentOption) PaymentOption {
	if o.Promo != nil {
		o.Promo = strPtr(*o.Promo)
	}
	if o.RefundCondition != nil {
		o.RefundCondition = strPtr(*o.RefundCondition)
	}
	if o.Amount != nil {
		amount := *o.Amount
		o.Amount = &amount
	}
	return o
}

func strPtr(v string) *string {
	return &v
}

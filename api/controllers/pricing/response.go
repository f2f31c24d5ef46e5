package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/keyhold-backend/api/controllers/pricing/dto"
	pricingsvc "github.com/angelmondragon/keyhold-backend/internal/pricing"
)

// money rounds to cents at the transport boundary.
func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func moneyPtr(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	v := money(*d)
	return &v
}

func newTiers(tiers []pricingsvc.PricingTier) []dto.PricingTier {
	out := make([]dto.PricingTier, 0, len(tiers))
	for _, t := range tiers {
		item := dto.PricingTier{
			ID:              t.ID.String(),
			Name:            t.Name,
			VolumeRange:     t.VolumeRange,
			IsCustom:        t.IsCustom,
			DiscountPercent: t.DiscountPercent.InexactFloat64(),
			Features:        t.Features,
		}
		if !t.IsCustom {
			item.BasePrice = moneyPtr(&t.BasePrice)
			maxVolume := t.MaxVolume
			item.MaxVolume = &maxVolume
		}
		out = append(out, item)
	}
	return out
}

func newPaymentOptions(options []pricingsvc.PaymentOption) []dto.PaymentOption {
	out := make([]dto.PaymentOption, 0, len(options))
	for _, o := range options {
		out = append(out, dto.PaymentOption{
			ID:              o.ID.String(),
			Name:            o.Name,
			Description:     o.Description,
			Promo:           o.Promo,
			Amount:          moneyPtr(o.Amount),
			Refundable:      o.Refundable,
			RefundCondition: o.RefundCondition,
		})
	}
	return out
}

func newPackages(pkgs []pricingsvc.ScreeningPackage) []dto.ScreeningPackage {
	out := make([]dto.ScreeningPackage, 0, len(pkgs))
	for _, p := range pkgs {
		out = append(out, dto.ScreeningPackage{
			ID:          p.ID.String(),
			Name:        p.Name,
			BasePrice:   money(p.BasePrice),
			Checks:      p.Checks,
			Recommended: p.Recommended,
		})
	}
	return out
}

func newScreeningCost(cost pricingsvc.ScreeningCost) dto.ScreeningCost {
	return dto.ScreeningCost{
		PackageID:             cost.PackageID.String(),
		Tier:                  cost.Tier.String(),
		BasePrice:             money(cost.BasePrice),
		VolumeDiscount:        money(cost.VolumeDiscount),
		FinalPrice:            money(cost.FinalPrice),
		PaymentResponsibility: cost.PaymentResponsibility.String(),
		Refundable:            cost.Refundable,
	}
}

func newQuote(quote pricingsvc.Quote) dto.Quote {
	packages := make([]dto.ScreeningCost, 0, len(quote.Packages))
	for _, cost := range quote.Packages {
		packages = append(packages, newScreeningCost(cost))
	}
	return dto.Quote{
		MonthlyVolume:    quote.MonthlyVolume,
		Tier:             quote.Tier.String(),
		PaymentOption:    quote.PaymentOption.String(),
		Packages:         packages,
		TotalMonthlyCost: money(quote.TotalMonthlyCost),
		AnnualSavings:    moneyPtr(quote.AnnualSavings),
	}
}

func newConfiguration(cfg pricingsvc.PricingConfiguration) dto.Configuration {
	out := dto.Configuration{
		PropertyID:    cfg.PropertyID,
		PaymentOption: cfg.PaymentOption.String(),
		VolumeTier:    cfg.VolumeTier.String(),
		Billing: dto.BillingSettings{
			PaymentMethod:  cfg.Billing.PaymentMethod.String(),
			BillingCycle:   cfg.Billing.BillingCycle.String(),
			AutoRecharge:   cfg.Billing.AutoRecharge,
			MinimumBalance: moneyPtr(cfg.Billing.MinimumBalance),
		},
	}
	if !cfg.CustomPricing.IsEmpty() {
		out.CustomPricing = &dto.CustomPrices{
			Basic:    moneyPtr(cfg.CustomPricing.Basic),
			Standard: moneyPtr(cfg.CustomPricing.Standard),
			Premium:  moneyPtr(cfg.CustomPricing.Premium),
		}
	}
	if !cfg.UpdatedAt.IsZero() {
		updatedAt := cfg.UpdatedAt
		out.UpdatedAt = &updatedAt
	}
	return out
}

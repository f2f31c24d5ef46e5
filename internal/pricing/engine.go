package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/keyhold-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/keyhold-backend/pkg/errors"
)

var (
	ErrPackageNotFound       = errors.New("package not found")
	ErrPaymentOptionNotFound = errors.New("payment option not found")
)

var (
	hundred       = decimal.NewFromInt(100)
	monthsPerYear = decimal.NewFromInt(12)
)

// CalculateScreeningCost prices one package at the given monthly volume.
func CalculateScreeningCost(packageID enums.ScreeningPackageID, monthlyVolume int, paymentOptionID enums.PaymentOptionID, custom *CustomPricing) (ScreeningCost, error) {
	if monthlyVolume < 0 {
		return ScreeningCost{}, pkgerrors.New(pkgerrors.CodeValidation, "monthly volume must be non-negative")
	}
	return calculate(packageID, ResolveVolumeTier(monthlyVolume), paymentOptionID, custom)
}

func calculate(packageID enums.ScreeningPackageID, tier PricingTier, paymentOptionID enums.PaymentOptionID, custom *CustomPricing) (ScreeningCost, error) {
	pkg, ok := findPackage(packageID)
	if !ok {
		return ScreeningCost{}, pkgerrors.Wrap(pkgerrors.CodeValidation, ErrPackageNotFound, fmt.Sprintf("package %q not found", packageID))
	}
	option, ok := findPaymentOption(paymentOptionID)
	if !ok {
		return ScreeningCost{}, pkgerrors.Wrap(pkgerrors.CodeValidation, ErrPaymentOptionNotFound, fmt.Sprintf("payment option %q not found", paymentOptionID))
	}

	basePrice := pkg.BasePrice
	if override := custom.For(packageID); override != nil {
		if override.IsNegative() {
			return ScreeningCost{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("custom price for %s must be non-negative", packageID))
		}
		basePrice = *override
	}

	discount := decimal.Zero
	if !tier.IsCustom {
		discount = basePrice.Mul(tier.DiscountPercent).Div(hundred)
	}

	return ScreeningCost{
		PackageID:             pkg.ID,
		Tier:                  tier.ID,
		BasePrice:             basePrice,
		VolumeDiscount:        discount,
		FinalPrice:            basePrice.Sub(discount),
		PaymentResponsibility: enums.ResponsibilityFor(option.ID),
		Refundable:            option.Refundable,
	}, nil
}

// GeneratePricingQuote prices every requested package at one shared tier and
// projects the monthly total. Any unknown package aborts the whole quote.
func GeneratePricingQuote(monthlyVolume int, packageIDs []enums.ScreeningPackageID, paymentOptionID enums.PaymentOptionID, custom *CustomPricing) (Quote, error) {
	if len(packageIDs) == 0 {
		return Quote{}, pkgerrors.New(pkgerrors.CodeValidation, "at least one package id is required")
	}
	if monthlyVolume < 0 {
		return Quote{}, pkgerrors.New(pkgerrors.CodeValidation, "monthly volume must be non-negative")
	}

	tier := ResolveVolumeTier(monthlyVolume)
	costs := make([]ScreeningCost, 0, len(packageIDs))
	baseSum := decimal.Zero
	finalSum := decimal.Zero
	for _, id := range packageIDs {
		cost, err := calculate(id, tier, paymentOptionID, custom)
		if err != nil {
			return Quote{}, err
		}
		costs = append(costs, cost)
		baseSum = baseSum.Add(cost.BasePrice)
		finalSum = finalSum.Add(cost.FinalPrice)
	}

	count := decimal.NewFromInt(int64(len(costs)))
	volume := decimal.NewFromInt(int64(monthlyVolume))
	total := finalSum.Mul(volume).Div(count)

	quote := Quote{
		MonthlyVolume:    monthlyVolume,
		Tier:             tier.ID,
		PaymentOption:    paymentOptionID,
		Packages:         costs,
		TotalMonthlyCost: total,
	}
	if tier.ID != enums.VolumeTier1 {
		undiscounted := baseSum.Mul(volume).Div(count)
		savings := undiscounted.Sub(total).Mul(monthsPerYear)
		quote.AnnualSavings = &savings
	}
	return quote, nil
}

package pricing

import (
	"github.com/angelmondragon/keyhold-backend/api/controllers/pricing/dto"
	pricingsvc "github.com/angelmondragon/keyhold-backend/internal/pricing"
	"github.com/angelmondragon/keyhold-backend/pkg/enums"
)

func toCustomPricing(payload *dto.CustomPricing) *pricingsvc.CustomPricing {
	if payload == nil {
		return nil
	}
	custom := &pricingsvc.CustomPricing{
		Basic:    payload.Basic,
		Standard: payload.Standard,
		Premium:  payload.Premium,
	}
	if custom.IsEmpty() {
		return nil
	}
	return custom
}

func toPackageIDs(raw []string) []enums.ScreeningPackageID {
	ids := make([]enums.ScreeningPackageID, 0, len(raw))
	for _, id := range raw {
		ids = append(ids, enums.ScreeningPackageID(id))
	}
	return ids
}

func toConfiguration(payload dto.ConfigurationRequest) pricingsvc.PricingConfiguration {
	cfg := pricingsvc.PricingConfiguration{
		PropertyID:    payload.PropertyID,
		PaymentOption: enums.PaymentOptionID(payload.PaymentOption),
		VolumeTier:    enums.VolumeTierID(payload.VolumeTier),
		CustomPricing: toCustomPricing(payload.CustomPricing),
	}
	if payload.Billing != nil {
		cfg.Billing = pricingsvc.BillingSettings{
			PaymentMethod:  enums.BillingPaymentMethod(payload.Billing.PaymentMethod),
			BillingCycle:   enums.BillingCycle(payload.Billing.BillingCycle),
			AutoRecharge:   payload.Billing.AutoRecharge,
			MinimumBalance: payload.Billing.MinimumBalance,
		}
	}
	return cfg
}

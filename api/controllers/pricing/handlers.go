package pricing

import (
	"net/http"

	"github.com/angelmondragon/keyhold-backend/api/controllers/pricing/dto"
	"github.com/angelmondragon/keyhold-backend/api/middleware"
	"github.com/angelmondragon/keyhold-backend/api/responses"
	"github.com/angelmondragon/keyhold-backend/api/validators"
	pricingsvc "github.com/angelmondragon/keyhold-backend/internal/pricing"
	"github.com/angelmondragon/keyhold-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/keyhold-backend/pkg/errors"
	"github.com/angelmondragon/keyhold-backend/pkg/logger"
)

const (
	maxPropertyIDLen = 128
	maxMonthlyVolume = 1_000_000
)

func serviceUnavailable() error {
	return pkgerrors.New(pkgerrors.CodeInternal, "pricing service unavailable")
}

// ListTiers returns the volume tier catalog.
func ListTiers(svc pricingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, serviceUnavailable())
			return
		}
		responses.WriteSuccess(w, newTiers(svc.PricingTiers()))
	}
}

// ListPaymentOptions returns the payment option catalog.
func ListPaymentOptions(svc pricingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, serviceUnavailable())
			return
		}
		responses.WriteSuccess(w, newPaymentOptions(svc.PaymentOptions()))
	}
}

// ListPackages returns the screening package catalog.
func ListPackages(svc pricingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, serviceUnavailable())
			return
		}
		responses.WriteSuccess(w, newPackages(svc.ScreeningPackages()))
	}
}

// Calculate prices a single screening package.
func Calculate(svc pricingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, serviceUnavailable())
			return
		}

		var payload dto.CalculateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cost, err := svc.CalculateScreeningCost(
			r.Context(),
			enums.ScreeningPackageID(payload.PackageID),
			*payload.MonthlyVolume,
			enums.PaymentOptionID(payload.PaymentOption),
			toCustomPricing(payload.CustomPricing),
		)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newScreeningCost(cost))
	}
}

// Quote aggregates several packages into a monthly projection.
func Quote(svc pricingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, serviceUnavailable())
			return
		}

		var payload dto.QuoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := svc.GeneratePricingQuote(
			r.Context(),
			*payload.MonthlyVolume,
			toPackageIDs(payload.PackageIDs),
			enums.PaymentOptionID(payload.PaymentOption),
			toCustomPricing(payload.CustomPricing),
		)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newQuote(quote))
	}
}

// GetConfiguration returns the stored or default configuration of a property.
func GetConfiguration(svc pricingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, serviceUnavailable())
			return
		}

		propertyID, err := validators.RequireQueryString(r, "propertyId", maxPropertyIDLen)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cfg, err := svc.GetPricingConfiguration(r.Context(), propertyID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newConfiguration(cfg))
	}
}

// SaveConfiguration upserts a property's configuration and reports success.
func SaveConfiguration(svc pricingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, serviceUnavailable())
			return
		}

		var payload dto.ConfigurationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ok, err := svc.SavePricingConfiguration(r.Context(), toConfiguration(payload))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if !ok {
			middleware.MarkNotReplayable(r.Context())
		}
		responses.WriteSuccess(w, dto.SaveResult{Success: ok})
	}
}

// PropertyQuote quotes packages with the property's stored payment option and
// custom prices.
func PropertyQuote(svc pricingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, serviceUnavailable())
			return
		}

		propertyID, err := validators.RequireQueryString(r, "propertyId", maxPropertyIDLen)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if r.URL.Query().Get("monthlyVolume") == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "monthlyVolume is required"))
			return
		}
		volume, err := validators.ParseQueryInt(r, "monthlyVolume", 0, 0, maxMonthlyVolume)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := svc.QuoteForProperty(r.Context(), propertyID, volume, toPackageIDs(validators.ParseQueryList(r, "packageIds")))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newQuote(quote))
	}
}

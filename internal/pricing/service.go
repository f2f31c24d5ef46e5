package pricing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/keyhold-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/keyhold-backend/pkg/errors"
	"github.com/angelmondragon/keyhold-backend/pkg/logger"
	"github.com/angelmondragon/keyhold-backend/pkg/metrics"
)

// ServiceParams groups dependencies for the pricing service. Cache, Publisher
// and Metrics are optional.
type ServiceParams struct {
	Repo      Repository
	Cache     Cache
	Publisher EventPublisher
	Metrics   *metrics.PricingMetrics
	Logger    *logger.Logger
	Now       func() time.Time
}

// Service exposes pricing calculations and per-property configuration.
type Service interface {
	PricingTiers() []PricingTier
	PaymentOptions() []PaymentOption
	ScreeningPackages() []ScreeningPackage
	CalculateScreeningCost(ctx context.Context, packageID enums.ScreeningPackageID, monthlyVolume int, paymentOptionID enums.PaymentOptionID, custom *CustomPricing) (ScreeningCost, error)
	GeneratePricingQuote(ctx context.Context, monthlyVolume int, packageIDs []enums.ScreeningPackageID, paymentOptionID enums.PaymentOptionID, custom *CustomPricing) (Quote, error)
	SavePricingConfiguration(ctx context.Context, cfg PricingConfiguration) (bool, error)
	GetPricingConfiguration(ctx context.Context, propertyID string) (PricingConfiguration, error)
	QuoteForProperty(ctx context.Context, propertyID string, monthlyVolume int, packageIDs []enums.ScreeningPackageID) (Quote, error)
}

type service struct {
	repo      Repository
	cache     Cache
	publisher EventPublisher
	metrics   *metrics.PricingMetrics
	logg      *logger.Logger
	now       func() time.Time
}

// NewService builds a pricing service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "pricing repo is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:      params.Repo,
		cache:     params.Cache,
		publisher: params.Publisher,
		metrics:   params.Metrics,
		logg:      params.Logger,
		now:       now,
	}, nil
}

// DefaultConfiguration is returned for properties that never saved one.
func DefaultConfiguration(propertyID string) PricingConfiguration {
	return PricingConfiguration{
		PropertyID:    propertyID,
		PaymentOption: enums.PaymentOptionTenantPays,
		VolumeTier:    enums.VolumeTier1,
		Billing: BillingSettings{
			PaymentMethod: enums.BillingPaymentMethodCreditCard,
			BillingCycle:  enums.BillingCyclePerScreening,
		},
	}
}

func (s *service) PricingTiers() []PricingTier           { return PricingTiers() }
func (s *service) PaymentOptions() []PaymentOption       { return PaymentOptions() }
func (s *service) ScreeningPackages() []ScreeningPackage { return ScreeningPackages() }

func (s *service) CalculateScreeningCost(ctx context.Context, packageID enums.ScreeningPackageID, monthlyVolume int, paymentOptionID enums.PaymentOptionID, custom *CustomPricing) (ScreeningCost, error) {
	cost, err := CalculateScreeningCost(packageID, monthlyVolume, paymentOptionID, custom)
	if err != nil {
		return ScreeningCost{}, err
	}
	s.metrics.IncCalculation(cost.PackageID.String(), cost.Tier.String())
	return cost, nil
}

func (s *service) GeneratePricingQuote(ctx context.Context, monthlyVolume int, packageIDs []enums.ScreeningPackageID, paymentOptionID enums.PaymentOptionID, custom *CustomPricing) (Quote, error) {
	quote, err := GeneratePricingQuote(monthlyVolume, packageIDs, paymentOptionID, custom)
	if err != nil {
		return Quote{}, err
	}
	s.metrics.ObserveQuote(quote.Tier.String(), len(quote.Packages))
	return quote, nil
}

// SavePricingConfiguration upserts the record. Store failures, including a
// cache that could neither be refreshed nor evicted, are logged and reported
// as false; only invalid input returns an error.
func (s *service) SavePricingConfiguration(ctx context.Context, cfg PricingConfiguration) (bool, error) {
	cfg.PropertyID = strings.TrimSpace(cfg.PropertyID)
	applyBillingDefaults(&cfg)
	roundConfigurationMoney(&cfg)
	if err := validateConfiguration(cfg); err != nil {
		return false, err
	}

	ctx = s.logg.WithPropertyID(ctx, cfg.PropertyID)
	start := s.now()
	model := toModel(cfg)
	if err := s.repo.Upsert(ctx, model); err != nil {
		s.metrics.ObserveConfigSave(false, s.now().Sub(start))
		s.logg.Error(s.logg.WithFields(ctx, pkgerrors.Dump(err).LogFields()), "failed to save pricing configuration", err)
		return false, nil
	}
	s.metrics.ObserveConfigSave(true, s.now().Sub(start))

	saved := fromModel(model)
	if !s.refreshCache(ctx, saved) {
		return false, nil
	}
	if s.publisher != nil {
		if err := s.publisher.PublishConfigurationSaved(ctx, saved); err != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "failed to publish pricing configuration event")
		}
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"payment_option": saved.PaymentOption,
		"volume_tier":    saved.VolumeTier,
	}), "pricing configuration saved")
	return true, nil
}

// GetPricingConfiguration returns the stored record or the default one.
func (s *service) GetPricingConfiguration(ctx context.Context, propertyID string) (PricingConfiguration, error) {
	propertyID = strings.TrimSpace(propertyID)
	if propertyID == "" {
		return PricingConfiguration{}, pkgerrors.New(pkgerrors.CodeValidation, "property id is required")
	}
	ctx = s.logg.WithPropertyID(ctx, propertyID)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, propertyID)
		if err != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "pricing configuration cache read failed")
		} else if cached != nil {
			return *cached, nil
		}
	}

	model, err := s.repo.FindByPropertyID(ctx, propertyID)
	if err != nil {
		s.logg.Error(ctx, "failed to load pricing configuration", err)
		return PricingConfiguration{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load pricing configuration")
	}
	if model == nil {
		return DefaultConfiguration(propertyID), nil
	}

	cfg := fromModel(model)
	if s.cache != nil {
		if err := s.cache.Add(ctx, cfg); err != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "failed to populate pricing configuration cache")
		}
	}
	return cfg, nil
}

// refreshCache writes the saved record to the cache, evicting the entry when
// the write fails. It reports false only when a stale entry may remain.
func (s *service) refreshCache(ctx context.Context, saved PricingConfiguration) bool {
	if s.cache == nil {
		return true
	}
	setErr := s.cache.Set(ctx, saved)
	if setErr == nil {
		return true
	}
	s.logg.Warn(s.logg.WithField(ctx, "error", setErr.Error()), "failed to refresh pricing configuration cache")
	if err := s.cache.Delete(ctx, saved.PropertyID); err != nil {
		s.logg.Error(ctx, "failed to evict stale pricing configuration", err)
		return false
	}
	return true
}

// QuoteForProperty quotes using the property's payment option and custom prices.
func (s *service) QuoteForProperty(ctx context.Context, propertyID string, monthlyVolume int, packageIDs []enums.ScreeningPackageID) (Quote, error) {
	cfg, err := s.GetPricingConfiguration(ctx, propertyID)
	if err != nil {
		return Quote{}, err
	}
	return s.GeneratePricingQuote(ctx, monthlyVolume, packageIDs, cfg.PaymentOption, cfg.CustomPricing)
}

func applyBillingDefaults(cfg *PricingConfiguration) {
	if cfg.Billing.PaymentMethod == "" {
		cfg.Billing.PaymentMethod = enums.BillingPaymentMethodCreditCard
	}
	if cfg.Billing.BillingCycle == "" {
		cfg.Billing.BillingCycle = enums.BillingCyclePerScreening
	}
}

// roundConfigurationMoney rounds stored amounts to cents, the precision of the
// money columns, without touching the caller's values.
func roundConfigurationMoney(cfg *PricingConfiguration) {
	if cfg.CustomPricing != nil {
		custom := CustomPricing{
			Basic:    roundCents(cfg.CustomPricing.Basic),
			Standard: roundCents(cfg.CustomPricing.Standard),
			Premium:  roundCents(cfg.CustomPricing.Premium),
		}
		cfg.CustomPricing = &custom
	}
	cfg.Billing.MinimumBalance = roundCents(cfg.Billing.MinimumBalance)
}

func roundCents(v *decimal.Decimal) *decimal.Decimal {
	if v == nil {
		return nil
	}
	rounded := v.Round(2)
	return &rounded
}

func validateConfiguration(cfg PricingConfiguration) error {
	var problems []string
	if cfg.PropertyID == "" {
		problems = append(problems, "propertyId is required")
	}
	if cfg.PaymentOption == "" {
		problems = append(problems, "paymentOption is required")
	} else if !cfg.PaymentOption.IsValid() {
		problems = append(problems, fmt.Sprintf("paymentOption %q is not supported", cfg.PaymentOption))
	}
	if cfg.VolumeTier == "" {
		problems = append(problems, "volumeTier is required")
	} else if !cfg.VolumeTier.IsValid() {
		problems = append(problems, fmt.Sprintf("volumeTier %q is not supported", cfg.VolumeTier))
	}
	if !cfg.Billing.PaymentMethod.IsValid() {
		problems = append(problems, fmt.Sprintf("billing.paymentMethod %q is not supported", cfg.Billing.PaymentMethod))
	}
	if !cfg.Billing.BillingCycle.IsValid() {
		problems = append(problems, fmt.Sprintf("billing.billingCycle %q is not supported", cfg.Billing.BillingCycle))
	}
	if mb := cfg.Billing.MinimumBalance; mb != nil && mb.IsNegative() {
		problems = append(problems, "billing.minimumBalance must be non-negative")
	}
	if cfg.CustomPricing != nil {
		for _, id := range []enums.ScreeningPackageID{enums.ScreeningPackageBasic, enums.ScreeningPackageStandard, enums.ScreeningPackagePremium} {
			if price := cfg.CustomPricing.For(id); price != nil && price.IsNegative() {
				problems = append(problems, fmt.Sprintf("customPricing.%s must be non-negative", id))
			}
		}
	}
	if len(problems) == 0 {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "invalid pricing configuration").
		WithDetails(map[string]any{"problems": problems})
}

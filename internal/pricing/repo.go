package pricing

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/keyhold-backend/pkg/db/models"
)

// Repository persists pricing configurations keyed by property id.
type Repository interface {
	FindByPropertyID(ctx context.Context, propertyID string) (*models.PricingConfiguration, error)
	Upsert(ctx context.Context, cfg *models.PricingConfiguration) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository constructs a configuration repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// FindByPropertyID returns nil when the property has no stored configuration.
func (r *repository) FindByPropertyID(ctx context.Context, propertyID string) (*models.PricingConfiguration, error) {
	var cfg models.PricingConfiguration
	err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		First(&cfg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cfg, nil
}

// Upsert writes the whole record in one statement; the last write wins.
func (r *repository) Upsert(ctx context.Context, cfg *models.PricingConfiguration) error {
	if cfg == nil || cfg.PropertyID == "" {
		return gorm.ErrInvalidValue
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "property_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"payment_option",
				"volume_tier",
				"custom_basic_price",
				"custom_standard_price",
				"custom_premium_price",
				"payment_method",
				"billing_cycle",
				"auto_recharge",
				"minimum_balance",
				"updated_at",
			}),
		}).
		Create(cfg).Error
}

func toModel(cfg PricingConfiguration) *models.PricingConfiguration {
	m := &models.PricingConfiguration{
		PropertyID:     cfg.PropertyID,
		PaymentOption:  cfg.PaymentOption,
		VolumeTier:     cfg.VolumeTier,
		PaymentMethod:  cfg.Billing.PaymentMethod,
		BillingCycle:   cfg.Billing.BillingCycle,
		AutoRecharge:   cfg.Billing.AutoRecharge,
		MinimumBalance: nullDecimal(cfg.Billing.MinimumBalance),
	}
	if cfg.CustomPricing != nil {
		m.CustomBasic = nullDecimal(cfg.CustomPricing.Basic)
		m.CustomStandard = nullDecimal(cfg.CustomPricing.Standard)
		m.CustomPremium = nullDecimal(cfg.CustomPricing.Premium)
	}
	return m
}

func fromModel(m *models.PricingConfiguration) PricingConfiguration {
	cfg := PricingConfiguration{
		PropertyID:    m.PropertyID,
		PaymentOption: m.PaymentOption,
		VolumeTier:    m.VolumeTier,
		Billing: BillingSettings{
			PaymentMethod:  m.PaymentMethod,
			BillingCycle:   m.BillingCycle,
			AutoRecharge:   m.AutoRecharge,
			MinimumBalance: decimalPtr(m.MinimumBalance),
		},
		UpdatedAt: m.UpdatedAt.UTC(),
	}
	custom := &CustomPricing{
		Basic:    decimalPtr(m.CustomBasic),
		Standard: decimalPtr(m.CustomStandard),
		Premium:  decimalPtr(m.CustomPremium),
	}
	if !custom.IsEmpty() {
		cfg.CustomPricing = custom
	}
	return cfg
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func decimalPtr(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}

package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/keyhold-backend/pkg/enums"
)

// PricingConfiguration is the per-property screening pricing record.
type PricingConfiguration struct {
	PropertyID     string                     `gorm:"column:property_id;primaryKey"`
	PaymentOption  enums.PaymentOptionID      `gorm:"column:payment_option;type:text;not null"`
	VolumeTier     enums.VolumeTierID         `gorm:"column:volume_tier;type:text;not null"`
	CustomBasic    decimal.NullDecimal        `gorm:"column:custom_basic_price;type:numeric(12,2)"`
	CustomStandard decimal.NullDecimal        `gorm:"column:custom_standard_price;type:numeric(12,2)"`
	CustomPremium  decimal.NullDecimal        `gorm:"column:custom_premium_price;type:numeric(12,2)"`
	PaymentMethod  enums.BillingPaymentMethod `gorm:"column:payment_method;type:text;not null"`
	BillingCycle   enums.BillingCycle         `gorm:"column:billing_cycle;type:text;not null"`
	AutoRecharge   bool                       `gorm:"column:auto_recharge;not null;default:false"`
	MinimumBalance decimal.NullDecimal        `gorm:"column:minimum_balance;type:numeric(12,2)"`
	CreatedAt      time.Time                  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time                  `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the table name used by migrations.
func (PricingConfiguration) TableName() string {
	return "pricing_configurations"
}

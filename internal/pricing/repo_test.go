package pricing

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/keyhold-backend/pkg/db/models"
	"github.com/angelmondragon/keyhold-backend/pkg/enums"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	conn, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.PricingConfiguration{}))
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return conn
}

func TestRepositoryFindMissingReturnsNil(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	got, err := repo.FindByPropertyID(context.Background(), "prop-missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRepositoryUpsertOverwrites(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	first := toModel(PricingConfiguration{
		PropertyID:    "prop-1",
		PaymentOption: enums.PaymentOptionTenantPays,
		VolumeTier:    enums.VolumeTier1,
		CustomPricing: &CustomPricing{Basic: decPtr("15.50")},
		Billing: BillingSettings{
			PaymentMethod: enums.BillingPaymentMethodCreditCard,
			BillingCycle:  enums.BillingCyclePerScreening,
		},
	})
	require.NoError(t, repo.Upsert(ctx, first))

	second := toModel(PricingConfiguration{
		PropertyID:    "prop-1",
		PaymentOption: enums.PaymentOptionLandlordPays,
		VolumeTier:    enums.VolumeTier3,
		Billing: BillingSettings{
			PaymentMethod:  enums.BillingPaymentMethodACH,
			BillingCycle:   enums.BillingCycleMonthly,
			AutoRecharge:   true,
			MinimumBalance: decPtr("250"),
		},
	})
	require.NoError(t, repo.Upsert(ctx, second))

	stored, err := repo.FindByPropertyID(ctx, "prop-1")
	require.NoError(t, err)
	require.NotNil(t, stored)

	cfg := fromModel(stored)
	assert.Equal(t, enums.PaymentOptionLandlordPays, cfg.PaymentOption)
	assert.Equal(t, enums.VolumeTier3, cfg.VolumeTier)
	assert.Nil(t, cfg.CustomPricing)
	assert.Equal(t, enums.BillingPaymentMethodACH, cfg.Billing.PaymentMethod)
	assert.Equal(t, enums.BillingCycleMonthly, cfg.Billing.BillingCycle)
	assert.True(t, cfg.Billing.AutoRecharge)
	require.NotNil(t, cfg.Billing.MinimumBalance)
	assert.True(t, cfg.Billing.MinimumBalance.Equal(dec("250")))

	var count int64
	require.NoError(t, newCountQuery(repo).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRepositoryRoundTripsCustomPricing(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, toModel(PricingConfiguration{
		PropertyID:    "prop-2",
		PaymentOption: enums.PaymentOptionTenantPaysRefundable,
		VolumeTier:    enums.VolumeTierEnterprise,
		CustomPricing: &CustomPricing{Standard: decPtr("28.75"), Premium: decPtr("44")},
		Billing: BillingSettings{
			PaymentMethod: enums.BillingPaymentMethodInvoice,
			BillingCycle:  enums.BillingCyclePrepaid,
		},
	})))

	stored, err := repo.FindByPropertyID(ctx, "prop-2")
	require.NoError(t, err)
	cfg := fromModel(stored)
	require.NotNil(t, cfg.CustomPricing)
	assert.Nil(t, cfg.CustomPricing.Basic)
	assert.True(t, cfg.CustomPricing.Standard.Equal(dec("28.75")))
	assert.True(t, cfg.CustomPricing.Premium.Equal(dec("44")))
	assert.False(t, cfg.UpdatedAt.IsZero())
}

func TestRepositoryUpsertRequiresPropertyID(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	require.ErrorIs(t, repo.Upsert(context.Background(), &models.PricingConfiguration{}), gorm.ErrInvalidValue)
}

func newCountQuery(repo Repository) *gorm.DB {
	return repo.(*repository).db.Model(&models.PricingConfiguration{})
}

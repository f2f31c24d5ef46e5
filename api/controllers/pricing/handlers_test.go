package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/keyhold-backend/api/controllers/pricing/dto"
	pricingsvc "github.com/angelmondragon/keyhold-backend/internal/pricing"
	"github.com/angelmondragon/keyhold-backend/pkg/db/models"
	"github.com/angelmondragon/keyhold-backend/pkg/logger"
)

type memRepo struct {
	rows    map[string]*models.PricingConfiguration
	saveErr error
	findErr error
}

func newMemRepo() *memRepo {
	return &memRepo{rows: map[string]*models.PricingConfiguration{}}
}

func (r *memRepo) FindByPropertyID(ctx context.Context, propertyID string) (*models.PricingConfiguration, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	row, ok := r.rows[propertyID]
	if !ok {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

func (r *memRepo) Upsert(ctx context.Context, cfg *models.PricingConfiguration) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	cp := *cfg
	r.rows[cfg.PropertyID] = &cp
	return nil
}

func newTestService(t *testing.T, repo pricingsvc.Repository) pricingsvc.Service {
	t.Helper()
	svc, err := pricingsvc.NewService(pricingsvc.ServiceParams{Repo: repo, Logger: logger.Nop()})
	require.NoError(t, err)
	return svc
}

type errorEnvelope struct {
	Error struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func decodeData(t *testing.T, resp *httptest.ResponseRecorder, out any) {
	t.Helper()
	envelope := struct {
		Data any `json:"data"`
	}{Data: out}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
}

func decodeError(t *testing.T, resp *httptest.ResponseRecorder) errorEnvelope {
	t.Helper()
	var envelope errorEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope
}

func TestListTiers(t *testing.T) {
	handler := ListTiers(newTestService(t, newMemRepo()), nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/pricing/tiers", nil)
	resp := httptest.NewRecorder()
	handler(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	var tiers []dto.PricingTier
	decodeData(t, resp, &tiers)
	require.Len(t, tiers, 4)
	assert.Equal(t, "tier1", tiers[0].ID)
	require.NotNil(t, tiers[0].BasePrice)
	assert.Equal(t, 35.0, *tiers[0].BasePrice)
	require.NotNil(t, tiers[0].MaxVolume)
	assert.Equal(t, 10, *tiers[0].MaxVolume)
	assert.Equal(t, 12.5, tiers[1].DiscountPercent)
	assert.True(t, tiers[3].IsCustom)
	assert.Nil(t, tiers[3].BasePrice)
	assert.Nil(t, tiers[3].MaxVolume)
}

func TestListPaymentOptionsAndPackages(t *testing.T) {
	svc := newTestService(t, newMemRepo())

	resp := httptest.NewRecorder()
	ListPaymentOptions(svc, nil)(resp, httptest.NewRequest(http.MethodGet, "/api/v1/pricing/payment-options", nil))
	require.Equal(t, http.StatusOK, resp.Code)
	var options []dto.PaymentOption
	decodeData(t, resp, &options)
	require.Len(t, options, 3)
	assert.Equal(t, "tenant_pays_refundable", options[2].ID)
	assert.True(t, options[2].Refundable)

	resp = httptest.NewRecorder()
	ListPackages(svc, nil)(resp, httptest.NewRequest(http.MethodGet, "/api/v1/pricing/packages", nil))
	require.Equal(t, http.StatusOK, resp.Code)
	var packages []dto.ScreeningPackage
	decodeData(t, resp, &packages)
	require.Len(t, packages, 3)
	assert.Equal(t, 19.0, packages[0].BasePrice)
	assert.True(t, packages[1].Recommended)
}

func TestCalculateRoundsToCents(t *testing.T) {
	handler := Calculate(newTestService(t, newMemRepo()), nil)
	body := `{"packageId":"standard","monthlyVolume":30,"paymentOption":"landlord_pays"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/pricing/calculate", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler(resp, req)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var cost dto.ScreeningCost
	decodeData(t, resp, &cost)
	assert.Equal(t, "tier2", cost.Tier)
	assert.Equal(t, 35.0, cost.BasePrice)
	assert.Equal(t, 4.38, cost.VolumeDiscount)
	assert.Equal(t, 30.63, cost.FinalPrice)
	assert.Equal(t, "landlord", cost.PaymentResponsibility)
	assert.False(t, cost.Refundable)
}

func TestCalculateAppliesCustomPricing(t *testing.T) {
	handler := Calculate(newTestService(t, newMemRepo()), nil)
	body := `{"packageId":"basic","monthlyVolume":5,"paymentOption":"tenant_pays_refundable","customPricing":{"basic":15}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/pricing/calculate", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler(resp, req)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var cost dto.ScreeningCost
	decodeData(t, resp, &cost)
	assert.Equal(t, 15.0, cost.BasePrice)
	assert.Equal(t, 15.0, cost.FinalPrice)
	assert.Equal(t, "tenant", cost.PaymentResponsibility)
	assert.True(t, cost.Refundable)
}

func TestCalculateRejectsInvalidInput(t *testing.T) {
	cases := map[string]string{
		"missing volume":  `{"packageId":"basic","paymentOption":"tenant_pays"}`,
		"negative volume": `{"packageId":"basic","monthlyVolume":-1,"paymentOption":"tenant_pays"}`,
		"unknown package": `{"packageId":"gold","monthlyVolume":1,"paymentOption":"tenant_pays"}`,
		"unknown option":  `{"packageId":"basic","monthlyVolume":1,"paymentOption":"free"}`,
		"unknown field":   `{"packageId":"basic","monthlyVolume":1,"paymentOption":"tenant_pays","coupon":"x"}`,
		"negative custom": `{"packageId":"basic","monthlyVolume":1,"paymentOption":"tenant_pays","customPricing":{"basic":-2}}`,
	}
	handler := Calculate(newTestService(t, newMemRepo()), nil)
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/pricing/calculate", strings.NewReader(body))
			resp := httptest.NewRecorder()
			handler(resp, req)
			require.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())
			assert.Equal(t, "VALIDATION_ERROR", decodeError(t, resp).Error.Code)
		})
	}
}

func TestQuoteAggregatesPackages(t *testing.T) {
	handler := Quote(newTestService(t, newMemRepo()), nil)
	body := `{"monthlyVolume":60,"packageIds":["basic","premium"],"paymentOption":"tenant_pays"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/pricing/quote", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler(resp, req)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var quote dto.Quote
	decodeData(t, resp, &quote)
	assert.Equal(t, "tier3", quote.Tier)
	require.Len(t, quote.Packages, 2)
	// (14.25 + 41.25) * 60 / 2
	assert.Equal(t, 1665.0, quote.TotalMonthlyCost)
	require.NotNil(t, quote.AnnualSavings)
	// ((19 + 55) * 60 / 2 - 1665) * 12
	assert.Equal(t, 6660.0, *quote.AnnualSavings)
}

func TestQuoteOmitsSavingsOnFirstTier(t *testing.T) {
	handler := Quote(newTestService(t, newMemRepo()), nil)
	body := `{"monthlyVolume":4,"packageIds":["standard"],"paymentOption":"tenant_pays"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/pricing/quote", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler(resp, req)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.NotContains(t, resp.Body.String(), "annualSavings")
}

func TestQuoteRequiresPackages(t *testing.T) {
	handler := Quote(newTestService(t, newMemRepo()), nil)
	body := `{"monthlyVolume":4,"packageIds":[],"paymentOption":"tenant_pays"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/pricing/quote", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler(resp, req)
	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestSaveAndGetConfiguration(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(t, repo)

	body := `{"propertyId":"prop-1","paymentOption":"landlord_pays","volumeTier":"tier2","customPricing":{"premium":"49.99"},"billing":{"paymentMethod":"ach","autoRecharge":true,"minimumBalance":100}}`
	resp := httptest.NewRecorder()
	SaveConfiguration(svc, nil)(resp, httptest.NewRequest(http.MethodPost, "/api/v1/pricing/configuration", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var result dto.SaveResult
	decodeData(t, resp, &result)
	assert.True(t, result.Success)

	resp = httptest.NewRecorder()
	GetConfiguration(svc, nil)(resp, httptest.NewRequest(http.MethodGet, "/api/v1/pricing/configuration?propertyId=prop-1", nil))
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var cfg dto.Configuration
	decodeData(t, resp, &cfg)
	assert.Equal(t, "landlord_pays", cfg.PaymentOption)
	assert.Equal(t, "tier2", cfg.VolumeTier)
	require.NotNil(t, cfg.CustomPricing)
	require.NotNil(t, cfg.CustomPricing.Premium)
	assert.Equal(t, 49.99, *cfg.CustomPricing.Premium)
	assert.Nil(t, cfg.CustomPricing.Basic)
	assert.Equal(t, "ach", cfg.Billing.PaymentMethod)
	assert.Equal(t, "per_screening", cfg.Billing.BillingCycle)
	assert.True(t, cfg.Billing.AutoRecharge)
}

func TestSaveConfigurationReportsStoreFailure(t *testing.T) {
	repo := newMemRepo()
	repo.saveErr = errors.New("connection reset")
	body := `{"propertyId":"prop-1","paymentOption":"tenant_pays","volumeTier":"tier1"}`
	resp := httptest.NewRecorder()
	SaveConfiguration(newTestService(t, repo), nil)(resp, httptest.NewRequest(http.MethodPost, "/api/v1/pricing/configuration", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, resp.Code)
	var result dto.SaveResult
	decodeData(t, resp, &result)
	assert.False(t, result.Success)
}

func TestSaveConfigurationRejectsUnknownTier(t *testing.T) {
	body := `{"propertyId":"prop-1","paymentOption":"tenant_pays","volumeTier":"tier9"}`
	resp := httptest.NewRecorder()
	SaveConfiguration(newTestService(t, newMemRepo()), nil)(resp, httptest.NewRequest(http.MethodPost, "/api/v1/pricing/configuration", strings.NewReader(body)))
	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestGetConfigurationDefaults(t *testing.T) {
	resp := httptest.NewRecorder()
	GetConfiguration(newTestService(t, newMemRepo()), nil)(resp, httptest.NewRequest(http.MethodGet, "/api/v1/pricing/configuration?propertyId=new-prop", nil))
	require.Equal(t, http.StatusOK, resp.Code)
	var cfg dto.Configuration
	decodeData(t, resp, &cfg)
	assert.Equal(t, "new-prop", cfg.PropertyID)
	assert.Equal(t, "tenant_pays", cfg.PaymentOption)
	assert.Equal(t, "tier1", cfg.VolumeTier)
	assert.Nil(t, cfg.CustomPricing)
}

func TestGetConfigurationRequiresPropertyID(t *testing.T) {
	resp := httptest.NewRecorder()
	GetConfiguration(newTestService(t, newMemRepo()), nil)(resp, httptest.NewRequest(http.MethodGet, "/api/v1/pricing/configuration", nil))
	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestGetConfigurationRejectsOversizedPropertyID(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(t, repo)
	stored := strings.Repeat("a", 128)
	body := `{"propertyId":"` + stored + `","paymentOption":"landlord_pays","volumeTier":"tier3"}`
	resp := httptest.NewRecorder()
	SaveConfiguration(svc, nil)(resp, httptest.NewRequest(http.MethodPost, "/api/v1/pricing/configuration", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	longID := strings.Repeat("a", 200)
	resp = httptest.NewRecorder()
	GetConfiguration(svc, nil)(resp, httptest.NewRequest(http.MethodGet, "/api/v1/pricing/configuration?propertyId="+longID, nil))
	require.Equal(t, http.StatusBadRequest, resp.Code)
	envelope := decodeError(t, resp)
	assert.Equal(t, "VALIDATION_ERROR", envelope.Error.Code)

	resp = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/pricing/configuration/quote?propertyId="+longID+"&monthlyVolume=2&packageIds=basic", nil)
	PropertyQuote(svc, nil)(resp, req)
	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestGetConfigurationStoreUnavailable(t *testing.T) {
	repo := newMemRepo()
	repo.findErr = errors.New("db down")
	resp := httptest.NewRecorder()
	GetConfiguration(newTestService(t, repo), nil)(resp, httptest.NewRequest(http.MethodGet, "/api/v1/pricing/configuration?propertyId=p", nil))
	require.Equal(t, http.StatusServiceUnavailable, resp.Code)
}

func TestPropertyQuoteUsesStoredPrices(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(t, repo)
	body := `{"propertyId":"prop-2","paymentOption":"landlord_pays","volumeTier":"tier1","customPricing":{"basic":10}}`
	resp := httptest.NewRecorder()
	SaveConfiguration(svc, nil)(resp, httptest.NewRequest(http.MethodPost, "/api/v1/pricing/configuration", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, resp.Code)

	resp = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/pricing/configuration/quote?propertyId=prop-2&monthlyVolume=2&packageIds=basic", nil)
	PropertyQuote(svc, nil)(resp, req)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var quote dto.Quote
	decodeData(t, resp, &quote)
	assert.Equal(t, "landlord_pays", quote.PaymentOption)
	assert.Equal(t, 20.0, quote.TotalMonthlyCost)
	assert.Nil(t, quote.AnnualSavings)
}

func TestPropertyQuoteRequiresVolume(t *testing.T) {
	resp := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/pricing/configuration/quote?propertyId=p&packageIds=basic", nil)
	PropertyQuote(newTestService(t, newMemRepo()), nil)(resp, req)
	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHandlersWithoutServiceFail(t *testing.T) {
	resp := httptest.NewRecorder()
	ListTiers(nil, nil)(resp, httptest.NewRequest(http.MethodGet, "/api/v1/pricing/tiers", nil))
	require.Equal(t, http.StatusInternalServerError, resp.Code)
}

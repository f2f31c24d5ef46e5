package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/keyhold-backend/internal/pricing"
	"github.com/angelmondragon/keyhold-backend/pkg/enums"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "quote:", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("quote", flag.ContinueOnError)
	volume := fs.Int("volume", 1, "monthly screening volume")
	packages := fs.String("packages", "standard", "comma separated package ids: basic,standard,premium")
	option := fs.String("option", string(enums.PaymentOptionTenantPays), "payment option id")
	basic := fs.String("basic", "", "custom basic price")
	standard := fs.String("standard", "", "custom standard price")
	premium := fs.String("premium", "", "custom premium price")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var ids []enums.ScreeningPackageID
	for _, raw := range strings.Split(*packages, ",") {
		if raw = strings.TrimSpace(raw); raw != "" {
			ids = append(ids, enums.ScreeningPackageID(raw))
		}
	}

	custom := &pricing.CustomPricing{}
	for _, override := range []struct {
		raw    string
		target **decimal.Decimal
	}{
		{*basic, &custom.Basic},
		{*standard, &custom.Standard},
		{*premium, &custom.Premium},
	} {
		if override.raw == "" {
			continue
		}
		price, err := decimal.NewFromString(override.raw)
		if err != nil {
			return fmt.Errorf("invalid custom price %q: %w", override.raw, err)
		}
		*override.target = &price
	}
	if custom.IsEmpty() {
		custom = nil
	}

	quote, err := pricing.GeneratePricingQuote(*volume, ids, enums.PaymentOptionID(*option), custom)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(roundQuote(quote))
}

// roundQuote rounds every amount to cents for display.
func roundQuote(q pricing.Quote) pricing.Quote {
	for i, cost := range q.Packages {
		cost.BasePrice = cost.BasePrice.Round(2)
		cost.VolumeDiscount = cost.VolumeDiscount.Round(2)
		cost.FinalPrice = cost.FinalPrice.Round(2)
		q.Packages[i] = cost
	}
	q.TotalMonthlyCost = q.TotalMonthlyCost.Round(2)
	if q.AnnualSavings != nil {
		savings := q.AnnualSavings.Round(2)
		q.AnnualSavings = &savings
	}
	return q
}

package advance

import "github.com/shopspring/decimal"

// Terms is the single source of the business constants for advances.
// It is built once at startup and threaded into construction and
// simulation so the rate and minimum never drift apart.
type Terms struct {
	// FeeRate is the proportion of the requested amount withheld as a fee.
	FeeRate decimal.Decimal
	// MinimumAmount is the exclusive lower bound for a request.
	MinimumAmount decimal.Decimal
}

func DefaultTerms() Terms {
	return Terms{
		FeeRate:       decimal.New(5, -2),     // 5%
		MinimumAmount: decimal.New(10000, -2), // 100.00
	}
}

const currencySymbol = "$"

// FormatAmount renders a monetary value in the fixed display format.
func FormatAmount(v decimal.Decimal) string {
	return currencySymbol + " " + v.StringFixed(2)
}

// Calculator computes the fee breakdown for an advance amount.
// Pure; assumes the caller has already validated the amount.
type Calculator struct{ terms Terms }

func NewCalculator(t Terms) Calculator { return Calculator{terms: t} }

// Quote returns the fee withheld and the net amount disbursed.
// fee + net always equals amount exactly.
func (c Calculator) Quote(amount decimal.Decimal) (fee, net decimal.Decimal) {
	fee = amount.Mul(c.terms.FeeRate)
	net = amount.Sub(fee)
	return fee, net
}

func (c Calculator) Rate() decimal.Decimal { return c.terms.FeeRate }

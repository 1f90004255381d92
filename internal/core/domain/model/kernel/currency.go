package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Currency is a value object representing the currency code every monetary
// amount in the domain is expressed in. Settlement figures are always
// re-expressed in the currency of the order's delivery country.
type Currency string

const (
	// SAR is the Saudi riyal.
	SAR Currency = "SAR"

	// AED is the United Arab Emirates dirham. It is also the documented
	// default for orders whose country cannot be canonicalized.
	AED Currency = "AED"

	// KWD is the Kuwaiti dinar.
	KWD Currency = "KWD"

	// BHD is the Bahraini dinar.
	BHD Currency = "BHD"

	// OMR is the Omani rial.
	OMR Currency = "OMR"

	// QAR is the Qatari riyal.
	QAR Currency = "QAR"
)

// DefaultCurrency is used when an order's country maps to no known currency.
const DefaultCurrency = AED

// getValidCurrencies returns the fixed set of supported currency codes.
func getValidCurrencies() map[Currency]struct{} {
	return map[Currency]struct{}{
		SAR: {},
		AED: {},
		KWD: {},
		BHD: {},
		OMR: {},
		QAR: {},
	}
}

// Validate checks that the currency code is a member of the fixed set.
func (c Currency) Validate() error {
	if _, ok := getValidCurrencies()[c]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"currency is invalid",
			fmt.Errorf("%q is not a supported currency code", string(c)),
		)
	}
	return nil
}

// String returns the currency code.
func (c Currency) String() string {
	return string(c)
}

// phoneCodeCurrencies maps international dialing codes to currency codes.
// The table is used when an order's contact phone code disagrees with its
// declared country: fee and discount amounts typed in locally are converted
// out of this currency before being re-expressed in the target currency.
func phoneCodeCurrencies() map[string]Currency {
	return map[string]Currency{
		"966": SAR,
		"971": AED,
		"965": KWD,
		"973": BHD,
		"968": OMR,
		"974": QAR,
	}
}

// CurrencyForPhoneCode maps an international dialing code ("+966", "00966",
// or "966") to its currency. The second return value reports whether the
// code is known.
func CurrencyForPhoneCode(code string) (Currency, bool) {
	trimmed := code
	if len(trimmed) > 0 && trimmed[0] == '+' {
		trimmed = trimmed[1:]
	} else if len(trimmed) > 2 && trimmed[:2] == "00" {
		trimmed = trimmed[2:]
	}

	currency, ok := phoneCodeCurrencies()[trimmed]
	return currency, ok
}

package kernel

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Country is a value object representing the canonical delivery-country key
// of an order. Free-form user input ("Saudi Arabia", "ksa", "SAUDI") is
// funneled through CanonicalCountry so that spelling and casing variants of
// the same country can never split into separate report buckets.
//
// The zero value is invalid, which helps catch uninitialized fields.
type Country int

const (
	// CountryUnknown represents an invalid or undefined country.
	CountryUnknown Country = iota

	// SaudiArabia covers "Saudi Arabia", "KSA", "Saudi" and similar forms.
	SaudiArabia

	// UnitedArabEmirates covers "UAE", "United Arab Emirates", "Emirates".
	UnitedArabEmirates

	// Kuwait covers "Kuwait", "KW".
	Kuwait

	// Bahrain covers "Bahrain", "BH".
	Bahrain

	// Oman covers "Oman", "Sultanate of Oman".
	Oman

	// Qatar covers "Qatar", "QA".
	Qatar

	// CountryOther is the documented bucket for free-form input that matches
	// no known country. Its currency is the default code.
	CountryOther
)

// getCountryKeys returns the canonical string key for every country.
func getCountryKeys() map[Country]string {
	return map[Country]string{
		CountryUnknown:     "unknown",
		SaudiArabia:        "saudi_arabia",
		UnitedArabEmirates: "uae",
		Kuwait:             "kuwait",
		Bahrain:            "bahrain",
		Oman:               "oman",
		Qatar:              "qatar",
		CountryOther:       "other",
	}
}

// getCountryCurrencies returns the fixed country-to-currency table.
// CountryOther deliberately maps to the default currency.
func getCountryCurrencies() map[Country]Currency {
	return map[Country]Currency{
		SaudiArabia:        SAR,
		UnitedArabEmirates: AED,
		Kuwait:             KWD,
		Bahrain:            BHD,
		Oman:               OMR,
		Qatar:              QAR,
		CountryOther:       DefaultCurrency,
	}
}

// getCountryAliases returns normalized exact-match aliases. Keys are the
// output of normalizeCountry: lowercase with everything but letters removed.
func getCountryAliases() map[string]Country {
	return map[string]Country{
		"saudiarabia":        SaudiArabia,
		"saudi":              SaudiArabia,
		"ksa":                SaudiArabia,
		"sa":                 SaudiArabia,
		"unitedarabemirates": UnitedArabEmirates,
		"emirates":           UnitedArabEmirates,
		"uae":                UnitedArabEmirates,
		"ae":                 UnitedArabEmirates,
		"dubai":              UnitedArabEmirates,
		"abudhabi":           UnitedArabEmirates,
		"kuwait":             Kuwait,
		"kw":                 Kuwait,
		"bahrain":            Bahrain,
		"bh":                 Bahrain,
		"oman":               Oman,
		"sultanateofoman":    Oman,
		"om":                 Oman,
		"qatar":              Qatar,
		"qa":                 Qatar,
	}
}

// normalizeCountry lowercases the input and strips everything that is not a
// letter, so punctuation and spacing variants collapse onto one key.
func normalizeCountry(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(raw)) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CanonicalCountry maps free-form country text to its canonical Country key.
// Matching is case and punctuation insensitive, and tolerant of common long
// forms that embed the country name ("Kingdom of Saudi Arabia"). Unknown
// input maps to CountryOther rather than failing.
func CanonicalCountry(raw string) Country {
	normalized := normalizeCountry(raw)
	if normalized == "" {
		return CountryOther
	}

	if country, ok := getCountryAliases()[normalized]; ok {
		return country
	}

	// Substring tolerance for long official forms. Short names like "oman"
	// are excluded here: they collide with unrelated words ("romania").
	switch {
	case strings.Contains(normalized, "saudi"):
		return SaudiArabia
	case strings.Contains(normalized, "emirates"):
		return UnitedArabEmirates
	case strings.Contains(normalized, "kuwait"):
		return Kuwait
	case strings.Contains(normalized, "bahrain"):
		return Bahrain
	case strings.Contains(normalized, "qatar"):
		return Qatar
	}

	return CountryOther
}

// Validate checks that the Country is a canonical key produced by
// CanonicalCountry. CountryUnknown and out-of-range values are invalid.
func (c Country) Validate() error {
	if c == CountryUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"country is invalid",
			fmt.Errorf("%d is not a canonical country", int(c)),
		)
	}
	if _, ok := getCountryKeys()[c]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"country is invalid",
			fmt.Errorf("%d is not a canonical country", int(c)),
		)
	}
	return nil
}

// String returns the canonical country key, e.g. "saudi_arabia".
func (c Country) String() string {
	if key, ok := getCountryKeys()[c]; ok {
		return key
	}
	return "unknown"
}

// Currency returns the currency every settlement figure for orders delivered
// in this country is expressed in. Unknown countries fall back to the
// default currency.
func (c Country) Currency() Currency {
	if currency, ok := getCountryCurrencies()[c]; ok {
		return currency
	}
	return DefaultCurrency
}

// IsEqual compares two countries by canonical key.
func (c Country) IsEqual(other Country) bool {
	return c == other
}

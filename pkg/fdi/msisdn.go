package fdi

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultCountryPrefix is prepended to 9-digit subscriber numbers.
// The provider's home market is Rwanda.
const DefaultCountryPrefix = "250"

// DefaultRegion is the ISO 3166-1 region used for offline validation when
// the caller does not specify one.
const DefaultRegion = "RW"

// NormalizeMSISDN canonicalizes a mobile number into international digit
// form, compatible with the provider's expectations:
//
//   - every non-digit character is stripped
//   - 9 digits: the default country prefix is prepended
//   - 10 digits: the FIRST occurrence of "0" is replaced with "250",
//     wherever it appears — not strictly a leading-zero rewrite
//   - 11 and 12 digits pass through unchanged
//
// Anything outside 9..12 digits fails with ErrInvalidMobileNumber. The
// 10-digit rule is kept bug-for-bug compatible with existing integrations;
// use NormalizeMSISDNStrict for the corrected behavior.
func NormalizeMSISDN(input string) (string, error) {
	digits := digitsOnly(input)
	if len(digits) < 9 || len(digits) > 12 {
		return "", ErrInvalidMobileNumber
	}

	switch len(digits) {
	case 9:
		return DefaultCountryPrefix + digits, nil
	case 10:
		return strings.Replace(digits, "0", DefaultCountryPrefix, 1), nil
	}
	return digits, nil
}

// NormalizeMSISDNStrict is the corrected variant of NormalizeMSISDN: a
// 10-digit number must actually start with a trunk "0", which is then
// rewritten to the default country prefix. All other rules are identical.
func NormalizeMSISDNStrict(input string) (string, error) {
	digits := digitsOnly(input)
	if len(digits) < 9 || len(digits) > 12 {
		return "", ErrInvalidMobileNumber
	}

	switch len(digits) {
	case 9:
		return DefaultCountryPrefix + digits, nil
	case 10:
		if digits[0] != '0' {
			return "", ErrInvalidMobileNumber
		}
		return DefaultCountryPrefix + digits[1:], nil
	}
	return digits, nil
}

// NormalizeCountryCode uppercases a two-letter ISO 3166-1 country code.
// No validation against a real country list is performed; callers that need
// real validation should use ValidateMSISDNLocal or the remote validate
// endpoints.
func NormalizeCountryCode(code string) string {
	return strings.ToUpper(code)
}

// ValidateMSISDNLocal validates a mobile number offline against the given
// region's numbering plan and returns it in E.164 format. An empty region
// defaults to DefaultRegion. This is the no-network counterpart to the
// remote /validate/msisdn endpoint.
func ValidateMSISDNLocal(msisdn, region string) (string, error) {
	if region == "" {
		region = DefaultRegion
	}

	num, err := phonenumbers.Parse(strings.TrimSpace(msisdn), NormalizeCountryCode(region))
	if err != nil {
		return "", ErrInvalidMobileNumber
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", ErrInvalidMobileNumber
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}

func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

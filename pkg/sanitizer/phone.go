package sanitizer

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// defaultPhoneRegion is applied to numbers entered without a country prefix.
const defaultPhoneRegion = "US"

// NormalizePhone parses a phone number and renders it in E.164. The empty
// string is returned unchanged, and unparseable input is returned trimmed so
// that validation (not sanitization) reports the failure.
func NormalizePhone(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	num, err := phonenumbers.Parse(trimmed, defaultPhoneRegion)
	if err != nil {
		return trimmed
	}
	if !phonenumbers.IsValidNumber(num) {
		return trimmed
	}
	return phonenumbers.Format(num, phonenumbers.E164)
}

package phone

import (
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion is used when no region hint is configured.
const DefaultRegion = "US"

// NormalizePhone normalizes a phone number to E.164 format.
func NormalizePhone(phone, region string) (string, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return "", fmt.Errorf("phone number cannot be empty")
	}

	if region == "" {
		region = DefaultRegion
	}

	parsed, err := phonenumbers.Parse(phone, region)
	if err != nil {
		return "", fmt.Errorf("failed to parse phone number: %w", err)
	}

	if !phonenumbers.IsValidNumber(parsed) {
		return "", fmt.Errorf("invalid phone number")
	}

	return phonenumbers.Format(parsed, phonenumbers.E164), nil
}

// Canonical returns the E.164 form of phone when it is a valid number and
// the trimmed input otherwise. Lead phones are free text, so an
// unrecognized number is kept as typed.
func Canonical(phone, region string) string {
	if e164, err := NormalizePhone(phone, region); err == nil {
		return e164
	}
	return strings.TrimSpace(phone)
}

// Package normalize coerces caller supplied fields into the shapes the
// provider accepts. Every function here is pure.
package normalize

import (
	"strings"

	"provide-client/internal/features/commerce/domain"
)

const (
	// DefaultFirstName replaces a missing first and last name pair.
	DefaultFirstName = "Sincerely"
	// DefaultLastName replaces a missing first and last name pair.
	DefaultLastName = "Customer"
	// DefaultStreet1 is the first line of the fallback billing address.
	DefaultStreet1 = "4840 Eastgate Mall"
	// DefaultStreet2 is the second line of the fallback billing address.
	DefaultStreet2 = ""
	// DefaultCity is the city of the fallback billing address.
	DefaultCity = "San Diego"
	// DefaultState is the state of the fallback billing address.
	DefaultState = "CA"
	// DefaultPostalCode is the ZIP code of the fallback billing address.
	DefaultPostalCode = "92121"
	// DefaultCountryCode is the country of the fallback billing address.
	DefaultCountryCode = "US"
	// DefaultPhoneNumber is sent whenever a phone number cannot be used.
	DefaultPhoneNumber = "4153602333"
	// DefaultName stands in for any empty name field.
	DefaultName = "X"

	companyNameMaxLength = 30
)

// FixZipCode keeps the digits of s and returns the first five of them.
// It returns "" unless exactly five digits remain.
func FixZipCode(s string) string {
	zip := truncate(digits(s), 5)
	if len(zip) != 5 {
		return ""
	}
	return zip
}

// FixPhone reduces s to a ten digit national number, dropping one leading
// trunk or country prefix. Anything else falls back to DefaultPhoneNumber.
func FixPhone(s string) string {
	phone := digits(s)
	if phone != "" && (phone[0] == '0' || phone[0] == '1') {
		phone = phone[1:]
	}
	if len(phone) != 10 {
		return DefaultPhoneNumber
	}
	return phone
}

// FixEmail strips a "+tag" suffix from the local part.
func FixEmail(s string) string {
	local, host, _ := strings.Cut(s, "@")
	local, _, _ = strings.Cut(local, "+")
	return local + "@" + host
}

// FixName substitutes DefaultName for an empty name.
func FixName(s string) string {
	if s == "" {
		return DefaultName
	}
	return s
}

// FixCompanyName truncates s to the provider's company name limit.
func FixCompanyName(s string) string {
	return truncate(s, companyNameMaxLength)
}

// FixCustomerAddress backfills the name pair, the street block and the
// phone number independently of each other.
func FixCustomerAddress(c domain.Customer) domain.Customer {
	if c.FirstName == "" && c.LastName == "" {
		c.FirstName = DefaultFirstName
		c.LastName = DefaultLastName
	}

	if c.Street1 == "" && c.City == "" {
		c.Street1 = DefaultStreet1
		c.Street2 = DefaultStreet2
		c.City = DefaultCity
		c.State = DefaultState
		c.PostalCode = DefaultPostalCode
		c.CountryCode = DefaultCountryCode
	}

	if c.Phone == "" {
		c.Phone = DefaultPhoneNumber
	}

	return c
}

// digits returns the ASCII digits of s in order.
func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// truncate returns at most n characters of s.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}


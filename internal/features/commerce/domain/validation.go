package domain

import (
	"regexp"
)

// ValidationRule names the rule a ValidationError failed.
type ValidationRule string

const (
	RuleFirstNameRequired   ValidationRule = "firstname.required"
	RuleFirstNameLength     ValidationRule = "firstname.length"
	RuleFirstNameCharacters ValidationRule = "firstname.characters"
	RuleLastNameRequired    ValidationRule = "lastname.required"
	RuleLastNameLength      ValidationRule = "lastname.length"
	RuleLastNameCharacters  ValidationRule = "lastname.characters"
	RuleCompanyCharacters   ValidationRule = "company.characters"
	RuleCompanyLength       ValidationRule = "company.length"
	RuleStreet1Required     ValidationRule = "street1.required"
	RuleStreet1Characters   ValidationRule = "street1.characters"
	RuleStreet1Length       ValidationRule = "street1.length"
	RuleStreet1POBox        ValidationRule = "street1.pobox"
	RuleStreet2Characters   ValidationRule = "street2.characters"
	RuleStreet2Length       ValidationRule = "street2.length"
	RuleStreet2POBox        ValidationRule = "street2.pobox"
	RuleCityRequired        ValidationRule = "city.required"
	RuleCityLength          ValidationRule = "city.length"
	RuleCityCharacters      ValidationRule = "city.characters"
	RuleCountryCode         ValidationRule = "countrycode.format"
	RuleState               ValidationRule = "state.format"
	RulePostalCode          ValidationRule = "postalcode.format"
	RuleDeliveryWindow      ValidationRule = "order.delivery_window"
	RuleCardExpiry          ValidationRule = "card.expiry"
	RulePaymentToken        ValidationRule = "order.payment_token"
)

// ValidationError is a local rejection of caller input. It is raised
// before any network call and never retried.
type ValidationError struct {
	// Rule is the first rule that failed.
	Rule ValidationRule
	// Message is the user facing reason.
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Character classes accepted by the provider. Their membership is fixed
// by the provider and must not be widened or narrowed.
var (
	goodCharacters     = regexp.MustCompile(`^[\x20-\x5a\x5f-\x7b\x7d\s]+$`)
	goodNameCharacters = regexp.MustCompile(`^[a-zA-Z0-9][\x20-\x21\x26-\x29\x2c-\x39\x3f-\x5a\x61-\x7a]*$`)
	poBox              = regexp.MustCompile(`(?i)^\s*P\.?\s*O\.?\s*Box`)
	twoUpperLetters    = regexp.MustCompile(`^[A-Z]{2}$`)
	nonDigits          = regexp.MustCompile(`[^0-9]`)
)

const (
	firstNameMaxLength = 20
	lastNameMaxLength  = 40
	companyMaxLength   = 40
	streetMaxLength    = 40
	cityMaxLength      = 40
)

// rule is one step of customer validation. fails reports whether the
// customer breaks the rule.
type rule struct {
	id      ValidationRule
	message string
	fails   func(c Customer) bool
}

// customerRules run in order; the first failure wins.
var customerRules = []rule{
	{RuleFirstNameRequired, "Please enter a first name.", func(c Customer) bool {
		return c.FirstName == ""
	}},
	{RuleFirstNameLength, "The first name is longer than 20 characters.", func(c Customer) bool {
		return len(c.FirstName) > firstNameMaxLength
	}},
	{RuleFirstNameCharacters, "The first name contains invalid characters.", func(c Customer) bool {
		return !goodNameCharacters.MatchString(c.FirstName)
	}},
	{RuleLastNameRequired, "Please enter a last name.", func(c Customer) bool {
		return c.LastName == ""
	}},
	{RuleLastNameLength, "The last name is longer than 40 characters.", func(c Customer) bool {
		return len(c.LastName) > lastNameMaxLength
	}},
	{RuleLastNameCharacters, "The last name contains invalid characters.", func(c Customer) bool {
		return !goodNameCharacters.MatchString(c.LastName)
	}},
	{RuleCompanyCharacters, "The company name contains invalid characters.", func(c Customer) bool {
		return c.Company != "" && !goodCharacters.MatchString(c.Company)
	}},
	{RuleCompanyLength, "The company name is longer than 40 characters.", func(c Customer) bool {
		return len(c.Company) > companyMaxLength
	}},
	{RuleStreet1Required, "Please enter a street address.", func(c Customer) bool {
		return c.Street1 == ""
	}},
	{RuleStreet1Characters, "The first line of the street address contains invalid characters.", func(c Customer) bool {
		return !goodCharacters.MatchString(c.Street1)
	}},
	{RuleStreet1Length, "The first line of the street address is longer than 40 characters.", func(c Customer) bool {
		return len(c.Street1) > streetMaxLength
	}},
	{RuleStreet1POBox, "The address cannot be a PO Box.", func(c Customer) bool {
		return poBox.MatchString(c.Street1)
	}},
	{RuleStreet2Characters, "The second line of the street address contains invalid characters.", func(c Customer) bool {
		return c.Street2 != "" && !goodCharacters.MatchString(c.Street2)
	}},
	{RuleStreet2Length, "The second line of the street address is longer than 40 characters.", func(c Customer) bool {
		return len(c.Street2) > streetMaxLength
	}},
	{RuleStreet2POBox, "The address cannot be a PO Box.", func(c Customer) bool {
		return poBox.MatchString(c.Street2)
	}},
	{RuleCityRequired, "Please enter a city.", func(c Customer) bool {
		return c.City == ""
	}},
	{RuleCityLength, "The city is longer than 40 characters.", func(c Customer) bool {
		return len(c.City) > cityMaxLength
	}},
	{RuleCityCharacters, "The city contains invalid characters.", func(c Customer) bool {
		return !goodCharacters.MatchString(c.City)
	}},
	{RuleCountryCode, "Please select a country.", func(c Customer) bool {
		return !twoUpperLetters.MatchString(c.CountryCode)
	}},
	{RuleState, "Please select a state.", func(c Customer) bool {
		return c.CountryCode == "US" && !twoUpperLetters.MatchString(c.State)
	}},
	{RulePostalCode, "Please enter a valid US ZIP Code.", func(c Customer) bool {
		if c.CountryCode != "US" {
			return false
		}
		zip := nonDigits.ReplaceAllString(c.PostalCode, "")
		if len(zip) > 5 {
			zip = zip[:5]
		}
		return len(zip) != 5
	}},
}

// ValidateCustomer checks c against the provider's address acceptance
// rules and returns a *ValidationError for the first rule it breaks.
// Phone numbers are not validated; they are normalized instead.
func ValidateCustomer(c Customer) error {
	for _, r := range customerRules {
		if r.fails(c) {
			return &ValidationError{Rule: r.id, Message: r.message}
		}
	}
	return nil
}

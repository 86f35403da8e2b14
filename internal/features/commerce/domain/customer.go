package domain

// LocationType describes the kind of place a delivery goes to.
type LocationType string

const (
	LocationResidential LocationType = "Residential"
	LocationBusiness    LocationType = "Business"
	LocationHospital    LocationType = "Hospital"
	LocationFuneralHome LocationType = "FuneralHome"
	LocationApartment   LocationType = "Apartment"
	LocationDormitory   LocationType = "Dormitory"
	LocationOther       LocationType = "Other"
	LocationPOBox       LocationType = "POBox"
)

// Customer is a person and postal address, used both for the account
// holder's billing details and for delivery recipients.
type Customer struct {
	// FirstName is the given name.
	FirstName string `json:"firstname"`
	// LastName is the family name.
	LastName string `json:"lastname"`
	// Company is the optional company name.
	Company string `json:"company"`
	// Street1 is the first line of the street address.
	Street1 string `json:"street1"`
	// Street2 is the optional second line of the street address.
	Street2 string `json:"street2"`
	// City is the city or locality.
	City string `json:"city"`
	// State is the two letter state code for US addresses.
	State string `json:"state"`
	// PostalCode is the ZIP or postal code.
	PostalCode string `json:"postalcode"`
	// CountryCode is the ISO 3166-1 alpha-2 country code.
	CountryCode string `json:"countrycode"`
	// Phone is the contact phone number in any format.
	Phone string `json:"phone"`
}

// Recipient is a delivery address. RecipientID is set only for entries
// read back from the customer's address book.
type Recipient struct {
	Customer
	// RecipientID identifies a saved address book entry.
	RecipientID string `json:"recipient_id,omitempty"`
	// LocationType is the kind of place being delivered to.
	LocationType LocationType `json:"location_type"`
}

// CustomerAccount is returned when an account is created.
type CustomerAccount struct {
	// CustomerID is the provider's identifier for the new account.
	CustomerID string `json:"customer_id"`
	// AuthenticationToken is a session token for the new account.
	AuthenticationToken string `json:"authentication_token"`
}

package adapter

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ShapeError lists what a response was missing.
type ShapeError struct {
	// Missing holds the JSON paths that failed, e.g. "Order.Details.Tax".
	Missing []string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("response is missing %s", strings.Join(e.Missing, ", "))
}

var shapeValidator = newShapeValidator()

func newShapeValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// checkShape validates a decoded response against its validate tags.
func checkShape(response any) error {
	err := shapeValidator.Struct(response)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	missing := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		// drop the root type name
		_, path, _ := strings.Cut(fe.Namespace(), ".")
		missing = append(missing, path)
	}
	return &ShapeError{Missing: missing}
}

// missingKeys returns the keys absent from r, in the order given.
// A key whose value is null still counts as present.
func (r record) missingKeys(keys ...string) []string {
	var missing []string
	for _, k := range keys {
		if _, ok := r[k]; !ok {
			missing = append(missing, k)
		}
	}
	return missing
}

// hasKeys reports whether r has every key.
func (r record) hasKeys(keys ...string) bool {
	return len(r.missingKeys(keys...)) == 0
}

var (
	customerDetailKeys = []string{"FirstName", "LastName", "CompanyName", "Address1", "Address2", "City", "State", "Zip", "CountryCode", "Phone1"}
	recipientKeys      = []string{"RecipientId", "FirstName", "LastName", "CompanyName", "Address1", "Address2", "City", "State", "Zip", "CountryCode", "Phone"}
	paymentMethodKeys  = []string{"PaymentId", "Token", "CardHolderName", "ExpirationMonth", "ExpirationYear", "LastFour"}
)


package adapter

import (
	"context"
	"net/url"

	"provide-client/internal/features/commerce/normalize"
)

// GetProductAvailability lists the dates (YYYY-MM-DD) a product can be
// delivered. An empty zipCode asks for availability anywhere.
func (a *ProvideAdapter) GetProductAvailability(ctx context.Context, productID, zipCode string) ([]string, error) {
	// productIds is plural even though one id is sent
	params := url.Values{"productIds": {productID}}
	if zipCode != "" {
		// misspelled by the provider
		params.Set("recipeintZipCode", normalize.FixZipCode(zipCode))
	}

	ex, err := a.roundTrip(ctx, get("getProductAvailability", pathProductAvailability, params, ""))
	if err != nil {
		return nil, err
	}
	if ex.response.Failed() {
		return nil, a.fail(ex, ParseFault(ex.response.Body))
	}

	var resp availabilityResponse
	if err := a.decode(ex, &resp); err != nil {
		return nil, err
	}

	dates := make([]string, 0, len(resp.ProductAvailabilities))
	for _, availability := range resp.ProductAvailabilities {
		if availability.Date == nil {
			continue
		}

		date, err := JSONDateToDateString(*availability.Date)
		if err != nil {
			return nil, a.invalidDate(ex, err)
		}
		dates = append(dates, date)
	}

	return dates, nil
}

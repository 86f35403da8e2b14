package adapter

import (
	"context"
	"testing"

	"provide-client/internal/features/commerce/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestProvideAdapter_GetProductAvailability verifies date decoding and the
// misspelled zip parameter.
func TestProvideAdapter_GetProductAvailability(t *testing.T) {
	body := `{"ProductAvailabilities":[
		{"Date":"/Date(1390521600000-0800)/"},
		{"Date":null},
		{"Date":"/Date(1390608000000)/"}
	]}`
	a, transport, _ := newTestAdapter(t, ok(body))

	dates, err := a.GetProductAvailability(context.Background(), "P123", "94102-1234")
	require.NoError(t, err)
	assert.Equal(t, []string{"2014-01-24", "2014-01-25"}, dates)

	query := transport.requests[0].Query
	assert.Equal(t, "P123", query.Get("productIds"))
	assert.Equal(t, "94102", query.Get("recipeintZipCode"))
}

// TestProvideAdapter_GetProductAvailabilityAnyZip verifies no zip is sent when none is given.
func TestProvideAdapter_GetProductAvailabilityAnyZip(t *testing.T) {
	a, transport, _ := newTestAdapter(t, ok(`{"ProductAvailabilities":[]}`))

	dates, err := a.GetProductAvailability(context.Background(), "P123", "")
	require.NoError(t, err)
	assert.Empty(t, dates)

	_, present := transport.requests[0].Query["recipeintZipCode"]
	assert.False(t, present)
}

// TestProvideAdapter_GetProductAvailabilityBadDate verifies an undecodable date is a parse error.
func TestProvideAdapter_GetProductAvailabilityBadDate(t *testing.T) {
	a, _, logs := newTestAdapter(t, ok(`{"ProductAvailabilities":[{"Date":"soon"}]}`))

	_, err := a.GetProductAvailability(context.Background(), "P123", "")
	require.Error(t, err)
	assert.Equal(t, domain.KindParse, domain.KindOf(err))
	assert.ErrorIs(t, err, ErrInvalidDate)
	assert.Equal(t, 1, logs.Len())
}

package validator

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type addRequest struct {
	ProductID string `json:"product_id" validate:"required,max=64"`
	Quantity  int    `json:"quantity" validate:"gte=1,lte=999"`
}

func TestValidate_Success(t *testing.T) {
	assert.NoError(t, Validate(addRequest{ProductID: "1", Quantity: 2}))
}

func TestValidate_UsesJSONFieldNames(t *testing.T) {
	err := Validate(addRequest{Quantity: 0})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	fields := valErr.Fields()
	assert.Equal(t, "is required", fields["product_id"])
	assert.Equal(t, "must be greater than or equal to 1", fields["quantity"])
	assert.Contains(t, err.Error(), "field 'product_id' is required")
}

func TestDecodeAndValidate(t *testing.T) {
	t.Run("valid body", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"product_id":"1","quantity":3}`))
		var req addRequest
		require.NoError(t, DecodeAndValidate(r, &req))
		assert.Equal(t, 3, req.Quantity)
	})

	t.Run("malformed body", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"product_id":`))
		var req addRequest
		err := DecodeAndValidate(r, &req)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode request body")
	})

	t.Run("empty body keeps defaults", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", http.NoBody)
		req := addRequest{ProductID: "1", Quantity: 1}
		require.NoError(t, DecodeAndValidate(r, &req))
		assert.Equal(t, 1, req.Quantity)
	})
}

package middleware

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test struct mirroring the add-to-cart payload shape
type testCartRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Size      string `json:"size" validate:"required"`
}

func TestProperty_RequiredFieldValidationWorks(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("missing required fields are rejected", prop.ForAll(
		func(includeProductID bool, includeSize bool) bool {
			reqMap := make(map[string]interface{})

			if includeProductID {
				reqMap["product_id"] = "1"
			}
			if includeSize {
				reqMap["size"] = "M"
			}

			allFieldsPresent := includeProductID && includeSize

			reqBody, _ := json.Marshal(reqMap)
			req := httptest.NewRequest("POST", "/test", bytes.NewReader(reqBody))
			req.Header.Set("Content-Type", "application/json")

			var testReq testCartRequest
			err := DecodeAndValidate(req, &testReq)

			if allFieldsPresent {
				return err == nil
			}
			return err != nil
		},
		gen.Bool(),
		gen.Bool(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestFormatValidationErrors_IncludesFieldInformation(t *testing.T) {
	reqBody := []byte(`{"size":"M"}`)
	req := httptest.NewRequest("POST", "/test", bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")

	var testReq testCartRequest
	err := DecodeAndValidate(req, &testReq)
	require.Error(t, err)

	formatted := FormatValidationErrors(err)
	require.Len(t, formatted, 1)
	assert.Equal(t, "ProductID", formatted[0].Field)
	assert.Equal(t, "This field is required", formatted[0].Message)
}

func TestFormatValidationErrors_NonValidationError(t *testing.T) {
	req := httptest.NewRequest("POST", "/test", bytes.NewReader([]byte("not json")))

	var testReq testCartRequest
	err := DecodeAndValidate(req, &testReq)
	require.Error(t, err)

	assert.Empty(t, FormatValidationErrors(err), "decode errors carry no field details")
}

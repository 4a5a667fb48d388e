package httpx

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type samplePayload struct {
	Amount float64 `json:"amount"`
}

func decodeSample(t *testing.T, body string) error {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	var target samplePayload
	return DecodeJSON(req, &target)
}

func TestIsDecodeErrorClassifiesMalformedJSON(t *testing.T) {
	err := decodeSample(t, `{"amount": }`)
	require.Error(t, err)
	require.True(t, IsDecodeError(err))

	err = decodeSample(t, `{"amount": "not a number"}`)
	require.Error(t, err)
	require.True(t, IsDecodeError(err))

	err = decodeSample(t, `{"amount": 1`)
	require.Error(t, err)
	require.True(t, IsDecodeError(err))

	// Unknown fields are a usable-JSON problem, not a syntax one.
	err = decodeSample(t, `{"amount": 1, "extra": true}`)
	require.Error(t, err)
	require.False(t, IsDecodeError(err))
}

func TestFailDecodeDistinguishesMalformedBody(t *testing.T) {
	rec := httptest.NewRecorder()
	FailDecode(rec, decodeSample(t, `{"amount": }`))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "not valid JSON")

	rec = httptest.NewRecorder()
	FailDecode(rec, decodeSample(t, `{"amount": 1, "extra": true}`))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "invalid request body")
	require.Contains(t, rec.Body.String(), "extra")
}

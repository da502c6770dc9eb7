package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuery_NormalizesCodes(t *testing.T) {
	for _, from := range []string{"LAX", "lax", " lax ", "Lax", "LAXX"} {
		q, err := ParseQuery(SearchRequest{From: from, To: "jfk", Date: "2025-06-01"})
		require.NoError(t, err, "input %q", from)
		assert.Equal(t, "LAX", q.Origin, "input %q", from)
		assert.Equal(t, "JFK", q.Destination)
	}
}

func TestParseQuery_MissingFields(t *testing.T) {
	cases := []SearchRequest{
		{To: "JFK", Date: "2025-06-01"},
		{From: "LAX", Date: "2025-06-01"},
		{From: "LAX", To: "JFK"},
		{},
	}
	for _, req := range cases {
		_, err := ParseQuery(req)
		require.Error(t, err)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "Missing required fields: from, to, or date", err.Error())
	}
}

func TestParseQuery_BadCodesNameBothInputs(t *testing.T) {
	_, err := ParseQuery(SearchRequest{From: "LA", To: "JFK", Date: "2025-06-01"})
	require.Error(t, err)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, err.Error(), `"LA"`)
	assert.Contains(t, err.Error(), `"JFK"`)
	assert.Contains(t, err.Error(), "IATA codes must be 3 letters")
}

func TestParseQuery_NonAlphabeticCode(t *testing.T) {
	_, err := ParseQuery(SearchRequest{From: "LAX", To: "J2K", Date: "2025-06-01"})
	require.Error(t, err)
	if !strings.Contains(err.Error(), "J2K") {
		t.Fatalf("error should name the bad code, got %q", err.Error())
	}
}

func TestParseQuery_PassengerDefault(t *testing.T) {
	q, err := ParseQuery(SearchRequest{From: "LAX", To: "JFK", Date: "2025-06-01"})
	require.NoError(t, err)
	assert.Equal(t, 1, q.Passengers)

	q, err = ParseQuery(SearchRequest{From: "LAX", To: "JFK", Date: "2025-06-01", Passengers: -3})
	require.NoError(t, err)
	assert.Equal(t, 1, q.Passengers)

	// No upper bound is enforced.
	q, err = ParseQuery(SearchRequest{From: "LAX", To: "JFK", Date: "2025-06-01", Passengers: 42})
	require.NoError(t, err)
	assert.Equal(t, 42, q.Passengers)
}

package providers

import (
	"encoding/json"
	"fmt"
)

// CredentialError reports a failed token exchange with the provider's
// identity endpoint. The search is not attempted and the token slot stays
// empty, so the next request retries the exchange.
type CredentialError struct {
	Detail string
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("amadeus token: %s", e.Detail)
}

// ProviderError reports a non-success status from the search endpoint.
// Detail is the first upstream-reported error detail; Errors holds the raw
// upstream errors array for the response envelope.
type ProviderError struct {
	StatusCode int
	Detail     string
	Errors     json.RawMessage
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("amadeus search: %s", e.Detail)
}

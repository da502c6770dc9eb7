package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/InonKadosh/travel-server/internal/config"
)

const (
	amadeusAuthPath   = "/v1/security/oauth2/token"
	amadeusSearchPath = "/v2/shopping/flight-offers"

	// maxResults caps the upstream result set; the UI never shows more.
	maxResults = 10
	// settlementCurrency is passed through to the client unconverted.
	settlementCurrency = "USD"
)

type Amadeus struct {
	host   string
	client *http.Client
	id     string
	secret string
	tokens *TokenCache
}

func NewAmadeus(cfg *config.Config, tokens *TokenCache) *Amadeus {
	return &Amadeus{
		host:   cfg.AmadeusURL,
		id:     cfg.AmadeusClientID,
		secret: cfg.AmadeusClientSecret,
		client: http.DefaultClient,
		tokens: tokens,
	}
}

func (a *Amadeus) Name() string { return "amadeus" }

// exchangeToken performs the client-credentials exchange. It is only called
// through the token cache, never directly per request.
func (a *Amadeus) exchangeToken(ctx context.Context) (string, time.Duration, error) {
	data := url.Values{}
	data.Set("grant_type", "client_credentials")
	data.Set("client_id", a.id)
	data.Set("client_secret", a.secret)
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, a.host+amadeusAuthPath, strings.NewReader(data.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := a.client.Do(req)
	if err != nil {
		return "", 0, &CredentialError{Detail: err.Error()}
	}
	defer resp.Body.Close()

	var tr struct {
		AccessToken      string `json:"access_token"`
		ExpiresIn        int    `json:"expires_in"`
		ErrorDescription string `json:"error_description"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", 0, &CredentialError{Detail: err.Error()}
	}
	if resp.StatusCode >= 300 || tr.AccessToken == "" {
		detail := tr.ErrorDescription
		if detail == "" {
			detail = "Unknown error"
		}
		return "", 0, &CredentialError{Detail: detail}
	}
	return tr.AccessToken, time.Duration(tr.ExpiresIn) * time.Second, nil
}

func (a *Amadeus) SearchOffers(ctx context.Context, origin, destination, date string, passengers int) ([]Offer, error) {
	if a.id == "" || a.secret == "" {
		return nil, &CredentialError{Detail: "credentials missing"}
	}
	tok, err := a.tokens.Token(ctx, a.exchangeToken)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("originLocationCode", origin)
	q.Set("destinationLocationCode", destination)
	q.Set("departureDate", date)
	q.Set("adults", strconv.Itoa(passengers))
	q.Set("max", strconv.Itoa(maxResults))
	q.Set("currencyCode", settlementCurrency)
	u := fmt.Sprintf("%s%s?%s", a.host, amadeusSearchPath, q.Encode())

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var pe struct {
			Errors json.RawMessage `json:"errors"`
		}
		detail := "Unknown error"
		if err := json.NewDecoder(resp.Body).Decode(&pe); err == nil {
			var details []struct {
				Detail string `json:"detail"`
			}
			if json.Unmarshal(pe.Errors, &details) == nil && len(details) > 0 && details[0].Detail != "" {
				detail = details[0].Detail
			}
		}
		return nil, &ProviderError{StatusCode: resp.StatusCode, Detail: detail, Errors: pe.Errors}
	}

	var payload struct {
		Data []Offer `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	// A missing data array means no offers, not a failure.
	return payload.Data, nil
}

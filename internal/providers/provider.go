package providers

import (
	"context"
)

// Offer is one priced itinerary proposal as returned by the upstream search
// provider. Fields mirror the wire payload; callers should treat values as
// provider-owned and copy what they need.
type Offer struct {
	ID          string      `json:"id"`
	Itineraries []Itinerary `json:"itineraries"`
	Price       Price       `json:"price"`
}

// Itinerary is an ordered sequence of segments forming one direction of
// travel, with an ISO-8601 duration token covering the whole sequence.
type Itinerary struct {
	Duration string    `json:"duration"` // e.g. PT2H10M
	Segments []Segment `json:"segments"`
}

// Segment is a single flight leg.
type Segment struct {
	Departure   Endpoint `json:"departure"`
	Arrival     Endpoint `json:"arrival"`
	CarrierCode string   `json:"carrierCode"`
	Number      string   `json:"number"`
	Aircraft    Aircraft `json:"aircraft"`
	Duration    string   `json:"duration"`
}

// Endpoint is one side of a segment: the airport, an optional terminal, and
// the local timestamp.
type Endpoint struct {
	IataCode string `json:"iataCode"`
	Terminal string `json:"terminal"`
	At       string `json:"at"` // local time without offset, e.g. 2025-06-01T08:45:00
}

type Aircraft struct {
	Code string `json:"code"`
}

type Price struct {
	Total    string `json:"total"`
	Currency string `json:"currency"`
}

// OfferProvider is the upstream search surface the service depends on.
type OfferProvider interface {
	Name() string
	SearchOffers(ctx context.Context, origin, destination, date string, passengers int) ([]Offer, error)
}

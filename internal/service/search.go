package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/InonKadosh/travel-server/internal/providers"
)

// SearchService runs a validated query against the offer provider and
// normalizes the results. It holds no per-request state; the only shared
// state in the process is the provider's token cache.
type SearchService struct {
	provider providers.OfferProvider
	timeout  time.Duration
}

func NewSearchService(provider providers.OfferProvider, timeout time.Duration) *SearchService {
	return &SearchService{
		provider: provider,
		timeout:  timeout,
	}
}

func (s *SearchService) Source() string { return s.provider.Name() }

// Search fetches and normalizes offers for a validated query. Malformed
// offers are dropped with a warning; well-formed offers in the same payload
// still reach the caller. An empty result is not an error.
func (s *SearchService) Search(ctx context.Context, q Query) ([]Flight, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	offers, err := s.provider.SearchOffers(ctx, q.Origin, q.Destination, q.Date, q.Passengers)
	if err != nil {
		return nil, err
	}

	flights := make([]Flight, 0, len(offers))
	for _, o := range offers {
		f, err := Normalize(o)
		if err != nil {
			slog.WarnContext(ctx, "skipping malformed offer", "offer_id", o.ID, "error", err)
			continue
		}
		flights = append(flights, f)
	}
	return flights, nil
}

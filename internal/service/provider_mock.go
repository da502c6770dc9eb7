package service

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/InonKadosh/travel-server/internal/providers"
)

type ProviderMock struct {
	name      string
	offers    []providers.Offer
	delay     time.Duration
	err       error
	callCount *int32
}

func (p ProviderMock) Name() string {
	if p.name == "" {
		return "mock"
	}
	return p.name
}

func (p ProviderMock) SearchOffers(ctx context.Context, o, d, dt string, passengers int) ([]providers.Offer, error) {
	if p.callCount != nil {
		atomic.AddInt32(p.callCount, 1)
	}
	if p.err != nil {
		return nil, p.err
	}
	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return p.offers, nil
}

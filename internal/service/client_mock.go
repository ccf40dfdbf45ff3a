package service

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/you/go-travel-search/internal/amadeus"
	"github.com/you/go-travel-search/internal/travel"
)

// ClientMock stands in for the provider client in tests.
type ClientMock struct {
	token        string
	tokenErr     error
	batch        amadeus.OfferBatch
	searchErr    error
	delay        time.Duration
	tokenCalls   int32
	searchCalls  int32
	gotToken     string
	gotRequest   travel.SearchRequest
}

func (m *ClientMock) Token(ctx context.Context) (string, error) {
	atomic.AddInt32(&m.tokenCalls, 1)
	if m.tokenErr != nil {
		return "", m.tokenErr
	}
	return m.token, nil
}

func (m *ClientMock) SearchOffers(ctx context.Context, sr travel.SearchRequest, token string) (amadeus.OfferBatch, error) {
	atomic.AddInt32(&m.searchCalls, 1)
	m.gotToken = token
	m.gotRequest = sr
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return amadeus.OfferBatch{}, ctx.Err()
		}
	}
	if m.searchErr != nil {
		return amadeus.OfferBatch{}, m.searchErr
	}
	return m.batch, nil
}

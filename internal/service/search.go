package service

import (
	"context"
	"time"

	"github.com/you/go-travel-search/internal/amadeus"
	"github.com/you/go-travel-search/internal/logger"
	"github.com/you/go-travel-search/internal/metrics"
	"github.com/you/go-travel-search/internal/travel"
)

// FlightClient is the slice of the provider client the search flow needs.
type FlightClient interface {
	Token(ctx context.Context) (string, error)
	SearchOffers(ctx context.Context, sr travel.SearchRequest, token string) (amadeus.OfferBatch, error)
}

type SearchService struct {
	client        FlightClient
	searchTimeout time.Duration
	log           logger.Logger
	metrics       *metrics.Metrics
}

func NewSearchService(client FlightClient, timeout time.Duration, log logger.Logger, m *metrics.Metrics) *SearchService {
	return &SearchService{
		client:        client,
		searchTimeout: timeout,
		log:           log,
		metrics:       m,
	}
}

// Search runs one full search cycle: acquire a token (cached or fresh),
// call the provider, normalize. A token failure stops the flow before the
// search call is ever attempted.
func (s *SearchService) Search(ctx context.Context, sr travel.SearchRequest) ([]travel.TravelOption, error) {
	ctx, cancel := context.WithTimeout(ctx, s.searchTimeout)
	defer cancel()

	s.metrics.SearchesTotal.Inc()
	start := time.Now()

	token, err := s.client.Token(ctx)
	if err != nil {
		s.metrics.ErrorsTotal.WithLabelValues("token").Inc()
		s.log.Error("token acquisition failed", "error", err)
		return nil, err
	}

	batch, err := s.client.SearchOffers(ctx, sr, token)
	if err != nil {
		s.metrics.ErrorsTotal.WithLabelValues("search").Inc()
		s.log.Error("provider search failed",
			"origin", sr.Origin,
			"destination", sr.Destination,
			"error", err)
		return nil, err
	}

	options := amadeus.Normalize(batch)

	s.metrics.OffersReturned.Add(float64(len(options)))
	s.metrics.SearchDuration.Observe(time.Since(start).Seconds())
	s.log.Info("search completed",
		"origin", sr.Origin,
		"destination", sr.Destination,
		"date", sr.DepartureDate,
		"options", len(options))

	return options, nil
}

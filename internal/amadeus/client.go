package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/you/go-travel-search/internal/config"
	"github.com/you/go-travel-search/internal/logger"
	"github.com/you/go-travel-search/internal/metrics"
	"github.com/you/go-travel-search/internal/travel"
)

// Client talks to the Amadeus REST API: one call to exchange credentials for
// a bearer token, one call to search flight offers. No retries; a single
// attempt either succeeds or fails and the caller decides what to do.
type Client struct {
	host       string
	authPath   string
	searchPath string
	client     *http.Client
	key        string
	secret     string
	cache      *TokenCache
	log        logger.Logger
	metrics    *metrics.Metrics
}

func NewClient(cfg *config.Config, cache *TokenCache, log logger.Logger, m *metrics.Metrics) *Client {
	return &Client{
		host:       cfg.AmadeusURL,
		authPath:   "/v1/security/oauth2/token",
		searchPath: "/v2/shopping/flight-offers",
		key:        cfg.AmadeusAPIKey,
		secret:     cfg.AmadeusAPISecret,
		client:     http.DefaultClient,
		cache:      cache,
		log:        log,
		metrics:    m,
	}
}

// Token returns a valid bearer token, reusing the cached credential when it
// has not expired. A cache hit makes no network call.
func (c *Client) Token(ctx context.Context) (string, error) {
	if tok, ok := c.cache.Get(); ok {
		return tok, nil
	}

	if c.key == "" || c.secret == "" {
		return "", ErrCredentialsNotConfigured
	}

	c.log.Info("fetching new amadeus access token")

	data := url.Values{}
	data.Set("grant_type", "client_credentials")
	data.Set("client_id", c.key)
	data.Set("client_secret", c.secret)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+c.authPath, strings.NewReader(data.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("amadeus token: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", &AuthError{Status: resp.StatusCode, Body: string(body)}
	}

	var tr struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"` // seconds
	}
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("amadeus token: decode: %w", err)
	}

	c.cache.Put(tr.AccessToken, time.Duration(tr.ExpiresIn)*time.Second)
	c.metrics.TokenRefreshes.Inc()
	return tr.AccessToken, nil
}

// SearchOffers performs one offer search with the given bearer token and
// returns the raw decoded batch. Currency is fixed to USD and results are
// capped at 10, matching what the consumer renders.
func (c *Client) SearchOffers(ctx context.Context, sr travel.SearchRequest, token string) (OfferBatch, error) {
	q := url.Values{}
	q.Set("originLocationCode", sr.Origin)
	q.Set("destinationLocationCode", sr.Destination)
	q.Set("departureDate", sr.DepartureDate)
	q.Set("adults", strconv.Itoa(sr.Adults))
	q.Set("children", strconv.Itoa(sr.Children))
	q.Set("currencyCode", "USD")
	q.Set("max", "10")
	if sr.ReturnDate != "" {
		q.Set("returnDate", sr.ReturnDate)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.host+c.searchPath+"?"+q.Encode(), nil)
	if err != nil {
		return OfferBatch{}, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return OfferBatch{}, fmt.Errorf("amadeus search: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return OfferBatch{}, &SearchError{Status: resp.StatusCode, Body: string(body)}
	}

	var batch OfferBatch
	if err := json.NewDecoder(resp.Body).Decode(&batch); err != nil {
		return OfferBatch{}, fmt.Errorf("amadeus search: decode: %w", err)
	}
	return batch, nil
}

package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/you/go-travel-search/internal/amadeus"
	"github.com/you/go-travel-search/internal/logger"
	"github.com/you/go-travel-search/internal/metrics"
	"github.com/you/go-travel-search/internal/service"
	"github.com/you/go-travel-search/internal/travel"
)

var testMetrics = metrics.New("test_httpx")

type stubClient struct {
	batch     amadeus.OfferBatch
	tokenErr  error
	searchErr error
	calls     int32
}

func (s *stubClient) Token(ctx context.Context) (string, error) {
	atomic.AddInt32(&s.calls, 1)
	if s.tokenErr != nil {
		return "", s.tokenErr
	}
	return "tok", nil
}

func (s *stubClient) SearchOffers(ctx context.Context, sr travel.SearchRequest, token string) (amadeus.OfferBatch, error) {
	atomic.AddInt32(&s.calls, 1)
	if s.searchErr != nil {
		return amadeus.OfferBatch{}, s.searchErr
	}
	return s.batch, nil
}

func newHandler(client *stubClient) http.HandlerFunc {
	svc := service.NewSearchService(client, 5*time.Second, logger.NewNop(), testMetrics)
	return SearchHandler(svc, logger.NewNop())
}

func requireCORS(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "authorization, x-client-info, apikey, content-type", rec.Header().Get("Access-Control-Allow-Headers"))
}

func TestSearchHandlerPreflight(t *testing.T) {
	h := newHandler(&stubClient{})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodOptions, "/flights/search", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	requireCORS(t, rec)
	require.Empty(t, rec.Body.String())
}

func TestSearchHandlerValidation(t *testing.T) {
	client := &stubClient{}
	h := newHandler(client)

	// departureDate missing
	body := `{"origin":"JFK","destination":"LAX","adults":1,"children":0}`
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/flights/search", strings.NewReader(body)))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	requireCORS(t, rec)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Contains(t, resp["error"], "departureDate")

	if got := atomic.LoadInt32(&client.calls); got != 0 {
		t.Fatalf("validation failures must not reach the provider; calls=%d", got)
	}
}

func TestSearchHandlerBadJSON(t *testing.T) {
	h := newHandler(&stubClient{})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/flights/search", strings.NewReader("{not json")))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	requireCORS(t, rec)
}

func TestSearchHandlerMethodNotAllowed(t *testing.T) {
	h := newHandler(&stubClient{})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/flights/search", nil))

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	requireCORS(t, rec)
}

func TestSearchHandlerTokenFailure(t *testing.T) {
	client := &stubClient{
		tokenErr: &amadeus.AuthError{Status: http.StatusUnauthorized, Body: "invalid_client"},
	}
	h := newHandler(client)

	body := `{"origin":"JFK","destination":"LAX","departureDate":"2025-10-01","adults":1}`
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/flights/search", strings.NewReader(body)))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	requireCORS(t, rec)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["error"])

	// token call happened, search never did
	require.EqualValues(t, 1, atomic.LoadInt32(&client.calls))
}

func TestSearchHandlerSuccess(t *testing.T) {
	client := &stubClient{
		batch: amadeus.OfferBatch{
			Data: []amadeus.Offer{
				{
					ID:    "1",
					Price: amadeus.Price{Total: "199.99"},
					Itineraries: []amadeus.Itinerary{
						{
							Duration: "PT6H",
							Segments: []amadeus.Segment{
								{
									Departure:   amadeus.Endpoint{IATACode: "JFK", At: "2025-10-01T09:15:00"},
									Arrival:     amadeus.Endpoint{IATACode: "LAX", At: "2025-10-01T15:15:00"},
									CarrierCode: "UA",
									Number:      "1502",
								},
							},
						},
					},
				},
			},
			Dictionaries: amadeus.Dictionaries{Carriers: map[string]string{"UA": "United Airlines"}},
		},
	}
	h := newHandler(client)

	body := `{"origin":"JFK","destination":"LAX","departureDate":"2025-10-01","adults":1,"children":0}`
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/flights/search", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	requireCORS(t, rec)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp struct {
		Flights []travel.TravelOption `json:"flights"`
		Meta    struct {
			Total int `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Meta.Total)
	require.Len(t, resp.Flights, 1)
	require.Equal(t, "flight-1", resp.Flights[0].ID)
	require.Equal(t, "United Airlines", resp.Flights[0].Provider)
	require.Equal(t, "6h", resp.Flights[0].Duration)
	require.Equal(t, "UA1502", resp.Flights[0].FlightNumber)
}

func TestSearchHandlerEmptyResult(t *testing.T) {
	h := newHandler(&stubClient{})

	body := `{"origin":"JFK","destination":"XXX","departureDate":"2025-10-01","adults":1}`
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/flights/search", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)

	// an empty result is a 200 with an empty list, never null
	require.Contains(t, rec.Body.String(), `"flights":[]`)
	require.Contains(t, rec.Body.String(), `"total":0`)
}

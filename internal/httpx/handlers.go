package httpx

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
	"github.com/you/go-travel-search/internal/logger"
	"github.com/you/go-travel-search/internal/service"
	"github.com/you/go-travel-search/internal/travel"
)

// Browser callers hit this service cross-origin, so every response carries
// these headers, errors included.
func applyCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type")
}

type searchResponse struct {
	Flights []travel.TravelOption `json:"flights"`
	Meta    searchMeta            `json:"meta"`
}

type searchMeta struct {
	Total int `json:"total"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	applyCORS(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// SearchHandler serves one search request/response cycle. Validation
// failures map to 400; everything the provider flow can throw maps to 500
// with a plain error envelope. Nothing escapes as an unhandled fault.
func SearchHandler(svc *service.SearchService, log logger.Logger) http.HandlerFunc {
	validate := validator.New()
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			applyCORS(w)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			return
		}
		if r.Method != http.MethodPost {
			writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
			return
		}

		var req travel.SearchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
			return
		}
		if err := validate.Struct(req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{
				Error: "missing required fields: origin, destination, departureDate",
			})
			return
		}

		flights, err := svc.Search(r.Context(), req)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
			return
		}

		writeJSON(w, http.StatusOK, searchResponse{
			Flights: flights,
			Meta:    searchMeta{Total: len(flights)},
		})
	}
}

// routeRequest builds a SearchRequest out of a subscribe path like
// /sse/{origin}/{destination}?date=YYYY-MM-DD.
func routeRequest(prefix string, r *http.Request) (travel.SearchRequest, bool) {
	parts := strings.Split(strings.TrimPrefix(r.URL.Path, prefix), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return travel.SearchRequest{}, false
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		return travel.SearchRequest{}, false
	}
	return travel.SearchRequest{
		Origin:        strings.ToUpper(parts[0]),
		Destination:   strings.ToUpper(parts[1]),
		DepartureDate: date,
		Adults:        1,
	}, true
}

// SubscribeSSEHandler streams fresh search results every interval until the
// client disconnects.
func SubscribeSSEHandler(svc *service.SearchService, log logger.Logger, interval time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sr, ok := routeRequest("/sse/", r)
		if !ok {
			http.Error(w, "use /sse/{origin}/{destination}?date=YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return
		}

		tick := time.NewTicker(interval)
		defer tick.Stop()

		ctx := r.Context()
		for {
			select {
			case <-ctx.Done():
				log.Debug("sse client closed", "origin", sr.Origin, "destination", sr.Destination)
				return

			case <-tick.C:
				flights, err := svc.Search(ctx, sr)
				if err != nil {
					fmt.Fprintf(w, "event: error\ndata: %q\n\n", err.Error())
					flusher.Flush()
					return
				}
				payload, _ := json.Marshal(searchResponse{Flights: flights, Meta: searchMeta{Total: len(flights)}})
				fmt.Fprintf(w, "event: update\ndata: %s\n\n", payload)
				flusher.Flush()
			}
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // the search API is open cross-origin anyway
	},
}

// SubscribeWSHandler pushes search results over a websocket on the same
// schedule as the SSE variant.
func SubscribeWSHandler(svc *service.SearchService, log logger.Logger, interval time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sr, ok := routeRequest("/ws/", r)
		if !ok {
			http.Error(w, "use /ws/{origin}/{destination}?date=YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Warn("websocket upgrade failed", "error", err)
			return
		}
		defer conn.Close()

		tick := time.NewTicker(interval)
		defer tick.Stop()

		ctx := r.Context()
		for {
			flights, err := svc.Search(ctx, sr)
			if err != nil {
				_ = conn.WriteJSON(errorResponse{Error: err.Error()})
				return
			}
			if err := conn.WriteJSON(searchResponse{Flights: flights, Meta: searchMeta{Total: len(flights)}}); err != nil {
				log.Warn("websocket write failed", "error", err)
				return
			}

			select {
			case <-ctx.Done():
				return
			case <-tick.C:
			}
		}
	}
}

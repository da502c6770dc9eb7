package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/InonKadosh/travel-server/internal/providers"
	"github.com/InonKadosh/travel-server/internal/service"
)

type searchResponse struct {
	Success bool             `json:"success"`
	Flights []service.Flight `json:"flights"`
	Count   int              `json:"count"`
	Source  string           `json:"source"`
}

type errorResponse struct {
	Success  bool            `json:"success"`
	Error    string          `json:"error"`
	APIError json.RawMessage `json:"apiError,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// SearchHandler handles POST /api/flights. It validates the body, runs the
// search, and maps each failure kind onto the envelope contract: 400 for
// bad input, 502 for upstream search failures, 500 for everything else.
func SearchHandler(svc *service.SearchService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req service.SearchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON body"})
			return
		}
		q, err := service.ParseQuery(req)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		flights, err := svc.Search(r.Context(), q)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, searchResponse{
			Success: true,
			Flights: flights,
			Count:   len(flights),
			Source:  svc.Source(),
		})
	}
}

// writeError converts a pipeline failure into the outbound envelope. The
// error is logged here, at the boundary, so inner layers stay silent.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var pe *providers.ProviderError
	var ce *providers.CredentialError
	switch {
	case errors.As(err, &pe):
		slog.ErrorContext(r.Context(), "provider error", "status", pe.StatusCode, "detail", pe.Detail)
		writeJSON(w, http.StatusBadGateway, errorResponse{
			Error:    "Amadeus API Error: " + pe.Detail,
			APIError: pe.Errors,
		})
	case errors.As(err, &ce):
		slog.ErrorContext(r.Context(), "credential error", "error", ce)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error: "Failed to fetch flights: " + ce.Error(),
		})
	default:
		slog.ErrorContext(r.Context(), "search failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error: "Failed to fetch flights: " + err.Error(),
		})
	}
}

// HealthHandler reports liveness for probes.
func HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// streamQuery pulls the route out of an SSE/WS request. Validation reuses
// the same rules as the POST surface.
func streamQuery(r *http.Request) (service.Query, error) {
	passengers := 0
	if p := r.URL.Query().Get("passengers"); p != "" {
		fmt.Sscanf(p, "%d", &passengers)
	}
	return service.ParseQuery(service.SearchRequest{
		From:       chi.URLParam(r, "origin"),
		To:         chi.URLParam(r, "destination"),
		Date:       r.URL.Query().Get("date"),
		Passengers: passengers,
	})
}

// SubscribeSSEHandler re-runs a search on a fixed interval and pushes each
// result as an SSE update frame until the client disconnects.
func SubscribeSSEHandler(svc *service.SearchService, interval time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := streamQuery(r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
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

		updateTick := time.NewTicker(interval)
		defer updateTick.Stop()

		ctx := r.Context()
		for {
			select {
			case <-ctx.Done():
				slog.Debug("SSE client closed", "origin", q.Origin, "destination", q.Destination)
				return

			case <-updateTick.C:
				flights, err := svc.Search(ctx, q)
				if err != nil {
					fmt.Fprintf(w, "event: error\ndata: %q\n\n", err.Error())
					flusher.Flush()
					return
				}
				payload, _ := json.Marshal(searchResponse{
					Success: true, Flights: flights, Count: len(flights), Source: svc.Source(),
				})
				fmt.Fprintf(w, "event: update\ndata: %s\n\n", payload)
				flusher.Flush()
			}
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // in prod, restrict origin
	},
}

// SubscribeWSHandler is the WebSocket twin of the SSE stream: one search
// immediately on connect, then one per interval tick.
func SubscribeWSHandler(svc *service.SearchService, interval time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := streamQuery(r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Error("websocket upgrade", "error", err)
			return
		}
		defer conn.Close()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		ctx := r.Context()
		for {
			flights, err := svc.Search(ctx, q)
			if err != nil {
				_ = conn.WriteJSON(errorResponse{Error: err.Error()})
				return
			}
			if err := conn.WriteJSON(searchResponse{
				Success: true, Flights: flights, Count: len(flights), Source: svc.Source(),
			}); err != nil {
				slog.Debug("websocket write", "error", err)
				return
			}

			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				continue
			}
		}
	}
}

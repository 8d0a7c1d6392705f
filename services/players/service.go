// Package players exposes the fantacalcio scrapers over a JSON HTTP
// API. Every success response wraps its payload in a {"data": ...}
// envelope, failures carry {"error": ...} with a status code derived
// from the scraper error taxonomy.
package players

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"fantassist-backend/lib/scrapers/fantacalcio"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Service struct {
	client *fantacalcio.Client
}

func NewService(client *fantacalcio.Client) Service {
	return Service{client: client}
}

// Handler returns the instrumented route table of the service.
func (s Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/players-links/{season}", s.handlePlayerLinks)
	mux.HandleFunc("POST /v1/matches-stats", s.handleMatchesStats)
	mux.HandleFunc("POST /v1/player-summary-stats/outfield", s.handleOutfieldSummary)
	mux.HandleFunc("POST /v1/player-summary-stats/goalkeeper", s.handleGoalkeeperSummary)
	return otelhttp.NewHandler(mux, "fantassist.services.players")
}

type dataEnvelope struct {
	Data any `json:"data"`
}

type errorEnvelope struct {
	Error string `json:"error"`
}

func writeData(w http.ResponseWriter, data any) {
	w.Header().Set("content-type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(dataEnvelope{Data: data})
}

// writeError maps scraper errors onto status codes: caller mistakes
// (invalid input, wrong summary shape) are 400, an unreachable or
// failing source site is 502 and a page whose markup no longer matches
// the extraction steps is 500.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	var validationErr *fantacalcio.ValidationError
	var mismatchErr *fantacalcio.RoleMismatchError
	var fetchErr *fantacalcio.FetchError
	var structureErr *fantacalcio.PageStructureError
	switch {
	case errors.As(err, &validationErr), errors.As(err, &mismatchErr):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.As(err, &fetchErr):
		status = http.StatusBadGateway
		message = err.Error()
	case errors.As(err, &structureErr):
		message = err.Error()
	}

	if status >= 500 {
		slog.ErrorContext(ctx, "request failed", "err", err)
	}
	w.Header().Set("content-type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorEnvelope{Error: message})
}

// decodeLink reads a PlayerLink request body. The profile url is the
// one piece of input the scrapers cannot work without.
func decodeLink(r *http.Request) (fantacalcio.PlayerLink, error) {
	var link fantacalcio.PlayerLink
	err := json.NewDecoder(r.Body).Decode(&link)
	if err != nil {
		return fantacalcio.PlayerLink{}, &fantacalcio.ValidationError{
			Reason: "request body is not a valid player link",
		}
	}
	if link.Link == "" {
		return fantacalcio.PlayerLink{}, &fantacalcio.ValidationError{
			Reason: "player link is missing the profile url",
		}
	}
	return link, nil
}

func (s Service) handlePlayerLinks(w http.ResponseWriter, r *http.Request) {
	links, err := s.client.PlayerLinks(r.Context(), r.PathValue("season"))
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeData(w, links)
}

func (s Service) handleMatchesStats(w http.ResponseWriter, r *http.Request) {
	link, err := decodeLink(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	records, err := fantacalcio.NewMatchDayScraper(s.client, link).Scrape(r.Context())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeData(w, records)
}

func (s Service) handleOutfieldSummary(w http.ResponseWriter, r *http.Request) {
	link, err := decodeLink(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	summary, err := fantacalcio.NewSummaryScraper(s.client, link).Outfield(r.Context())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeData(w, summary)
}

func (s Service) handleGoalkeeperSummary(w http.ResponseWriter, r *http.Request) {
	link, err := decodeLink(r)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	summary, err := fantacalcio.NewSummaryScraper(s.client, link).Goalkeeper(r.Context())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeData(w, summary)
}

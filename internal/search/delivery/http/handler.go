package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tair/storefront/internal/search"
	"github.com/tair/storefront/pkg/httpx"
	"github.com/tair/storefront/pkg/logger"
)

// SearchHandler serves suggestions, search history and the live typeahead
type SearchHandler struct {
	suggester *search.Suggester
	bars      *search.Bars
	metrics   *httpx.Metrics
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(suggester *search.Suggester, bars *search.Bars, metrics *httpx.Metrics) *SearchHandler {
	return &SearchHandler{suggester: suggester, bars: bars, metrics: metrics}
}

// RegisterRoutes registers search routes
func (h *SearchHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/search/suggestions", h.metrics.Wrap("/api/search/suggestions", h.Suggestions)).Methods("GET")
	router.HandleFunc("/api/search/trending", h.metrics.Wrap("/api/search/trending", h.Trending)).Methods("GET")

	router.HandleFunc("/api/search/history", h.metrics.Wrap("/api/search/history", h.GetHistory)).Methods("GET")
	router.HandleFunc("/api/search/history", h.metrics.Wrap("/api/search/history", h.CommitSearch)).Methods("POST")
	router.HandleFunc("/api/search/history", h.metrics.Wrap("/api/search/history", h.ClearHistory)).Methods("DELETE")

	router.HandleFunc("/api/search/typeahead", h.metrics.Wrap("/api/search/typeahead", h.TypeaheadView)).Methods("GET")
	router.HandleFunc("/api/search/typeahead", h.metrics.Wrap("/api/search/typeahead", h.TypeaheadInput)).Methods("POST")
	router.HandleFunc("/api/search/typeahead/keys", h.metrics.Wrap("/api/search/typeahead/keys", h.TypeaheadKey)).Methods("POST")
}

func (h *SearchHandler) bar(r *http.Request) *search.Bar {
	return h.bars.Get(httpx.SessionFromContext(r.Context()))
}

// Suggestions handles GET /api/search/suggestions?q=
func (h *SearchHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	results, err := h.suggester.Suggest(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		logger.Warn(r.Context()).Err(err).Msg("Suggestion lookup failed")
		httpx.RespondError(w, http.StatusBadGateway, "Search is temporarily unavailable, please try again")
		return
	}
	httpx.RespondOK(w, http.StatusOK, "", results)
}

// Trending handles GET /api/search/trending
func (h *SearchHandler) Trending(w http.ResponseWriter, r *http.Request) {
	httpx.RespondOK(w, http.StatusOK, "", h.bar(r).Trending())
}

// GetHistory handles GET /api/search/history
func (h *SearchHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	httpx.RespondOK(w, http.StatusOK, "", h.bar(r).History(r.Context()))
}

type commitRequest struct {
	Query string `json:"query"`
}

// CommitSearch handles POST /api/search/history
func (h *SearchHandler) CommitSearch(w http.ResponseWriter, r *http.Request) {
	var req commitRequest
	if !httpx.DecodeJSON(w, r, &req) {
		return
	}

	out := h.bar(r).Commit(r.Context(), req.Query)
	if out.Action != search.ActionSearch {
		httpx.RespondError(w, http.StatusBadRequest, "Query is required")
		return
	}
	httpx.RespondOK(w, http.StatusOK, "Search recorded", out)
}

// ClearHistory handles DELETE /api/search/history
func (h *SearchHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := h.bar(r).ClearHistory(r.Context()); err != nil {
		httpx.RespondError(w, http.StatusInternalServerError, "Failed to clear search history, please try again")
		return
	}
	httpx.RespondOK(w, http.StatusOK, "Search history cleared", nil)
}

// TypeaheadView handles GET /api/search/typeahead
func (h *SearchHandler) TypeaheadView(w http.ResponseWriter, r *http.Request) {
	httpx.RespondOK(w, http.StatusOK, "", h.bar(r).View(r.Context()))
}

type inputRequest struct {
	Text  string `json:"text"`
	Focus bool   `json:"focus"`
}

// TypeaheadInput handles POST /api/search/typeahead
func (h *SearchHandler) TypeaheadInput(w http.ResponseWriter, r *http.Request) {
	var req inputRequest
	if !httpx.DecodeJSON(w, r, &req) {
		return
	}

	bar := h.bar(r)
	if req.Focus {
		bar.Focus()
	} else {
		bar.Type(req.Text)
	}
	httpx.RespondOK(w, http.StatusAccepted, "", bar.View(r.Context()))
}

type keyRequest struct {
	Key string `json:"key"`
}

// TypeaheadKey handles POST /api/search/typeahead/keys
func (h *SearchHandler) TypeaheadKey(w http.ResponseWriter, r *http.Request) {
	var req keyRequest
	if !httpx.DecodeJSON(w, r, &req) {
		return
	}

	switch req.Key {
	case search.KeyArrowDown, search.KeyArrowUp, search.KeyEnter, search.KeyEscape:
	default:
		httpx.RespondError(w, http.StatusBadRequest, "Unsupported key")
		return
	}

	httpx.RespondOK(w, http.StatusOK, "", h.bar(r).Key(r.Context(), req.Key))
}

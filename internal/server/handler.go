package server

import (
	"encoding/json"
	"net/http"

	"github.com/Cyclone1070/spyglass-pinned/internal/pinned"
	"github.com/Cyclone1070/spyglass-pinned/internal/upstream"
	"github.com/rs/zerolog/hlog"
	"gitlab.com/tozd/go/errors"
)

// Messages returned in the detail field of error bodies.
const (
	UsageMessage      = "Please use /get/username to get the pinned repositories of a user"
	NotFoundMessage   = "User not found"
	RateLimitMessage  = "Origin rate limit exceeded"
	FetchErrorMessage = "Error fetching user"
	ParseErrorMessage = "Error parsing user"
	TimeoutMessage    = "Origin request timed out"
)

// Detail is the body of every non-list response.
type Detail struct {
	Detail string `json:"detail"`
}

// Handler serves the pinned projects API.
type Handler struct {
	fetcher      upstream.Fetcher
	rootRedirect string
}

// NewHandler returns a handler backed by fetcher. When rootRedirect is set,
// GET / redirects there instead of answering with usage help.
func NewHandler(fetcher upstream.Fetcher, rootRedirect string) *Handler {
	return &Handler{fetcher: fetcher, rootRedirect: rootRedirect}
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.handleRoot)
	mux.HandleFunc("GET /get/{username}", h.handleGetPinned)
	mux.HandleFunc("/", h.handleFallback)
}

func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	if h.rootRedirect != "" {
		http.Redirect(w, r, h.rootRedirect, http.StatusFound)
		return
	}
	writeJSON(w, r, http.StatusOK, Detail{UsageMessage})
}

func (h *Handler) handleGetPinned(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	logger := hlog.FromRequest(r).With().Str("username", username).Logger()
	ctx := logger.WithContext(r.Context())

	html, err := h.fetcher.Fetch(ctx, username)
	if err != nil {
		status, message := fetchFailure(err)
		logger.Warn().Err(err).Int("status", status).Msg("fetching profile")
		writeJSON(w, r, status, Detail{message})
		return
	}

	projects, err := pinned.ExtractHTML(html)
	if err != nil {
		logger.Error().Err(err).Msg("parsing profile")
		writeJSON(w, r, http.StatusInternalServerError, Detail{ParseErrorMessage})
		return
	}

	logger.Debug().Int("projects", len(projects)).Msg("extracted pinned projects")
	writeJSON(w, r, http.StatusOK, projects)
}

func (h *Handler) handleFallback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		writeJSON(w, r, http.StatusMethodNotAllowed, Detail{http.StatusText(http.StatusMethodNotAllowed)})
		return
	}
	writeJSON(w, r, http.StatusNotFound, Detail{http.StatusText(http.StatusNotFound)})
}

// fetchFailure maps a fetch error to the status and message shown to the
// caller. Upstream status codes and error text are never echoed. A username
// that cannot name a profile is reported like one the upstream does not know.
func fetchFailure(err error) (int, string) {
	switch {
	case errors.Is(err, upstream.ErrNotFound), errors.Is(err, upstream.ErrInvalidUsername):
		return http.StatusNotFound, NotFoundMessage
	case errors.Is(err, upstream.ErrRateLimited):
		return http.StatusTooManyRequests, RateLimitMessage
	case errors.Is(err, upstream.ErrTimeout):
		return http.StatusGatewayTimeout, TimeoutMessage
	default:
		return http.StatusInternalServerError, FetchErrorMessage
	}
}

// writeJSON encodes body, indented when the request carries ?pretty.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	if r.URL.Query().Has("pretty") {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(body); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("writing response")
	}
}

package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/devicedetector/pkg/logger"
	"github.com/dmitrymomot/devicedetector/pkg/useragent"
)

// Error codes of the classify endpoint.
const (
	CodeEmptyUserAgent   = "empty_user_agent"
	CodeUserAgentTooLong = "user_agent_too_long"
	CodeParsingFailed    = "classification_failed"
)

// ParserSource returns the parser for a request. *rulewatch.Holder of a
// useragent.Parser satisfies it.
type ParserSource interface {
	Load() *useragent.Parser
}

type staticParser struct{ p *useragent.Parser }

func (s staticParser) Load() *useragent.Parser { return s.p }

// Static serves every request with p.
func Static(p *useragent.Parser) ParserSource { return staticParser{p: p} }

// RouterOptions configures Router. Parsers is required; the rest is optional.
type RouterOptions struct {
	Parsers ParserSource
	// Metrics is mounted at /metrics.
	Metrics http.Handler
	// Checks are run by /readyz.
	Checks []func(context.Context) error
	Logger *slog.Logger
}

// ClassifyResponse is the payload of GET /v1/classify.
type ClassifyResponse struct {
	UserAgent  string            `json:"user_agent"`
	Identifier string            `json:"identifier"`
	Client     *useragent.Client `json:"client"`
	Device     *useragent.Device `json:"device"`
}

// Router returns the HTTP API:
//
//	GET /v1/classify?ua=...   classify ua, or the request's User-Agent header
//	GET /healthz              liveness
//	GET /readyz               readiness, runs the checks
//	GET /metrics              metrics, when configured
func Router(opts RouterOptions) chi.Router {
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}
	h := &handlers{parsers: opts.Parsers, checks: opts.Checks, log: log.With(logger.Component("api"))}

	r := chi.NewRouter()
	r.Use(RequestID, middleware.Recoverer)

	r.Get("/healthz", h.liveness)
	r.Get("/readyz", h.readiness)
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}
	r.Route("/v1", func(v1 chi.Router) {
		v1.Get("/classify", h.classify)
	})
	return r
}

type handlers struct {
	parsers ParserSource
	checks  []func(context.Context) error
	log     *slog.Logger
}

func (h *handlers) classify(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("ua")
	if raw == "" {
		raw = r.UserAgent()
	}

	ua, err := h.parsers.Load().Parse(raw)
	switch {
	case errors.Is(err, useragent.ErrEmptyUserAgent):
		writeError(w, http.StatusBadRequest, CodeEmptyUserAgent, err.Error())
		return
	case errors.Is(err, useragent.ErrUserAgentTooLong):
		writeError(w, http.StatusBadRequest, CodeUserAgentTooLong, err.Error())
		return
	case err != nil:
		h.log.ErrorContext(r.Context(), "classification failed", logger.UserAgent(raw), logger.Error(err))
		writeError(w, http.StatusInternalServerError, CodeParsingFailed, "user agent could not be classified")
		return
	}

	writeJSON(w, http.StatusOK, Response{Data: ClassifyResponse{
		UserAgent:  ua.Raw,
		Identifier: ua.GetShortIdentifier(),
		Client:     ua.Client,
		Device:     ua.Device,
	}})
}

func (h *handlers) liveness(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ALIVE"))
}

func (h *handlers) readiness(w http.ResponseWriter, r *http.Request) {
	for _, check := range h.checks {
		if err := check(r.Context()); err != nil {
			h.log.ErrorContext(r.Context(), "readiness check failed", logger.Error(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("NOT_READY"))
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("READY"))
}

package useragent

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/devicedetector/pkg/logger"
)

// Middleware parses the User-Agent header of each request and stores the
// result in the request context. Requests are always passed on; an empty or
// over-long header leaves the context without a user agent, and a broken
// rule-set is logged.
func Middleware(p *Parser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ua, err := p.Parse(r.UserAgent())
			switch {
			case err == nil:
				r = r.WithContext(WithContext(r.Context(), ua))
			case errors.Is(err, ErrParsingFailed):
				p.log.ErrorContext(r.Context(), "user agent parsing failed",
					logger.UserAgent(r.UserAgent()),
					logger.Error(err),
				)
			}
			next.ServeHTTP(w, r)
		})
	}
}

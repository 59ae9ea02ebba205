// Package middleware carries the transport-level request plumbing: caller
// identity extraction, request ids, and the request clock.
package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	id "penledger/pkg/domain"
	dErrors "penledger/pkg/domain-errors"
	"penledger/pkg/platform/httputil"
	"penledger/pkg/requestcontext"
)

// CallerHeader is set by the external transport layer after it has
// authenticated the request. The core trusts it as-is.
const CallerHeader = "X-Caller-ID"

// RequireCaller extracts the caller id from the request header and injects
// it into the context. Requests without a parsable caller are rejected
// before any handler runs; every command and caller-sensitive query depends
// on this identity.
func RequireCaller(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(CallerHeader)
			caller, err := id.ParseAccountID(raw)
			if err != nil {
				log.WarnContext(r.Context(), "rejecting request without valid caller",
					"path", r.URL.Path)
				httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "missing or invalid "+CallerHeader+" header"))
				return
			}
			ctx := requestcontext.WithCallerID(r.Context(), caller)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestTime pins a single "now" for the whole request so audit events and
// record timestamps written during one operation agree.
func RequestTime(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestID assigns a correlation id to every request.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := r.Header.Get("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", rid)
		ctx := requestcontext.WithRequestID(r.Context(), rid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

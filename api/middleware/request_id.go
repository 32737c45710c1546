package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/storefront-labs/storefront-backend/pkg/logger"
)

const (
	requestIDHeader = "X-Request-Id"
	// Inbound IDs longer than this are replaced rather than propagated;
	// they end up in every log line for the request.
	maxInboundRequestID = 64
)

// RequestID tags every request with an identifier, echoes it on the
// response, and seeds the logger context so the ID appears on all log
// lines for the request. A caller-supplied X-Request-Id is kept when it
// looks sane, letting the storefront frontend correlate its own traces.
func RequestID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			id := inboundRequestID(r)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(requestIDHeader, id)

			ctx := r.Context()
			if logg != nil {
				ctx = logg.WithRequestID(ctx, id)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(fn)
	}
}

func inboundRequestID(r *http.Request) string {
	id := strings.TrimSpace(r.Header.Get(requestIDHeader))
	if id == "" || len(id) > maxInboundRequestID {
		return ""
	}
	for _, c := range id {
		if c <= 0x20 || c > 0x7e {
			return ""
		}
	}
	return id
}

package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/mirzahilmi/interaktifkredi/internal/common/config"
	"github.com/mirzahilmi/interaktifkredi/internal/common/constant"
	"github.com/mirzahilmi/interaktifkredi/internal/session"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Middleware struct {
	api    huma.API
	config config.Config
}

func NewMiddleware(api huma.API, config config.Config) Middleware {
	return Middleware{api, config}
}

type requestIDKey struct{}

// RequestID returns the id assigned to the request by RequestLogger.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// RequestLogger tags every request with a ULID, echoes it in the response
// header and writes one access log line when the request is done. The tagged
// logger is reachable with zerolog.Ctx.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := r.Header.Get(constant.HEADER_REQUEST_ID)
		if _, err := ulid.ParseStrict(id); err != nil {
			id = ulid.Make().String()
		}
		w.Header().Set(constant.HEADER_REQUEST_ID, id)

		logger := log.With().Str("request_id", id).Logger()
		ctx := logger.WithContext(context.WithValue(r.Context(), requestIDKey{}, id))

		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		defer func() {
			status := ww.Status()
			if status == 0 {
				// nothing written, net/http answers 200
				status = http.StatusOK
			}
			var event *zerolog.Event
			switch {
			case status >= http.StatusInternalServerError:
				event = logger.Error()
			case status >= http.StatusBadRequest:
				event = logger.Warn()
			default:
				event = logger.Info()
			}
			event.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Msg("request handled")
		}()

		next.ServeHTTP(ww, r.WithContext(ctx))
	})
}

// NewSessionAuthorization guards a JSON operation behind the customer
// session cookie.
func (m Middleware) NewSessionAuthorization(ctx context.Context) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if _, ok := session.FromContext(ctx.Context()); !ok {
			huma.WriteErr(m.api, ctx, http.StatusUnauthorized, constant.MSG_UNAUTHORIZED)
			return
		}
		next(ctx)
	}
}

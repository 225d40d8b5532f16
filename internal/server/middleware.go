package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/rs/cors"
	"github.com/unrolled/secure"
)

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain applies middlewares so the first one is the outermost.
func Chain(handler http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return handler
}

// SecureHeaders sets the security headers of every response. HSTS is sent
// over plain HTTP too, since TLS usually ends at a proxy in front of the service.
func SecureHeaders(hstsMaxAge time.Duration) Middleware {
	secureMiddleware := secure.New(secure.Options{
		STSSeconds:              int64(hstsMaxAge.Seconds()),
		STSIncludeSubdomains:    true,
		ForceSTSHeader:          hstsMaxAge > 0,
		CustomFrameOptionsValue: "SAMEORIGIN",
		ContentTypeNosniff:      true,
		CustomBrowserXssValue:   "0",
		ReferrerPolicy:          "no-referrer",
	})
	return func(next http.Handler) http.Handler {
		return secureMiddleware.Handler(isolationHeaders(next))
	}
}

// isolationHeaders adds the cross-origin isolation and legacy download headers.
func isolationHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := w.Header()
		header.Set("Cross-Origin-Resource-Policy", "same-origin")
		header.Set("Cross-Origin-Opener-Policy", "same-origin")
		header.Set("Origin-Agent-Cluster", "?1")
		header.Set("X-DNS-Prefetch-Control", "off")
		header.Set("X-Download-Options", "noopen")
		header.Set("X-Permitted-Cross-Domain-Policies", "none")
		next.ServeHTTP(w, r)
	})
}

// CORS allows cross-origin reads from origin with the given methods and
// answers preflight requests itself with 204.
func CORS(origin string, methods []string) Middleware {
	return cors.New(cors.Options{
		AllowedOrigins: []string{origin},
		AllowedMethods: methods,
	}).Handler
}

// CacheControl marks successful GET responses cacheable for maxAge so an edge
// cache in front of the service can absorb repeat lookups.
func CacheControl(maxAge time.Duration) Middleware {
	directive := "max-age=" + strconv.Itoa(int(maxAge.Seconds()))
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(&cacheWriter{ResponseWriter: w, directive: directive}, r)
		})
	}
}

type cacheWriter struct {
	http.ResponseWriter
	directive   string
	wroteHeader bool
}

func (w *cacheWriter) WriteHeader(status int) {
	if !w.wroteHeader {
		w.wroteHeader = true
		if status >= 200 && status < 300 {
			w.Header().Set("Cache-Control", w.directive)
		}
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *cacheWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *cacheWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

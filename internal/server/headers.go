package server

import (
	"net/http"
	"strings"
)

// SecurityHeadersMiddleware sets browser hardening headers. API responses are
// additionally marked uncacheable and denied any active content.
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set(HeaderContentTypeOptions, HeaderValueNoSniff)
			h.Set(HeaderFrameOptions, HeaderValueSameOrigin)
			h.Set(HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin)

			if strings.HasPrefix(r.URL.Path, APIPrefix) {
				h.Set(HeaderCacheControl, HeaderValueNoStore)
				h.Set(HeaderContentSecurity, HeaderValueAPIContentSecurity)
			}

			next.ServeHTTP(w, r)
		})
	}
}

package api

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/openstripedashboard/report-backend/api/apicommon"
	"github.com/openstripedashboard/report-backend/errors"
	"go.vocdoni.io/dvote/log"
)

// legacyHostRedirect is a middleware that answers requests addressed to the
// legacy hostname (with or without www.) with a permanent redirect to the
// canonical URL, bypassing authentication and all other logic.
func (*API) legacyHostRedirect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host := r.Host
		if h, _, err := net.SplitHostPort(host); err == nil {
			host = h
		}
		if host == legacyHostname || host == "www."+legacyHostname {
			log.Debugw("redirecting legacy hostname", "host", r.Host, "location", canonicalURL)
			w.Header().Set("Location", canonicalURL)
			w.WriteHeader(http.StatusMovedPermanently)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// keyAuthenticator is a middleware that requires an Authorization header of
// the form "Bearer sk_...". The token is only checked for shape, it is not
// verified against the Stripe API; a malformed but well-shaped key fails on
// the first upstream call instead. On success the key is added to the request
// context and the request is passed to the next handler.
func (*API) keyAuthenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			errors.ErrUnauthorized.Write(w)
			return
		}
		if !strings.HasPrefix(token, "sk_") {
			errors.ErrInvalidKeyFormat.Write(w)
			return
		}
		// the key is request-scoped only, it is never stored
		ctx := context.WithValue(r.Context(), apicommon.APIKeyContextKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

package controller

import (
	"net/http"

	"github.com/alemiherbert/pesa-pay/pkg/utils"
)

// APIKeyAuth guards the payments routes with a shared static secret.
// A mismatch is reported as 400 with the same detail the rest of the
// API uses, not 401.
func APIKeyAuth(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if utils.GetHeader(r.Header, "X-API-Key") != apiKey {
				utils.RespondWithDetail(w, http.StatusBadRequest, "Invalid API key")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

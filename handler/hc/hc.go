package hc

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/pandodao/passkey-wallet/core"
)

// Handler reports the build version, uptime and whether a session is active.
func Handler(version string, accounts core.AccountService) http.Handler {
	t := time.Now()
	fn := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"version":   version,
			"uptime":    time.Since(t).String(),
			"logged_in": accounts.Session().LoggedIn,
		})
	}

	return http.HandlerFunc(fn)
}

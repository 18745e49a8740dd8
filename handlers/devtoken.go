package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/studydeck/studydeck-api/actions"
	"github.com/studydeck/studydeck-api/auth"
)

// POST /api/dev/token
//
// Mints an HS256 token for a subject. Only routed in local auth mode; an
// Auth0 deployment never exposes this.
func (api *API) DevToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Subject string `json:"subject"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Subject == "" {
		api.writeFailure(w, http.StatusBadRequest, "subject is required")
		return
	}

	token, err := auth.CreateToken([]byte(api.Cfg.JWTSecretKey), req.Subject, 24*time.Hour)
	if err != nil {
		api.Log.Error().Err(err).Msg("failed to sign dev token")
		api.writeFailure(w, http.StatusInternalServerError, actions.MsgInternal)
		return
	}

	api.writeJSON(w, http.StatusOK, actions.Result{Success: true, Data: map[string]string{"token": token}})
}

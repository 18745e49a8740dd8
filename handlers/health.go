package handlers

import "net/http"

// GET /healthz
func (api *API) Health(w http.ResponseWriter, r *http.Request) {
	if err := api.Store.Ping(r.Context()); err != nil {
		api.Log.Error().Err(err).Msg("health check failed")
		api.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	api.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

package http

import (
	"net/http"

	"github.com/MKhiriev/go-health-keeper/internal/app"
)

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	serverVersion := h.services.AppInfoService.GetAppVersion(r.Context())
	if serverVersion == "" {
		http.Error(w, app.MsgVersionIsNotSpecified, http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(serverVersion))
}

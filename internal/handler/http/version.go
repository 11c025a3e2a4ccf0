package http

import "net/http"

type versionResponse struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Commit  string `json:"commit"`
}

func (h *Handler) version(w http.ResponseWriter, r *http.Request) {
	info := h.deps.BuildInfo
	writeJSON(w, r, http.StatusOK, versionResponse{
		Version: info.BuildVersion(),
		Date:    info.BuildDate(),
		Commit:  info.BuildCommit(),
	})
}

package http_server

import (
	"net/http"
	"strings"

	gojson "github.com/goccy/go-json"
)

const (
	contentJSON = "application/json; charset=utf-8"
	contentHTML = "text/html; charset=utf-8"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := gojson.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", contentJSON)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal error"}`))
		return
	}
	w.Header().Set("Content-Type", contentJSON)
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", contentHTML)
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// wantsHTML reports whether the client prefers an HTML page over JSON.
func wantsHTML(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	if accept == "" || strings.HasPrefix(r.URL.Path, "/api/") {
		return false
	}
	htmlAt := strings.Index(accept, "text/html")
	jsonAt := strings.Index(accept, "application/json")
	return htmlAt >= 0 && (jsonAt < 0 || htmlAt < jsonAt)
}

package live

import (
	_ "embed"
	"net/http"
)

//go:embed client.js
var clientJS []byte

// ClientScript serves the thin client script.
func ClientScript() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		w.Write(clientJS)
	})
}

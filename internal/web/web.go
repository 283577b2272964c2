// Package web embeds the static browser client and exposes it as an
// http.Handler. The client talks to the /tasks endpoints with
// form-urlencoded requests and treats any response carrying an
// "error" key as failure, regardless of HTTP status.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var content embed.FS

// Handler serves the embedded client with index.html at the root.
func Handler() http.Handler {
	sub, err := fs.Sub(content, "static")
	if err != nil {
		// ALLOW-PANIC: embed layout is fixed at compile time
		panic("web: embedded static directory missing: " + err.Error())
	}
	return http.FileServer(http.FS(sub))
}

// Package httpserver builds the API server with timeouts suited to the
// entry workflow: requests are short JSON exchanges, so slow-header and idle
// connections are cut early rather than held open.
package httpserver

import (
	"net/http"
	"time"
)

// New wraps the router in a server ready for ListenAndServe. Shutdown timing
// is the caller's concern; this only fixes per-connection limits.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// Package httpserver constructs the gateway's HTTP server.
package httpserver

import (
	"net/http"
	"time"
)

// New builds the provisioning API server. Write timeouts are left to the
// registry client, whose SOAP exchanges bound the request duration.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

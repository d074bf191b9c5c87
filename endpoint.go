package cbir

import "fmt"

// Default server address used when no endpoint is configured.
const (
	DefaultHost = "localhost"
	DefaultPort = 4212
)

// Endpoint is the base network address of a CBIR server. It is a value
// type composed once at client construction and never mutated afterwards.
type Endpoint struct {
	scheme string
	host   string
	port   int
}

// NewEndpoint builds an endpoint from host, port and a TLS flag.
func NewEndpoint(host string, port int, useTLS bool) Endpoint {
	scheme := "http"
	if useTLS {
		scheme = "https"
	}
	return Endpoint{scheme: scheme, host: host, port: port}
}

// DefaultEndpoint returns the conventional local server address,
// http://localhost:4212.
func DefaultEndpoint() Endpoint {
	return NewEndpoint(DefaultHost, DefaultPort, false)
}

// BaseURL returns the endpoint as an absolute URL without a trailing slash.
func (e Endpoint) BaseURL() string {
	return fmt.Sprintf("%s://%s:%d", e.scheme, e.host, e.port)
}

func (e Endpoint) String() string {
	return e.BaseURL()
}

// Package clientip resolves the caller's IP address for rate limiting and
// logging. Proxy headers are only honoured when explicitly trusted.
package clientip

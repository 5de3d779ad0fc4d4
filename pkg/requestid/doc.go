// Package requestid assigns every HTTP request an identifier, exposes it on
// the X-Request-ID response header and injects it into log records.
package requestid

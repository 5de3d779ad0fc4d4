// Package environment names the deployment environments (development,
// staging, production) and carries the active one through request contexts.
//
// The API uses it to decide development-only behaviour such as echoing the
// mobile OTP in responses, and the logger uses it to pick its output format.
package environment

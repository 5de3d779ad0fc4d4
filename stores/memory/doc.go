// Package memstore implements the user, OTP and refresh token storages in
// process memory. Semantics match the MongoDB stores, including unique
// identifier checks and expiry filtering, so it backs tests and single-node
// development runs.
package memstore

// Package otp issues and verifies numeric one-time passwords delivered by
// email or SMS.
//
// One challenge exists per identifier and channel; issuing a new code
// replaces the previous one. Each Verify call spends an attempt before the
// code is compared, using an atomic storage increment, so concurrent guesses
// cannot exceed the limit. A matching code is consumed on success.
package otp

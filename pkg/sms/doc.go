// Package sms defines the outbound text message abstraction used for mobile
// one-time passwords. LogSender is the development implementation.
package sms

// Package rate provides fixed-window Redis counters that throttle login and
// refresh attempts.
//
// Counters are best-effort protection against credential stuffing and token
// grinding; they are not an availability mechanism. Missing keys read as zero
// so the limiter never reveals whether an identifier exists.
package rate

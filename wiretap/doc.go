// Package wiretap captures the serialized bytes of messages crossing
// the binary transport and renders them for audit logging.
//
// Capture is strictly a side channel. A Tapper never returns an error
// and never panics: serialization failures, sink failures and sink
// panics are logged as warnings and dropped, so the intercepted call
// proceeds exactly as it would without the tap.
//
// The hex rendering produced by Hex is a contract for log-scraping
// tools: two uppercase hex digits per byte, separated by one space,
// with no leading or trailing whitespace.
package wiretap

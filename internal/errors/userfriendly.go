package errors

import (
	"fmt"
	"strings"
)

// UserFriendlyError provides user-friendly error messages with context and hints
type UserFriendlyError struct {
	Message string
	Reason  string
	Hint    string
	Try     string
	Err     error
}

func (e UserFriendlyError) Error() string {
	var buf strings.Builder
	buf.WriteString(e.Message)
	if e.Reason != "" {
		buf.WriteString("\n  Reason: " + e.Reason)
	}
	if e.Hint != "" {
		buf.WriteString("\n  Hint: " + e.Hint)
	}
	if e.Try != "" {
		buf.WriteString("\n  Try: " + e.Try)
	}
	if e.Err != nil {
		buf.WriteString("\n  Details: " + e.Err.Error())
	}
	return buf.String()
}

func (e UserFriendlyError) Unwrap() error {
	return e.Err
}

// WrapCaptureError wraps capture file errors with user-friendly context
func WrapCaptureError(err error, path string) error {
	if err == nil {
		return nil
	}

	return UserFriendlyError{
		Message: fmt.Sprintf("Failed to read capture file %s", path),
		Reason:  extractCaptureReason(err),
		Hint:    "The input must be a pcap/pcapng file containing NetFlow v5/v9 or IPFIX export packets",
		Try:     fmt.Sprintf("flowreplay replay -i %s -v", path),
		Err:     err,
	}
}

// WrapSessionError wraps collector connection errors with user-friendly context
func WrapSessionError(err error, addr string, port int, proto string) error {
	if err == nil {
		return nil
	}

	return UserFriendlyError{
		Message: fmt.Sprintf("Failed to open a Transport Session to %s:%d over %s", addr, port, proto),
		Reason:  extractNetworkReason(err),
		Hint:    "The collector may not be listening, or the address family filter may exclude every resolved address",
		Try:     fmt.Sprintf("Check that the collector accepts %s on %s:%d", proto, addr, port),
		Err:     err,
	}
}

// WrapConfigError wraps configuration errors with user-friendly context
func WrapConfigError(err error, configPath string) error {
	if err == nil {
		return nil
	}

	return UserFriendlyError{
		Message: fmt.Sprintf("Configuration error in %s", configPath),
		Reason:  err.Error(),
		Hint:    "The config file is YAML with destination and replay sections",
		Try:     "Remove the --config flag to run with command-line defaults",
		Err:     err,
	}
}

func extractNetworkReason(err error) string {
	errStr := err.Error()

	// Common network error patterns
	if strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded") {
		return "Connection timeout - collector may be offline or unreachable"
	}
	if strings.Contains(errStr, "connection refused") {
		return "Connection refused - collector may not be listening on this port"
	}
	if strings.Contains(errStr, "no route to host") {
		return "No route to host - network routing issue or collector unreachable"
	}
	if strings.Contains(errStr, "connection reset") {
		return "Connection reset - collector closed the connection unexpectedly"
	}
	if strings.Contains(errStr, "no such host") {
		return "Hostname did not resolve to any address"
	}

	return "Network communication failed"
}

func extractCaptureReason(err error) string {
	errStr := err.Error()

	if strings.Contains(errStr, "No such file") || strings.Contains(errStr, "no such file") {
		return "The capture file does not exist"
	}
	if strings.Contains(errStr, "permission denied") {
		return "The capture file is not readable"
	}
	if strings.Contains(errStr, "bad dump file format") || strings.Contains(errStr, "unknown file format") {
		return "The file is not a valid pcap/pcapng capture"
	}

	return "Capture file could not be read"
}

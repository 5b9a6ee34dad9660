package report

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dm/chm-go/internal/client"
)

// Classify converts a fetch error to a short human-readable summary.
// Returns "" for nil errors.
func Classify(err error) string {
	if err == nil {
		return ""
	}

	var httpErr *client.HTTPError
	if errors.As(err, &httpErr) {
		switch httpErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Sprintf("Authentication failed (%d)", httpErr.StatusCode)
		case http.StatusNotFound:
			return "Cluster not found (404)"
		default:
			return fmt.Sprintf("HTTP %d", httpErr.StatusCode)
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "connection refused"):
		return "Connection refused"
	case strings.Contains(msg, "401") || strings.Contains(msg, "unauthorized"):
		return "Authentication failed (401)"
	case strings.Contains(msg, "403") || strings.Contains(msg, "forbidden"):
		return "Authentication failed (403)"
	case strings.Contains(msg, "deadline exceeded") || strings.Contains(msg, "timeout"):
		return "Timeout"
	case isTLSError(err):
		return "TLS error"
	}

	raw := err.Error()
	if len(raw) > 40 {
		return raw[:40] + "..."
	}
	return raw
}

// isTLSError reports whether err looks like a certificate or handshake failure.
func isTLSError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "certificate") ||
		strings.Contains(msg, "tls") ||
		strings.Contains(msg, "x509")
}

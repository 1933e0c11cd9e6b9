package utils

import (
	"log"
	"strings"
)

// LogEvent prints one standardized service log line. Module names the flow
// (booking, ticket, profile, expiry), action the step within it. Background
// work has no request id and logs "-". Keep messages to identifiers; never
// QR payloads or full card references.
func LogEvent(requestID, module, action, message string) {
	req := strings.TrimSpace(requestID)
	if req == "" {
		req = "-"
	}
	log.Printf("[%s] %s request_id=%s %s", strings.ToUpper(module), action, req, message)
}

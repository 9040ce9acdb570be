package ids

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateString returns a new opaque string id for server-assigned
// identifiers (messages, scans, streams).
func GenerateString() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

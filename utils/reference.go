package utils

import (
	"os"
	"strings"

	"github.com/google/uuid"
)

// EnvOrDefault returns ENV value or fallback default.
func EnvOrDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// NewReferenceCode builds a short human-quotable booking reference,
// e.g. "LDG-9F3A21C4".
func NewReferenceCode() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "LDG-" + id[:8]
}

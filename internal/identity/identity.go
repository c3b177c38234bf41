// Package identity normalizes candidate contact details for matching and
// storage and generates candidate ids.
package identity

import (
	"strings"

	"github.com/google/uuid"
)

// NormalizeEmail lowercases and trims an email address. The normalized form
// is the de-duplication key across the funnel.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizePhone strips everything but digits.
func NormalizePhone(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NewCandidateID returns a short, human-typeable uppercase id: the first
// segment of a random UUID, uppercased. Collision-resistant enough for a
// funnel of a few thousand records, not cryptographically unique.
func NewCandidateID() string {
	return strings.ToUpper(strings.SplitN(uuid.NewString(), "-", 2)[0])
}

// Package recording assigns an identity to a single live-recording run, for
// log correlation and output-file naming. It plays no part in the EDF byte
// format itself, which is fixed by the edf package.
package recording

import (
	"time"

	"github.com/google/uuid"
)

// Session identifies one live recording run.
type Session struct {
	ID        uuid.UUID
	StartedAt time.Time
}

// New allocates a new Session starting now.
func New() Session {
	return Session{
		ID:        uuid.New(),
		StartedAt: time.Now(),
	}
}

// String returns the session id as a short, log-friendly string.
func (s Session) String() string {
	return s.ID.String()
}

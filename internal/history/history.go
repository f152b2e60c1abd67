// Package history records every render attempt, successful or not, in the
// SQLite database.
package history

import "time"

// Outcome is the terminal state a run reached.
type Outcome string

const (
	OutcomeRendered Outcome = "rendered"
	OutcomeFailed   Outcome = "failed"
)

// Entry is a single recorded render.
type Entry struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Dataset    string    `json:"dataset"`
	URL        string    `json:"url"`
	Outcome    Outcome   `json:"outcome"`
	Format     string    `json:"format"`
	Leaves     int       `json:"leaves"`
	Categories []string  `json:"categories"`
	DurationMS int64     `json:"duration_ms"`
	Error      string    `json:"error,omitempty"`
}

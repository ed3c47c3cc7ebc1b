// ABOUTME: Persistence slot abstraction and the versioned on-disk envelope
// ABOUTME: The slot holds exactly one serialized copy of the aggregate

package store

import "errors"

// FormatVersion tags the envelope so incompatible persisted data is discarded
// at startup instead of being loaded.
const FormatVersion = "1.0.0"

// ErrSlotEmpty is returned by Slot.Load when nothing has been persisted yet.
var ErrSlotEmpty = errors.New("persistence slot is empty")

// Slot is a single durable key-value location holding the serialized
// aggregate. Save overwrites the previous contents wholesale.
type Slot interface {
	Load() ([]byte, error)
	Save(data []byte) error
}

// envelope wraps the aggregate with a format-version tag and write timestamp.
type envelope struct {
	Version     string   `json:"version"`
	Data        Snapshot `json:"data"`
	LastUpdated string   `json:"lastUpdated"`
}

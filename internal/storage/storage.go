// Package storage holds uploaded files in process memory.
// Nothing here survives a restart; that is intentional for a relay whose
// objects live for a few hours at most.
package storage

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no live object carries the requested code.
var ErrNotFound = errors.New("object not found")

// ErrDuplicateCode is returned by Put when the short code is already live.
// Callers regenerate the code and try again.
var ErrDuplicateCode = errors.New("short code already in use")

// StoredObject is one uploaded file. All fields are set at creation and
// never changed afterwards; Payload must not be modified by callers.
type StoredObject struct {
	ID           uuid.UUID
	ShortCode    string
	Payload      []byte
	ContentType  string
	OriginalName string
	Size         int64
	CreatedAt    time.Time
	ExpiresAt    time.Time
	Previewable  bool
}

// ExpiredAt reports whether the object is logically dead at now.
func (o *StoredObject) ExpiredAt(now time.Time) bool {
	return now.After(o.ExpiresAt)
}

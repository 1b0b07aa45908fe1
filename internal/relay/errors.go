package relay

import "errors"

// ErrUnsupportedType is returned when the content type is not on the allow-list.
var ErrUnsupportedType = errors.New("unsupported content type")

// ErrPayloadTooLarge is returned when an upload exceeds MaxUploadBytes.
var ErrPayloadTooLarge = errors.New("payload too large")

// ErrNotFound is returned when no live object carries the code.
var ErrNotFound = errors.New("file not found")

// ErrExpired is returned when the object's deadline has passed.
var ErrExpired = errors.New("file expired")

// ErrNotPreviewable is returned by Preview for types that cannot render inline.
var ErrNotPreviewable = errors.New("file not previewable")

// errCodeSpaceExhausted means every generated code collided. It is not
// exported because callers should treat it like any other internal failure.
var errCodeSpaceExhausted = errors.New("no free short code after retries")

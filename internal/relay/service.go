// Package relay accepts uploads, hands out short share codes, and serves the
// files back until they expire.
package relay

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/filerelay/service/internal/shortcode"
	"github.com/filerelay/service/internal/storage"
)

const (
	// DefaultTTL is how long an uploaded file stays available.
	DefaultTTL = 3 * time.Hour

	// MaxUploadBytes caps the size of a single upload.
	MaxUploadBytes = 10 << 20

	// maxCodeAttempts bounds regeneration after a code collision.
	maxCodeAttempts = 8

	defaultName = "file"
)

// Content dispositions returned with file bodies.
const (
	DispositionAttachment = "attachment"
	DispositionInline     = "inline"
)

// Scheduler registers eager evictions.
type Scheduler interface {
	Schedule(id uuid.UUID, at time.Time)
	Pending() int
}

// UploadInput is a fully buffered upload.
type UploadInput struct {
	Payload      []byte
	ContentType  string
	OriginalName string
}

// ShareInfo describes a stored file to the uploader.
type ShareInfo struct {
	ShortCode    string
	DownloadPath string
	PreviewPath  string // empty when the file is not previewable
	OriginalName string
	ContentType  string
	Size         int64
	Previewable  bool
	ExpiresAt    time.Time
}

// Content is a file body ready to be written to a client. Payload is a
// copy; changing it does not affect the stored object.
type Content struct {
	Payload      []byte
	ContentType  string
	OriginalName string
	Disposition  string
}

// Stats summarises the relay's current state.
type Stats struct {
	Objects   int
	Scheduled int
}

// Service ties the store, the code generator and the expiry scheduler together.
type Service struct {
	store     *storage.Store
	codes     shortcode.Generator
	scheduler Scheduler
	now       func() time.Time
	ttl       time.Duration
	log       zerolog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithTTL overrides DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Service) { s.log = log }
}

// NewService creates a new relay Service.
func NewService(store *storage.Store, codes shortcode.Generator, scheduler Scheduler, opts ...Option) *Service {
	s := &Service{
		store:     store,
		codes:     codes,
		scheduler: scheduler,
		now:       time.Now,
		ttl:       DefaultTTL,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Upload validates and stores a file, returning how to share it.
func (s *Service) Upload(ctx context.Context, in UploadInput) (*ShareInfo, error) {
	if !IsAllowedType(in.ContentType) {
		return nil, fmt.Errorf("upload %q: %w", in.ContentType, ErrUnsupportedType)
	}
	if len(in.Payload) > MaxUploadBytes {
		return nil, fmt.Errorf("upload of %s: %w", humanize.IBytes(uint64(len(in.Payload))), ErrPayloadTooLarge)
	}
	// A client that went away never gets an object committed.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := in.OriginalName
	if name == "" {
		name = defaultName
	}

	now := s.now()
	obj := &storage.StoredObject{
		ID:           uuid.New(),
		Payload:      bytes.Clone(in.Payload),
		ContentType:  in.ContentType,
		OriginalName: name,
		Size:         int64(len(in.Payload)),
		CreatedAt:    now,
		ExpiresAt:    now.Add(s.ttl),
		Previewable:  IsPreviewable(in.ContentType),
	}

	if err := s.commit(obj); err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}
	s.scheduler.Schedule(obj.ID, obj.ExpiresAt)

	s.log.Info().
		Str("code", obj.ShortCode).
		Str("type", obj.ContentType).
		Str("size", humanize.IBytes(uint64(obj.Size))).
		Time("expires_at", obj.ExpiresAt).
		Msg("file stored")

	return shareInfo(obj), nil
}

// commit assigns a free short code to obj and stores it.
func (s *Service) commit(obj *storage.StoredObject) error {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := s.codes.Generate()
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		obj.ShortCode = code

		err = s.store.Put(obj)
		if err == nil {
			return nil
		}
		if !errors.Is(err, storage.ErrDuplicateCode) {
			return err
		}
		s.log.Debug().Str("code", code).Int("attempt", attempt+1).Msg("short code collision")
	}
	return errCodeSpaceExhausted
}

// Download returns a file for saving as an attachment.
func (s *Service) Download(ctx context.Context, code string) (*Content, error) {
	obj, err := s.resolve(code)
	if err != nil {
		return nil, err
	}
	return content(obj, DispositionAttachment), nil
}

// Preview returns a file for inline display.
func (s *Service) Preview(ctx context.Context, code string) (*Content, error) {
	obj, err := s.resolve(code)
	if err != nil {
		return nil, err
	}
	if !obj.Previewable {
		return nil, ErrNotPreviewable
	}
	return content(obj, DispositionInline), nil
}

// Info returns the metadata of a live file without its body.
func (s *Service) Info(ctx context.Context, code string) (*ShareInfo, error) {
	obj, err := s.resolve(code)
	if err != nil {
		return nil, err
	}
	return shareInfo(obj), nil
}

// Stats reports the number of live objects and pending deadlines.
func (s *Service) Stats() Stats {
	return Stats{
		Objects:   s.store.Len(),
		Scheduled: s.scheduler.Pending(),
	}
}

// IsNotFound returns true when the error indicates an unknown code.
func (s *Service) IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// resolve looks code up and evicts the object if it is past its deadline.
func (s *Service) resolve(code string) (*storage.StoredObject, error) {
	obj, err := s.store.GetByCode(code)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup %s: %w", code, err)
	}

	if obj.ExpiredAt(s.now()) {
		s.store.Remove(obj.ID)
		s.log.Debug().Str("code", code).Msg("expired on access")
		return nil, ErrExpired
	}
	return obj, nil
}

// DownloadPath returns the URL path that downloads code.
func DownloadPath(code string) string {
	return "/api/download/" + code
}

// PreviewPath returns the URL path that previews code.
func PreviewPath(code string) string {
	return "/api/preview/" + code
}

func shareInfo(obj *storage.StoredObject) *ShareInfo {
	info := &ShareInfo{
		ShortCode:    obj.ShortCode,
		DownloadPath: DownloadPath(obj.ShortCode),
		OriginalName: obj.OriginalName,
		ContentType:  obj.ContentType,
		Size:         obj.Size,
		Previewable:  obj.Previewable,
		ExpiresAt:    obj.ExpiresAt,
	}
	if obj.Previewable {
		info.PreviewPath = PreviewPath(obj.ShortCode)
	}
	return info
}

func content(obj *storage.StoredObject, disposition string) *Content {
	return &Content{
		Payload:      bytes.Clone(obj.Payload),
		ContentType:  obj.ContentType,
		OriginalName: obj.OriginalName,
		Disposition:  disposition,
	}
}

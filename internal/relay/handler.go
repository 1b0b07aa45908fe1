package relay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/filerelay/service/internal/response"
	"github.com/filerelay/service/internal/shortcode"
)

// multipartOverhead leaves room for boundaries and part headers on top of
// the payload cap, so an oversized file is reported by the service rather
// than cut off mid-header.
const multipartOverhead = 64 << 10

// Handler holds HTTP handlers for the relay endpoints.
type Handler struct {
	svc     *Service
	baseURL string
	log     zerolog.Logger
}

// NewHandler creates a new relay Handler. baseURL may be empty, in which
// case share links are relative paths.
func NewHandler(svc *Service, baseURL string, log zerolog.Logger) *Handler {
	return &Handler{svc: svc, baseURL: strings.TrimRight(baseURL, "/"), log: log}
}

// Routes mounts the relay endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/upload", h.Upload)
	r.Route("/api", func(r chi.Router) {
		r.Get("/download/{code}", h.Download)
		r.Get("/preview/{code}", h.Preview)
		r.Get("/files/{code}", h.Info)
	})
}

type shareResponse struct {
	Success     bool      `json:"success"      example:"true"`
	ShortCode   string    `json:"shortCode"    example:"K7Q2ZD"`
	DownloadURL string    `json:"downloadUrl"  example:"/api/download/K7Q2ZD"`
	PreviewURL  *string   `json:"previewUrl"   example:"/api/preview/K7Q2ZD" extensions:"x-nullable"`
	Filename    string    `json:"filename"     example:"holiday.png"`
	ContentType string    `json:"contentType"  example:"image/png"`
	Size        int64     `json:"size"         example:"48213"`
	Previewable bool      `json:"previewable"  example:"true"`
	ExpiresAt   time.Time `json:"expiresAt"    example:"2026-10-19T15:04:05Z"`
}

// Upload godoc
//
//	@Summary		Upload a file
//	@Description	Store a file for three hours and return its share code. Allowed types: common images, mp4/webm video, mpeg/wav audio, plain text and PDF. Maximum size 10 MiB.
//	@Tags			files
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file	formData	file	true	"File to share"
//	@Success		200		{object}	shareResponse
//	@Failure		400		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/upload [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes+multipartOverhead)

	mr, err := r.MultipartReader()
	if err != nil {
		response.BadRequest(w, "invalid_file")
		return
	}

	in, err := readFilePart(mr)
	if err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			response.BadRequest(w, "payload_too_large")
		case errors.Is(err, errNoFile):
			response.BadRequest(w, "no_file")
		default:
			response.BadRequest(w, "invalid_file")
		}
		return
	}

	info, err := h.svc.Upload(r.Context(), *in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.OK(w, h.shareResponse(info))
}

// Download godoc
//
//	@Summary		Download a file
//	@Description	Return the raw file as an attachment.
//	@Tags			files
//	@Produce		octet-stream
//	@Param			code	path		string	true	"Share code"
//	@Success		200		{file}		binary
//	@Failure		404		{object}	response.Envelope
//	@Failure		410		{object}	response.Envelope
//	@Router			/api/download/{code} [get]
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	h.serveContent(w, r, h.svc.Download)
}

// Preview godoc
//
//	@Summary		Preview a file
//	@Description	Return the raw file for inline display in the browser.
//	@Tags			files
//	@Produce		octet-stream
//	@Param			code	path		string	true	"Share code"
//	@Success		200		{file}		binary
//	@Failure		403		{object}	response.Envelope
//	@Failure		404		{object}	response.Envelope
//	@Failure		410		{object}	response.Envelope
//	@Router			/api/preview/{code} [get]
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	h.serveContent(w, r, h.svc.Preview)
}

// Info godoc
//
//	@Summary		File metadata
//	@Description	Return name, size, type and expiry of a shared file without its body.
//	@Tags			files
//	@Produce		json
//	@Param			code	path		string	true	"Share code"
//	@Success		200		{object}	shareResponse
//	@Failure		404		{object}	response.Envelope
//	@Failure		410		{object}	response.Envelope
//	@Router			/api/files/{code} [get]
func (h *Handler) Info(w http.ResponseWriter, r *http.Request) {
	code, ok := codeParam(r)
	if !ok {
		response.NotFound(w, "not_found")
		return
	}

	info, err := h.svc.Info(r.Context(), code)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.OK(w, h.shareResponse(info))
}

func (h *Handler) serveContent(w http.ResponseWriter, r *http.Request, fetch func(context.Context, string) (*Content, error)) {
	code, ok := codeParam(r)
	if !ok {
		response.NotFound(w, "not_found")
		return
	}

	c, err := fetch(r.Context(), code)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", c.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(c.Payload)))
	w.Header().Set("Content-Disposition", contentDisposition(c.Disposition, c.OriginalName))
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(c.Payload)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrUnsupportedType):
		response.BadRequest(w, "unsupported_type")
	case errors.Is(err, ErrPayloadTooLarge):
		response.BadRequest(w, "payload_too_large")
	case errors.Is(err, ErrNotFound):
		response.NotFound(w, "not_found")
	case errors.Is(err, ErrExpired):
		response.Gone(w, "expired")
	case errors.Is(err, ErrNotPreviewable):
		response.Forbidden(w, "not_previewable")
	default:
		h.log.Error().Err(err).
			Str("request_id", chiMiddleware.GetReqID(r.Context())).
			Str("path", r.URL.Path).
			Msg("request failed")
		response.InternalError(w)
	}
}

func (h *Handler) shareResponse(info *ShareInfo) shareResponse {
	resp := shareResponse{
		Success:     true,
		ShortCode:   info.ShortCode,
		DownloadURL: h.baseURL + info.DownloadPath,
		Filename:    info.OriginalName,
		ContentType: info.ContentType,
		Size:        info.Size,
		Previewable: info.Previewable,
		ExpiresAt:   info.ExpiresAt.UTC(),
	}
	if info.PreviewPath != "" {
		u := h.baseURL + info.PreviewPath
		resp.PreviewURL = &u
	}
	return resp
}

var errNoFile = errors.New("no file part")

// readFilePart buffers the first "file" part of the form. At most
// MaxUploadBytes+1 bytes are read so the service can reject oversized
// payloads without holding the rest in memory.
func readFilePart(mr *multipart.Reader) (*UploadInput, error) {
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			return nil, errNoFile
		}
		if err != nil {
			return nil, err
		}
		if part.FormName() != "file" || part.FileName() == "" {
			_ = part.Close()
			continue
		}

		payload, err := io.ReadAll(io.LimitReader(part, MaxUploadBytes+1))
		_ = part.Close()
		if err != nil {
			return nil, err
		}
		return &UploadInput{
			Payload:      payload,
			ContentType:  partContentType(part),
			OriginalName: filepath.Base(part.FileName()),
		}, nil
	}
}

// partContentType returns the declared media type without parameters,
// falling back to the file extension when the client sent nothing useful.
func partContentType(part *multipart.Part) string {
	ct := part.Header.Get("Content-Type")
	if ct == "" || ct == "application/octet-stream" {
		if byExt := mime.TypeByExtension(filepath.Ext(part.FileName())); byExt != "" {
			ct = byExt
		}
	}
	mediaType, _, _ := strings.Cut(ct, ";")
	return strings.TrimSpace(mediaType)
}

// codeParam reads the {code} URL parameter. Codes are accepted in any case
// since people type them by hand.
func codeParam(r *http.Request) (string, bool) {
	code := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "code")))
	return code, shortcode.IsValid(code)
}

var filenameReplacer = strings.NewReplacer(`"`, "'", `\`, "_", "\r", "", "\n", "")

func sanitizeFilename(name string) string {
	return filenameReplacer.Replace(name)
}

// contentDisposition always carries a quoted ASCII filename. Names with
// non-ASCII characters also get the RFC 2231 filename* form.
func contentDisposition(disposition, name string) string {
	name = sanitizeFilename(name)
	ascii := strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII || !unicode.IsPrint(r) {
			return '_'
		}
		return r
	}, name)
	v := fmt.Sprintf(`%s; filename="%s"`, disposition, ascii)
	if !strings.ContainsFunc(name, func(r rune) bool { return r > unicode.MaxASCII }) {
		return v
	}
	// FormatMediaType emits filename*=utf-8''... for non-ASCII values.
	if ext := mime.FormatMediaType(disposition, map[string]string{"filename": name}); ext != "" {
		return v + strings.TrimPrefix(ext, disposition)
	}
	return v
}

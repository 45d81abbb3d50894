package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-shelf-sync/internal/app"
	"github.com/MKhiriev/go-shelf-sync/internal/logger"
	"github.com/MKhiriev/go-shelf-sync/internal/utils"
	"github.com/MKhiriev/go-shelf-sync/models"
)

const (
	contentTypeGzip = "application/gzip"
	contentTypeJSON = "application/json"

	// multipart parts above this size are spooled to temporary files
	multipartMemory = 8 << 20
)

func (h *Handler) uploadBackup(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	owner, _ := utils.GetOwnerFromContext(r.Context())

	data, filename, err := h.readUpload(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err = checkContentDigest(r.Header.Get(contentDigestHeader), data); err != nil {
		log.Err(err).Str("func", "*Handler.uploadBackup").Str("name", filename).Msg("integrity check failed")
		h.writeError(w, r, err)
		return
	}

	info, err := h.services.BackupService.Upload(r.Context(), owner, filename, data)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, info, http.StatusOK)
}

// readUpload reads the multipart field "file" under the configured size
// limit and returns its content together with the client-supplied name.
func (h *Handler) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, string, error) {
	if h.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return nil, "", classifyUploadError(err)
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, "", classifyUploadError(err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", classifyUploadError(err)
	}

	return data, header.Filename, nil
}

func classifyUploadError(err error) error {
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		return fmt.Errorf("%w: limit %d bytes", ErrUploadTooLarge, maxErr.Limit)
	case errors.Is(err, http.ErrMissingFile):
		return ErrMissingFile
	}
	return fmt.Errorf("%w: %w", ErrMalformedMultipart, err)
}

// getLatestBackup answers with the metadata of latest.json. The ETag is
// content based; a matching If-None-Match yields 304 Not Modified.
func (h *Handler) getLatestBackup(w http.ResponseWriter, r *http.Request) {
	owner, _ := utils.GetOwnerFromContext(r.Context())

	meta, err := h.services.BackupService.Latest(r.Context(), owner)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("ETag", meta.ETag)
	if etagMatches(r.Header.Get("If-None-Match"), meta.ETag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	_, _ = utils.WriteJSON(w, meta, http.StatusOK)
}

func (h *Handler) listBackups(w http.ResponseWriter, r *http.Request) {
	owner, _ := utils.GetOwnerFromContext(r.Context())

	list, err := h.services.BackupService.List(r.Context(), owner)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if list == nil {
		list = []models.BackupInfo{}
	}

	_, _ = utils.WriteJSON(w, models.BackupList{Backups: list}, http.StatusOK)
}

// getBackup streams the stored bytes unchanged; .gz files keep their
// compression and are decompressed by the client.
func (h *Handler) getBackup(w http.ResponseWriter, r *http.Request) {
	owner, _ := utils.GetOwnerFromContext(r.Context())
	name := chi.URLParam(r, "name")

	data, info, err := h.services.BackupService.Get(r.Context(), owner, name)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	contentType := contentTypeJSON
	if strings.HasSuffix(strings.ToLower(info.Filename), ".gz") {
		contentType = contentTypeGzip
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Last-Modified", time.UnixMilli(info.Modified).UTC().Format(http.TimeFormat))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *Handler) deleteBackup(w http.ResponseWriter, r *http.Request) {
	owner, _ := utils.GetOwnerFromContext(r.Context())
	name := chi.URLParam(r, "name")

	if err := h.services.BackupService.Delete(r.Context(), owner, name); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// writeError maps err to a status code. Internal failures are logged and
// answered without details.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	log := logger.FromRequest(r)

	msg := err.Error()
	if status >= http.StatusInternalServerError {
		log.Err(err).Str("func", "*Handler.writeError").Msg("request failed")
		msg = app.MsgInternalServerError
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	utils.WriteError(w, msg, status)
}

// etagMatches implements the weak comparison of If-None-Match.
func etagMatches(ifNoneMatch, etag string) bool {
	if ifNoneMatch == "" || etag == "" {
		return false
	}
	for _, candidate := range strings.Split(ifNoneMatch, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == strings.TrimPrefix(etag, "W/") {
			return true
		}
	}
	return false
}

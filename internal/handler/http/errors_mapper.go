package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-shelf-sync/internal/service"
)

var errorStatusMap = map[error]int{
	service.ErrBackupNotFound:        http.StatusNotFound,
	service.ErrInvalidBackupName:     http.StatusBadRequest,
	service.ErrEmptyBackup:           http.StatusBadRequest,
	service.ErrNoOwner:               http.StatusUnauthorized,
	service.ErrVersionIsNotSpecified: http.StatusInternalServerError,

	ErrMissingFile:        http.StatusBadRequest,
	ErrMalformedMultipart: http.StatusBadRequest,
	ErrDigestMismatch:     http.StatusBadRequest,
	ErrUploadTooLarge:     http.StatusRequestEntityTooLarge,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

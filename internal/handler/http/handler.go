package http

import (
	"github.com/MKhiriev/go-shelf-sync/internal/config"
	"github.com/MKhiriev/go-shelf-sync/internal/logger"
	"github.com/MKhiriev/go-shelf-sync/internal/service"
	"github.com/MKhiriev/go-shelf-sync/internal/utils"
)

type Handler struct {
	services *service.Services

	tokens         []ownerToken
	maxUploadBytes int64
	traceIDs       *utils.UUIDGenerator

	logger *logger.Logger
}

// NewHandler builds the backup API handler. cfg.Tokens is parsed into the
// set of accepted bearer credentials; a malformed pair fails construction.
func NewHandler(services *service.Services, cfg config.ServerHTTP, logger *logger.Logger) (*Handler, error) {
	tokens, err := parseOwnerTokens(cfg.Tokens)
	if err != nil {
		return nil, err
	}

	logger.Info().Int("owners", len(tokens)).Msg("http handler created")
	return &Handler{
		services:       services,
		tokens:         tokens,
		maxUploadBytes: cfg.MaxUploadBytes,
		traceIDs:       utils.NewUUIDGenerator(),
		logger:         logger,
	}, nil
}

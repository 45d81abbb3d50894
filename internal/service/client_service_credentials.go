package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-shelf-sync/internal/logger"
	"github.com/MKhiriev/go-shelf-sync/internal/store"
)

type credentialStore struct {
	meta     store.SyncMetaRepository
	fallback string

	logger *logger.Logger
}

// NewCredentialStore returns a CredentialStore backed by the sync metadata.
// fallback is used while no token was saved, typically the token from the
// configuration.
func NewCredentialStore(meta store.SyncMetaRepository, fallback string, logger *logger.Logger) CredentialStore {
	return &credentialStore{
		meta:     meta,
		fallback: strings.TrimSpace(fallback),
		logger:   logger,
	}
}

func (s *credentialStore) Token(ctx context.Context) (string, error) {
	token, err := s.meta.GetCredential(ctx)
	if err != nil {
		return "", fmt.Errorf("read credential: %w", err)
	}
	if token = strings.TrimSpace(token); token != "" {
		return token, nil
	}
	return s.fallback, nil
}

// SetToken persists token. An empty token clears the saved credential and
// falls back to the configured one.
func (s *credentialStore) SetToken(ctx context.Context, token string) error {
	if err := s.meta.SaveCredential(ctx, strings.TrimSpace(token)); err != nil {
		return fmt.Errorf("save credential: %w", err)
	}

	s.logger.Info().
		Str("func", "credentialStore.SetToken").
		Bool("cleared", strings.TrimSpace(token) == "").
		Msg("credential updated")
	return nil
}

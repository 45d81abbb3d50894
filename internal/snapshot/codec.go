// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package snapshot

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/MKhiriev/go-shelf-sync/internal/utils"
	"github.com/MKhiriev/go-shelf-sync/models"
)

// Options controls Serialize.
type Options struct {
	// ExcludeLargeBlobs drops Item.Blob from every item (low-bandwidth mode).
	ExcludeLargeBlobs bool

	// DeviceID is recorded in the snapshot for diagnostics.
	DeviceID string
}

var gzipMagic = []byte{0x1f, 0x8b}

// Build assembles a Snapshot from collections and settings, applying the
// ordering and blob rules of Serialize without encoding it.
func Build(collections models.Collections, settings map[string]string, opts Options) models.Snapshot {
	out := make(models.Collections, len(collections))
	for name, items := range collections {
		sorted := make([]models.Item, len(items))
		copy(sorted, items)
		if opts.ExcludeLargeBlobs {
			for i := range sorted {
				sorted[i].Blob = nil
			}
		}
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
		out[name] = sorted
	}

	var s map[string]string
	if len(settings) > 0 {
		s = make(map[string]string, len(settings))
		for k, v := range settings {
			s[k] = v
		}
	}

	return models.Snapshot{
		Version:     models.SnapshotVersion,
		DeviceID:    opts.DeviceID,
		Collections: out,
		Settings:    s,
	}
}

// Serialize encodes the collections and settings into one JSON document.
func Serialize(collections models.Collections, settings map[string]string, opts Options) ([]byte, error) {
	return Encode(Build(collections, settings, opts))
}

// Encode writes an already built snapshot. Item order inside s is
// normalized so that Encode(Parse(b)) is stable.
func Encode(s models.Snapshot) ([]byte, error) {
	normalized := Build(s.Collections, s.Settings, Options{DeviceID: s.DeviceID})
	data, err := json.Marshal(normalized)
	if err != nil {
		return nil, fmt.Errorf("error encoding snapshot: %w", err)
	}
	return data, nil
}

// Hash returns the hex SHA-256 digest of the exact serialized bytes.
func Hash(data []byte) string {
	return utils.SHA256Hex(data)
}

// Parse decodes a snapshot, transparently un-gzipping compressed input.
//
// Missing collections or settings are returned as empty maps. Malformed
// input yields a *DecodeError.
func Parse(data []byte) (models.Snapshot, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return models.Snapshot{}, decodeErr("empty input", ErrEmptyInput)
	}

	if IsGzip(data) {
		plain, err := Gunzip(data)
		if err != nil {
			return models.Snapshot{}, decodeErr("invalid gzip stream", err)
		}
		data = plain
	}

	var s models.Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return models.Snapshot{}, decodeErr("invalid json", err)
	}

	if s.Version > models.SnapshotVersion {
		return models.Snapshot{}, decodeErr(fmt.Sprintf("version %d", s.Version), ErrUnsupportedVersion)
	}
	if s.Version == 0 {
		s.Version = models.SnapshotVersion
	}
	if s.Collections == nil {
		s.Collections = models.Collections{}
	}
	if s.Settings == nil {
		s.Settings = map[string]string{}
	}

	for name, items := range s.Collections {
		if items == nil {
			s.Collections[name] = []models.Item{}
			continue
		}
		for _, it := range items {
			if it.ID == "" {
				return models.Snapshot{}, decodeErr(fmt.Sprintf("collection %q", name), ErrItemWithoutID)
			}
		}
	}

	return s, nil
}

// IsGzip reports whether data starts with the gzip magic bytes.
func IsGzip(data []byte) bool {
	return bytes.HasPrefix(data, gzipMagic)
}

// Gzip compresses data. Used for the dated retention copies.
func Gzip(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, fmt.Errorf("error compressing snapshot: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("error compressing snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// Gunzip decompresses a gzip stream.
func Gunzip(data []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("error opening gzip stream: %w", err)
	}
	defer zr.Close()

	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("error reading gzip stream: %w", err)
	}
	return out, nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// BackupMeta is the metadata of the canonical latest backup returned by
// GET /backups/latest.
type BackupMeta struct {
	// Modified is the remote modification time in unix milliseconds.
	Modified    int64  `json:"modified"`
	DownloadURL string `json:"download_url"`
	Filename    string `json:"filename"`

	// ETag is the cache validator returned with the metadata. It is carried
	// in the response header, not in the body.
	ETag string `json:"-"`
}

// BackupInfo describes one stored backup file.
type BackupInfo struct {
	Filename string `json:"filename"`
	Modified int64  `json:"modified"`
	Size     int64  `json:"size"`
}

// BackupList is the body of GET /backups/list.
type BackupList struct {
	Backups []BackupInfo `json:"backups"`
}

// FetchCache is the last successfully fetched remote backup, kept locally so
// that a 304 Not Modified answer can be served without downloading again.
type FetchCache struct {
	ETag    string     `json:"etag"`
	Meta    BackupMeta `json:"meta"`
	Content []byte     `json:"content"`
}

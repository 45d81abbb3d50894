// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package snapshot serializes the local collections into one versioned JSON
// document, parses such documents back and computes the content hash used
// for upload deduplication.
//
// Serialization is byte-stable: items are ordered by id and map keys are
// emitted in sorted order, so equal content always yields the same bytes
// and therefore the same hash. Callers must hash and upload the same
// buffer.
package snapshot

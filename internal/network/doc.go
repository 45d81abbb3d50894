// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package network decides whether the current connection may be used for
// opportunistic uploads.
//
// A NetworkClassifier reports the connection type; Gate turns it into a
// boolean eligibility (metered, cellular and offline connections or an
// active save-data preference defer uploads, unknown connections fail open)
// and notifies subscribers when eligibility flips. Watcher polls the gate in
// the background.
package network

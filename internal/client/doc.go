// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the shelf-sync client runtime.
//
// It wires the local store, the backup API adapter, the network gate and
// the sync coordinator into one process, and runs either the background
// sync daemon or a single command.
package client

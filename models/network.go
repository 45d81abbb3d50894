// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ConnectionType classifies the active network connection.
type ConnectionType string

const (
	ConnectionUnknown   ConnectionType = "unknown"
	ConnectionUnmetered ConnectionType = "unmetered"
	ConnectionMetered   ConnectionType = "metered"
	ConnectionCellular  ConnectionType = "cellular"
	ConnectionNone      ConnectionType = "none"
)

// ParseConnectionType maps a configuration string to a ConnectionType.
// Unrecognised values are treated as unknown.
func ParseConnectionType(s string) ConnectionType {
	switch ConnectionType(s) {
	case ConnectionUnmetered, ConnectionMetered, ConnectionCellular, ConnectionNone:
		return ConnectionType(s)
	case "wifi", "ethernet":
		return ConnectionUnmetered
	}
	return ConnectionUnknown
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package network

import (
	"context"

	"github.com/MKhiriev/go-shelf-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/network_classifier.go -package=mock

// NetworkClassifier reports the type of the active connection.
type NetworkClassifier interface {
	Classify(ctx context.Context) models.ConnectionType
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package network

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-shelf-sync/internal/logger"
	"github.com/MKhiriev/go-shelf-sync/models"
)

// Gate exposes upload eligibility and eligibility transitions.
type Gate struct {
	classifier NetworkClassifier
	logger     *logger.Logger

	mu       sync.Mutex
	saveData bool
	known    bool
	last     bool
	nextID   int
	subs     map[int]func(eligible bool)
}

func NewGate(classifier NetworkClassifier, saveData bool, logger *logger.Logger) *Gate {
	return &Gate{
		classifier: classifier,
		logger:     logger,
		saveData:   saveData,
		subs:       make(map[int]func(bool)),
	}
}

// Eligible reports whether uploads are allowed for the given connection
// type and save-data preference.
func Eligible(typ models.ConnectionType, saveData bool) bool {
	if saveData {
		return false
	}
	switch typ {
	case models.ConnectionMetered, models.ConnectionCellular, models.ConnectionNone:
		return false
	}
	return true
}

// IsEligible classifies the connection on demand. It does not notify
// subscribers; see Check.
func (g *Gate) IsEligible(ctx context.Context) bool {
	typ := g.classifier.Classify(ctx)

	g.mu.Lock()
	saveData := g.saveData
	g.mu.Unlock()

	return Eligible(typ, saveData)
}

// SetSaveData updates the save-data preference and notifies subscribers if
// eligibility changed as a result.
func (g *Gate) SetSaveData(ctx context.Context, saveData bool) {
	g.mu.Lock()
	g.saveData = saveData
	g.mu.Unlock()

	g.Check(ctx)
}

// OnChange registers cb for eligibility transitions and returns a function
// that removes it.
func (g *Gate) OnChange(cb func(eligible bool)) (unsubscribe func()) {
	g.mu.Lock()
	id := g.nextID
	g.nextID++
	g.subs[id] = cb
	g.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.subs, id)
			g.mu.Unlock()
		})
	}
}

// Check re-classifies the connection and fires the registered callbacks if
// eligibility differs from the previous observation. The first observation
// only records the baseline.
func (g *Gate) Check(ctx context.Context) bool {
	eligible := g.IsEligible(ctx)

	g.mu.Lock()
	changed := g.known && g.last != eligible
	g.known = true
	g.last = eligible
	var callbacks []func(bool)
	if changed {
		callbacks = make([]func(bool), 0, len(g.subs))
		for _, cb := range g.subs {
			callbacks = append(callbacks, cb)
		}
	}
	g.mu.Unlock()

	if changed {
		g.logger.Info().Bool("eligible", eligible).Msg("network eligibility changed")
		for _, cb := range callbacks {
			cb(eligible)
		}
	}

	return eligible
}

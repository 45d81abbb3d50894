// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package network

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/MKhiriev/go-shelf-sync/models"
)

// StaticClassifier returns a configured connection type that can be changed
// at runtime, e.g. from a settings screen.
type StaticClassifier struct {
	mu  sync.RWMutex
	typ models.ConnectionType
}

func NewStaticClassifier(typ models.ConnectionType) *StaticClassifier {
	if typ == "" {
		typ = models.ConnectionUnknown
	}
	return &StaticClassifier{typ: typ}
}

func (c *StaticClassifier) Classify(context.Context) models.ConnectionType {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.typ
}

// Set replaces the reported connection type.
func (c *StaticClassifier) Set(typ models.ConnectionType) {
	c.mu.Lock()
	c.typ = typ
	c.mu.Unlock()
}

// ProbeClassifier detects reachability of the backup host with a TCP dial.
// An unreachable host is reported as ConnectionNone; otherwise the
// classification of the wrapped classifier is returned.
type ProbeClassifier struct {
	addr     string
	timeout  time.Duration
	fallback NetworkClassifier
	dial     func(ctx context.Context, network, address string) (net.Conn, error)
}

// NewProbeClassifier creates a classifier probing addr ("host:port").
// fallback may be nil, in which case reachable means unknown.
func NewProbeClassifier(addr string, timeout time.Duration, fallback NetworkClassifier) *ProbeClassifier {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if fallback == nil {
		fallback = NewStaticClassifier(models.ConnectionUnknown)
	}
	d := &net.Dialer{}
	return &ProbeClassifier{
		addr:     addr,
		timeout:  timeout,
		fallback: fallback,
		dial:     d.DialContext,
	}
}

func (c *ProbeClassifier) Classify(ctx context.Context) models.ConnectionType {
	dialCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	conn, err := c.dial(dialCtx, "tcp", c.addr)
	if err != nil {
		return models.ConnectionNone
	}
	_ = conn.Close()

	return c.fallback.Classify(ctx)
}

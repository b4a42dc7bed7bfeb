/*
 * SPDX-FileCopyrightText: © Searchmesh, Inc. <hello@searchmesh.io>
 * SPDX-License-Identifier: Apache-2.0
 */

package metadata

import (
	"time"

	"github.com/dgraph-io/ristretto/v2/z"
	"github.com/golang/glog"
)

// StartGossip runs the re-announcement loop. Broadcasts are fire-and-forget,
// so a dropped message would otherwise leave a peer behind until the next
// local mutation; the loop re-announces the current header every interval
// and whenever TriggerBroadcast is called.
func (m *Manager) StartGossip(interval time.Duration) {
	m.closer = z.NewCloser(1)
	go m.runGossip(interval)
}

func (m *Manager) runGossip(interval time.Duration) {
	defer m.closer.Done()
	glog.V(1).Infof("Starting metadata gossip loop with interval %v", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.BroadcastMetadata()
		case <-m.triggerCh:
			m.BroadcastMetadata()
		case <-m.closer.HasBeenClosed():
			return
		}
	}
}

// TriggerBroadcast asks the gossip loop for an immediate re-announcement.
// It never blocks; a trigger while one is already pending is folded into it.
func (m *Manager) TriggerBroadcast() {
	select {
	case m.triggerCh <- struct{}{}:
	default:
	}
}

// Close stops the gossip loop, if one was started, and waits for it.
func (m *Manager) Close() {
	if m.closer != nil {
		m.closer.SignalAndWait()
	}
}

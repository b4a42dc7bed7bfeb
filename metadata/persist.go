/*
 * SPDX-FileCopyrightText: © Searchmesh, Inc. <hello@searchmesh.io>
 * SPDX-License-Identifier: Apache-2.0
 */

package metadata

import (
	"github.com/gogo/protobuf/proto"
	"github.com/golang/glog"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/searchmesh/metasync/protos/pb"
)

// AuxPhase marks where in the snapshot stream an auxiliary save or load hook
// is being invoked. The metadata blob lives after the main data section;
// hooks fired at any other phase are no-ops.
type AuxPhase int

const (
	AuxBeforeData AuxPhase = iota
	AuxAfterData
)

// AuxSave serializes the current global metadata for the snapshot's
// auxiliary slot. It returns nil at any phase other than AuxAfterData.
func (m *Manager) AuxSave(phase AuxPhase) ([]byte, error) {
	if phase != AuxAfterData {
		return nil, nil
	}
	m.RLock()
	defer m.RUnlock()
	blob, err := proto.Marshal(m.state)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "serializing metadata: %v", err)
	}
	return blob, nil
}

// AuxLoad restores global metadata from a snapshot's auxiliary slot. Outside
// a replication window the loaded state merges into the live registry
// immediately, exactly as a peer reconciliation would; during a window the
// blob is staged and the registry stays visibly unchanged until
// OnLoadingEnded. It is a no-op at any phase other than AuxAfterData.
func (m *Manager) AuxLoad(data []byte, phase AuxPhase) error {
	if phase != AuxAfterData {
		return nil
	}
	loaded := &pb.GlobalMetadata{}
	if err := proto.Unmarshal(data, loaded); err != nil {
		return status.Errorf(codes.Internal, "parsing metadata snapshot: %v", err)
	}

	m.Lock()
	if m.loading {
		// A later aux section supersedes an earlier one within the same
		// load; only the final blob is merged at OnLoadingEnded.
		m.staged = loaded
		m.Unlock()
		return nil
	}
	header, changed := m.mergeLocked(loaded)
	m.Unlock()
	if changed {
		m.broadcast(header)
	}
	return nil
}

// OnReplicationLoadStart opens a replication/full-load window: subsequent
// AuxLoad calls stage their metadata instead of merging it.
func (m *Manager) OnReplicationLoadStart() {
	m.Lock()
	defer m.Unlock()
	m.loading = true
	m.staged = nil
}

// OnLoadingEnded closes the load window and merges whatever was staged.
func (m *Manager) OnLoadingEnded() {
	m.Lock()
	staged := m.staged
	m.staged = nil
	m.loading = false

	var header *pb.VersionHeader
	var changed bool
	if staged != nil {
		header, changed = m.mergeLocked(staged)
	}
	m.Unlock()

	if changed {
		glog.V(1).Infof("Loaded metadata diverged from pre-load state, announcing version %d",
			header.GetTopLevelVersion())
		m.broadcast(header)
	}
}

/*
 * SPDX-FileCopyrightText: © Searchmesh, Inc. <hello@searchmesh.io>
 * SPDX-License-Identifier: Apache-2.0
 */

// Package metadata keeps a small, versioned registry of per-feature metadata
// (index definitions and the like) consistent across the cluster without a
// central coordinator. Nodes broadcast a compact version header after every
// local change; a peer that sees a header ahead of its own pulls the full
// registry and merges it entry by entry with deterministic tie-breaking, so
// all nodes converge on the same content regardless of message ordering.
package metadata

import (
	"github.com/dgraph-io/ristretto/v2/z"
	"github.com/gogo/protobuf/proto"
	"github.com/golang/glog"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/searchmesh/metasync/cluster"
	"github.com/searchmesh/metasync/protos/pb"
	"github.com/searchmesh/metasync/x"
)

// FingerprintFn computes a stable content hash for an entry payload. It must
// be a pure function of the content so that every node derives the same
// fingerprint from the same bytes.
type FingerprintFn func(content *pb.EntryContent) (uint64, error)

// ApplyFn is invoked whenever an entry's effective content changes, with a
// nil content for tombstones. It propagates the change into the feature the
// entry describes. Apply callbacks may run with the registry lock held and
// must not call back into the Manager.
type ApplyFn func(id string, content *pb.EntryContent) error

type typeHandler struct {
	encodingVersion uint64
	fingerprint     FingerprintFn
	apply           ApplyFn
}

// Manager owns the node's view of the global metadata and drives its
// synchronization with the rest of the cluster. Construct one per process
// with NewManager and share it by reference.
type Manager struct {
	x.SafeMutex

	nodeID    string
	state     *pb.GlobalMetadata
	types     map[string]*typeHandler
	resolver  cluster.Resolver
	transport Transporter

	// Aux-load staging; see persist.go.
	loading bool
	staged  *pb.GlobalMetadata

	// Gossip loop; see gossip.go.
	closer    *z.Closer
	triggerCh chan struct{}
}

// NewManager returns a Manager with an empty registry.
func NewManager(nodeID string, resolver cluster.Resolver, transport Transporter) *Manager {
	return &Manager{
		nodeID: nodeID,
		state: &pb.GlobalMetadata{
			VersionHeader: &pb.VersionHeader{
				TopLevelFingerprint: ComputeTopLevelFingerprint(nil),
			},
			TypeNamespaceMap: make(map[string]*pb.TypeNamespace),
		},
		types:     make(map[string]*typeHandler),
		resolver:  resolver,
		transport: transport,
		triggerCh: make(chan struct{}, 1),
	}
}

// RegisterType installs the callbacks for a logical metadata type. It must be
// called before any entry of that type is created locally; entries received
// from peers before registration are retained but not applied. Re-registering
// a type overwrites its callbacks and encoding version.
func (m *Manager) RegisterType(typeName string, encodingVersion uint64,
	fingerprint FingerprintFn, apply ApplyFn) {
	m.Lock()
	defer m.Unlock()
	m.types[typeName] = &typeHandler{
		encodingVersion: encodingVersion,
		fingerprint:     fingerprint,
		apply:           apply,
	}
}

// GetGlobalMetadata returns a snapshot of the full registry. The returned
// message is a copy; callers may hold on to it without racing the engine.
func (m *Manager) GetGlobalMetadata() *pb.GlobalMetadata {
	m.RLock()
	defer m.RUnlock()
	return proto.Clone(m.state).(*pb.GlobalMetadata)
}

// CreateEntry installs (or overwrites) the entry under type/id and announces
// the new registry version to the cluster.
//
// The registry update is unconditional once fingerprinting succeeds: an apply
// callback failure is returned to the caller, but the entry stays installed
// and only the broadcast is suppressed. Downstream code relies on the
// registry reflecting the attempted write even when the local feature
// rejected it.
func (m *Manager) CreateEntry(typeName, id string, content *pb.EntryContent) error {
	m.RLock()
	handler := m.types[typeName]
	m.RUnlock()
	if handler == nil {
		return status.Errorf(codes.NotFound, "type %q is not registered", typeName)
	}

	fp, err := handler.fingerprint(content)
	if err != nil {
		return status.Errorf(codes.Internal,
			"computing fingerprint for %s/%s: %v", typeName, id, err)
	}
	applyErr := handler.apply(id, content)

	m.Lock()
	entry := &pb.Entry{
		Fingerprint:     fp,
		EncodingVersion: handler.encodingVersion,
		Content:         content,
	}
	ns := m.state.TypeNamespaceMap[typeName]
	if ns == nil {
		ns = &pb.TypeNamespace{Entries: make(map[string]*pb.Entry)}
		m.state.TypeNamespaceMap[typeName] = ns
	} else if prev := ns.Entries[id]; prev != nil {
		entry.Version = prev.GetVersion() + 1
	}
	ns.Entries[id] = entry
	header := m.bumpLocked()
	m.Unlock()

	if applyErr != nil {
		return status.Errorf(codes.Internal,
			"apply callback for %s/%s: %v", typeName, id, applyErr)
	}
	m.broadcast(header)
	return nil
}

// DeleteEntry replaces the entry under type/id with a tombstone and announces
// the new registry version. The tombstone is retained, not removed, so its
// version keeps older copies of the entry from resurrecting during merges.
// Apply-callback failure follows the same contract as CreateEntry.
func (m *Manager) DeleteEntry(typeName, id string) error {
	m.RLock()
	handler := m.types[typeName]
	_, exists := m.state.TypeNamespaceMap[typeName].GetEntries()[id]
	m.RUnlock()
	if handler == nil {
		return status.Errorf(codes.NotFound, "type %q is not registered", typeName)
	}
	if !exists {
		return status.Errorf(codes.NotFound, "entry %s/%s does not exist", typeName, id)
	}

	applyErr := handler.apply(id, nil)

	m.Lock()
	ns := m.state.TypeNamespaceMap[typeName]
	prev := ns.GetEntries()[id]
	if prev == nil {
		m.Unlock()
		return status.Errorf(codes.NotFound, "entry %s/%s does not exist", typeName, id)
	}
	ns.Entries[id] = &pb.Entry{Version: prev.GetVersion() + 1}
	header := m.bumpLocked()
	m.Unlock()

	if applyErr != nil {
		return status.Errorf(codes.Internal,
			"apply callback for %s/%s: %v", typeName, id, applyErr)
	}
	m.broadcast(header)
	return nil
}

// bumpLocked advances the top level version by one and recomputes the top
// level fingerprint. Returns a copy of the new header for broadcasting.
func (m *Manager) bumpLocked() *pb.VersionHeader {
	m.AssertLock()
	hdr := m.state.VersionHeader
	hdr.TopLevelVersion++
	hdr.TopLevelFingerprint = ComputeTopLevelFingerprint(m.state.TypeNamespaceMap)
	return proto.Clone(hdr).(*pb.VersionHeader)
}

// BroadcastMetadata announces the current version header to the cluster.
func (m *Manager) BroadcastMetadata() {
	m.RLock()
	header := proto.Clone(m.state.VersionHeader).(*pb.VersionHeader)
	m.RUnlock()
	m.broadcast(header)
}

func (m *Manager) broadcast(header *pb.VersionHeader) {
	payload, err := proto.Marshal(header)
	if err != nil {
		glog.Errorf("Error marshaling version header: %v", err)
		return
	}
	m.transport.Broadcast(payload)
}

// HandleClusterMessage processes a version header announced by a peer. If the
// peer is ahead of us, the full metadata is fetched from it asynchronously
// and merged; otherwise this is a no-op. Failures along the way are logged
// and leave local state untouched; convergence relies on re-announcement.
func (m *Manager) HandleClusterMessage(senderID string, payload []byte) {
	peer := &pb.VersionHeader{}
	if err := proto.Unmarshal(payload, peer); err != nil {
		glog.Errorf("Dropping malformed announcement from %s: %v", senderID, err)
		return
	}

	m.RLock()
	localVersion := m.state.VersionHeader.GetTopLevelVersion()
	m.RUnlock()
	if peer.GetTopLevelVersion() <= localVersion {
		// Common case: the peer is echoing state we already have.
		return
	}

	node, err := m.resolver.Lookup(senderID)
	if err != nil {
		glog.Errorf("Unable to resolve sender %s: %v", senderID, err)
		return
	}
	glog.V(1).Infof("Node %s is at metadata version %d, we are at %d. Fetching from %s.",
		senderID, peer.GetTopLevelVersion(), localVersion, node.MetadataAddr())

	m.transport.FetchGlobalMetadata(node.MetadataAddr(), func(remote *pb.GlobalMetadata, err error) {
		if err != nil {
			glog.Errorf("Fetching metadata from %s failed: %v", senderID, err)
			return
		}
		m.Reconcile(remote)
	})
}

// Reconcile merges the given metadata, which may come from a peer fetch or a
// loaded snapshot, into the local registry and re-broadcasts if the merge
// produced content neither side had before.
func (m *Manager) Reconcile(proposed *pb.GlobalMetadata) {
	if proposed == nil {
		return
	}
	m.Lock()
	header, changed := m.mergeLocked(proposed)
	m.Unlock()
	if changed {
		m.broadcast(header)
	}
}

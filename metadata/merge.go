/*
 * SPDX-FileCopyrightText: © Searchmesh, Inc. <hello@searchmesh.io>
 * SPDX-License-Identifier: Apache-2.0
 */

package metadata

import (
	"bytes"
	"encoding/binary"
	"sort"

	"github.com/dgryski/go-farm"
	"github.com/golang/glog"

	"github.com/searchmesh/metasync/protos/pb"
)

// mergeLocked merges proposed metadata into the local registry and settles
// the version header. The recomputed fingerprint of the merged map decides
// what happened:
//
//   - equal to the proposed header's fingerprint: we converged on the
//     proposed content, so adopt the larger of the two versions;
//   - equal to our own fingerprint: nothing new was accepted, header stays;
//   - anything else: the merge produced content neither side had, so move
//     past both versions and tell the cluster.
//
// The stored fingerprint is always the locally recomputed one; the value on
// the wire is only ever used for this comparison, never trusted as state.
// Returns the new header and whether it should be re-broadcast.
func (m *Manager) mergeLocked(proposed *pb.GlobalMetadata) (*pb.VersionHeader, bool) {
	m.AssertLock()

	merged := mergeNamespaces(m.state.TypeNamespaceMap, proposed.GetTypeNamespaceMap(), m.types)
	fp := ComputeTopLevelFingerprint(merged)
	m.state.TypeNamespaceMap = merged

	hdr := m.state.VersionHeader
	proposedHdr := proposed.GetVersionHeader()
	switch fp {
	case proposedHdr.GetTopLevelFingerprint():
		hdr.TopLevelVersion = max(hdr.TopLevelVersion, proposedHdr.GetTopLevelVersion())
		hdr.TopLevelFingerprint = fp
		return nil, false
	case hdr.TopLevelFingerprint:
		return nil, false
	default:
		hdr.TopLevelVersion = max(hdr.TopLevelVersion, proposedHdr.GetTopLevelVersion()) + 1
		hdr.TopLevelFingerprint = fp
		out := &pb.VersionHeader{
			TopLevelVersion:     hdr.TopLevelVersion,
			TopLevelFingerprint: hdr.TopLevelFingerprint,
		}
		return out, true
	}
}

// mergeNamespaces computes the union of local and remote entries, picking a
// winner for every colliding (type, id) key. It never mutates its inputs.
// Apply callbacks fire for every entry accepted from the remote side whose
// type is registered; a callback or re-encoding failure skips that entry and
// keeps whatever the local side had.
func mergeNamespaces(local, remote map[string]*pb.TypeNamespace,
	types map[string]*typeHandler) map[string]*pb.TypeNamespace {

	merged := make(map[string]*pb.TypeNamespace, len(local))
	for name, ns := range local {
		out := &pb.TypeNamespace{Entries: make(map[string]*pb.Entry, len(ns.GetEntries()))}
		for id, entry := range ns.GetEntries() {
			out.Entries[id] = entry
		}
		merged[name] = out
	}

	for name, remoteNs := range remote {
		handler := types[name] // nil for unregistered types: install, don't apply
		for id, remoteEntry := range remoteNs.GetEntries() {
			localEntry := merged[name].GetEntries()[id]
			if localEntry != nil && !remoteWins(localEntry, remoteEntry) {
				continue
			}

			accepted := remoteEntry
			if handler != nil && remoteEntry.GetContent() != nil &&
				handler.encodingVersion > remoteEntry.GetEncodingVersion() {
				// The local registration encodes this type at a newer
				// version; restamp the accepted entry accordingly.
				fp, err := handler.fingerprint(remoteEntry.GetContent())
				if err != nil {
					glog.Errorf("Re-encoding entry %s/%s failed: %v", name, id, err)
					continue
				}
				accepted = &pb.Entry{
					Version:         remoteEntry.GetVersion(),
					Fingerprint:     fp,
					EncodingVersion: handler.encodingVersion,
					Content:         remoteEntry.GetContent(),
				}
			}
			if handler != nil {
				if err := handler.apply(id, accepted.GetContent()); err != nil {
					glog.Errorf("Apply callback for entry %s/%s failed during merge: %v",
						name, id, err)
					continue
				}
			}

			ns := merged[name]
			if ns == nil {
				ns = &pb.TypeNamespace{Entries: make(map[string]*pb.Entry)}
				merged[name] = ns
			}
			ns.Entries[id] = accepted
		}
	}
	return merged
}

// remoteWins decides entry collisions. Higher version wins outright; a
// version tie falls to the higher encoding version, then to the higher
// fingerprint. The rule is total and symmetric, so both sides of a
// reconciliation pick the same winner. A tie on all three keeps the local
// entry (the contents are then the same bytes on a correct cluster).
func remoteWins(local, remote *pb.Entry) bool {
	if local.GetVersion() != remote.GetVersion() {
		return remote.GetVersion() > local.GetVersion()
	}
	if local.GetEncodingVersion() != remote.GetEncodingVersion() {
		return remote.GetEncodingVersion() > local.GetEncodingVersion()
	}
	return remote.GetFingerprint() > local.GetFingerprint()
}

// ComputeTopLevelFingerprint hashes the full entry set. The walk is in
// sorted key order so the result depends only on content, not on map
// construction history; any node holding the same entries computes the same
// fingerprint.
func ComputeTopLevelFingerprint(namespaces map[string]*pb.TypeNamespace) uint64 {
	var buf bytes.Buffer
	var scratch [8]byte

	for _, name := range sortedKeys(namespaces) {
		entries := namespaces[name].GetEntries()
		for _, id := range sortedKeys(entries) {
			entry := entries[id]
			buf.WriteString(name)
			buf.WriteByte(0)
			buf.WriteString(id)
			buf.WriteByte(0)
			binary.BigEndian.PutUint64(scratch[:], entry.GetVersion())
			buf.Write(scratch[:])
			binary.BigEndian.PutUint64(scratch[:], entry.GetFingerprint())
			buf.Write(scratch[:])
			binary.BigEndian.PutUint64(scratch[:], entry.GetEncodingVersion())
			buf.Write(scratch[:])
			if content := entry.GetContent(); content != nil {
				buf.WriteString(content.GetTypeUrl())
				buf.WriteByte(0)
				buf.Write(content.GetValue())
			}
			buf.WriteByte(0xff)
		}
	}
	return farm.Fingerprint64(buf.Bytes())
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

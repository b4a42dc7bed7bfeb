/*
 * SPDX-FileCopyrightText: © Searchmesh, Inc. <hello@searchmesh.io>
 * SPDX-License-Identifier: Apache-2.0
 */

package metadata

import (
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/searchmesh/metasync/protos/pb"
)

func entryOf(version, fingerprint, encoding uint64, c *pb.EntryContent) *pb.Entry {
	return &pb.Entry{
		Version:         version,
		Fingerprint:     fingerprint,
		EncodingVersion: encoding,
		Content:         c,
	}
}

func namespaces(typeName string, entries map[string]*pb.Entry) map[string]*pb.TypeNamespace {
	return map[string]*pb.TypeNamespace{
		typeName: {Entries: entries},
	}
}

// remoteState builds peer metadata whose header fingerprint is consistent
// with its contents, the way a well-behaved node would send it.
func remoteState(version uint64, nsMap map[string]*pb.TypeNamespace) *pb.GlobalMetadata {
	return &pb.GlobalMetadata{
		VersionHeader: &pb.VersionHeader{
			TopLevelVersion:     version,
			TopLevelFingerprint: ComputeTopLevelFingerprint(nsMap),
		},
		TypeNamespaceMap: nsMap,
	}
}

func topVersion(m *Manager) uint64 {
	return m.GetGlobalMetadata().GetVersionHeader().GetTopLevelVersion()
}

func TestReconcileNoPriorMetadata(t *testing.T) {
	m, tr := newTestManager()
	var applied []*pb.EntryContent
	m.RegisterType("index", 1, byteFingerprint,
		func(id string, c *pb.EntryContent) error {
			applied = append(applied, c)
			return nil
		})

	remote := remoteState(1, namespaces("index",
		map[string]*pb.Entry{"a": entryOf(0, 'A', 1, content("A"))}))
	m.Reconcile(remote)

	require.True(t, proto.Equal(content("A"), getEntry(m, "index", "a").GetContent()))
	require.Len(t, applied, 1)
	// We converged on exactly what the peer had, so we adopt its version
	// and stay quiet.
	require.EqualValues(t, 1, topVersion(m))
	require.Zero(t, tr.numBroadcasts())
}

func TestReconcileNewVersionSamePayload(t *testing.T) {
	m, tr := newTestManager()
	m.RegisterType("index", 1, byteFingerprint, noopApply)
	require.NoError(t, m.CreateEntry("index", "a", content("A")))
	tr.reset()

	// The peer holds the same entry but has churned its header further.
	remote := remoteState(5, namespaces("index",
		map[string]*pb.Entry{"a": entryOf(0, 'A', 1, content("A"))}))
	m.Reconcile(remote)

	require.EqualValues(t, 5, topVersion(m))
	require.Zero(t, tr.numBroadcasts())
}

func TestReconcileUnionBumpsPastBoth(t *testing.T) {
	m, tr := newTestManager()
	m.RegisterType("index", 1, byteFingerprint, noopApply)
	require.NoError(t, m.CreateEntry("index", "a", content("A")))
	tr.reset()

	remote := remoteState(1, namespaces("index",
		map[string]*pb.Entry{"b": entryOf(0, 'B', 1, content("B"))}))
	m.Reconcile(remote)

	// The union is content neither side had, so the version moves past
	// both headers and the result is re-announced.
	entries := m.GetGlobalMetadata().GetTypeNamespaceMap()["index"].GetEntries()
	require.Len(t, entries, 2)
	require.EqualValues(t, 2, topVersion(m))
	require.Equal(t, 1, tr.numBroadcasts())
	require.EqualValues(t, 2, tr.lastHeader(t).GetTopLevelVersion())
}

func TestReconcileFailedApplySkipsEntry(t *testing.T) {
	m, tr := newTestManager()
	m.RegisterType("index", 1, byteFingerprint,
		func(string, *pb.EntryContent) error { return errors.New("apply failed") })

	remote := remoteState(1, namespaces("index",
		map[string]*pb.Entry{"a": entryOf(0, 'A', 1, content("A"))}))
	m.Reconcile(remote)

	// The rejected entry is not installed, and since nothing was accepted
	// the header stays where it was.
	require.Empty(t, m.GetGlobalMetadata().GetTypeNamespaceMap())
	require.Zero(t, topVersion(m))
	require.Zero(t, tr.numBroadcasts())
}

func TestReconcileUnregisteredTypeInstalledNotApplied(t *testing.T) {
	m, tr := newTestManager()

	remote := remoteState(1, namespaces("other",
		map[string]*pb.Entry{"a": entryOf(0, 'A', 1, content("A"))}))
	m.Reconcile(remote)

	// Entries of unknown types are carried so later registrants and other
	// peers still see them.
	require.NotNil(t, getEntry(m, "other", "a"))
	require.EqualValues(t, 1, topVersion(m))
	require.Zero(t, tr.numBroadcasts())
}

func TestReconcileCollisions(t *testing.T) {
	tests := []struct {
		name        string
		seedTwice   bool // install the local entry at version 1 instead of 0
		remote      *pb.Entry
		wantContent string
		wantVersion uint64
	}{
		// The local side registers "index" at encoding 1 and starts every
		// case with entry a = {fingerprint 'A', content "A"}. The peer's
		// header is always at version 2.
		{
			name:        "HigherFingerprintWins",
			remote:      entryOf(0, 'B', 1, content("B")),
			wantContent: "B",
			wantVersion: 2, // converged on the proposal, adopt its header
		},
		{
			name:        "LowerFingerprintLoses",
			remote:      entryOf(0, '0', 1, content("0")),
			wantContent: "A",
			wantVersion: 1, // nothing accepted, header untouched
		},
		{
			name:        "HigherEntryVersionWins",
			remote:      entryOf(3, '0', 1, content("0")),
			wantContent: "0",
			wantVersion: 2,
		},
		{
			name:        "LowerEntryVersionLoses",
			seedTwice:   true,
			remote:      entryOf(0, 'B', 1, content("B")),
			wantContent: "A",
			wantVersion: 2,
		},
		{
			name:        "HigherEncodingVersionWins",
			remote:      entryOf(0, '0', 2, content("0")),
			wantContent: "0",
			wantVersion: 2,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, tr := newTestManager()
			m.RegisterType("index", 1, byteFingerprint, noopApply)
			require.NoError(t, m.CreateEntry("index", "a", content("A")))
			if tc.seedTwice {
				require.NoError(t, m.CreateEntry("index", "a", content("A")))
			}
			tr.reset()

			m.Reconcile(remoteState(2, namespaces("index",
				map[string]*pb.Entry{"a": tc.remote})))

			entry := getEntry(m, "index", "a")
			require.Equal(t, tc.wantContent, string(entry.GetContent().GetValue()))
			require.EqualValues(t, tc.wantVersion, topVersion(m))
			// Every outcome above lands on content one of the two sides
			// already announced, so nothing is re-broadcast.
			require.Zero(t, tr.numBroadcasts())
		})
	}
}

func TestReconcileCollisionAdoptsProposedVersion(t *testing.T) {
	m, tr := newTestManager()
	m.RegisterType("index", 1, byteFingerprint, noopApply)
	require.NoError(t, m.CreateEntry("index", "a", content("A")))
	tr.reset()

	// Same entry version, higher fingerprint: the merge lands exactly on
	// the proposal, so the header follows it without a re-broadcast.
	m.Reconcile(remoteState(1, namespaces("index",
		map[string]*pb.Entry{"a": entryOf(0, 'B', 1, content("B"))})))
	require.EqualValues(t, 1, topVersion(m))
	require.Zero(t, tr.numBroadcasts())
}

func TestReconcileCollisionKeepsLocalHeader(t *testing.T) {
	m, tr := newTestManager()
	m.RegisterType("index", 1, byteFingerprint, noopApply)
	require.NoError(t, m.CreateEntry("index", "a", content("A")))
	tr.reset()

	// The peer's header is ahead, but every colliding entry resolves to
	// the local copy, so the local header does not move.
	m.Reconcile(remoteState(4, namespaces("index",
		map[string]*pb.Entry{"a": entryOf(0, '0', 1, content("0"))})))
	require.EqualValues(t, 1, topVersion(m))
	require.Zero(t, tr.numBroadcasts())
}

func TestReconcileTombstoneRemovesEntry(t *testing.T) {
	m, tr := newTestManager()
	var lastApplied = content("sentinel")
	m.RegisterType("index", 1, byteFingerprint,
		func(id string, c *pb.EntryContent) error {
			lastApplied = c
			return nil
		})
	require.NoError(t, m.CreateEntry("index", "a", content("A")))
	tr.reset()

	m.Reconcile(remoteState(2, namespaces("index",
		map[string]*pb.Entry{"a": entryOf(1, 0, 0, nil)})))

	entry := getEntry(m, "index", "a")
	require.NotNil(t, entry)
	require.Nil(t, entry.GetContent())
	require.EqualValues(t, 1, entry.GetVersion())
	require.Nil(t, lastApplied)
	require.EqualValues(t, 2, topVersion(m))
	require.Zero(t, tr.numBroadcasts())
}

func TestReconcileLocalTombstoneNotResurrected(t *testing.T) {
	m, tr := newTestManager()
	var applied []*pb.EntryContent
	m.RegisterType("index", 1, byteFingerprint,
		func(id string, c *pb.EntryContent) error {
			applied = append(applied, c)
			return nil
		})
	require.NoError(t, m.CreateEntry("index", "a", content("A")))
	require.NoError(t, m.DeleteEntry("index", "a"))
	tr.reset()
	applied = nil

	// A peer that never saw the delete still holds the pre-delete content
	// at entry version 0; the tombstone at version 1 must survive.
	m.Reconcile(remoteState(3, namespaces("index",
		map[string]*pb.Entry{"a": entryOf(0, 'A', 1, content("A"))})))

	entry := getEntry(m, "index", "a")
	require.NotNil(t, entry)
	require.Nil(t, entry.GetContent())
	require.EqualValues(t, 1, entry.GetVersion())
	// Nothing was accepted, so no callback fired and the header held.
	require.Empty(t, applied)
	require.EqualValues(t, 2, topVersion(m))
	require.Zero(t, tr.numBroadcasts())
}

func TestReconcileReEncodesOlderEntries(t *testing.T) {
	m, tr := newTestManager()
	// Locally this type is registered at encoding 2 with a fingerprint
	// scheme distinguishable from the remote's.
	m.RegisterType("index", 2,
		func(c *pb.EntryContent) (uint64, error) {
			fp, err := byteFingerprint(c)
			return fp + 100, err
		}, noopApply)

	m.Reconcile(remoteState(1, namespaces("index",
		map[string]*pb.Entry{"a": entryOf(0, 'A', 1, content("A"))})))

	// The accepted entry is restamped at the local encoding, which makes
	// the merged registry differ from what the peer announced.
	entry := getEntry(m, "index", "a")
	require.EqualValues(t, 2, entry.GetEncodingVersion())
	require.EqualValues(t, uint64('A')+100, entry.GetFingerprint())
	require.EqualValues(t, 2, topVersion(m))
	require.Equal(t, 1, tr.numBroadcasts())
}

func TestReconcileReEncodeFingerprintFailureSkips(t *testing.T) {
	m, tr := newTestManager()
	m.RegisterType("index", 2, byteFingerprint, noopApply)

	// byteFingerprint rejects empty payloads, so restamping fails.
	m.Reconcile(remoteState(1, namespaces("index",
		map[string]*pb.Entry{"a": entryOf(0, 7, 1, &pb.EntryContent{TypeUrl: "test.Content"})})))

	require.Empty(t, m.GetGlobalMetadata().GetTypeNamespaceMap())
	require.Zero(t, topVersion(m))
	require.Zero(t, tr.numBroadcasts())
}

func TestHandleClusterMessage(t *testing.T) {
	headerPayload := func(version, fingerprint uint64) []byte {
		payload, err := proto.Marshal(&pb.VersionHeader{
			TopLevelVersion:     version,
			TopLevelFingerprint: fingerprint,
		})
		require.NoError(t, err)
		return payload
	}

	t.Run("StaleAnnouncementIgnored", func(t *testing.T) {
		m, tr := newTestManager()
		m.HandleClusterMessage("2", headerPayload(0, 42))
		require.Empty(t, tr.fetched)
	})

	t.Run("MalformedPayloadIgnored", func(t *testing.T) {
		m, tr := newTestManager()
		m.HandleClusterMessage("2", []byte{0xff, 0xff})
		require.Empty(t, tr.fetched)
	})

	t.Run("UnknownSenderIgnored", func(t *testing.T) {
		m, tr := newTestManager()
		m.HandleClusterMessage("99", headerPayload(3, 42))
		require.Empty(t, tr.fetched)
	})

	t.Run("FetchFailureLeavesStateUntouched", func(t *testing.T) {
		m, tr := newTestManager()
		tr.replyErr = errors.New("connection refused")
		m.HandleClusterMessage("2", headerPayload(3, 42))
		require.Len(t, tr.fetched, 1)
		require.Zero(t, topVersion(m))
	})

	t.Run("FetchAndMerge", func(t *testing.T) {
		m, tr := newTestManager()
		m.RegisterType("index", 1, byteFingerprint, noopApply)
		tr.reply = remoteState(1, namespaces("index",
			map[string]*pb.Entry{"a": entryOf(0, 'A', 1, content("A"))}))

		m.HandleClusterMessage("2", headerPayload(1, tr.reply.GetVersionHeader().GetTopLevelFingerprint()))

		require.Equal(t, []string{"localhost:20396"}, tr.fetched)
		require.NotNil(t, getEntry(m, "index", "a"))
		require.EqualValues(t, 1, topVersion(m))
	})
}

func TestComputeTopLevelFingerprint(t *testing.T) {
	a := namespaces("index", map[string]*pb.Entry{
		"a": entryOf(0, 'A', 1, content("A")),
		"b": entryOf(2, 'B', 1, content("B")),
	})
	a["other"] = &pb.TypeNamespace{Entries: map[string]*pb.Entry{
		"x": entryOf(1, 'X', 1, content("X")),
	}}

	// Same contents assembled in a different order hash identically.
	b := map[string]*pb.TypeNamespace{
		"other": {Entries: map[string]*pb.Entry{"x": entryOf(1, 'X', 1, content("X"))}},
		"index": {Entries: map[string]*pb.Entry{
			"b": entryOf(2, 'B', 1, content("B")),
			"a": entryOf(0, 'A', 1, content("A")),
		}},
	}
	require.Equal(t, ComputeTopLevelFingerprint(a), ComputeTopLevelFingerprint(b))

	b["index"].Entries["a"].Version = 1
	require.NotEqual(t, ComputeTopLevelFingerprint(a), ComputeTopLevelFingerprint(b))

	require.Equal(t, ComputeTopLevelFingerprint(nil),
		ComputeTopLevelFingerprint(map[string]*pb.TypeNamespace{}))
}

/*
 * SPDX-FileCopyrightText: © Searchmesh, Inc. <hello@searchmesh.io>
 * SPDX-License-Identifier: Apache-2.0
 */

package snapshot

import (
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/stretchr/testify/require"

	"github.com/searchmesh/metasync/cluster"
	"github.com/searchmesh/metasync/metadata"
	"github.com/searchmesh/metasync/protos/pb"
)

type nullTransport struct{}

func (nullTransport) Broadcast([]byte) {}
func (nullTransport) FetchGlobalMetadata(addr string, done func(*pb.GlobalMetadata, error)) {
	done(nil, nil)
}

func newManager() *metadata.Manager {
	resolver := cluster.NewStaticResolver(cluster.Node{ID: "1", Host: "localhost", Port: 1})
	m := metadata.NewManager("1", resolver, nullTransport{})
	m.RegisterType("index", 1,
		func(c *pb.EntryContent) (uint64, error) { return uint64(len(c.GetValue())), nil },
		func(string, *pb.EntryContent) error { return nil })
	return m
}

func TestStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()

	src := newManager()
	require.NoError(t, src.CreateEntry("index", "a",
		&pb.EntryContent{TypeUrl: "test.Content", Value: []byte("hello")}))

	store, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, store.Save(src))
	require.NoError(t, store.Close())

	// Reopen the way a restarted process would.
	store, err = Open(dir)
	require.NoError(t, err)
	defer func() { require.NoError(t, store.Close()) }()

	dst := newManager()
	require.NoError(t, store.Load(dst))
	require.True(t, proto.Equal(src.GetGlobalMetadata(), dst.GetGlobalMetadata()))
}

func TestLoadFromEmptyStore(t *testing.T) {
	store, err := Open(t.TempDir())
	require.NoError(t, err)
	defer func() { require.NoError(t, store.Close()) }()

	m := newManager()
	require.NoError(t, store.Load(m))
	require.Zero(t, m.GetGlobalMetadata().GetVersionHeader().GetTopLevelVersion())
}

func TestSaveOverwritesPreviousSnapshot(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir)
	require.NoError(t, err)
	defer func() { require.NoError(t, store.Close()) }()

	src := newManager()
	require.NoError(t, src.CreateEntry("index", "a",
		&pb.EntryContent{TypeUrl: "test.Content", Value: []byte("one")}))
	require.NoError(t, store.Save(src))

	require.NoError(t, src.CreateEntry("index", "a",
		&pb.EntryContent{TypeUrl: "test.Content", Value: []byte("two")}))
	require.NoError(t, store.Save(src))

	dst := newManager()
	require.NoError(t, store.Load(dst))
	entry := dst.GetGlobalMetadata().GetTypeNamespaceMap()["index"].GetEntries()["a"]
	require.Equal(t, "two", string(entry.GetContent().GetValue()))
	require.EqualValues(t, 1, entry.GetVersion())
}

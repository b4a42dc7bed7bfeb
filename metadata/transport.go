/*
 * SPDX-FileCopyrightText: © Searchmesh, Inc. <hello@searchmesh.io>
 * SPDX-License-Identifier: Apache-2.0
 */

package metadata

import (
	"context"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"google.golang.org/grpc"

	"github.com/searchmesh/metasync/cluster"
	"github.com/searchmesh/metasync/conn"
	"github.com/searchmesh/metasync/protos/pb"
)

// Transporter is the engine's view of the network: a best-effort broadcast
// of an opaque payload to the whole cluster, and a point-to-point fetch of a
// peer's full metadata. Fetch completion callbacks are invoked exactly once,
// from whatever goroutine the transport completes on.
type Transporter interface {
	Broadcast(payload []byte)
	FetchGlobalMetadata(addr string, done func(*pb.GlobalMetadata, error))
}

const (
	// fetchTimeout bounds one metadata pull, including the retries the
	// channel's service config performs underneath.
	fetchTimeout = 60 * time.Second

	// announceTimeout bounds one fire-and-forget announcement.
	announceTimeout = 10 * time.Second
)

// GrpcTransport implements Transporter over pooled gRPC connections, using
// the membership resolver to fan announcements out to every known peer.
type GrpcTransport struct {
	nodeID   string
	pools    *conn.Pools
	resolver cluster.Resolver
}

func NewGrpcTransport(nodeID string, pools *conn.Pools, resolver cluster.Resolver) *GrpcTransport {
	return &GrpcTransport{nodeID: nodeID, pools: pools, resolver: resolver}
}

// Broadcast sends the payload to every cluster member except ourselves.
// Sends are unordered, at most once each, and never retried here; the gossip
// loop re-announces later if anyone missed it.
func (t *GrpcTransport) Broadcast(payload []byte) {
	ann := &pb.Announcement{NodeId: t.nodeID, Payload: payload}
	for _, node := range t.resolver.Members() {
		if node.ID == t.nodeID {
			continue
		}
		addr := node.MetadataAddr()
		pool := t.pools.Connect(addr)
		if pool == nil {
			continue
		}
		go announce(pool.Get(), addr, ann)
	}
}

func announce(cc *grpc.ClientConn, addr string, ann *pb.Announcement) {
	ctx, cancel := context.WithTimeout(context.Background(), announceTimeout)
	defer cancel()
	if _, err := pb.NewMetadataClient(cc).Announce(ctx, ann); err != nil {
		glog.V(1).Infof("Announcement to %s failed: %v", addr, err)
	}
}

// FetchGlobalMetadata pulls the full metadata from the peer at addr. The
// RPC has a hard deadline; a timeout reaches done as an ordinary error.
func (t *GrpcTransport) FetchGlobalMetadata(addr string, done func(*pb.GlobalMetadata, error)) {
	pool := t.pools.Connect(addr)
	if pool == nil {
		go done(nil, errors.Errorf("cannot connect to %s", addr))
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		resp, err := pb.NewMetadataClient(pool.Get()).
			GetGlobalMetadata(ctx, &pb.GetGlobalMetadataRequest{})
		if err != nil {
			done(nil, err)
			return
		}
		done(resp.GetMetadata(), nil)
	}()
}

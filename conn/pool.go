/*
 * SPDX-FileCopyrightText: © Searchmesh, Inc. <hello@searchmesh.io>
 * SPDX-License-Identifier: Apache-2.0
 */

package conn

import (
	"sync"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/searchmesh/metasync/x"
)

var (
	// ErrNoConnection is returned when no connection exists to a given address.
	ErrNoConnection = errors.New("no connection exists")
)

// serviceConfig is applied to every peer channel. Transient failures are
// retried by gRPC itself, so callers above this package see a single
// fetch-failed condition rather than a retry loop.
const serviceConfig = `{
	"methodConfig": [{
		"name": [{"service": "pb.Metadata"}],
		"waitForReady": false,
		"retryPolicy": {
			"MaxAttempts": 5,
			"InitialBackoff": "0.100s",
			"MaxBackoff": "1s",
			"BackoffMultiplier": 1.0,
			"RetryableStatusCodes": [
				"UNAVAILABLE",
				"UNKNOWN",
				"RESOURCE_EXHAUSTED",
				"INTERNAL",
				"DATA_LOSS"
			]
		}
	}]
}`

// Pool manages the gRPC client connection(s) for communicating with a single
// peer. A pool holds one connection; gRPC multiplexes concurrent RPCs over
// the same HTTP2 transport.
type Pool struct {
	sync.RWMutex

	conn *grpc.ClientConn
	Addr string
}

// Pools maps peer addresses to their connection pools.
type Pools struct {
	sync.RWMutex
	all map[string]*Pool
}

// NewPools returns an empty set of peer pools.
func NewPools() *Pools {
	return &Pools{all: make(map[string]*Pool)}
}

// Get returns the pool for the given address, or ErrNoConnection.
func (p *Pools) Get(addr string) (*Pool, error) {
	p.RLock()
	defer p.RUnlock()
	pool, ok := p.all[addr]
	if !ok {
		return nil, ErrNoConnection
	}
	return pool, nil
}

// Connect returns the existing pool for addr, creating one if needed.
func (p *Pools) Connect(addr string) *Pool {
	p.RLock()
	existingPool, has := p.all[addr]
	p.RUnlock()
	if has {
		return existingPool
	}

	pool, err := NewPool(addr)
	if err != nil {
		glog.Errorf("Unable to connect to host: %s, error: %v", addr, err)
		return nil
	}

	p.Lock()
	defer p.Unlock()
	existingPool, has = p.all[addr]
	if has {
		go pool.shutdown() // Not being used, so release the resources.
		return existingPool
	}
	glog.Infof("Connection established with %v\n", addr)
	p.all[addr] = pool
	return pool
}

// Close releases every connection held by the pool set.
func (p *Pools) Close() {
	p.Lock()
	defer p.Unlock()
	for _, pool := range p.all {
		pool.shutdown()
	}
	p.all = make(map[string]*Pool)
}

// NewPool creates a new "pool" with one gRPC connection to addr.
func NewPool(addr string) (*Pool, error) {
	conn, err := grpc.NewClient(addr,
		grpc.WithDefaultCallOptions(
			grpc.MaxCallRecvMsgSize(x.GrpcMaxSize),
			grpc.MaxCallSendMsgSize(x.GrpcMaxSize)),
		grpc.WithDefaultServiceConfig(serviceConfig),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	return &Pool{conn: conn, Addr: addr}, nil
}

// Get returns the connection to use from the pool of connections.
func (p *Pool) Get() *grpc.ClientConn {
	p.RLock()
	defer p.RUnlock()
	return p.conn
}

func (p *Pool) shutdown() {
	glog.V(2).Infof("Shutting down extra connection to %s", p.Addr)
	if err := p.conn.Close(); err != nil {
		glog.Errorf("Error closing connection to %s: %v", p.Addr, err)
	}
}

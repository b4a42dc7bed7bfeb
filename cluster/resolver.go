/*
 * SPDX-FileCopyrightText: © Searchmesh, Inc. <hello@searchmesh.io>
 * SPDX-License-Identifier: Apache-2.0
 */

package cluster

import (
	"net"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/searchmesh/metasync/x"
)

// MetadataPortOffset is added to a node's base port to derive the port its
// metadata gRPC service listens on. Every node in the cluster uses the same
// offset, so knowing a peer's base address is enough to reach its metadata
// service.
const MetadataPortOffset = 20294

// Node identifies one cluster member.
type Node struct {
	ID   string
	Host string
	Port int // base port; the metadata service listens at Port+MetadataPortOffset
}

// MetadataAddr returns the host:port of the node's metadata gRPC service.
func (n Node) MetadataAddr() string {
	return x.JoinHostPort(n.Host, n.Port+MetadataPortOffset)
}

// Resolver answers membership lookups. Membership itself is owned by an
// external system; this engine only reads it.
type Resolver interface {
	// Lookup resolves a node id to its network identity.
	Lookup(nodeID string) (Node, error)
	// Members returns all currently known nodes.
	Members() []Node
}

// StaticResolver is a Resolver over a fixed, mutable set of nodes. It backs
// deployments where membership comes from configuration rather than a
// discovery service.
type StaticResolver struct {
	sync.RWMutex
	nodes map[string]Node
}

func NewStaticResolver(nodes ...Node) *StaticResolver {
	r := &StaticResolver{nodes: make(map[string]Node)}
	for _, n := range nodes {
		r.nodes[n.ID] = n
	}
	return r
}

// Add inserts or replaces a member.
func (r *StaticResolver) Add(n Node) {
	r.Lock()
	defer r.Unlock()
	r.nodes[n.ID] = n
}

// Remove deletes a member if present.
func (r *StaticResolver) Remove(nodeID string) {
	r.Lock()
	defer r.Unlock()
	delete(r.nodes, nodeID)
}

func (r *StaticResolver) Lookup(nodeID string) (Node, error) {
	r.RLock()
	defer r.RUnlock()
	n, ok := r.nodes[nodeID]
	if !ok {
		return Node{}, errors.Errorf("node %q not found in cluster membership", nodeID)
	}
	return n, nil
}

func (r *StaticResolver) Members() []Node {
	r.RLock()
	defer r.RUnlock()
	members := make([]Node, 0, len(r.nodes))
	for _, n := range r.nodes {
		members = append(members, n)
	}
	sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })
	return members
}

// ParsePeer parses a peer spec of the form "id=host:port".
func ParsePeer(spec string) (Node, error) {
	id, addr, ok := strings.Cut(spec, "=")
	if !ok || id == "" {
		return Node{}, errors.Errorf("invalid peer %q, expected id=host:port", spec)
	}
	if !x.ValidateAddress(addr) {
		return Node{}, errors.Errorf("invalid peer address %q", addr)
	}
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return Node{}, errors.Wrapf(err, "invalid peer %q", spec)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return Node{}, errors.Wrapf(err, "invalid peer port in %q", spec)
	}
	return Node{ID: id, Host: host, Port: port}, nil
}

// ParsePeers parses a comma separated list of peer specs.
func ParsePeers(specs string) ([]Node, error) {
	var nodes []Node
	for _, spec := range strings.Split(specs, ",") {
		spec = strings.TrimSpace(spec)
		if spec == "" {
			continue
		}
		n, err := ParsePeer(spec)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

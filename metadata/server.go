/*
 * SPDX-FileCopyrightText: © Searchmesh, Inc. <hello@searchmesh.io>
 * SPDX-License-Identifier: Apache-2.0
 */

package metadata

import (
	"context"

	"github.com/searchmesh/metasync/protos/pb"
)

// Server exposes the metadata service to peers: the full-state pull used
// during reconciliation and the announcement receiver that stands in for a
// cluster bus.
type Server struct {
	pb.UnimplementedMetadataServer

	mgr *Manager
}

func NewServer(mgr *Manager) *Server {
	return &Server{mgr: mgr}
}

func (s *Server) GetGlobalMetadata(ctx context.Context,
	_ *pb.GetGlobalMetadataRequest) (*pb.GetGlobalMetadataResponse, error) {
	return &pb.GetGlobalMetadataResponse{Metadata: s.mgr.GetGlobalMetadata()}, nil
}

func (s *Server) Announce(ctx context.Context,
	ann *pb.Announcement) (*pb.AnnouncementAck, error) {
	s.mgr.HandleClusterMessage(ann.GetNodeId(), ann.GetPayload())
	return &pb.AnnouncementAck{}, nil
}

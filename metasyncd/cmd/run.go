/*
 * SPDX-FileCopyrightText: © Searchmesh, Inc. <hello@searchmesh.io>
 * SPDX-License-Identifier: Apache-2.0
 */

package cmd

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	farm "github.com/dgryski/go-farm"
	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"

	"github.com/searchmesh/metasync/cluster"
	"github.com/searchmesh/metasync/conn"
	"github.com/searchmesh/metasync/metadata"
	"github.com/searchmesh/metasync/protos/pb"
	"github.com/searchmesh/metasync/snapshot"
	"github.com/searchmesh/metasync/x"
)

type options struct {
	nodeID         string
	bindall        bool
	peers          string
	dataDir        string
	gossipInterval time.Duration
}

var opts options

// Run is the sub-command used to start a metasync node.
var Run x.SubCommand

func init() {
	Run.Cmd = &cobra.Command{
		Use:   "run",
		Short: "Run a metasync node",
		Long: `
A metasync node serves the metadata registry for one cluster member. It
answers pulls from peers, announces local changes, and merges in whatever
the rest of the cluster has seen.
`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			run()
		},
	}
	Run.EnvPrefix = "METASYNC_RUN"

	flag := Run.Cmd.Flags()
	flag.String("id", "", "Unique ID of this node within the cluster.")
	flag.Bool("bindall", true,
		"Use 0.0.0.0 instead of localhost to bind to all addresses on local machine.")
	flag.String("peers", "",
		"Comma separated id=host:port list of every cluster member, this node included. "+
			"Ports are base ports; the metadata service listens at base+20294.")
	flag.StringP("data", "d", "ms", "Directory storing the metadata snapshot.")
	flag.Duration("gossip_interval", 30*time.Second,
		"How often the current registry version is re-announced to the cluster.")
}

func run() {
	opts = options{
		nodeID:         Run.Conf.GetString("id"),
		bindall:        Run.Conf.GetBool("bindall"),
		peers:          Run.Conf.GetString("peers"),
		dataDir:        Run.Conf.GetString("data"),
		gossipInterval: Run.Conf.GetDuration("gossip_interval"),
	}
	if opts.nodeID == "" {
		glog.Fatal("The --id flag must be set to this node's cluster ID.")
	}
	if opts.gossipInterval <= 0 {
		glog.Fatalf("Gossip interval must be greater than zero. Found: %v", opts.gossipInterval)
	}

	nodes, err := cluster.ParsePeers(opts.peers)
	x.Checkf(err, "Error while parsing --peers.")
	resolver := cluster.NewStaticResolver(nodes...)
	me, err := resolver.Lookup(opts.nodeID)
	x.Checkf(err, "The --peers list must include this node's own ID (%q).", opts.nodeID)

	pools := conn.NewPools()
	mgr := metadata.NewManager(opts.nodeID, resolver,
		metadata.NewGrpcTransport(opts.nodeID, pools, resolver))
	registerIndexSchemaType(mgr)

	x.Checkf(os.MkdirAll(opts.dataDir, 0700), "Error while creating data dir.")
	store, err := snapshot.Open(opts.dataDir)
	x.Checkf(err, "Error while opening snapshot store at %s.", opts.dataDir)
	x.Checkf(store.Load(mgr), "Error while loading metadata snapshot.")

	addr := "localhost"
	if opts.bindall {
		addr = "0.0.0.0"
	}
	grpcListener, err := net.Listen("tcp", x.JoinHostPort(addr,
		me.Port+cluster.MetadataPortOffset))
	x.Checkf(err, "Error while creating metadata listener.")

	s := grpc.NewServer(
		grpc.MaxRecvMsgSize(x.GrpcMaxSize),
		grpc.MaxSendMsgSize(x.GrpcMaxSize),
		grpc.MaxConcurrentStreams(1000))
	pb.RegisterMetadataServer(s, metadata.NewServer(mgr))

	serveDone := make(chan struct{})
	go func() {
		defer close(serveDone)
		glog.Infof("Metadata gRPC server listening on %s", grpcListener.Addr())
		if err := s.Serve(grpcListener); err != nil {
			glog.Infof("gRPC server stopped : %v", err)
		}
	}()

	mgr.StartGossip(opts.gossipInterval)
	// Announce the restored registry right away rather than waiting out
	// the first gossip interval; peers that moved on while we were down
	// will answer with their newer version.
	mgr.TriggerBroadcast()

	sdCh := make(chan os.Signal, 3)
	signal.Notify(sdCh, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	glog.Infof("Node %s running. Cluster has %d members.", opts.nodeID, len(nodes))
	sig := <-sdCh
	glog.Infof("--- Received %s signal", sig)
	signal.Stop(sdCh)

	// Stop announcing, then stop serving, then persist whatever we have.
	mgr.Close()
	done := make(chan struct{})
	go func() {
		s.GracefulStop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		glog.Infof("Stopping grpc gracefully is taking longer than 5s." +
			" Force stopping now. Pending RPCs will be abandoned.")
		s.Stop()
	}
	<-serveDone

	if err := store.Save(mgr); err != nil {
		glog.Errorf("Error while saving metadata snapshot: %v", err)
	}
	x.Check(store.Close())
	pools.Close()
	glog.Infoln("All done. Goodbye!")
}

// registerIndexSchemaType wires the built-in index-schema metadata type. Its
// payload is opaque to the engine; consumers watch the apply callback to
// rebuild indexes when a schema lands or is dropped.
func registerIndexSchemaType(mgr *metadata.Manager) {
	const typeName = "index-schema"
	mgr.RegisterType(typeName, 1,
		func(content *pb.EntryContent) (uint64, error) {
			if content == nil {
				return 0, fmt.Errorf("%s entry has no content", typeName)
			}
			return farm.Fingerprint64(content.GetValue()), nil
		},
		func(id string, content *pb.EntryContent) error {
			if content == nil {
				glog.Infof("Dropped index schema %q", id)
				return nil
			}
			glog.Infof("Installed index schema %q (%d bytes)", id, len(content.GetValue()))
			return nil
		})
}

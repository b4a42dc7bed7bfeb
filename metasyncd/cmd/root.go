/*
 * SPDX-FileCopyrightText: © Searchmesh, Inc. <hello@searchmesh.io>
 * SPDX-License-Identifier: Apache-2.0
 */

package cmd

import (
	goflag "flag"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"

	"github.com/searchmesh/metasync/x"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "metasyncd",
	Short: "Metasync: cluster metadata synchronization daemon",
	Long: `
Metasyncd keeps a versioned registry of cluster metadata consistent across a
set of nodes without a central coordinator. Nodes announce registry versions
to each other, pull the full registry from any peer that is ahead, and merge
it deterministically, so all members converge on the same content.
`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It runs after every init in
// this package, so all subcommand flags are registered by the time they are
// bound here.
func Execute() {
	goflag.Parse()
	for _, sc := range []*x.SubCommand{&Run, &Version} {
		RootCmd.AddCommand(sc.Cmd)
		sc.BindFlags()
	}
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	flag.CommandLine.AddGoFlagSet(goflag.CommandLine)
	// Always log to stderr. Don't let users set it themselves.
	x.Check(flag.Set("stderrthreshold", "0"))
}

/*
 * SPDX-FileCopyrightText: © Searchmesh, Inc. <hello@searchmesh.io>
 * SPDX-License-Identifier: Apache-2.0
 */

package x

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// SubCommand ties a cobra command to its viper config. Flags registered on
// Cmd are bound into Conf by the root command before Run fires, so run
// functions read configuration exclusively through Conf.
type SubCommand struct {
	Cmd  *cobra.Command
	Conf *viper.Viper

	EnvPrefix string
}

// BindFlags binds the command's flag set and environment variables into the
// subcommand's viper instance.
func (s *SubCommand) BindFlags() {
	s.Conf = viper.New()
	Check(s.Conf.BindPFlags(s.Cmd.Flags()))
	s.Conf.SetEnvPrefix(s.EnvPrefix)
	s.Conf.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	s.Conf.AutomaticEnv()
}

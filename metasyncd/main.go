/*
 * SPDX-FileCopyrightText: © Searchmesh, Inc. <hello@searchmesh.io>
 * SPDX-License-Identifier: Apache-2.0
 */

package main

import "github.com/searchmesh/metasync/metasyncd/cmd"

func main() {
	cmd.Execute()
}

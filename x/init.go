/*
 * SPDX-FileCopyrightText: © Searchmesh, Inc. <hello@searchmesh.io>
 * SPDX-License-Identifier: Apache-2.0
 */

package x

import "fmt"

// These variables are set using -ldflags.
var (
	metasyncVersion string
	lastCommitSHA   string
	lastCommitTime  string
	gitBranch       string
)

func BuildDetails() string {
	return fmt.Sprintf(`
Metasync version : %v
Commit SHA-1     : %v
Commit timestamp : %v
Branch           : %v

Licensed under the Apache License 2.0. Copyright 2026 Searchmesh, Inc.

`,
		metasyncVersion, lastCommitSHA, lastCommitTime, gitBranch)
}

// Version returns the version string set at build time.
func Version() string {
	return metasyncVersion
}

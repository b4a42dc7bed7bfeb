/*
 * SPDX-FileCopyrightText: © Searchmesh, Inc. <hello@searchmesh.io>
 * SPDX-License-Identifier: Apache-2.0
 */

package x

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateAddress(t *testing.T) {
	valid := []string{
		"localhost:7080",
		"10.0.0.5:9000",
		"[::1]:7080",
		"example.com:1",
	}
	for _, addr := range valid {
		require.True(t, ValidateAddress(addr), "addr %q", addr)
	}

	invalid := []string{
		"",
		"localhost",
		"localhost:",
		"localhost:0",
		"localhost:-1",
		"localhost:65536",
		"localhost:port",
		":7080",
	}
	for _, addr := range invalid {
		require.False(t, ValidateAddress(addr), "addr %q", addr)
	}
}

func TestJoinHostPort(t *testing.T) {
	require.Equal(t, "localhost:7080", JoinHostPort("localhost", 7080))
	require.Equal(t, "[::1]:7080", JoinHostPort("::1", 7080))
}

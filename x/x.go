/*
 * SPDX-FileCopyrightText: © Searchmesh, Inc. <hello@searchmesh.io>
 * SPDX-License-Identifier: Apache-2.0
 */

package x

import (
	"fmt"
	"net"
	"strconv"
)

const (
	// GrpcMaxSize is the maximum possible size for a gRPC message.
	GrpcMaxSize = 4 << 30
)

// ValidateAddress checks whether given address can be used with grpc dial.
func ValidateAddress(addr string) bool {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return false
	}
	if p, err := strconv.Atoi(port); err != nil || p <= 0 || p >= 65536 {
		return false
	}
	if ip := net.ParseIP(host); ip != nil {
		return true
	}
	// Domain names are fine too.
	return len(host) > 0
}

// JoinHostPort is fmt.Sprintf("%s:%d", host, port) with IPv6 handling.
func JoinHostPort(host string, port int) string {
	return net.JoinHostPort(host, fmt.Sprintf("%d", port))
}

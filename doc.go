// Copyright 2016 Tom Thorogood. All rights reserved.
// Use of this source code is governed by a
// Modified BSD License license that can be found in
// the LICENSE file.

// Package flshm implements the shared-memory IPC channel historically used
// by the Flash ActionScript Virtual Machine's LocalConnection facility.
//
// Independent processes on the same host rendezvous through a single named
// 64528-byte shared-memory region, guarded by a named semaphore, to exchange
// short function-call-style messages (a method name plus an opaque AMF
// argument payload) and to publish the set of currently listening connection
// names. The region, its single message slot and its 8-entry connection
// registry are all host-local and ephemeral; there is no networking, no
// message queueing and no durable storage.
package flshm

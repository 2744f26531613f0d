// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the client-side data structures for the Orion chat
// client: sessions, messages, the visible transcript, and user settings.
//
// All state in this package lives for the lifetime of the process. Sessions
// and messages are owned by the backend; the types here mirror what the API
// returns plus the transient entries (typing placeholder, local error
// notices) that only ever exist on the client.
package model

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export handles saving session export downloads to disk.
//
// The backend produces the export body (text, structured, or document);
// this package only decides the destination filename and writes the file.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/orionchat/orion-tui/internal/api"
)

// Filename returns the download name for a session export:
// orion_chat_{sessionId}.{ext}. The session ID is sanitized so a hostile
// ID cannot traverse directories.
func Filename(sessionID string, format api.ExportFormat) string {
	return "orion_chat_" + sanitizeID(sessionID) + "." + format.Extension()
}

// Save writes an export body into dir and returns the full path. An empty
// dir means the current working directory.
func Save(dir, sessionID string, format api.ExportFormat, body []byte) (string, error) {
	if !format.Valid() {
		return "", fmt.Errorf("unknown export format %q", format)
	}
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, Filename(sessionID, format))
	if err := os.WriteFile(path, body, 0o600); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}

// sanitizeID keeps the opaque session ID filesystem-safe.
func sanitizeID(id string) string {
	var b strings.Builder
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "session"
	}
	return b.String()
}

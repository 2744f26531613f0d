// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orionchat/orion-tui/internal/api"
)

func TestFilename(t *testing.T) {
	assert.Equal(t, "orion_chat_abc123.txt", Filename("abc123", api.ExportText))
	assert.Equal(t, "orion_chat_abc123.json", Filename("abc123", api.ExportStructured))
	assert.Equal(t, "orion_chat_abc123.html", Filename("abc123", api.ExportDocument))
}

func TestFilenameSanitizesID(t *testing.T) {
	assert.Equal(t, "orion_chat_______evil.txt", Filename("../../evil", api.ExportText))
	assert.Equal(t, "orion_chat_session.txt", Filename("", api.ExportText))
}

func TestSaveWritesBody(t *testing.T) {
	dir := t.TempDir()
	path, err := Save(dir, "s1", api.ExportText, []byte("hello\n"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "orion_chat_s1.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))
}

func TestSaveRejectsUnknownFormat(t *testing.T) {
	_, err := Save(t.TempDir(), "s1", api.ExportFormat("pdf"), nil)
	assert.Error(t, err)
}

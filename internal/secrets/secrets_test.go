// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingDirectory(t *testing.T) {
	values, err := Load(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestLoadReadsAndTrims(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, APIKeyFile), []byte("  sk-or-123\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden"), []byte("skip"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty"), []byte("   \n"), 0o600))

	values, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{APIKeyFile: "sk-or-123"}, values)
}

func TestAPIKeyPrecedence(t *testing.T) {
	loaded := map[string]string{APIKeyFile: "from-file"}

	assert.Equal(t, "from-env", APIKey("from-env", loaded))
	assert.Equal(t, "from-file", APIKey("", loaded))
	assert.Empty(t, APIKey("", nil))
}

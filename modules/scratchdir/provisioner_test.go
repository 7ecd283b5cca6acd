package scratchdir

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/bootgridgo/internal/config"
)

func TestRunCreatesDirectoryWithOwnerOnlyMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scratch")
	p := NewProvisioner(&config.ScratchDir{Path: path, OwnerUID: -1, OwnerGID: -1})

	require.NoError(t, p.Run(context.Background()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.True(t, info.IsDir())
	assert.Equal(t, os.FileMode(0o700), info.Mode().Perm())
}

func TestRunWorldWritableOptIn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scratch")
	p := NewProvisioner(&config.ScratchDir{
		Path: path, OwnerUID: -1, OwnerGID: -1, WorldWritable: true,
	})

	require.NoError(t, p.Run(context.Background()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o777), info.Mode().Perm())
}

func TestRunIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scratch")
	p := NewProvisioner(&config.ScratchDir{Path: path, OwnerUID: -1, OwnerGID: -1})

	require.NoError(t, p.Run(context.Background()))
	require.NoError(t, p.Run(context.Background()), "re-provisioning an existing directory must succeed")
}

func TestRunEnforcesModeOnExistingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scratch")
	require.NoError(t, os.Mkdir(path, 0o755))

	p := NewProvisioner(&config.ScratchDir{Path: path, OwnerUID: -1, OwnerGID: -1})
	require.NoError(t, p.Run(context.Background()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o700), info.Mode().Perm())
}

func TestRunChownToCurrentUserSucceeds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scratch")
	p := NewProvisioner(&config.ScratchDir{
		Path:     path,
		OwnerUID: os.Getuid(),
		OwnerGID: os.Getgid(),
	})

	require.NoError(t, p.Run(context.Background()))
}

func TestRunFailsWhenParentIsNotWritable(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("root bypasses permission bits")
	}
	parent := filepath.Join(t.TempDir(), "locked")
	require.NoError(t, os.Mkdir(parent, 0o500))

	p := NewProvisioner(&config.ScratchDir{
		Path: filepath.Join(parent, "scratch"), OwnerUID: -1, OwnerGID: -1,
	})
	require.Error(t, p.Run(context.Background()))
}

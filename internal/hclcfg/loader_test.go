package hclcfg

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/bootgridgo/internal/config"
)

// writeDeployfile writes content to a temp .hcl file and returns its path.
func writeDeployfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deploy.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCompleteDeployfile(t *testing.T) {
	path := writeDeployfile(t, `
install_deps {
  manifest        = "requirements.txt"
  install_command = ["pip", "install", "--no-cache-dir"]
  cache_path      = "/root/.cache/pip"
}

scratch_dir {
  path      = "/scratch"
  owner_uid = 1000
  owner_gid = 1000
}

copy_source {
  from = "."
  to   = "/srv/app"
}

launch {
  port = 9090
}
`)

	deployment, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)

	expected := &config.Deployment{
		InstallDeps: &config.InstallDeps{
			ManifestPath:   "requirements.txt",
			InstallCommand: []string{"pip", "install", "--no-cache-dir"},
			CachePath:      "/root/.cache/pip",
		},
		ScratchDir: &config.ScratchDir{Path: "/scratch", OwnerUID: 1000, OwnerGID: 1000},
		CopySource: &config.CopySource{From: ".", To: "/srv/app"},
		Launch:     &config.Launch{Host: "0.0.0.0", Port: 9090, Application: "signal_relay"},
	}
	if diff := cmp.Diff(expected, deployment); diff != "" {
		t.Fatalf("unexpected deployment (-want +got):\n%s", diff)
	}
}

func TestLoadAppliesLaunchDefaults(t *testing.T) {
	path := writeDeployfile(t, `
install_deps {
  manifest        = "requirements.txt"
  install_command = ["pip", "install"]
}
scratch_dir {
  path = "/scratch"
}
copy_source {
  from = "."
  to   = "/srv/app"
}
launch {}
`)

	deployment, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", deployment.Launch.Addr())
	assert.Equal(t, config.DefaultApplication, deployment.Launch.Application)
	assert.Equal(t, -1, deployment.ScratchDir.OwnerUID)
	assert.Equal(t, -1, deployment.ScratchDir.OwnerGID)
	assert.False(t, deployment.ScratchDir.WorldWritable)
}

func TestLoadResolvesEnvReferences(t *testing.T) {
	t.Setenv("BGGO_TEST_SCRATCH", "/var/scratch")

	path := writeDeployfile(t, `
install_deps {
  manifest        = "requirements.txt"
  install_command = ["pip", "install"]
}
scratch_dir {
  path = env.BGGO_TEST_SCRATCH
}
copy_source {
  from = "."
  to   = "/srv/app"
}
launch {}
`)

	deployment, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "/var/scratch", deployment.ScratchDir.Path)
}

func TestLoadRejectsMalformedHCL(t *testing.T) {
	path := writeDeployfile(t, `install_deps {`)

	_, err := NewLoader().Load(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse deployfile")
}

func TestLoadRejectsIncompleteDeployfile(t *testing.T) {
	path := writeDeployfile(t, `
launch {}
`)

	_, err := NewLoader().Load(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "install_deps")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "absent.hcl"))
	require.Error(t, err)
}

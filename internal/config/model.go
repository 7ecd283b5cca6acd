// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package config

import (
	"errors"
	"fmt"
)

// Stage block type names as they appear in a deployfile. The pipeline runs
// them in exactly this order; there is no other ordering.
const (
	StageInstallDeps     = "install_deps"
	StageProvisionScratch = "scratch_dir"
	StageCopySource      = "copy_source"
	StageLaunch          = "launch"
)

// Launch defaults: the launcher binds all interfaces on a fixed port
// unless the deployfile overrides them.
const (
	DefaultHost = "0.0.0.0"
	DefaultPort = 8080

	// DefaultApplication is the built-in application the launcher boots
	// when the deployfile does not name one.
	DefaultApplication = "signal_relay"
)

// Deployment is the unified representation of an entire deployfile. A nil
// stage means the block was absent; Validate decides which are required.
type Deployment struct {
	InstallDeps *InstallDeps
	ScratchDir  *ScratchDir
	CopySource  *CopySource
	Launch      *Launch
}

// InstallDeps configures the dependency-installation stage.
type InstallDeps struct {
	// ManifestPath locates the name==version manifest file.
	ManifestPath string
	// InstallCommand is the argv prefix invoked once per package, with the
	// package spec appended as the final argument.
	InstallCommand []string
	// CachePath, when non-empty, is a package-manager cache directory whose
	// contents are removed after a successful install.
	CachePath string
}

// ScratchDir configures the scratch-directory provisioning stage.
type ScratchDir struct {
	Path string
	// Owner holds the uid/gid the directory is chowned to. Negative values
	// leave ownership at the current process user.
	OwnerUID int
	OwnerGID int
	// WorldWritable switches the directory to 0777 for multi-user
	// containers. The default grants access to the configured owner only.
	WorldWritable bool
}

// CopySource configures the source-materialization stage.
type CopySource struct {
	From string
	To   string
}

// Launch configures the terminal launch stage.
type Launch struct {
	Host string
	Port int
	// Application names a registered boot.Application. There is no dynamic
	// entry-point discovery; unknown names fail at startup.
	Application string
}

// Addr renders the bind address handed to the launcher.
func (l *Launch) Addr() string {
	return fmt.Sprintf("%s:%d", l.Host, l.Port)
}

// Validate checks that the deployment describes a complete, runnable boot
// sequence. It is called once after loading; stages assume a valid model.
func (d *Deployment) Validate() error {
	if d.InstallDeps == nil {
		return errors.New("deployfile is missing the install_deps block")
	}
	if d.InstallDeps.ManifestPath == "" {
		return errors.New("install_deps: manifest path must not be empty")
	}
	if len(d.InstallDeps.InstallCommand) == 0 {
		return errors.New("install_deps: install command must not be empty")
	}

	if d.ScratchDir == nil {
		return errors.New("deployfile is missing the scratch_dir block")
	}
	if d.ScratchDir.Path == "" {
		return errors.New("scratch_dir: path must not be empty")
	}

	if d.CopySource == nil {
		return errors.New("deployfile is missing the copy_source block")
	}
	if d.CopySource.From == "" || d.CopySource.To == "" {
		return errors.New("copy_source: both from and to must be set")
	}

	if d.Launch == nil {
		return errors.New("deployfile is missing the launch block")
	}
	if d.Launch.Port <= 0 || d.Launch.Port > 65535 {
		return fmt.Errorf("launch: port %d is out of range", d.Launch.Port)
	}
	if d.Launch.Application == "" {
		return errors.New("launch: application must not be empty")
	}

	return nil
}

// ConfiguredStages lists the stage block types present in the deployment,
// in execution order. The registry validates handlers against this list.
func (d *Deployment) ConfiguredStages() []string {
	var stages []string
	if d.InstallDeps != nil {
		stages = append(stages, StageInstallDeps)
	}
	if d.ScratchDir != nil {
		stages = append(stages, StageProvisionScratch)
	}
	if d.CopySource != nil {
		stages = append(stages, StageCopySource)
	}
	if d.Launch != nil {
		stages = append(stages, StageLaunch)
	}
	return stages
}

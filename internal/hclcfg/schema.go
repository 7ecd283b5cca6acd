// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package hclcfg

// --- Deployfile schema ---

// installDepsBlock mirrors the `install_deps` block of a deployfile.
type installDepsBlock struct {
	Manifest       string   `hcl:"manifest"`
	InstallCommand []string `hcl:"install_command"`
	CachePath      string   `hcl:"cache_path,optional"`
}

// scratchDirBlock mirrors the `scratch_dir` block.
type scratchDirBlock struct {
	Path          string `hcl:"path"`
	OwnerUID      *int   `hcl:"owner_uid,optional"`
	OwnerGID      *int   `hcl:"owner_gid,optional"`
	WorldWritable bool   `hcl:"world_writable,optional"`
}

// copySourceBlock mirrors the `copy_source` block.
type copySourceBlock struct {
	From string `hcl:"from"`
	To   string `hcl:"to"`
}

// launchBlock mirrors the `launch` block. Host, port and application fall
// back to fixed defaults when omitted.
type launchBlock struct {
	Host        string `hcl:"host,optional"`
	Port        *int   `hcl:"port,optional"`
	Application string `hcl:"application,optional"`
}

// deployFile is the top-level structure of a deployfile for decoding.
type deployFile struct {
	InstallDeps *installDepsBlock `hcl:"install_deps,block"`
	ScratchDir  *scratchDirBlock  `hcl:"scratch_dir,block"`
	CopySource  *copySourceBlock  `hcl:"copy_source,block"`
	Launch      *launchBlock      `hcl:"launch,block"`
}

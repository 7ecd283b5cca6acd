// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package hclcfg loads HCL deployfiles and translates them into the
// format-agnostic config.Deployment model.
package hclcfg

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/bootgridgo/internal/config"
	"github.com/vk/bootgridgo/internal/ctxlog"
)

// Loader parses deployfiles. It satisfies the app.Loader contract used
// during startup.
type Loader struct{}

// NewLoader creates a new HCL deployfile loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses the deployfile at path and returns the validated deployment
// model. Expressions in the file may reference process environment
// variables through the `env` object, e.g. `path = env.SCRATCH_DIR`.
func (l *Loader) Load(ctx context.Context, path string) (*config.Deployment, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parsing deployfile.", "path", path)

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse deployfile %s: %w", path, diags)
	}

	var parsed deployFile
	diags = gohcl.DecodeBody(hclFile.Body, evalContext(), &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode deployfile %s: %w", path, diags)
	}

	deployment := translate(&parsed)
	if err := deployment.Validate(); err != nil {
		return nil, fmt.Errorf("invalid deployfile %s: %w", path, err)
	}

	logger.Debug("Deployfile loaded.", "stages", deployment.ConfiguredStages())
	return deployment, nil
}

// evalContext builds the expression scope available to deployfiles. Only
// the environment is exposed; there are no user-defined variables.
func evalContext() *hcl.EvalContext {
	envVars := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		envVars[key] = cty.StringVal(value)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(envVars),
		},
	}
}

// translate maps the decoded HCL structures onto the config model and
// applies the launch defaults.
func translate(parsed *deployFile) *config.Deployment {
	deployment := &config.Deployment{}

	if parsed.InstallDeps != nil {
		deployment.InstallDeps = &config.InstallDeps{
			ManifestPath:   parsed.InstallDeps.Manifest,
			InstallCommand: parsed.InstallDeps.InstallCommand,
			CachePath:      parsed.InstallDeps.CachePath,
		}
	}

	if parsed.ScratchDir != nil {
		scratch := &config.ScratchDir{
			Path:          parsed.ScratchDir.Path,
			OwnerUID:      -1,
			OwnerGID:      -1,
			WorldWritable: parsed.ScratchDir.WorldWritable,
		}
		if parsed.ScratchDir.OwnerUID != nil {
			scratch.OwnerUID = *parsed.ScratchDir.OwnerUID
		}
		if parsed.ScratchDir.OwnerGID != nil {
			scratch.OwnerGID = *parsed.ScratchDir.OwnerGID
		}
		deployment.ScratchDir = scratch
	}

	if parsed.CopySource != nil {
		deployment.CopySource = &config.CopySource{
			From: parsed.CopySource.From,
			To:   parsed.CopySource.To,
		}
	}

	if parsed.Launch != nil {
		launch := &config.Launch{
			Host:        parsed.Launch.Host,
			Port:        config.DefaultPort,
			Application: parsed.Launch.Application,
		}
		if launch.Host == "" {
			launch.Host = config.DefaultHost
		}
		if parsed.Launch.Port != nil {
			launch.Port = *parsed.Launch.Port
		}
		if launch.Application == "" {
			launch.Application = config.DefaultApplication
		}
		deployment.Launch = launch
	}

	return deployment
}

// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package config defines the format-agnostic model of a deployment: the
// ordered build-and-boot stages the pipeline executes, decoupled from the
// HCL deployfile syntax that produces it.
package config

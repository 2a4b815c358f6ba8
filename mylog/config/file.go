// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"go.mytest.dev/mylog/fatalerror"
)

type fileConfig struct {
	LogLevel        string `toml:"log_level"`
	LogFormat       string `toml:"log_format"`
	LogFile         string `toml:"log_file"`
	AlsoLogToStderr bool   `toml:"alsologtostderr"`
	DebugAddr       string `toml:"debug_addr"`
	Iterations      int    `toml:"iterations"`
	NoSpin          bool   `toml:"no_spin"`
	SpinLines       int    `toml:"spin_lines"`
}

// applyFile overrides opts with the keys defined in the TOML file at path.
func applyFile(opts *Options, path string) error {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fatalerror.Wrap(fatalerror.InvalidConfig, fmt.Errorf("load config %s: %w", path, err))
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fatalerror.Wrap(fatalerror.InvalidConfig, fmt.Errorf("load config %s: unknown keys %s", path, strings.Join(keys, ", ")))
	}

	if meta.IsDefined("log_level") {
		opts.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("log_format") {
		opts.LogFormat = strings.TrimSpace(raw.LogFormat)
	}
	if meta.IsDefined("log_file") {
		opts.LogFile = strings.TrimSpace(raw.LogFile)
	}
	if meta.IsDefined("alsologtostderr") {
		opts.AlsoLogToStderr = raw.AlsoLogToStderr
	}
	if meta.IsDefined("debug_addr") {
		opts.DebugAddr = strings.TrimSpace(raw.DebugAddr)
	}
	if meta.IsDefined("iterations") {
		opts.Iterations = raw.Iterations
	}
	if meta.IsDefined("no_spin") {
		opts.NoSpin = raw.NoSpin
	}
	if meta.IsDefined("spin_lines") {
		opts.SpinLines = raw.SpinLines
	}
	opts.ConfigFile = path
	return nil
}

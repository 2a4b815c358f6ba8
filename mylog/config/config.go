// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"go.mytest.dev/mylog/fatalerror"
)

const (
	DefaultIterations = 2048
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "glog"
)

// Options are shared by every demo program. Defaults live in Defaults rather than in
// struct tags so that values read from the config file survive flag parsing.
type Options struct {
	LogLevel        string `long:"log-level" env:"MYLOG_LOG_LEVEL" description:"log level (trace, debug, info, warn, error, fatal, panic)"`
	LogFormat       string `long:"log-format" env:"MYLOG_LOG_FORMAT" description:"record format: glog, text or json"`
	LogFile         string `long:"log-file" env:"MYLOG_LOG_FILE" description:"append records to this file instead of stderr"`
	AlsoLogToStderr bool   `long:"alsologtostderr" env:"MYLOG_ALSOLOGTOSTDERR" description:"copy records to stderr when --log-file is set"`
	ConfigFile      string `long:"config" env:"MYLOG_CONFIG" description:"TOML file with any of the options above"`
	DebugAddr       string `long:"debug-addr" env:"MYLOG_DEBUG_ADDR" description:"serve /ping, /sites, /logs and /metrics on this address until interrupted"`
	Iterations      int    `long:"iterations" env:"MYLOG_ITERATIONS" description:"loop passes over the logging call sites"`
	NoSpin          bool   `long:"no-spin" env:"MYLOG_NO_SPIN" description:"exit after logging instead of spinning on stdout"`
	SpinLines       int    `long:"spin-lines" env:"MYLOG_SPIN_LINES" description:"stop spinning after this many lines, 0 spins until interrupted"`
}

// Defaults returns the options every demo starts from.
func Defaults() Options {
	return Options{
		LogLevel:   DefaultLogLevel,
		LogFormat:  DefaultLogFormat,
		Iterations: DefaultIterations,
	}
}

// LoadEnvFiles adds the variables of each existing dotenv file to the environment.
// Variables already set win over the files, missing files are skipped.
func LoadEnvFiles(files ...string) error {
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fatalerror.Wrap(fatalerror.InvalidConfig, fmt.Errorf("load %s: %w", file, err))
		}
	}
	return nil
}

// Load resolves options from defaults, the config file, the environment and args, each
// overriding the previous one. It returns the arguments that were not options.
func Load(args []string, defaults Options) (Options, []string, error) {
	if err := LoadEnvFiles(".env"); err != nil {
		return Options{}, nil, err
	}

	// first pass only locates the config file
	firstPass := defaults
	if _, err := parse(&firstPass, args); err != nil {
		return Options{}, nil, err
	}

	opts := defaults
	if firstPass.ConfigFile != "" {
		if err := applyFile(&opts, firstPass.ConfigFile); err != nil {
			return Options{}, nil, err
		}
	}

	rest, err := parse(&opts, args)
	if err != nil {
		return Options{}, nil, err
	}

	if err := opts.Validate(); err != nil {
		return Options{}, nil, err
	}
	return opts, rest, nil
}

func parse(opts *Options, args []string) ([]string, error) {
	parser := flags.NewParser(opts, flags.IgnoreUnknown|flags.HelpFlag)
	rest, err := parser.ParseArgs(args)
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return nil, err
		}
		return nil, fatalerror.Wrap(fatalerror.InvalidConfig, err)
	}
	return rest, nil
}

// IsHelp reports whether err is go-flags' --help result. Its message is the usage text.
func IsHelp(err error) bool {
	var flagsErr *flags.Error
	return errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp
}

// Validate checks values no parser can check on its own.
func (o Options) Validate() error {
	if _, err := logrus.ParseLevel(o.LogLevel); err != nil {
		return fatalerror.Wrap(fatalerror.InvalidLogLevel, err)
	}
	switch strings.ToLower(o.LogFormat) {
	case "glog", "text", "json":
	default:
		return fatalerror.Wrap(fatalerror.InvalidLogFormat, fmt.Errorf("unknown log format %q", o.LogFormat))
	}
	if o.Iterations < 0 {
		return fatalerror.Wrap(fatalerror.InvalidConfig, fmt.Errorf("iterations must not be negative, got %d", o.Iterations))
	}
	if o.SpinLines < 0 {
		return fatalerror.Wrap(fatalerror.InvalidConfig, fmt.Errorf("spin-lines must not be negative, got %d", o.SpinLines))
	}
	return nil
}

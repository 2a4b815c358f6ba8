// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package demo

import (
	"context"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"go.mytest.dev/mylog/config"
	"go.mytest.dev/mylog/debugserver"
	"go.mytest.dev/mylog/fatalerror"
	"go.mytest.dev/mylog/logging"
	"go.mytest.dev/mylog/ratelog"
)

// Runner runs one Program with resolved options.
type Runner struct {
	Program Program
	Options config.Options
	Stdout  io.Writer
	// LogOutput overrides Options.LogFile when set.
	LogOutput io.Writer
	// Registry defaults to ratelog.Default.
	Registry *ratelog.Registry
}

// Run initializes logging, runs the scenario, then spins if the program asks for it.
// When a debug address is set the debug server runs alongside and keeps serving after
// the work is done, until ctx is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	registry := r.Registry
	if registry == nil {
		registry = ratelog.Default
	}

	var collector *logging.Collector
	logOpts := logging.Options{
		Program:      r.Program.Name,
		Level:        r.Options.LogLevel,
		Format:       r.Options.LogFormat,
		Output:       r.LogOutput,
		LogFile:      r.Options.LogFile,
		AlsoToStderr: r.Options.AlsoLogToStderr,
	}
	if r.Options.DebugAddr != "" {
		collector = logging.NewCollector(logging.DefaultCollectorLimit)
		logOpts.Copies = []io.Writer{collector}
	}
	if err := logging.Init(logOpts); err != nil {
		return err
	}

	metrics := prometheus.NewRegistry()
	observer, err := ratelog.NewPrometheusObserver(metrics)
	if err != nil {
		return fatalerror.Wrap(fatalerror.Unknown, err)
	}
	registry.SetObserver(observer)
	defer registry.SetObserver(nil)

	console := logging.NewConsolePrinter(r.Stdout)

	g, gctx := errgroup.WithContext(ctx)
	workCtx, workDone := context.WithCancel(gctx)
	defer workDone()

	if r.Options.DebugAddr != "" {
		router := debugserver.NewRouter(registry, collector, metrics)
		g.Go(func() error {
			return debugserver.Serve(workCtx, r.Options.DebugAddr, router)
		})
	}

	g.Go(func() error {
		defer workDone()
		log.WithFields(log.Fields{"iterations": r.Options.Iterations}).Debugf("Starting %s", r.Program.Name)
		console.Println(r.Program.Banner)

		r.Program.Scenario(registry, r.Options.Iterations)
		for _, site := range registry.Sites() {
			log.WithFields(log.Fields{
				"site":        site.Location,
				"kind":        site.Kind,
				"occurrences": site.Occurrences,
				"emitted":     site.Emitted,
			}).Debug("Call site summary")
		}

		if r.Program.Spin && !r.Options.NoSpin {
			lines := Spin(workCtx, console, r.Options.SpinLines)
			log.WithField("lines", lines).Info("Spin loop stopped")
		}

		if r.Options.DebugAddr != "" {
			log.Info("Work done, debug server serving until interrupted")
			<-workCtx.Done()
		}
		return nil
	})

	return g.Wait()
}

// Main loads options from args, runs p until it finishes or a signal arrives, and returns
// the process exit code.
func Main(p Program, args []string, stdout io.Writer) int {
	opts, _, err := config.Load(args, config.Defaults())
	if err != nil {
		if config.IsHelp(err) {
			fmt.Fprintln(stdout, err)
			return 0
		}
		log.WithError(err).WithField("errorType", fatalerror.GetValidErrorTypeOrUnknown(err)).Error("Failed to parse command line arguments")
		return 1
	}

	ctx, cancel := SignalContext(context.Background())
	defer cancel()

	runner := &Runner{Program: p, Options: opts, Stdout: stdout}
	if err := runner.Run(ctx); err != nil {
		log.WithError(err).WithField("errorType", fatalerror.GetValidErrorTypeOrUnknown(err)).Errorf("%s failed", p.Name)
		return 1
	}
	return 0
}

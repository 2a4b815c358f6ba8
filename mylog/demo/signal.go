// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package demo

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
)

// SignalContext returns a context cancelled on SIGINT or SIGTERM, or by the returned cancel func.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		defer signal.Stop(sig)
		select {
		case sigReceived := <-sig:
			log.WithField("signal", sigReceived.String()).Info("Received signal")
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}

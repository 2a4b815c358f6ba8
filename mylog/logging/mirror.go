// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"io"
	"sync/atomic"
)

// MirrorWriter copies log output to a secondary io.Writer while enabled
type MirrorWriter struct {
	out     io.Writer
	enabled atomic.Bool
}

// Enable enables the mirror.
func (mw *MirrorWriter) Enable() {
	mw.enabled.Store(true)
}

// Disable disables the mirror.
func (mw *MirrorWriter) Disable() {
	mw.enabled.Store(false)
}

// Enabled reports whether writes are forwarded.
func (mw *MirrorWriter) Enabled() bool {
	return mw.enabled.Load()
}

// Write forwards p when enabled
func (mw *MirrorWriter) Write(p []byte) (n int, err error) {
	if mw.enabled.Load() {
		return mw.out.Write(p)
	}
	// Else returns a successful write so that MultiWriter won't stop
	return len(p), nil
}

// NewMirrorWriter returns a new mirror writer for w, disabled until Enable is called.
func NewMirrorWriter(w io.Writer) *MirrorWriter {
	return &MirrorWriter{out: w}
}

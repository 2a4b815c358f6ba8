// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package debugserver

import (
	"net/http"

	"github.com/go-chi/render"
	log "github.com/sirupsen/logrus"

	"go.mytest.dev/mylog/logging"
	"go.mytest.dev/mylog/ratelog"
)

// SiteLister is implemented by *ratelog.Registry.
type SiteLister interface {
	Sites() []ratelog.SiteStats
}

// LogSource is implemented by *logging.Collector.
type LogSource interface {
	Logs() logging.LogResponse
}

type pingHandler struct{}

func (h *pingHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	if _, err := writer.Write([]byte("pong")); err != nil {
		log.WithError(err).Warn("Failed to write 'pong' response")
	}
}

// NewPingHandler returns a new instance of http handler
// for serving /ping.
func NewPingHandler() http.Handler {
	return &pingHandler{}
}

type sitesHandler struct {
	sites SiteLister
}

func (h *sitesHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	render.JSON(writer, request, h.sites.Sites())
}

// NewSitesHandler returns a new instance of http handler
// for serving /sites.
func NewSitesHandler(sites SiteLister) http.Handler {
	return &sitesHandler{sites: sites}
}

type logsHandler struct {
	logs LogSource
}

func (h *logsHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	render.JSON(writer, request, h.logs.Logs())
}

// NewLogsHandler returns a new instance of http handler
// for serving /logs. Every request drains the source.
func NewLogsHandler(logs LogSource) http.Handler {
	return &logsHandler{logs: logs}
}

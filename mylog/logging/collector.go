// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"strings"
	"sync"
)

const DefaultCollectorLimit = 1024

type LogResponse struct {
	Logs string `json:"logs"`
}

// Collector keeps the most recent formatted records in memory. When full it drops the oldest.
type Collector struct {
	mutex   *sync.Mutex
	limit   int
	dropped int
	records []string
}

func NewCollector(limit int) *Collector {
	if limit <= 0 {
		limit = DefaultCollectorLimit
	}
	return &Collector{
		mutex:   &sync.Mutex{},
		limit:   limit,
		records: []string{},
	}
}

func (c *Collector) Write(p []byte) (n int, err error) {
	c.Put(string(p))
	return len(p), nil
}

func (c *Collector) Put(record string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if len(c.records) == c.limit {
		c.records = c.records[1:]
		c.dropped++
	}
	c.records = append(c.records, record)
}

// Len returns the number of buffered records.
func (c *Collector) Len() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return len(c.records)
}

// Dropped returns how many records were evicted since the collector was created.
func (c *Collector) Dropped() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.dropped
}

// Logs drains the buffered records.
func (c *Collector) Logs() LogResponse {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	response := LogResponse{
		Logs: strings.Join(c.records, ""),
	}
	c.records = []string{}
	return response
}

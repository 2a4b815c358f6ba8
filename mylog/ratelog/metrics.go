// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package ratelog

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeEmitted    = "emitted"
	outcomeSuppressed = "suppressed"
)

// PrometheusObserver counts call site occurrences by kind and outcome.
type PrometheusObserver struct {
	records *prometheus.CounterVec
}

// NewPrometheusObserver registers ratelog_records_total with reg.
func NewPrometheusObserver(reg prometheus.Registerer) (*PrometheusObserver, error) {
	o := &PrometheusObserver{
		records: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "ratelog",
				Name:      "records_total",
				Help:      "Call site occurrences, by policy kind and whether a record was written.",
			},
			[]string{"kind", "outcome"},
		),
	}

	if err := reg.Register(o.records); err != nil {
		return nil, err
	}

	return o, nil
}

func (o *PrometheusObserver) Observe(kind Kind, emitted bool) {
	outcome := outcomeSuppressed
	if emitted {
		outcome = outcomeEmitted
	}
	o.records.WithLabelValues(kind.String(), outcome).Inc()
}

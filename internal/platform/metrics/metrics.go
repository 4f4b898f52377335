// Copyright (c) 2026 Staynest. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package metrics defines the Prometheus collectors exported on /metrics.
//
// Collectors are package-level so that domain packages can record without
// threading a registry through every constructor. [Register] must be called
// once at startup.
package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// AuthDecisions counts authorization outcomes by strategy and reason.
	AuthDecisions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "staynest",
		Name:      "auth_decisions_total",
		Help:      "Authorization decisions by strategy (credentials, github, google) and outcome.",
	}, []string{"strategy", "outcome"})

	// CategoryToggles counts category filter navigations by resulting action.
	CategoryToggles = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "staynest",
		Name:      "category_toggles_total",
		Help:      "Category filter toggles by action (select, clear).",
	}, []string{"action"})

	// HTTPRequestDuration tracks request latency by method and status code.
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "staynest",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "status"})
)

// Register registers all collectors on reg (or the default registerer if nil).
// Registering twice is not an error.
func Register(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	for _, collector := range []prometheus.Collector{AuthDecisions, CategoryToggles, HTTPRequestDuration} {
		if err := reg.Register(collector); err != nil {
			var already prometheus.AlreadyRegisteredError
			if !errors.As(err, &already) {
				return err
			}
		}
	}
	return nil
}

// Handler exposes the collectors of gatherer in the Prometheus text format.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

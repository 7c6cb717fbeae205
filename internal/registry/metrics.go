// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package registry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var filtersRegistered = promauto.NewCounter(prometheus.CounterOpts{
	Name: "ruleengine_filters_registered_total",
	Help: "Total number of filters registered across all registries.",
})

var comparersRegistered = promauto.NewCounter(prometheus.CounterOpts{
	Name: "ruleengine_comparers_registered_total",
	Help: "Total number of comparers registered across all registries.",
})

var invocationErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "ruleengine_registry_invocation_errors_total",
	Help: "Total number of filter/comparer invocation errors, by kind and key.",
}, []string{"kind", "key"})

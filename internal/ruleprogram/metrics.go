// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package ruleprogram

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var rowDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "ruleengine_row_duration_seconds",
	Help:    "Histogram of per-row rule program evaluation latency in seconds.",
	Buckets: prometheus.DefBuckets,
})

var rowsProcessed = promauto.NewCounter(prometheus.CounterOpts{
	Name: "ruleengine_rows_processed_total",
	Help: "Total number of rows run through RunOnIterable.",
})

var expressionsEvaluated = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "ruleengine_expressions_evaluated_total",
	Help: "Total number of rule expression evaluations, by whether the row changed.",
}, []string{"matched"})

var expressionErrors = promauto.NewCounter(prometheus.CounterOpts{
	Name: "ruleengine_expression_errors_total",
	Help: "Total number of rule expressions that failed during row evaluation.",
})

var defaultMappingFallbacks = promauto.NewCounter(prometheus.CounterOpts{
	Name: "ruleengine_default_mapping_fallbacks_total",
	Help: "Total number of default-mapping writes applied because no expression assigned the output path.",
})

var defaultMappingErrors = promauto.NewCounter(prometheus.CounterOpts{
	Name: "ruleengine_default_mapping_errors_total",
	Help: "Total number of default mappings skipped because their source failed to parse.",
})

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package ruleprogram

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jsonrules/ruleengine/internal/environment"
	"github.com/jsonrules/ruleengine/internal/lattice"
	"github.com/jsonrules/ruleengine/internal/pathlang"
	"github.com/jsonrules/ruleengine/internal/registry"
)

// RuleProgram is an ordered list of rule expressions run against every
// row in a stream.
type RuleProgram struct {
	Expressions []*RuleExpression
}

// Result is one row's outcome from RunOnIterable: the (possibly
// rewritten) row, the union of paths any expression wrote, and any
// error encountered while processing it.
type Result struct {
	RowID        string
	Row          any
	ChangedPaths map[string]bool
	Err          error
}

// RunOnIterable runs every expression over each row from rows, in
// declaration order, then applies env's default mappings for any
// output path left unassigned. It returns a pull
// iterator so callers can cancel mid-stream via ctx; the returned
// channel is closed once rows is drained or ctx is done.
func (p *RuleProgram) RunOnIterable(ctx context.Context, reg *registry.Registry, parsers *lattice.Parsers, env *environment.Environment, rows <-chan any) <-chan Result {
	out := make(chan Result)
	go func() {
		defer close(out)
		for row := range rows {
			if ctx.Err() != nil {
				return
			}
			result := p.runOne(reg, parsers, env, row)
			select {
			case out <- result:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

func (p *RuleProgram) runOne(reg *registry.Registry, parsers *lattice.Parsers, env *environment.Environment, row any) Result {
	rowID := uuid.NewString()
	start := time.Now()
	defer func() { rowDuration.Observe(time.Since(start).Seconds()) }()
	rowsProcessed.Inc()

	current := row
	changed := make(map[string]bool)
	for _, e := range p.Expressions {
		next, stepChanged, err := e.RunOnRow(reg, parsers, current)
		if err != nil {
			expressionErrors.Inc()
			slog.Warn("rule expression failed", "row_id", rowID, "error", err)
			return Result{RowID: rowID, Row: current, ChangedPaths: changed, Err: err}
		}
		current = next
		matched := len(stepChanged) > 0
		expressionsEvaluated.WithLabelValues(boolLabel(matched)).Inc()
		for path := range stepChanged {
			changed[path] = true
		}
	}

	current = applyDefaultMappings(rowID, parsers, env, current, changed)
	return Result{RowID: rowID, Row: current, ChangedPaths: changed}
}

func applyDefaultMappings(rowID string, parsers *lattice.Parsers, env *environment.Environment, row any, changed map[string]bool) any {
	current := row
	for _, mapping := range env.DefaultMappings {
		if changed[mapping.OutputPath] {
			continue
		}
		outPaths := env.Query(environment.ByPath(mapping.OutputPath), environment.ByDirection(environment.DirectionOut))
		if len(outPaths) == 0 {
			continue
		}
		raw, err := pathlang.Get(current, mapping.InputPath)
		if err != nil {
			defaultMappingErrors.Inc()
			slog.Warn("default mapping source failed to resolve", "row_id", rowID, "input_path", mapping.InputPath, "output_path", mapping.OutputPath, "error", err)
			continue
		}
		value, err := parsers.Parse(outPaths[0].DataType, raw)
		if err != nil {
			defaultMappingErrors.Inc()
			slog.Warn("default mapping source failed to parse", "row_id", rowID, "input_path", mapping.InputPath, "output_path", mapping.OutputPath, "error", err)
			continue
		}
		current, err = pathlang.Set(current, mapping.OutputPath, value)
		if err != nil {
			defaultMappingErrors.Inc()
			slog.Warn("default mapping failed to write", "row_id", rowID, "output_path", mapping.OutputPath, "error", err)
			continue
		}
		defaultMappingFallbacks.Inc()
	}
	return current
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

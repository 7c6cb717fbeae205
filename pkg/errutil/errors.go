// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package errutil defines the rule engine's error taxonomy and shared
// logging/test helpers for working with them.
//
// Every exported error kind wraps an *oops.OopsError so callers get a
// stable Go type for errors.As alongside structured context for logging.
package errutil

import (
	"fmt"
	"strings"

	"github.com/samber/oops"
)

// ParseError reports that a runtime value could not become its declared
// semantic type.
type ParseError struct {
	Type  string
	Value any
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: cannot convert %#v: %v", e.Type, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// NewParseError builds a ParseError wrapped with oops context.
func NewParseError(typ string, value any, cause error) error {
	pe := &ParseError{Type: typ, Value: value, Err: cause}
	return oops.
		Code("PARSE_ERROR").
		With("type", typ).
		With("value", value).
		Wrapf(pe, "parse error")
}

// DotNotationError reports a structural failure while traversing a path
// specifier (a required segment was not navigable).
type DotNotationError struct {
	Path string
	Msg  string
}

func (e *DotNotationError) Error() string {
	return fmt.Sprintf("dot notation error at %q: %s", e.Path, e.Msg)
}

// NewDotNotationError builds a DotNotationError wrapped with oops context.
func NewDotNotationError(path, msg string) error {
	return oops.
		Code("DOT_NOTATION_ERROR").
		With("path", path).
		Wrap(&DotNotationError{Path: path, Msg: msg})
}

// SubscriptionError reports a bracket subscription applied to a
// non-sequence node, or a malformed subscription expression.
type SubscriptionError struct {
	Path string
	Msg  string
}

func (e *SubscriptionError) Error() string {
	return fmt.Sprintf("subscription error at %q: %s", e.Path, e.Msg)
}

// NewSubscriptionError builds a SubscriptionError wrapped with oops context.
func NewSubscriptionError(path, msg string) error {
	return oops.
		Code("SUBSCRIPTION_ERROR").
		With("path", path).
		Wrap(&SubscriptionError{Path: path, Msg: msg})
}

// RuleCreationError reports one or more invariant violations while
// building a rule artifact (adding a filter, a comparer, a collation).
// It accumulates one detail string per violation so a caller sees
// every problem in a single error.
type RuleCreationError struct {
	Summary string
	Detail  []string
}

func (e *RuleCreationError) Error() string {
	if len(e.Detail) == 0 {
		return e.Summary
	}
	return fmt.Sprintf("%s: %s", e.Summary, strings.Join(e.Detail, "; "))
}

// NewRuleCreationError builds a RuleCreationError wrapped with oops context.
// detail may be empty; callers append violations as they are found and
// call this once all are collected, so a caller sees every problem at once
// instead of fixing one validation failure at a time.
func NewRuleCreationError(summary string, detail []string) error {
	rce := &RuleCreationError{Summary: summary, Detail: detail}
	return oops.
		Code("RULE_CREATION_ERROR").
		With("detail", detail).
		Wrapf(rce, "rule creation error")
}

// RunnerError reports that no implicit conversion could propagate a
// value's type through a filter chain at evaluation time.
type RunnerError struct {
	Msg string
}

func (e *RunnerError) Error() string { return e.Msg }

// NewRunnerError builds a RunnerError wrapped with oops context.
func NewRunnerError(msg string) error {
	return oops.
		Code("RUNNER_ERROR").
		Wrap(&RunnerError{Msg: msg})
}

// BusinessRuleEngineAPIError reports a registration-time contract
// violation (bad manipulation types, bad arity, duplicate collation...).
type BusinessRuleEngineAPIError struct {
	Msg string
}

func (e *BusinessRuleEngineAPIError) Error() string { return e.Msg }

// NewAPIError builds a BusinessRuleEngineAPIError wrapped with oops context.
func NewAPIError(msg string) error {
	return oops.
		Code("BUSINESS_RULE_ENGINE_API_ERROR").
		Wrap(&BusinessRuleEngineAPIError{Msg: msg})
}

// ValidationError is reserved for environment/static-validation failure
// surfaces.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NewValidationError builds a ValidationError wrapped with oops context.
func NewValidationError(msg string) error {
	return oops.
		Code("VALIDATION_ERROR").
		Wrap(&ValidationError{Msg: msg})
}

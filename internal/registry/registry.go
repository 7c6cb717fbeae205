// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package registry

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/jsonrules/ruleengine/internal/lattice"
	"github.com/jsonrules/ruleengine/pkg/errutil"
)

// Registry holds filter and comparer definitions.
// It is a plain value: New returns an empty, mutable-until-frozen
// registry; builtins.Default wires the builtin provider for
// convenience, but every caller threads a *Registry explicitly.
type Registry struct {
	filters       map[string]*FilterDef
	comparers     map[string]*ComparerDef
	filterOrder   []string
	comparerOrder []string
	frozen        bool
	logger        *slog.Logger
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{
		filters:   make(map[string]*FilterDef),
		comparers: make(map[string]*ComparerDef),
		logger:    slog.Default(),
	}
}

// Freeze marks the registry read-only. It is advisory: registration
// after Freeze panics rather than being guarded by a mutex, matching
// the "no locks during evaluation" contract.
func (r *Registry) Freeze() {
	r.frozen = true
}

func (r *Registry) checkMutable() {
	if r.frozen {
		panic("registry: registration attempted after Freeze")
	}
}

// RegisterFilter validates and stores a filter definition.
func (r *Registry) RegisterFilter(prettyName, description, key string, manipulationTypes []ManipulationPair, params []ParamSpec, method FilterMethod, builtin bool) error {
	r.checkMutable()

	if err := validateManipulationTypes(manipulationTypes); err != nil {
		return err
	}
	if err := validateParams(params); err != nil {
		return err
	}
	if method == nil {
		return errutil.NewAPIError("filter method must not be nil")
	}

	if key == "" {
		key = defaultKey(prettyName, "f_", builtin)
	}
	if _, exists := r.filters[key]; exists {
		return errutil.NewAPIError("filter key already registered: " + key)
	}

	sorted := make([]ManipulationPair, len(manipulationTypes))
	copy(sorted, manipulationTypes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return stringInputRank(sorted[i].In) < stringInputRank(sorted[j].In)
	})

	r.filters[key] = &FilterDef{
		Key:               key,
		PrettyName:        prettyName,
		Description:       description,
		ManipulationTypes: sorted,
		Params:            params,
		Method:            method,
		Builtin:           builtin,
	}
	r.filterOrder = append(r.filterOrder, key)
	filtersRegistered.Inc()
	r.logger.Debug("filter registered", "key", key, "pretty_name", prettyName)
	return nil
}

// RegisterComparer validates and stores a comparer definition.
func (r *Registry) RegisterComparer(prettyName, description, key string, collationTypes []CollationPair, params []ParamSpec, method ComparerMethod, valueClasses []string, builtin bool) error {
	r.checkMutable()

	if err := validateCollationTypes(collationTypes); err != nil {
		return err
	}
	if err := validateParams(params); err != nil {
		return err
	}
	if method == nil {
		return errutil.NewAPIError("comparer method must not be nil")
	}
	if len(valueClasses) == 0 {
		valueClasses = defaultValueClasses
	}

	if key == "" {
		key = defaultKey(prettyName, "c_", builtin)
	}
	if _, exists := r.comparers[key]; exists {
		return errutil.NewAPIError("comparer key already registered: " + key)
	}

	r.comparers[key] = &ComparerDef{
		Key:            key,
		PrettyName:     prettyName,
		Description:    description,
		CollationTypes: collationTypes,
		Params:         params,
		Method:         method,
		ValueClasses:   valueClasses,
		Builtin:        builtin,
	}
	r.comparerOrder = append(r.comparerOrder, key)
	comparersRegistered.Inc()
	r.logger.Debug("comparer registered", "key", key, "pretty_name", prettyName)
	return nil
}

// Filter looks up a registered filter by key.
func (r *Registry) Filter(key string) (*FilterDef, bool) {
	f, ok := r.filters[key]
	return f, ok
}

// Comparer looks up a registered comparer by key.
func (r *Registry) Comparer(key string) (*ComparerDef, bool) {
	c, ok := r.comparers[key]
	return c, ok
}

// Filters returns every registered filter in registration order.
func (r *Registry) Filters() []*FilterDef {
	out := make([]*FilterDef, 0, len(r.filterOrder))
	for _, key := range r.filterOrder {
		out = append(out, r.filters[key])
	}
	return out
}

// Comparers returns every registered comparer in registration order.
func (r *Registry) Comparers() []*ComparerDef {
	out := make([]*ComparerDef, 0, len(r.comparerOrder))
	for _, key := range r.comparerOrder {
		out = append(out, r.comparers[key])
	}
	return out
}

// InvokeFilter calls def's method, recovering from a panic inside the
// callback the same way any registered provider call is guarded, and
// converts it into a RunnerError.
func (r *Registry) InvokeFilter(def *FilterDef, value any, args []any) (result any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			invocationErrors.WithLabelValues("filter", def.Key).Inc()
			err = errutil.NewRunnerError(fmt.Sprintf("filter %q panicked: %v", def.Key, rec))
		}
	}()
	result, err = def.Method(value, args)
	if err != nil {
		invocationErrors.WithLabelValues("filter", def.Key).Inc()
	}
	return result, err
}

// InvokeComparer calls def's method with the same panic-recovery
// guarantee as InvokeFilter.
func (r *Registry) InvokeComparer(def *ComparerDef, left, right any, args []any) (result bool, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			invocationErrors.WithLabelValues("comparer", def.Key).Inc()
			err = errutil.NewRunnerError(fmt.Sprintf("comparer %q panicked: %v", def.Key, rec))
		}
	}()
	result, err = def.Method(left, right, args)
	if err != nil {
		invocationErrors.WithLabelValues("comparer", def.Key).Inc()
	}
	return result, err
}

// stringInputRank biases manipulation-type ordering so pairs whose
// input type starts with "String" sort last.
func stringInputRank(t lattice.Type) int {
	if strings.HasPrefix(string(t), "String") {
		return 1
	}
	return 0
}

func defaultKey(prettyName, prefix string, builtin bool) string {
	slug := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(prettyName), " ", "_"))
	if builtin {
		return slug
	}
	return prefix + slug
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package registry

// Provider supplies a set of filter/comparer registrations to a
// Registry. Package builtins does not implement this interface; it
// registers its set directly through builtins.Default. Callers may
// register their own providers alongside or instead of it.
type Provider interface {
	Register(r *Registry) error
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"fmt"
	"sync"
)

// =============================================================================
// REGISTRY
// =============================================================================

// Registry holds registered model descriptors in registration order.
type Registry struct {
	mu     sync.RWMutex
	models []*Descriptor
	byKey  map[string]*Descriptor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byKey: make(map[string]*Descriptor)}
}

// defaultRegistry backs the package-level Register/All/Get used by the
// built-in models.
var defaultRegistry = NewRegistry()

// Register validates and adds a descriptor. A *ConfigurationError is fatal
// only to this model; callers report it and continue with the rest.
func (r *Registry) Register(d *Descriptor) error {
	if err := d.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byKey[d.Key]; ok {
		return &ConfigurationError{Model: d.Key, Reason: "already registered"}
	}
	r.models = append(r.models, d)
	r.byKey[d.Key] = d
	return nil
}

// All returns the descriptors in registration order.
func (r *Registry) All() []*Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Descriptor, len(r.models))
	copy(out, r.models)
	return out
}

// Get returns the descriptor with the given key.
func (r *Registry) Get(key string) (*Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.byKey[key]
	if !ok {
		return nil, fmt.Errorf("unknown model %q", key)
	}
	return d, nil
}

// Register adds a descriptor to the default registry.
func Register(d *Descriptor) error { return defaultRegistry.Register(d) }

// All lists the default registry in registration order.
func All() []*Descriptor { return defaultRegistry.All() }

// Get looks up a model in the default registry by key.
func Get(key string) (*Descriptor, error) { return defaultRegistry.Get(key) }

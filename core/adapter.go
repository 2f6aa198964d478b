package core

import (
	"context"
	"sync"
)

// MethodAdapter is the capability the engine consumes to exercise one
// retrieval method of one memory framework. Implementations must be callable
// independently per method: the engine never assumes one call returns results
// for multiple methods.
//
// Idempotency: re-invoking with the same conversation and freshly initialized
// framework state is expected to return semantically equivalent content,
// though exact text may vary. Scoring is therefore similarity-based.
type MethodAdapter interface {
	Retrieve(ctx context.Context, conversation Conversation) (string, error)
}

// MethodAdapterFunc adapts a plain function to the MethodAdapter interface.
type MethodAdapterFunc func(ctx context.Context, conversation Conversation) (string, error)

// Retrieve implements MethodAdapter.
func (f MethodAdapterFunc) Retrieve(ctx context.Context, conversation Conversation) (string, error) {
	return f(ctx, conversation)
}

// RegisterOptions configure one framework/method registration.
type RegisterOptions struct {
	// Core designates the method as the framework's general-purpose
	// retrieval, used for the direct cross-framework comparison layer.
	Core bool
	// Weight is the method's share in the framework aggregate. Defaults to 1.
	Weight float64
}

type registration struct {
	key     MethodKey
	adapter MethodAdapter
	core    bool
	weight  float64
}

// Registry holds the framework/method adapters under test in a stable
// registration order. That order is the deterministic tie-break for every
// ranking in the analysis pipeline, so it must never depend on map iteration.
type Registry struct {
	mu      sync.RWMutex
	entries []registration
	index   map[MethodKey]int
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[MethodKey]int)}
}

// Register adds an adapter for a framework/method pair. Registering the same
// pair twice returns ErrDuplicateRegistration.
func (r *Registry) Register(framework, method string, adapter MethodAdapter, optFns ...func(o *RegisterOptions)) error {
	opts := RegisterOptions{Weight: 1.0}
	for _, fn := range optFns {
		fn(&opts)
	}
	if framework == "" || method == "" {
		return NewConfigurationError("framework and method identifiers must be non-empty")
	}
	if adapter == nil {
		return NewConfigurationError("adapter for %s/%s is nil", framework, method)
	}
	if opts.Weight <= 0 {
		opts.Weight = 1.0
	}

	key := MethodKey{Framework: framework, Method: method}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.index[key]; exists {
		return ErrDuplicateRegistration
	}
	r.index[key] = len(r.entries)
	r.entries = append(r.entries, registration{key: key, adapter: adapter, core: opts.Core, weight: opts.Weight})
	return nil
}

// Adapter returns the adapter registered for the given pair or ErrNotFound.
func (r *Registry) Adapter(key MethodKey) (MethodAdapter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.index[key]
	if !ok {
		return nil, ErrNotFound
	}
	return r.entries[i].adapter, nil
}

// Methods returns all registered pairs in registration order.
func (r *Registry) Methods() []MethodKey {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]MethodKey, len(r.entries))
	for i, e := range r.entries {
		keys[i] = e.key
	}
	return keys
}

// Frameworks returns framework identifiers in first-registration order.
func (r *Registry) Frameworks() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]bool, len(r.entries))
	frameworks := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		if !seen[e.key.Framework] {
			seen[e.key.Framework] = true
			frameworks = append(frameworks, e.key.Framework)
		}
	}
	return frameworks
}

// CoreMethod returns the framework's designated general-purpose method. The
// second return is false when the framework has no core designation.
func (r *Registry) CoreMethod(framework string) (MethodKey, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.entries {
		if e.key.Framework == framework && e.core {
			return e.key, true
		}
	}
	return MethodKey{}, false
}

// Weights returns the configured per-method weights.
func (r *Registry) Weights() map[MethodKey]float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	weights := make(map[MethodKey]float64, len(r.entries))
	for _, e := range r.entries {
		weights[e.key] = e.weight
	}
	return weights
}

// Len returns the number of registered framework/method pairs.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

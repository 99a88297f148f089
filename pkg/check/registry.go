package check

import (
	"slices"
	"sync"
)

// Stage is a named runner constructor. A fresh runner is built for every invocation.
type Stage struct {
	Name string
	New  func() Runner
}

// Default stage names.
const (
	StageSelectFields    = "select_fields"
	StageSanitize        = "sanitize"
	StageRemoveOptionals = "remove_optionals"
	StageEnsureInstance  = "ensure_instance"
	StagePersistBack     = "persist_back"
	StageValidate        = "validate"
)

// DefaultStages returns the standard pipeline in order.
func DefaultStages() []Stage {
	return []Stage{
		{Name: StageSelectFields, New: func() Runner { return SelectFields{} }},
		{Name: StageSanitize, New: func() Runner { return Sanitize{} }},
		{Name: StageRemoveOptionals, New: func() Runner { return RemoveOptionals{} }},
		{Name: StageEnsureInstance, New: func() Runner { return EnsureInstance{} }},
		{Name: StagePersistBack, New: func() Runner { return PersistBack{} }},
		{Name: StageValidate, New: func() Runner { return Validate{} }},
	}
}

// Registry is an ordered, replaceable list of stages. Executors read it at the
// start of each invocation, so replacing it affects chains declared earlier.
type Registry struct {
	mu     sync.RWMutex
	stages []Stage
}

// NewRegistry creates a registry with the given stages, or the default ones when
// none are given.
func NewRegistry(stages ...Stage) *Registry {
	if len(stages) == 0 {
		stages = DefaultStages()
	}
	return &Registry{stages: slices.Clone(stages)}
}

var defaultRegistry = NewRegistry()

// DefaultRegistry is the process-wide registry used by executors created without
// WithRegistry. Code that replaces its stages must call Reset afterwards.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Stages returns a copy of the current list.
func (r *Registry) Stages() []Stage {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.stages)
}

// Names lists stage names in order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.stages))
	for i, s := range r.stages {
		names[i] = s.Name
	}
	return names
}

// Replace swaps the whole list.
func (r *Registry) Replace(stages ...Stage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stages = slices.Clone(stages)
}

// Reset restores DefaultStages.
func (r *Registry) Reset() {
	r.Replace(DefaultStages()...)
}

package frontend

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps entity tags to parse functions
type Registry struct {
	parsers map[string]ParseFunc
	mux     sync.RWMutex
}

// Register registers parse function for a tag
func (r *Registry) Register(tag string, fn ParseFunc) {
	r.mux.Lock()
	defer r.mux.Unlock()
	r.parsers[tag] = fn
}

// Lookup returns parse function for a tag
func (r *Registry) Lookup(tag string) (ParseFunc, error) {
	r.mux.RLock()
	defer r.mux.RUnlock()
	fn, ok := r.parsers[tag]
	if !ok {
		return nil, fmt.Errorf("unknown launch entity: '%v'", tag)
	}
	return fn, nil
}

// Tags returns registered tags
func (r *Registry) Tags() []string {
	r.mux.RLock()
	defer r.mux.RUnlock()
	var ret []string
	for tag := range r.parsers {
		ret = append(ret, tag)
	}
	sort.Strings(ret)
	return ret
}

// NewRegistry creates a registry
func NewRegistry() *Registry {
	return &Registry{parsers: map[string]ParseFunc{}}
}

package registry

import (
	"fmt"
	"sort"

	"github.com/vk/prototable/internal/protoerr"
)

// Prototype is implemented by every decoded record stored in the Registry.
type Prototype interface {
	// ProtoName is the record's unique name within its category.
	ProtoName() string
	// ProtoType is the name of the category the record belongs to.
	ProtoType() string
}

// Registry holds all decoded prototypes for a single load, partitioned by
// category, plus the list of deferred references created during the decode
// phase. It is mutated only during that phase and must be treated as
// read-only once ValidateReferences has run.
type Registry struct {
	categories map[string]map[string]Prototype
	overwrite  map[string]bool
	pending    []pendingRef
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		categories: make(map[string]map[string]Prototype),
		overwrite:  make(map[string]bool),
	}
}

// AllowOverwrite switches the named category from the default
// reject-duplicates policy to replace-on-duplicate. The choice is per
// category and must be made before any insertion into it.
func (r *Registry) AllowOverwrite(category string) {
	r.overwrite[category] = true
}

// Extend inserts a prototype under its own category and name. Inserting a
// name that already exists in the category fails with DuplicateName unless
// the category opted into overwriting.
func (r *Registry) Extend(p Prototype) error {
	name := p.ProtoName()
	if name == "" {
		return fmt.Errorf("prototype of category %q has an empty name", p.ProtoType())
	}

	category := p.ProtoType()
	bucket, ok := r.categories[category]
	if !ok {
		bucket = make(map[string]Prototype)
		r.categories[category] = bucket
	}

	if _, exists := bucket[name]; exists && !r.overwrite[category] {
		return protoerr.DuplicateNamef("%s %q is already registered", category, name)
	}
	bucket[name] = p
	return nil
}

// Find returns the prototype stored under the given category and name. The
// lookup is exact and case-sensitive.
func (r *Registry) Find(category, name string) (Prototype, error) {
	if p, ok := r.categories[category][name]; ok {
		return p, nil
	}
	return nil, protoerr.NotFoundf("no %s named %q", category, name)
}

// Find is the typed variant of Registry.Find. A record stored under the
// category with an unexpected Go type is a schema wiring bug and surfaces as
// a TypeMismatch.
func Find[T Prototype](r *Registry, category, name string) (T, error) {
	var zero T
	p, err := r.Find(category, name)
	if err != nil {
		return zero, err
	}
	t, ok := p.(T)
	if !ok {
		return zero, protoerr.TypeMismatchf("%s %q has unexpected record type %T", category, name, p)
	}
	return t, nil
}

// Len returns the number of prototypes stored in the given category.
func (r *Registry) Len(category string) int {
	return len(r.categories[category])
}

// Categories returns the sorted names of all non-empty categories.
func (r *Registry) Categories() []string {
	var names []string
	for name, bucket := range r.categories {
		if len(bucket) > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// All returns the prototypes of a category sorted by name.
func (r *Registry) All(category string) []Prototype {
	bucket := r.categories[category]
	out := make([]Prototype, 0, len(bucket))
	for _, p := range bucket {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProtoName() < out[j].ProtoName() })
	return out
}
